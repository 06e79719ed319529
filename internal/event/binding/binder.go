package binding

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/evbind/internal/event/handlers"
)

// State is the phase of a Binder.
type State int

const (
	// StateUninitialized is the state before the first pass and after Teardown.
	StateUninitialized State = iota

	// StateScanning is set while declarations are collected.
	StateScanning

	// StateResolving is set while consumers are matched and sets are built.
	StateResolving

	// StateInstalled is set once handler sets were written to their slots.
	StateInstalled

	// StateRejected is set when a strict pass found errors and installed nothing.
	StateRejected
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateScanning:
		return "scanning"
	case StateResolving:
		return "resolving"
	case StateInstalled:
		return "installed"
	case StateRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Binder runs binding passes over a scope and remembers the slots it wrote.
//
// A Binder is meant to be created and used once during process
// initialization, before any producer fires. It is not safe for concurrent
// use.
type Binder struct {
	scope     *Scope
	cfg       binderConfig
	state     State
	installed []installation
}

// installation is a slot this binder wrote and the release of the set it
// wrote last.
type installation struct {
	slot    any
	release func()
}

// NewBinder creates a binder for scope.
func NewBinder(scope *Scope, opts ...Option) *Binder {
	cfg := defaultBinderConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Binder{
		scope: scope,
		cfg:   cfg,
	}
}

// BindAll runs a binding pass over the whole scope and returns its report.
// It is shorthand for NewBinder(scope, opts...).BindAll().
func BindAll(scope *Scope, opts ...Option) *Report {
	return NewBinder(scope, opts...).BindAll()
}

// State returns the current phase.
func (b *Binder) State() State {
	return b.state
}

// BindAll scans the scope, resolves consumers against producers and installs
// one handler set per bound producer.
//
// BindAll never fails as a whole: every error is collected in the report and
// the caller decides whether it is fatal. Clean bindings are installed even
// when other identifiers failed, unless the binder is strict. Calling BindAll
// again runs a new pass that overwrites the slots it binds.
func (b *Binder) BindAll() *Report {
	start := time.Now()
	report := &Report{ID: uuid.NewString()}
	log := b.cfg.logger.With(zap.String("pass", report.ID))

	b.state = StateScanning
	scan := b.scope.Scan()
	report.Errors = append(report.Errors, scan.Errors...)
	log.Debug("scan complete",
		zap.Int("producers", len(scan.Producers)),
		zap.Int("consumers", len(scan.Consumers)),
		zap.Int("errors", len(scan.Errors)))

	b.state = StateResolving
	bindings, resolveErrs := Resolve(scan)
	report.Errors = append(report.Errors, resolveErrs...)

	var setOpts []handlers.SetOption
	if b.cfg.observer != nil {
		setOpts = append(setOpts, handlers.WithObserver(b.cfg.observer))
	}
	ready, buildErrs := prepare(bindings, setOpts)
	report.Errors = append(report.Errors, buildErrs...)

	for _, err := range report.Errors {
		log.Warn("binding error", zap.String("kind", string(KindOf(err))), zap.Error(err))
	}

	if b.cfg.strict && len(report.Errors) > 0 {
		b.state = StateRejected
		report.State = b.state
		log.Error("binding pass rejected",
			zap.Int("errors", len(report.Errors)),
			zap.Duration("elapsed", time.Since(start)))
		return report
	}

	install(ready)
	for _, p := range ready {
		b.remember(p)
		report.Bindings = append(report.Bindings, p.binding)
		log.Debug("binding installed",
			zap.Stringer("id", p.binding.ID),
			zap.String("producer", p.binding.Producer.Qualified()),
			zap.Strings("consumers", p.binding.ConsumerNames()))
	}

	b.state = StateInstalled
	report.State = b.state
	log.Info("binding pass complete",
		zap.Int("bindings", len(report.Bindings)),
		zap.Int("errors", len(report.Errors)),
		zap.Duration("elapsed", time.Since(start)))
	return report
}

// Teardown empties the slots this binder installed and returns it to
// StateUninitialized. A slot that another binder has installed into since is
// left holding that binder's set.
func (b *Binder) Teardown() {
	for _, in := range b.installed {
		in.release()
	}
	b.cfg.logger.Debug("binder torn down", zap.Int("slots", len(b.installed)))
	b.installed = nil
	b.state = StateUninitialized
}

func (b *Binder) remember(p pending) {
	for i, known := range b.installed {
		if known.slot == p.binding.Producer.slot {
			b.installed[i].release = p.release
			return
		}
	}
	b.installed = append(b.installed, installation{slot: p.binding.Producer.slot, release: p.release})
}
