package handlers

import (
	"runtime/debug"
	"time"

	"github.com/dshills/evbind/internal/event/ident"
)

// Set is an immutable, ordered sequence of handlers bound to one producer.
// The zero value and the nil pointer are valid empty sets.
type Set[S, A any] struct {
	handlers []Handler[S, A]
	id       ident.ID
	observer Observer
}

// NewSet creates a set from handlers in invocation order.
// The slice is copied; handlers with a nil Fn are left out.
func NewSet[S, A any](hs []Handler[S, A], opts ...SetOption) *Set[S, A] {
	var cfg setConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Set[S, A]{
		handlers: make([]Handler[S, A], 0, len(hs)),
		id:       cfg.id,
		observer: cfg.observer,
	}
	for _, h := range hs {
		if h.Fn != nil {
			s.handlers = append(s.handlers, h)
		}
	}
	return s
}

// ID returns the identifier the set was tagged with, if any.
func (s *Set[S, A]) ID() ident.ID {
	if s == nil {
		return ""
	}
	return s.id
}

// Len returns the number of handlers.
func (s *Set[S, A]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.handlers)
}

// Names returns the handler names in invocation order.
func (s *Set[S, A]) Names() []string {
	if s.Len() == 0 {
		return nil
	}
	names := make([]string, len(s.handlers))
	for i, h := range s.handlers {
		names[i] = h.Name
	}
	return names
}

// Handlers returns a copy of the handlers in invocation order.
func (s *Set[S, A]) Handlers() []Handler[S, A] {
	if s.Len() == 0 {
		return nil
	}
	result := make([]Handler[S, A], len(s.handlers))
	copy(result, s.handlers)
	return result
}

// Fire invokes every handler in order with sender and args, synchronously.
// Handler N+1 starts only after handler N returned. The first handler that
// fails stops the fire; its error is returned as a *HandlerError and the
// remaining handlers do not run. Firing an empty set does nothing.
func (s *Set[S, A]) Fire(sender S, args A) (err error) {
	if s.Len() == 0 {
		return nil
	}

	if s.observer != nil {
		start := time.Now()
		defer func() {
			s.notifyFire(time.Since(start), err)
		}()
	}

	for i, h := range s.handlers {
		if err := s.call(i, h, sender, args); err != nil {
			return err
		}
	}
	return nil
}

// call runs one handler, converting a panic into a PanicError.
func (s *Set[S, A]) call(index int, h Handler[S, A], sender S, args A) (err error) {
	var start time.Time
	if s.observer != nil {
		start = time.Now()
	}

	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
		if err != nil {
			err = &HandlerError{
				ID:      s.id,
				Handler: h.Name,
				Index:   index,
				Err:     err,
			}
		}
		if s.observer != nil {
			s.notifyHandler(h.Name, time.Since(start), err)
		}
	}()

	return h.Fn(sender, args)
}

func (s *Set[S, A]) notifyHandler(name string, elapsed time.Duration, err error) {
	// An observer must never turn a successful fire into a crash.
	defer func() { _ = recover() }()
	s.observer.HandlerDone(s.id, name, elapsed, err)
}

func (s *Set[S, A]) notifyFire(elapsed time.Duration, err error) {
	defer func() { _ = recover() }()
	s.observer.FireDone(s.id, len(s.handlers), elapsed, err)
}
