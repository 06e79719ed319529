// Package metrics exports binding and dispatch statistics to Prometheus.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dshills/evbind/internal/event/binding"
	"github.com/dshills/evbind/internal/event/handlers"
	"github.com/dshills/evbind/internal/event/ident"
)

// Outcome label values.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
	OutcomePanic = "panic"
)

// Collector observes handler sets and binding reports.
// It implements handlers.Observer and is safe for concurrent use.
type Collector struct {
	fires           *prometheus.CounterVec
	handlerRuns     *prometheus.CounterVec
	handlerDuration *prometheus.HistogramVec
	fireDuration    *prometheus.HistogramVec
	bindings        prometheus.Gauge
	bindingErrors   *prometheus.GaugeVec
}

var _ handlers.Observer = (*Collector)(nil)

// New creates a collector and registers it with reg.
// A nil reg leaves the collector unregistered.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		fires: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "evbind",
				Subsystem: "dispatch",
				Name:      "fires_total",
				Help:      "Total number of producer fires",
			},
			[]string{"id", "outcome"},
		),
		handlerRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "evbind",
				Subsystem: "dispatch",
				Name:      "handler_runs_total",
				Help:      "Total number of handler invocations",
			},
			[]string{"id", "handler", "outcome"},
		),
		handlerDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "evbind",
				Subsystem: "dispatch",
				Name:      "handler_duration_seconds",
				Help:      "Duration of handler invocations in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"id", "handler"},
		),
		fireDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "evbind",
				Subsystem: "dispatch",
				Name:      "fire_duration_seconds",
				Help:      "Duration of complete fires in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"id"},
		),
		bindings: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "evbind",
				Subsystem: "binding",
				Name:      "installed",
				Help:      "Number of bindings installed by the last pass",
			},
		),
		bindingErrors: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "evbind",
				Subsystem: "binding",
				Name:      "errors",
				Help:      "Binding errors found by the last pass, by kind",
			},
			[]string{"kind"},
		),
	}

	if reg != nil {
		for _, col := range c.collectors() {
			if err := reg.Register(col); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

// MustNew is like New but panics if registration fails.
func MustNew(reg prometheus.Registerer) *Collector {
	c, err := New(reg)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Collector) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		c.fires, c.handlerRuns, c.handlerDuration, c.fireDuration, c.bindings, c.bindingErrors,
	}
}

// HandlerDone implements handlers.Observer.
func (c *Collector) HandlerDone(id ident.ID, handler string, elapsed time.Duration, err error) {
	c.handlerRuns.WithLabelValues(id.String(), handler, outcome(err)).Inc()
	c.handlerDuration.WithLabelValues(id.String(), handler).Observe(elapsed.Seconds())
}

// FireDone implements handlers.Observer.
func (c *Collector) FireDone(id ident.ID, _ int, elapsed time.Duration, err error) {
	c.fires.WithLabelValues(id.String(), outcome(err)).Inc()
	c.fireDuration.WithLabelValues(id.String()).Observe(elapsed.Seconds())
}

// ObserveReport records the outcome of a binding pass.
// Gauges reflect the last observed report.
func (c *Collector) ObserveReport(r *binding.Report) {
	c.bindings.Set(float64(len(r.Bindings)))
	c.bindingErrors.Reset()
	for kind, n := range r.Kinds() {
		c.bindingErrors.WithLabelValues(string(kind)).Set(float64(n))
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, handlers.ErrHandlerPanic):
		return OutcomePanic
	default:
		return OutcomeError
	}
}
