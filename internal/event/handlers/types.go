package handlers

import (
	"time"

	"github.com/dshills/evbind/internal/event/ident"
)

// Func is the uniform shape of every consumer callable.
// Returning an error aborts the remaining handlers of the same fire.
type Func[S, A any] func(sender S, args A) error

// Handler is a named consumer callable.
// The name identifies the handler in errors, logs and metrics.
type Handler[S, A any] struct {
	// Name is the qualified consumer name, e.g. "Program.PostCreated".
	Name string

	// Fn is the callable.
	Fn Func[S, A]
}

// Empty is the argument type of producers whose events carry no payload.
type Empty struct{}

// Observer receives handler completion notifications from a Set.
// Implementations must be cheap; they run inline with dispatch.
type Observer interface {
	// HandlerDone is called after each handler returns or panics.
	HandlerDone(id ident.ID, handler string, elapsed time.Duration, err error)

	// FireDone is called once per Fire after the last handler ran.
	FireDone(id ident.ID, handlers int, elapsed time.Duration, err error)
}

// SetOption configures a Set.
type SetOption func(*setConfig)

type setConfig struct {
	id       ident.ID
	observer Observer
}

// WithIdentifier tags a set with the identifier of the producer it serves.
// The identifier appears in HandlerError and observer callbacks.
func WithIdentifier(id ident.ID) SetOption {
	return func(c *setConfig) {
		c.id = id
	}
}

// WithObserver attaches an observer to a set.
func WithObserver(o Observer) SetOption {
	return func(c *setConfig) {
		c.observer = o
	}
}
