package binding

import (
	"go.uber.org/zap"

	"github.com/dshills/evbind/internal/event/handlers"
)

// Option configures a Binder.
type Option func(*binderConfig)

// binderConfig contains configuration for a binding pass.
type binderConfig struct {
	// logger receives phase, binding and error logs.
	logger *zap.Logger

	// strict refuses to install anything when the pass found errors.
	strict bool

	// observer is attached to every installed handler set.
	observer handlers.Observer
}

// defaultBinderConfig returns the default configuration.
func defaultBinderConfig() binderConfig {
	return binderConfig{
		logger: zap.NewNop(),
	}
}

// WithLogger sets the logger used during the binding pass.
func WithLogger(l *zap.Logger) Option {
	return func(c *binderConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithStrict makes a pass that collected any error install nothing.
// The pass then ends in StateRejected and every slot keeps its previous set.
func WithStrict(strict bool) Option {
	return func(c *binderConfig) {
		c.strict = strict
	}
}

// WithObserver attaches o to every handler set the pass installs.
func WithObserver(o handlers.Observer) Option {
	return func(c *binderConfig) {
		c.observer = o
	}
}
