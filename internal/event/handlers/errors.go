package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dshills/evbind/internal/event/ident"
)

// Sentinel errors for firing.
var (
	// ErrHandlerFailure matches every error returned by a failed fire.
	ErrHandlerFailure = errors.New("handler failure")

	// ErrHandlerPanic matches fires aborted by a panicking handler.
	ErrHandlerPanic = errors.New("handler panicked")
)

// HandlerError reports the handler that stopped a fire.
type HandlerError struct {
	// ID is the identifier of the producer that fired.
	ID ident.ID

	// Handler is the name of the failing handler.
	Handler string

	// Index is the handler's position in the set.
	Index int

	// Err is the error returned by the handler, or a *PanicError.
	Err error
}

// Error implements the error interface.
func (e *HandlerError) Error() string {
	where := e.Handler
	if where == "" {
		where = "#" + strconv.Itoa(e.Index)
	}
	if e.ID != "" {
		return "handler " + where + " failed on " + e.ID.String() + ": " + e.Err.Error()
	}
	return "handler " + where + " failed: " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *HandlerError) Unwrap() error {
	return e.Err
}

// Is allows errors.Is to match HandlerError with ErrHandlerFailure.
func (e *HandlerError) Is(target error) bool {
	return target == ErrHandlerFailure
}

// PanicError wraps a panic value as an error.
type PanicError struct {
	// Value is the value passed to panic().
	Value any

	// Stack is the stack trace at the time of the panic.
	Stack []byte
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Is allows errors.Is to match PanicError with ErrHandlerPanic.
func (e *PanicError) Is(target error) bool {
	return target == ErrHandlerPanic
}
