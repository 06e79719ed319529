package binding

import (
	"github.com/samber/lo"
	"github.com/zeebo/errs"

	"github.com/dshills/evbind/internal/event/ident"
)

// Report is the outcome of one binding pass.
type Report struct {
	// ID identifies the pass in logs.
	ID string

	// State is the binder state the pass ended in.
	State State

	// Bindings are the installed bindings in producer discovery order.
	// Empty when the pass was rejected.
	Bindings []Binding

	// Errors are every binding-time error, in detection order.
	Errors []error
}

// OK reports whether the pass found no error.
func (r *Report) OK() bool {
	return len(r.Errors) == 0
}

// Err combines every error of the pass, or returns nil.
func (r *Report) Err() error {
	return errs.Combine(r.Errors...)
}

// Lookup returns the installed binding for id.
func (r *Report) Lookup(id ident.ID) (Binding, bool) {
	return lo.Find(r.Bindings, func(b Binding) bool { return b.ID == id })
}

// Count returns the number of errors of the given kind.
func (r *Report) Count(kind Kind) int {
	return lo.CountBy(r.Errors, func(err error) bool { return KindOf(err) == kind })
}

// Kinds returns the number of errors per kind.
func (r *Report) Kinds() map[Kind]int {
	return lo.CountValuesBy(r.Errors, KindOf)
}
