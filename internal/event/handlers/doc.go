// Package handlers provides the ordered handler sets that producers fire.
//
// A Set is an immutable list of named callables sharing one (sender, args)
// shape. A Slot holds the set installed for one producer; domain code raises
// the event by firing the slot:
//
//	var Deleted handlers.Slot[*Post, handlers.Empty]
//
//	// after binding
//	if err := handlers.FireEmpty(&Deleted, post); err != nil {
//	    return err
//	}
//
// # Dispatch Semantics
//
// Firing is synchronous. Handlers run in installation order, one at a time,
// and every handler receives the same sender and args. The first handler that
// returns an error or panics aborts the fire: the remaining handlers do not
// run and the caller receives a *HandlerError naming the failing handler.
// Panics are reported as a *PanicError inside the HandlerError.
//
// Firing a slot that was never installed, or that holds an empty set, is a
// no-op and never an error.
//
// # Observers
//
// A Set built WithObserver reports every handler completion and every fire to
// the observer, which is how the metrics package collects dispatch statistics.
package handlers
