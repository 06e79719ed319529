// Package binding wires event consumers into event producers by identifier.
//
// Producers and consumers never reference each other. Both are declared into
// a Scope against shared identifiers; a binding pass then discovers every
// declaration, matches consumers to producers and installs one ordered
// handler set into each producer's slot.
//
// # Declaring
//
//	scope := binding.NewScope(events.Space)
//
//	// producer side
//	post := scope.Container("Post")
//	binding.Event(post, "Created", events.PostCreated, &svc.Events.Created)
//
//	// consumer side
//	program := scope.Container("Program")
//	binding.Handles(program, "PostCreated", onCreated, events.PostCreated)
//	binding.Handles(program, "Audit", onAny, events.PostCreated, events.PostDeleted)
//
// # Binding
//
//	report := binding.BindAll(scope, binding.WithLogger(logger))
//	if err := report.Err(); err != nil {
//	    return err // the host decides whether errors are fatal
//	}
//
// The pass runs Scanner, Resolver and Installer in that order:
//
//	Uninitialized → Scanning → Resolving → Installed
//
// A strict binder (WithStrict) ends in Rejected instead of installing anything
// when errors were found.
//
// # Ordering
//
// Containers are scanned in the order they were first opened and
// declarations in the order they were made. A producer's handlers run in the
// order their consumers were discovered; this order is stable across runs.
//
// # Errors
//
// Binding errors are collected over the whole pass and returned together in
// the Report rather than stopping at the first one. Use KindOf to classify
// them:
//
//   - AmbiguousProducer: two producers declared for one identifier; neither is bound
//   - UnresolvedIdentifier: a consumer names an identifier without a producer
//   - SignatureMismatch: a consumer cannot accept the producer's (sender, args)
//   - DuplicateConsumerTag: one callable declared as consumer twice
//   - DuplicateProducerTag: one slot declared as producer twice
//   - InvalidDeclaration: empty names, nil slots or callables, bad tag sets
//   - UnknownIdentifier: an identifier outside the scope's space
//
// Handler failures during firing are not binding errors; they surface from
// Slot.Fire as handlers.HandlerError.
//
// # Signatures
//
// A consumer is compatible with a producer when the producer's sender type is
// assignable to the consumer's sender parameter and likewise for args. A
// consumer taking (any, any) can therefore handle every producer.
package binding
