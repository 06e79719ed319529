package binding

import (
	"errors"

	"github.com/zeebo/errs"

	"github.com/dshills/evbind/internal/event/handlers"
)

// Error classes for binding-time failures. Every error collected in a
// Report belongs to exactly one of them.
var (
	// ErrAmbiguousProducer: more than one producer declared for an identifier.
	ErrAmbiguousProducer = errs.Class("ambiguous producer")

	// ErrUnresolvedIdentifier: a consumer names an identifier nobody produces.
	ErrUnresolvedIdentifier = errs.Class("unresolved identifier")

	// ErrSignatureMismatch: a consumer cannot accept its producer's arguments.
	ErrSignatureMismatch = errs.Class("signature mismatch")

	// ErrDuplicateConsumerTag: a callable was tagged as a consumer twice.
	ErrDuplicateConsumerTag = errs.Class("duplicate consumer tag")

	// ErrDuplicateProducerTag: a slot was tagged as a producer twice.
	ErrDuplicateProducerTag = errs.Class("duplicate producer tag")

	// ErrInvalidDeclaration: a declaration is malformed (nil slot, empty tag set...).
	ErrInvalidDeclaration = errs.Class("invalid declaration")

	// ErrUnknownIdentifier: an identifier is not part of the scope's space.
	ErrUnknownIdentifier = errs.Class("unknown identifier")
)

// Kind names an error category.
type Kind string

// Error kinds.
const (
	KindAmbiguousProducer    Kind = "AmbiguousProducer"
	KindUnresolvedIdentifier Kind = "UnresolvedIdentifier"
	KindSignatureMismatch    Kind = "SignatureMismatch"
	KindDuplicateConsumerTag Kind = "DuplicateConsumerTag"
	KindDuplicateProducerTag Kind = "DuplicateProducerTag"
	KindInvalidDeclaration   Kind = "InvalidDeclaration"
	KindUnknownIdentifier    Kind = "UnknownIdentifier"
	KindHandlerFailure       Kind = "HandlerFailure"
	KindUnknown              Kind = "Unknown"
)

var classes = []struct {
	class *errs.Class
	kind  Kind
}{
	{&ErrAmbiguousProducer, KindAmbiguousProducer},
	{&ErrUnresolvedIdentifier, KindUnresolvedIdentifier},
	{&ErrSignatureMismatch, KindSignatureMismatch},
	{&ErrDuplicateConsumerTag, KindDuplicateConsumerTag},
	{&ErrDuplicateProducerTag, KindDuplicateProducerTag},
	{&ErrInvalidDeclaration, KindInvalidDeclaration},
	{&ErrUnknownIdentifier, KindUnknownIdentifier},
}

// KindOf classifies an error produced by a binding pass or by firing.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	// A handler may return any error, including one of the classes below.
	if errors.Is(err, handlers.ErrHandlerFailure) {
		return KindHandlerFailure
	}
	for _, c := range classes {
		if c.class.Has(err) {
			return c.kind
		}
	}
	return KindUnknown
}
