package binding

import (
	"strings"

	"github.com/samber/lo"

	"github.com/dshills/evbind/internal/event/ident"
)

// ScanResult holds the declarations discovered in a scope.
type ScanResult struct {
	// Producers in discovery order.
	Producers []Producer

	// Consumers in discovery order.
	Consumers []Consumer

	// Errors are the declaration errors, in discovery order.
	Errors []error
}

// Scan collects the valid producer and consumer declarations of the scope.
//
// Containers are visited in first-use order and declarations in declaration
// order, so the result is the same on every run. Scan does not modify the
// scope and installs nothing.
func (s *Scope) Scan() ScanResult {
	var result ScanResult
	if s == nil {
		return result
	}

	var producers []Producer
	var consumers []Consumer
	for _, c := range s.containers {
		for _, d := range c.decls {
			switch {
			case d.err != nil:
				result.Errors = append(result.Errors, d.err)
			case d.producer != nil:
				producers = append(producers, *d.producer)
			case d.consumer != nil:
				consumers = append(consumers, *d.consumer)
			}
		}
	}

	result.Producers = s.scanProducers(producers, &result.Errors)
	result.Consumers = s.scanConsumers(consumers, &result.Errors)
	return result
}

// scanProducers drops producers with a bad identifier and slots tagged more
// than once.
func (s *Scope) scanProducers(producers []Producer, found *[]error) []Producer {
	tags := make(map[any][]Producer, len(producers))
	for _, p := range producers {
		tags[p.slot] = append(tags[p.slot], p)
	}

	reported := make(map[any]bool)
	result := make([]Producer, 0, len(producers))
	for _, p := range producers {
		if dups := tags[p.slot]; len(dups) > 1 {
			if !reported[p.slot] {
				reported[p.slot] = true
				*found = append(*found, ErrDuplicateProducerTag.New("slot %s tagged %d times (%s)",
					p.Qualified(), len(dups), strings.Join(lo.Map(dups, func(d Producer, _ int) string {
						return d.Qualified() + "=" + d.ID.String()
					}), ", ")))
			}
			continue
		}
		if err := s.checkID("producer "+p.Qualified(), p.ID); err != nil {
			*found = append(*found, err)
			continue
		}
		result = append(result, p)
	}
	return result
}

// scanConsumers drops callables tagged more than once and cleans up the tag
// set of the rest. A consumer left without any usable identifier is dropped.
func (s *Scope) scanConsumers(consumers []Consumer, found *[]error) []Consumer {
	counts := lo.CountValuesBy(consumers, Consumer.key)

	reported := make(map[consumerKey]bool)
	result := make([]Consumer, 0, len(consumers))
	for _, c := range consumers {
		name := c.Qualified()
		if n := counts[c.key()]; n > 1 {
			if !reported[c.key()] {
				reported[c.key()] = true
				*found = append(*found, ErrDuplicateConsumerTag.New("callable %s tagged %d times", name, n))
			}
			continue
		}

		if len(c.IDs) == 0 {
			*found = append(*found, ErrInvalidDeclaration.New("consumer %s has an empty tag set", name))
			continue
		}
		if dups := lo.FindDuplicates(c.IDs); len(dups) > 0 {
			*found = append(*found, ErrInvalidDeclaration.New("consumer %s lists %s more than once",
				name, strings.Join(lo.Map(dups, func(id ident.ID, _ int) string { return id.String() }), ", ")))
			continue
		}

		ids := make([]ident.ID, 0, len(c.IDs))
		for _, id := range c.IDs {
			if err := s.checkID("consumer "+name, id); err != nil {
				*found = append(*found, err)
				continue
			}
			ids = append(ids, id)
		}
		if len(ids) == 0 {
			continue
		}
		c.IDs = ids
		result = append(result, c)
	}
	return result
}

// checkID validates an identifier used by decl against the scope's space.
func (s *Scope) checkID(decl string, id ident.ID) error {
	if err := id.Validate(); err != nil {
		return ErrInvalidDeclaration.New("%s: %v", decl, err)
	}
	if s.space != nil && !s.space.Contains(id) {
		return ErrUnknownIdentifier.New("%s: %q is not in the identifier space", decl, id)
	}
	return nil
}
