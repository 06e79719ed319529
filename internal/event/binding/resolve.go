package binding

import (
	"strings"

	"github.com/samber/lo"

	"github.com/dshills/evbind/internal/event/ident"
)

// Binding associates one identifier and its producer with the consumers that
// handle it, in invocation order.
type Binding struct {
	// ID is the bound identifier.
	ID ident.ID

	// Producer is the declaration whose slot receives the handler set.
	Producer Producer

	// Consumers are the matched consumers in discovery order.
	Consumers []Consumer
}

// ConsumerNames returns the qualified consumer names in invocation order.
func (b Binding) ConsumerNames() []string {
	return lo.Map(b.Consumers, func(c Consumer, _ int) string { return c.Qualified() })
}

// Resolve matches consumers to producers by identifier.
//
// It returns one Binding per identifier that has exactly one producer, in
// producer discovery order, including producers nobody consumes. Consumers
// keep their discovery order within a binding. Every problem is collected:
// identifiers with several producers, consumer identifiers without a
// producer, and consumers whose signature cannot accept the producer's
// arguments.
func Resolve(scan ScanResult) ([]Binding, []error) {
	var found []error

	index := make(map[ident.ID][]int, len(scan.Producers))
	for i, p := range scan.Producers {
		index[p.ID] = append(index[p.ID], i)
	}

	ambiguous := make(map[ident.ID]bool)
	for _, p := range scan.Producers {
		ps := index[p.ID]
		if len(ps) < 2 || ambiguous[p.ID] {
			continue
		}
		ambiguous[p.ID] = true
		names := lo.Map(ps, func(i int, _ int) string { return scan.Producers[i].Qualified() })
		found = append(found, ErrAmbiguousProducer.New("%s is produced by %s", p.ID, strings.Join(names, ", ")))
	}

	groups := make([][]Consumer, len(scan.Producers))
	for _, c := range scan.Consumers {
		for _, id := range c.IDs {
			ps := index[id]
			switch {
			case len(ps) == 0:
				found = append(found, ErrUnresolvedIdentifier.New("consumer %s handles %s but no producer declares it",
					c.Qualified(), id))
				continue
			case ambiguous[id]:
				continue
			}

			p := scan.Producers[ps[0]]
			if !compatible(p, c) {
				found = append(found, ErrSignatureMismatch.New("consumer %s %s cannot handle %s from %s %s",
					c.Qualified(), c.Signature(), id, p.Qualified(), p.Signature()))
				continue
			}
			groups[ps[0]] = append(groups[ps[0]], c)
		}
	}

	bindings := make([]Binding, 0, len(scan.Producers))
	for i, p := range scan.Producers {
		if ambiguous[p.ID] {
			continue
		}
		bindings = append(bindings, Binding{
			ID:        p.ID,
			Producer:  p,
			Consumers: groups[i],
		})
	}
	return bindings, found
}

// compatible reports whether c can be called with p's sender and args.
func compatible(p Producer, c Consumer) bool {
	if p.Sender == nil || p.Args == nil || c.Sender == nil || c.Args == nil {
		return false
	}
	return p.Sender.AssignableTo(c.Sender) && p.Args.AssignableTo(c.Args)
}
