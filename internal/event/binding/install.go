package binding

import (
	"github.com/dshills/evbind/internal/event/handlers"
)

// pending is a binding whose handler set is built but not yet installed.
type pending struct {
	binding Binding
	commit  func()
	release func()
}

// prepare builds the handler set of every binding without touching any slot.
// A binding whose set cannot be built is reported and skipped.
func prepare(bindings []Binding, opts []handlers.SetOption) ([]pending, []error) {
	var found []error
	result := make([]pending, 0, len(bindings))
	for _, b := range bindings {
		setOpts := append([]handlers.SetOption{handlers.WithIdentifier(b.ID)}, opts...)
		commit, release, err := b.Producer.build(b.Consumers, setOpts)
		if err != nil {
			found = append(found, err)
			continue
		}
		result = append(result, pending{binding: b, commit: commit, release: release})
	}
	return result, found
}

// install writes every prepared handler set into its producer slot.
// An existing set is overwritten.
func install(ps []pending) {
	for _, p := range ps {
		p.commit()
	}
}
