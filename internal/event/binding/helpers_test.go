package binding

import (
	"errors"

	"github.com/dshills/evbind/internal/event/handlers"
	"github.com/dshills/evbind/internal/event/ident"
)

const (
	idCreated ident.ID = "post.created"
	idEdited  ident.ID = "post.edited"
	idClosed  ident.ID = "post.closed"
	idDeleted ident.ID = "post.deleted"
)

var testSpace = ident.MustSpace(idCreated, idEdited, idClosed, idDeleted)

type testPost struct {
	Title string
}

type editedArgs struct {
	OldTitle string
}

type invocation struct {
	handler string
	sender  string
	args    any
}

// journal records handler invocations in order.
type journal struct {
	calls []invocation
}

func (j *journal) handler(name string) func(string, handlers.Empty) error {
	return func(sender string, args handlers.Empty) error {
		j.calls = append(j.calls, invocation{name, sender, args})
		return nil
	}
}

func (j *journal) failing(name string, err error) func(string, handlers.Empty) error {
	return func(sender string, args handlers.Empty) error {
		j.calls = append(j.calls, invocation{name, sender, args})
		return err
	}
}

func (j *journal) names() []string {
	names := make([]string, len(j.calls))
	for i, c := range j.calls {
		names[i] = c.handler
	}
	return names
}

var errBoom = errors.New("boom")
