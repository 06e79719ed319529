package cli

import (
	"io"

	"go.uber.org/zap"

	"github.com/dshills/evbind/internal/audit"
	"github.com/dshills/evbind/internal/event/binding"
	"github.com/dshills/evbind/internal/event/events"
	"github.com/dshills/evbind/internal/post"
)

// program is the demo application: the post service as producer and the
// console as consumer, bound over the events space.
type program struct {
	posts   *post.Service
	console *audit.Console
	scope   *binding.Scope
	binder  *binding.Binder
}

func newProgram(out io.Writer, log *zap.Logger, opts ...binding.Option) *program {
	p := &program{
		posts:   post.NewService(post.WithLogger(log.Named("post"))),
		console: audit.NewConsole(out, log),
	}

	p.scope = binding.NewScope(events.Space)
	p.posts.Declare(p.scope)
	p.console.Declare(p.scope)

	p.binder = binding.NewBinder(p.scope, append([]binding.Option{binding.WithLogger(log)}, opts...)...)
	return p
}

// bind runs a binding pass.
func (p *program) bind() *binding.Report {
	return p.binder.BindAll()
}

// demoTitle is the title the demo edits the post to.
const demoTitle = "How do I add an event handler via Reflection?"

// steps returns the post lifecycle of the demo in order.
func (p *program) steps() []step {
	var current *post.Post
	return []step{
		{"ask", func() (err error) {
			current, err = p.posts.Ask("")
			return err
		}},
		{"edit", func() error { return p.posts.Edit(current, demoTitle) }},
		{"close", func() error { return p.posts.Close(current, "Off-topic") }},
		{"delete", func() error { return p.posts.Delete(current) }},
	}
}

type step struct {
	name string
	run  func() error
}
