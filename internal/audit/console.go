// Package audit contains the program's console consumers of post events.
package audit

import (
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/evbind/internal/event/binding"
	"github.com/dshills/evbind/internal/event/events"
	"github.com/dshills/evbind/internal/event/handlers"
	"github.com/dshills/evbind/internal/post"
)

// Container is the binding container the console handlers are declared in.
const Container = "Program"

// TimeFormat is the layout used for printed dates.
const TimeFormat = time.RFC3339

// Console prints one line per post event to a writer.
type Console struct {
	w   io.Writer
	log *zap.Logger
}

// NewConsole creates a console writing to w. A nil log disables logging.
func NewConsole(w io.Writer, log *zap.Logger) *Console {
	if log == nil {
		log = zap.NewNop()
	}
	return &Console{w: w, log: log.Named("audit")}
}

// Declare registers the console handlers in scope.
// PostDeleted and AnotherPostDeleted both handle post.deleted and run in
// that order.
func (c *Console) Declare(scope *binding.Scope) {
	prog := scope.Container(Container)
	binding.Handles(prog, "PostCreated", c.PostCreated, events.PostCreated)
	binding.Handles(prog, "PostEdited", c.PostEdited, events.PostEdited)
	binding.Handles(prog, "PostClosed", c.PostClosed, events.PostClosed)
	binding.Handles(prog, "PostDeleted", c.PostDeleted, events.PostDeleted)
	binding.Handles(prog, "AnotherPostDeleted", c.AnotherPostDeleted, events.PostDeleted)
}

// PostCreated handles post.created.
func (c *Console) PostCreated(p *post.Post, _ handlers.Empty) error {
	c.log.Info("post created", zap.String("title", p.Title))
	return c.printf("New post created with Title = %s\n", p.Title)
}

// PostEdited handles post.edited.
func (c *Console) PostEdited(p *post.Post, args events.EditedArgs) error {
	c.log.Info("post edited", zap.String("old", args.OldTitle), zap.String("title", p.Title))
	return c.printf("Post edit; title changed from\n\t%s\nto\n\t%s\n", args.OldTitle, p.Title)
}

// PostClosed handles post.closed.
func (c *Console) PostClosed(p *post.Post, args events.ClosedArgs) error {
	c.log.Info("post closed", zap.String("reason", args.CloseReason))
	return c.printf("Post closed as %s\n", args.CloseReason)
}

// PostDeleted handles post.deleted.
func (c *Console) PostDeleted(p *post.Post, _ handlers.Empty) error {
	c.log.Info("post deleted", zap.Time("at", p.DeletionDate))
	return c.printf("Post deleted at %s\n", p.DeletionDate.Format(TimeFormat))
}

// AnotherPostDeleted is a second handler for post.deleted.
func (c *Console) AnotherPostDeleted(p *post.Post, _ handlers.Empty) error {
	return c.printf("Same Post deleted at %s\n", p.DeletionDate.Format(TimeFormat))
}

func (c *Console) printf(format string, args ...any) error {
	_, err := fmt.Fprintf(c.w, format, args...)
	return err
}
