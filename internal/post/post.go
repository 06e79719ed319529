// Package post is the post lifecycle domain. A Service owns the producer
// slots for post events and fires them as posts are asked, edited, closed
// and deleted.
package post

import (
	"time"

	"github.com/zeebo/errs"
	"go.uber.org/zap"

	"github.com/dshills/evbind/internal/event/binding"
	"github.com/dshills/evbind/internal/event/events"
	"github.com/dshills/evbind/internal/event/handlers"
)

// Error is the class of errors returned by the post service.
var Error = errs.Class("post")

// Container is the binding container the post producers are declared in.
const Container = "Post"

// DefaultTitle is used when a post is asked without a title.
const DefaultTitle = "What do I need to do in order to be a programmer out at sea?"

// Post is a question on the board.
type Post struct {
	Title        string
	ClosedDate   time.Time
	DeletionDate time.Time
}

// Closed reports whether the post has been closed.
func (p *Post) Closed() bool {
	return !p.ClosedDate.IsZero()
}

// Deleted reports whether the post has been deleted.
func (p *Post) Deleted() bool {
	return !p.DeletionDate.IsZero()
}

// Events holds the producer slots for post events. The slots are empty
// until a binding pass installs handler sets into them.
type Events struct {
	Created handlers.Slot[*Post, handlers.Empty]
	Edited  handlers.Slot[*Post, events.EditedArgs]
	Closed  handlers.Slot[*Post, events.ClosedArgs]
	Deleted handlers.Slot[*Post, handlers.Empty]
}

// Declare registers every slot as a producer in scope.
func (e *Events) Declare(scope *binding.Scope) {
	c := scope.Container(Container)
	binding.Event(c, "Created", events.PostCreated, &e.Created)
	binding.Event(c, "Edited", events.PostEdited, &e.Edited)
	binding.Event(c, "Closed", events.PostClosed, &e.Closed)
	binding.Event(c, "Deleted", events.PostDeleted, &e.Deleted)
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock sets the time source used for close and deletion dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// Service mutates posts and fires the matching events.
// Transitions are not guarded: closing a closed post moves its close date
// and fires again, and a deleted post can still be edited or closed.
// Handlers run synchronously on the calling goroutine; a failing handler
// stops the fire and its error is returned to the caller after the
// mutation has been applied.
type Service struct {
	Events Events

	log *zap.Logger
	now func() time.Time
}

// NewService creates a post service with empty event slots.
func NewService(opts ...Option) *Service {
	s := &Service{
		log: zap.NewNop(),
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Declare registers the service's event slots in scope.
func (s *Service) Declare(scope *binding.Scope) {
	s.Events.Declare(scope)
}

// Ask creates a post and fires PostCreated.
// An empty title is replaced by DefaultTitle.
func (s *Service) Ask(title string) (*Post, error) {
	if title == "" {
		title = DefaultTitle
	}
	p := &Post{Title: title}
	s.log.Debug("post asked", zap.String("title", p.Title))

	return p, handlers.FireEmpty(&s.Events.Created, p)
}

// Edit replaces the post title and fires PostEdited with the old title.
func (s *Service) Edit(p *Post, title string) error {
	if err := check(p); err != nil {
		return err
	}
	old := p.Title
	p.Title = title
	s.log.Debug("post edited", zap.String("old", old), zap.String("title", title))

	return s.Events.Edited.Fire(p, events.EditedArgs{OldTitle: old})
}

// Close marks the post closed and fires PostClosed.
func (s *Service) Close(p *Post, reason string) error {
	if err := check(p); err != nil {
		return err
	}
	p.ClosedDate = s.now()
	s.log.Debug("post closed", zap.String("title", p.Title), zap.String("reason", reason))

	return s.Events.Closed.Fire(p, events.ClosedArgs{CloseReason: reason})
}

// Delete marks the post deleted and fires PostDeleted.
func (s *Service) Delete(p *Post) error {
	if err := check(p); err != nil {
		return err
	}
	p.DeletionDate = s.now()
	s.log.Debug("post deleted", zap.String("title", p.Title), zap.Time("at", p.DeletionDate))

	return handlers.FireEmpty(&s.Events.Deleted, p)
}

func check(p *Post) error {
	if p == nil {
		return Error.New("nil post")
	}
	return nil
}
