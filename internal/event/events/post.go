package events

import "github.com/dshills/evbind/internal/event/ident"

// Post event identifiers.
const (
	// PostCreated is fired when a new post is asked. Payload: handlers.Empty.
	PostCreated ident.ID = "post.created"

	// PostEdited is fired after a post title changed. Payload: EditedArgs.
	PostEdited ident.ID = "post.edited"

	// PostClosed is fired when a post is closed. Payload: ClosedArgs.
	PostClosed ident.ID = "post.closed"

	// PostDeleted is fired when a post is deleted. Payload: handlers.Empty.
	PostDeleted ident.ID = "post.deleted"
)

// Space is the closed identifier space of the program.
var Space = ident.MustSpace(
	PostCreated,
	PostEdited,
	PostClosed,
	PostDeleted,
)

// EditedArgs is the payload for PostEdited.
type EditedArgs struct {
	// OldTitle is the title before the edit.
	OldTitle string
}

// ClosedArgs is the payload for PostClosed.
type ClosedArgs struct {
	// CloseReason explains why the post was closed.
	CloseReason string
}
