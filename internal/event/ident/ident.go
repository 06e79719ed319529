package ident

import (
	"strings"

	"github.com/zeebo/errs"
)

// Error is the error class for malformed identifiers and spaces.
var Error = errs.Class("ident")

// Separator splits the owner namespace from the event name.
const Separator = "."

// ID is a symbolic event identifier in dot notation.
// The first segment names the owning entity type, the rest names the event.
// Examples: "post.created", "post.comment.added"
type ID string

// New joins an owner and an event name into an identifier.
func New(owner string, name ...string) ID {
	if len(name) == 0 {
		return ID(owner)
	}
	return ID(owner + Separator + strings.Join(name, Separator))
}

// String returns the identifier as a string.
func (id ID) String() string {
	return string(id)
}

// Segments returns the identifier split by the separator.
func (id ID) Segments() []string {
	if id == "" {
		return nil
	}
	return strings.Split(string(id), Separator)
}

// Owner returns the owning entity namespace.
//
// Example: "post.created" -> "post"
func (id ID) Owner() string {
	s := string(id)
	idx := strings.Index(s, Separator)
	if idx < 0 {
		return ""
	}
	return s[:idx]
}

// Name returns the identifier without its owner namespace.
//
// Example: "post.comment.added" -> "comment.added"
func (id ID) Name() string {
	s := string(id)
	idx := strings.Index(s, Separator)
	if idx < 0 {
		return s
	}
	return s[idx+1:]
}

// Scoped returns true if the identifier belongs to an owner namespace.
func (id ID) Scoped() bool {
	return id.Owner() != ""
}

// Validate reports why an identifier is malformed, or nil.
// A valid identifier:
//   - Is not empty
//   - Does not start or end with a separator
//   - Does not contain empty segments
//   - Contains no whitespace
func (id ID) Validate() error {
	s := string(id)
	if s == "" {
		return Error.New("empty identifier")
	}
	if strings.ContainsAny(s, " \t\r\n") {
		return Error.New("identifier %q contains whitespace", s)
	}
	for _, seg := range id.Segments() {
		if seg == "" {
			return Error.New("identifier %q has an empty segment", s)
		}
	}
	return nil
}

// IsValid returns true if Validate finds nothing wrong.
func (id ID) IsValid() bool {
	return id.Validate() == nil
}
