// Package ident provides symbolic event identifiers and the closed identifier
// space they are drawn from.
//
// # Identifier Format
//
// Identifiers use dot notation. The first segment is the owning entity type,
// which scopes the identifier to that entity:
//
//	post.created
//	post.edited
//	post.comment.added
//
// Equality is by symbol; two identifiers are the same event if and only if
// their strings are equal.
//
// # Spaces
//
// A Space is the master list of every identifier a program may use. Binding
// scopes are created against a Space and reject declarations that name an
// identifier outside it:
//
//	var Space = ident.MustSpace(
//	    ident.New("post", "created"),
//	    ident.New("post", "deleted"),
//	)
//
//	Space.Contains("post.created") // true
//	Space.Owned("post")            // [post.created post.deleted]
package ident
