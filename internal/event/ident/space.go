package ident

import (
	"sort"

	"github.com/zeebo/errs"
)

// Space is a closed set of event identifiers.
// It is built once and never changes afterwards, so it is safe to share.
type Space struct {
	ids    []ID
	index  map[ID]int
	owners map[string][]ID
}

// NewSpace builds a space from a fixed list of identifiers.
// Declaration order is kept; malformed or repeated identifiers are rejected.
func NewSpace(ids ...ID) (*Space, error) {
	s := &Space{
		ids:    make([]ID, 0, len(ids)),
		index:  make(map[ID]int, len(ids)),
		owners: make(map[string][]ID),
	}

	var group errs.Group
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			group.Add(err)
			continue
		}
		if _, dup := s.index[id]; dup {
			group.Add(Error.New("identifier %q declared twice", id))
			continue
		}
		s.index[id] = len(s.ids)
		s.ids = append(s.ids, id)
		s.owners[id.Owner()] = append(s.owners[id.Owner()], id)
	}

	if err := group.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

// MustSpace is like NewSpace but panics on error.
// It is meant for package-level identifier lists.
func MustSpace(ids ...ID) *Space {
	s, err := NewSpace(ids...)
	if err != nil {
		panic(err)
	}
	return s
}

// Contains reports whether id is a member of the space.
// A nil space contains nothing.
func (s *Space) Contains(id ID) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[id]
	return ok
}

// Len returns the number of identifiers in the space.
func (s *Space) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// IDs returns every identifier in declaration order.
// Returns a copy to prevent modification.
func (s *Space) IDs() []ID {
	if s == nil || len(s.ids) == 0 {
		return nil
	}
	result := make([]ID, len(s.ids))
	copy(result, s.ids)
	return result
}

// Owned returns the identifiers scoped to one owner, in declaration order.
func (s *Space) Owned(owner string) []ID {
	if s == nil {
		return nil
	}
	ids := s.owners[owner]
	if len(ids) == 0 {
		return nil
	}
	result := make([]ID, len(ids))
	copy(result, ids)
	return result
}

// Owners returns the owner namespaces present in the space, sorted.
func (s *Space) Owners() []string {
	if s == nil || len(s.owners) == 0 {
		return nil
	}
	owners := make([]string, 0, len(s.owners))
	for o := range s.owners {
		owners = append(owners, o)
	}
	sort.Strings(owners)
	return owners
}
