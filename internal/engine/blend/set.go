// Package blend maps animation-layer progress to a procedural blend weight
// (aim offset, IK) using per-behavior membership sets.
package blend

// Set is an immutable membership set of animation state or transition
// identifiers, built once when a behavior is constructed.
type Set map[string]struct{}

// NewSet builds a set from a declarative list.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set. The empty id is never a member.
func (s Set) Has(id string) bool {
	if id == "" {
		return false
	}
	_, ok := s[id]
	return ok
}
