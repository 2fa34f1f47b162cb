package grants

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// Set deduplicates grants by identity key, keeping insertion order.
//
// SHOW GRANTS ON and SHOW GRANTS TO surface the same ROLE facts from two
// angles. Unioning sources through a Set keeps exactly one representative,
// the first seen.
type Set struct {
	keys   mapset.Set[string]
	grants []Grant
}

func NewSet() *Set {
	return &Set{keys: mapset.NewThreadUnsafeSet[string]()}
}

// Add returns false when an identical fact was already seen.
func (s *Set) Add(g Grant) bool {
	if !s.keys.Add(g.Key()) {
		return false
	}
	s.grants = append(s.grants, g)
	return true
}

func (s *Set) Append(gs ...Grant) {
	for _, g := range gs {
		s.Add(g)
	}
}

func (s *Set) Contains(g Grant) bool {
	return s.keys.Contains(g.Key())
}

func (s *Set) Len() int {
	return len(s.grants)
}

// Slice returns grants in first-seen order. The returned slice is shared,
// not a copy.
func (s *Set) Slice() []Grant {
	return s.grants
}
