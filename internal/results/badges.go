package results

import (
	"slices"
	"time"

	"github.com/spacey-learn/spacey/internal/catalog"
)

// BadgeSet is an append-only set of earned badges keyed by name, in the
// order they were earned.
type BadgeSet struct {
	badges []catalog.Badge
	index  map[string]int
}

// NewBadgeSet builds a set from previously persisted badges. Later
// duplicates of a name are dropped.
func NewBadgeSet(earned []catalog.Badge) *BadgeSet {
	s := &BadgeSet{index: make(map[string]int, len(earned))}
	for _, b := range earned {
		if _, ok := s.index[b.Name]; ok {
			continue
		}
		s.index[b.Name] = len(s.badges)
		s.badges = append(s.badges, b)
	}
	return s
}

// Has reports whether a badge with name has been earned.
func (s *BadgeSet) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Get returns the earned badge with name.
func (s *BadgeSet) Get(name string) (catalog.Badge, bool) {
	i, ok := s.index[name]
	if !ok {
		return catalog.Badge{}, false
	}
	return s.badges[i], true
}

// Add stamps b with at and adds it, unless a badge with the same name is
// already held, in which case the held badge is returned unchanged and
// added is false.
func (s *BadgeSet) Add(b catalog.Badge, at time.Time) (badge catalog.Badge, added bool) {
	if held, ok := s.Get(b.Name); ok {
		return held, false
	}
	stamp := at
	b.EarnedDate = &stamp
	s.index[b.Name] = len(s.badges)
	s.badges = append(s.badges, b)
	return b, true
}

// Len returns the number of earned badges.
func (s *BadgeSet) Len() int {
	return len(s.badges)
}

// List returns the earned badges in earn order.
func (s *BadgeSet) List() []catalog.Badge {
	return slices.Clone(s.badges)
}
