package outfit

import (
	"errors"
	"fmt"

	"github.com/erazemk/wardrobe/internal/model"
)

// ErrMissingItem is returned when Place is called without an item.
var ErrMissingItem = errors.New("missing item")

// Assignment maps every zone to the item placed there, or nil when empty.
// All zones are always present as keys.
type Assignment map[Zone]*model.ClothingItem

// Store holds the outfit assignment of a single planner view.
// It is not safe for concurrent use.
type Store struct {
	slots Assignment
}

// NewStore returns a store with every zone empty.
func NewStore() *Store {
	s := &Store{}
	s.Reset()
	return s
}

// Place puts item into zone, replacing whatever was there.
// The store keeps its own copy of the item.
func (s *Store) Place(zone Zone, item *model.ClothingItem) (Assignment, error) {
	if !zone.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidZone, zone)
	}
	if item == nil {
		return nil, ErrMissingItem
	}
	s.slots[zone] = item.Clone()
	return s.Snapshot(), nil
}

// Clear empties zone. Clearing an empty zone is a no-op.
func (s *Store) Clear(zone Zone) (Assignment, error) {
	if !zone.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidZone, zone)
	}
	s.slots[zone] = nil
	return s.Snapshot(), nil
}

// Get returns the item in zone, or nil when the zone is empty.
func (s *Store) Get(zone Zone) (*model.ClothingItem, error) {
	if !zone.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidZone, zone)
	}
	return s.slots[zone].Clone(), nil
}

// Reset empties every zone.
func (s *Store) Reset() Assignment {
	s.slots = make(Assignment, len(Zones))
	for _, z := range Zones {
		s.slots[z] = nil
	}
	return s.Snapshot()
}

// Snapshot returns a copy of the current assignment.
func (s *Store) Snapshot() Assignment {
	out := make(Assignment, len(s.slots))
	for z, item := range s.slots {
		out[z] = item.Clone()
	}
	return out
}

// Occupied returns the number of zones holding an item.
func (a Assignment) Occupied() int {
	n := 0
	for _, item := range a {
		if item != nil {
			n++
		}
	}
	return n
}
