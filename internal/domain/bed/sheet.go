package bed

import "fmt"

// SlotKey addresses one occupiable unit within a bed. Slot is 0-based and
// must be below the bed's capacity. The explicit key type replaces the
// ad hoc "bedId|slot" string concatenation the slot maps grew out of.
type SlotKey struct {
	BedID string
	Slot  int
}

// NewSlotKey builds a validated key for a slot of the given bed.
// PRE: b came from the same room snapshot the sheet is scoped to
// POST: returns the key, or ErrBadSlot when slot is outside [0, capacity)
func NewSlotKey(b Bed, slot int) (SlotKey, error) {
	if slot < 0 || slot >= b.Capacity {
		return SlotKey{}, fmt.Errorf("%w: %s slot %d (capacity %d)", ErrBadSlot, b.ID, slot, b.Capacity)
	}
	return SlotKey{BedID: b.ID, Slot: slot}, nil
}

// Sheet is the bed-slot occupancy for one stay on one date. Keys map to
// the occupying person id; an absent key or the Available sentinel both
// mean the slot is open. Slot state never carries across dates; each
// date has its own sheet.
type Sheet map[SlotKey]string

// Set records an occupant for a slot. Setting Available clears instead.
func (s Sheet) Set(k SlotKey, personID string) {
	if personID == Available {
		delete(s, k)
		return
	}
	s[k] = personID
}

// Clear opens a slot. Clearing an already-open slot is a no-op.
func (s Sheet) Clear(k SlotKey) {
	delete(s, k)
}

// Occupant returns the person id holding the slot, or Available.
func (s Sheet) Occupant(k SlotKey) string {
	if id, ok := s[k]; ok && id != Available {
		return id
	}
	return Available
}

// OccupiedCount counts the bed's slots holding a person.
// PRE: none
// POST: 0 <= result <= b.Capacity
func (s Sheet) OccupiedCount(b Bed) int {
	count := 0
	for i := 0; i < b.Capacity; i++ {
		if s.Occupant(SlotKey{BedID: b.ID, Slot: i}) != Available {
			count++
		}
	}
	return count
}

// OpenBeds sums the room's unoccupied slots.
// INVARIANT: OpenBeds(room) + occupied slots == room.Capacity()
func (s Sheet) OpenBeds(r Room) int {
	open := 0
	for _, b := range r.Beds {
		open += b.Capacity - s.OccupiedCount(b)
	}
	return open
}

// TotalOpen sums unoccupied slots across all rooms.
func (s Sheet) TotalOpen(rooms []Room) int {
	total := 0
	for _, r := range rooms {
		total += s.OpenBeds(r)
	}
	return total
}

// SlotOf finds the slot a person currently holds, if any. A person holds
// at most one slot at a time; reassignment vacates the old slot.
// PRE: personID != Available
// POST: returns the slot and true, or the zero key and false
func (s Sheet) SlotOf(personID string) (SlotKey, bool) {
	for k, id := range s {
		if id == personID {
			return k, true
		}
	}
	return SlotKey{}, false
}

// AssignedIDs returns the set of person ids holding a slot.
func (s Sheet) AssignedIDs() map[string]bool {
	ids := make(map[string]bool, len(s))
	for _, id := range s {
		if id != Available {
			ids[id] = true
		}
	}
	return ids
}
