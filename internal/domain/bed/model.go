package bed

import (
	"errors"
	"fmt"
)

// BedType identifies what kind of sleeping spot a bed is.
type BedType string

// Bed type constants.
const (
	TypeQueen        BedType = "queen"
	TypeSingle       BedType = "single"
	TypeDouble       BedType = "double"
	TypeBunkSingle   BedType = "bunk-single"
	TypeBunkDouble   BedType = "bunk-double"
	TypeMattress     BedType = "mattress"
	TypeTent         BedType = "tent"
	TypePersonalTent BedType = "personal-tent" // dynamic yard space
)

// Available is the sentinel occupant for an open slot. A persisted
// assignment row exists only while a slot is occupied; absence means
// available.
const Available = "available"

// YardRoom is the one room whose bed list is caller-controlled rather
// than fixed.
const YardRoom = "Yard"

// Domain errors.
var (
	ErrBedNotFound = errors.New("bed not found in catalog")
	ErrBadSlot     = errors.New("slot index out of range for bed capacity")
)

// Bed is one physical sleeping spot. Capacity is the number of people it
// holds; capacity > 1 beds expose multiple slots.
type Bed struct {
	ID          string
	Description string
	Type        BedType
	Room        string
	Capacity    int // >= 1
}

// Room groups beds under a named part of the cottage.
type Room struct {
	Name        string
	Description string
	Beds        []Bed
}

// Capacity sums the bed capacities in the room.
func (r Room) Capacity() int {
	total := 0
	for _, b := range r.Beds {
		total += b.Capacity
	}
	return total
}

// catalog is the fixed cottage layout. The Yard room's beds are generated
// per call in EffectiveRooms; everything else never changes.
var catalog = []Room{
	{
		Name:        "Kathy & Wayne's Room",
		Description: "Queen sized bed",
		Beds: []Bed{
			{ID: "kw-queen", Description: "Queen sized bed", Type: TypeQueen, Room: "Kathy & Wayne's Room", Capacity: 2},
		},
	},
	{
		Name:        "Bunk Room",
		Description: "2 bunk beds: top bunks are singles, bottom bunks are doubles",
		Beds: []Bed{
			{ID: "bunk-top-1", Description: "Top bunk (single)", Type: TypeBunkSingle, Room: "Bunk Room", Capacity: 1},
			{ID: "bunk-bottom-1", Description: "Bottom bunk (double)", Type: TypeBunkDouble, Room: "Bunk Room", Capacity: 2},
			{ID: "bunk-top-2", Description: "Top bunk (single)", Type: TypeBunkSingle, Room: "Bunk Room", Capacity: 1},
			{ID: "bunk-bottom-2", Description: "Bottom bunk (double)", Type: TypeBunkDouble, Room: "Bunk Room", Capacity: 2},
		},
	},
	{
		Name:        "Porch",
		Description: "Queen sized bed",
		Beds: []Bed{
			{ID: "porch-queen", Description: "Queen sized bed", Type: TypeQueen, Room: "Porch", Capacity: 2},
		},
	},
	{
		Name:        "Loft",
		Description: "Five single-bed mattresses",
		Beds: []Bed{
			{ID: "loft-mattress-1", Description: "Single mattress", Type: TypeMattress, Room: "Loft", Capacity: 1},
			{ID: "loft-mattress-2", Description: "Single mattress", Type: TypeMattress, Room: "Loft", Capacity: 1},
			{ID: "loft-mattress-3", Description: "Single mattress", Type: TypeMattress, Room: "Loft", Capacity: 1},
			{ID: "loft-mattress-4", Description: "Single mattress", Type: TypeMattress, Room: "Loft", Capacity: 1},
			{ID: "loft-mattress-5", Description: "Single mattress", Type: TypeMattress, Room: "Loft", Capacity: 1},
		},
	},
	{
		Name:        "Main Room",
		Description: "Pull-out and couch",
		Beds: []Bed{
			{ID: "main-pullout", Description: "Pull-out", Type: TypeSingle, Room: "Main Room", Capacity: 1},
			{ID: "main-couch", Description: "Couch", Type: TypeSingle, Room: "Main Room", Capacity: 1},
		},
	},
	{
		Name:        "Tent Stand",
		Description: "Capable of holding a four person tent",
		Beds: []Bed{
			{ID: "tent-stand", Description: "Tent stand (bring your own tent, up to 4 people)", Type: TypeTent, Room: "Tent Stand", Capacity: 4},
		},
	},
	{
		Name:        YardRoom,
		Description: "Personal tent and camper spaces",
	},
}

// EffectiveRooms returns the room catalog with the Yard room's bed list
// replaced by yardSpaces freshly generated one-person spaces with ids
// yard-space-1..N. Pure function of the count; the shared catalog is never
// mutated and each call returns an independent snapshot.
// PRE: none
// POST: result is a deep copy; Yard holds max(yardSpaces, 0) beds
func EffectiveRooms(yardSpaces int) []Room {
	rooms := make([]Room, len(catalog))
	for i, r := range catalog {
		rooms[i] = r
		rooms[i].Beds = append([]Bed(nil), r.Beds...)
		if r.Name == YardRoom {
			rooms[i].Beds = yardBeds(yardSpaces)
		}
	}
	return rooms
}

func yardBeds(count int) []Bed {
	var beds []Bed
	for i := 1; i <= count; i++ {
		beds = append(beds, Bed{
			ID:          fmt.Sprintf("yard-space-%d", i),
			Description: fmt.Sprintf("Personal space %d (tent/camper)", i),
			Type:        TypePersonalTent,
			Room:        YardRoom,
			Capacity:    1,
		})
	}
	return beds
}

// TotalCapacity sums bed capacity across all rooms.
func TotalCapacity(rooms []Room) int {
	total := 0
	for _, r := range rooms {
		total += r.Capacity()
	}
	return total
}

// Find locates a bed by id within a room snapshot.
// PRE: id is non-empty
// POST: returns the bed and its room, or ErrBedNotFound
func Find(rooms []Room, id string) (Bed, Room, error) {
	for _, r := range rooms {
		for _, b := range r.Beds {
			if b.ID == id {
				return b, r, nil
			}
		}
	}
	return Bed{}, Room{}, fmt.Errorf("%w: %s", ErrBedNotFound, id)
}
