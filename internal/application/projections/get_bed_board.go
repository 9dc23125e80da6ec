package projections

import (
	"context"
	"errors"

	"bunganutz/internal/domain/bed"
)

// GetBedBoardQuery carries query parameters.
type GetBedBoardQuery struct {
	Date string // YYYY-MM-DD
}

// SlotView is one claimable sleeping spot.
type SlotView struct {
	Slot       int
	PersonID   string // empty when open
	PersonName string
}

// BedView is one bed with its slot occupancy.
type BedView struct {
	ID          string
	Description string
	Type        bed.BedType
	Capacity    int
	Slots       []SlotView
}

// RoomView groups a room's beds with its open count.
type RoomView struct {
	Name        string
	Description string
	Beds        []BedView
	Open        int
}

// GetBedBoardResult carries the query result. Unassigned lists the
// overnight people who have not claimed a slot yet.
type GetBedBoardResult struct {
	Date       string
	Rooms      []RoomView
	TotalOpen  int
	Unassigned []PersonView
}

// GetBedBoardDeps holds dependencies for GetBedBoard.
type GetBedBoardDeps struct {
	StayStore   StayStore
	MemberStore MemberStore
	Board       BoardStore
}

// QueryGetBedBoard builds the who-sleeps-where board for one night.
// PRE: Date is YYYY-MM-DD
// POST: Rooms appear in house order with yard spaces last; every
// overnight person is either on a slot or in Unassigned
func QueryGetBedBoard(ctx context.Context, query GetBedBoardQuery, deps GetBedBoardDeps) (GetBedBoardResult, error) {
	if query.Date == "" {
		return GetBedBoardResult{}, errors.New("date is required")
	}

	yard, err := deps.Board.YardSpaces(ctx, query.Date)
	if err != nil {
		return GetBedBoardResult{}, err
	}
	rooms := bed.EffectiveRooms(yard)

	sheet, err := deps.Board.SheetForDate(ctx, query.Date)
	if err != nil {
		return GetBedBoardResult{}, err
	}

	overnight, headcount, err := overnightAttendees(ctx, query.Date, deps.StayStore, deps.MemberStore)
	if err != nil {
		return GetBedBoardResult{}, err
	}

	nameByID := make(map[string]string)
	for _, m := range overnight {
		nameByID[m.ID] = m.DisplayName()
	}
	for _, p := range headcount {
		nameByID[p.PersonID()] = p.DisplayName()
	}

	result := GetBedBoardResult{Date: query.Date}
	for _, room := range rooms {
		view := RoomView{
			Name:        room.Name,
			Description: room.Description,
			Open:        sheet.OpenBeds(room),
		}
		for _, b := range room.Beds {
			bv := BedView{
				ID:          b.ID,
				Description: b.Description,
				Type:        b.Type,
				Capacity:    b.Capacity,
			}
			for slot := 0; slot < b.Capacity; slot++ {
				key := bed.SlotKey{BedID: b.ID, Slot: slot}
				sv := SlotView{Slot: slot}
				if occupant := sheet.Occupant(key); occupant != bed.Available {
					sv.PersonID = occupant
					sv.PersonName = nameByID[occupant]
					if sv.PersonName == "" {
						sv.PersonName = occupant
					}
				}
				bv.Slots = append(bv.Slots, sv)
			}
			view.Beds = append(view.Beds, bv)
		}
		result.Rooms = append(result.Rooms, view)
	}

	result.TotalOpen = sheet.TotalOpen(rooms)

	assigned := sheet.AssignedIDs()
	for _, m := range overnight {
		if !assigned[m.ID] {
			result.Unassigned = append(result.Unassigned, personView(m, m.IsGuest))
		}
	}
	for _, p := range headcount {
		if !assigned[p.PersonID()] {
			result.Unassigned = append(result.Unassigned, personView(p, true))
		}
	}

	return result, nil
}
