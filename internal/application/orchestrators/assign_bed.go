package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"bunganutz/internal/domain/bed"
)

// BoardStore defines the bed board persistence interface.
type BoardStore interface {
	SheetForDate(ctx context.Context, date string) (bed.Sheet, error)
	Upsert(ctx context.Context, date string, key bed.SlotKey, personID string) error
	Delete(ctx context.Context, date string, key bed.SlotKey) error
	DeleteForPerson(ctx context.Context, date string, personID string) error
	YardSpaces(ctx context.Context, date string) (int, error)
	SetYardSpaces(ctx context.Context, date string, count int) error
}

// AssignBedInput carries input for the orchestrator. BedID set to
// bed.Available releases the person's slot instead of claiming one.
type AssignBedInput struct {
	Date     string
	BedID    string
	Slot     int
	PersonID string
}

// AssignBedDeps holds dependencies for AssignBed.
type AssignBedDeps struct {
	Board BoardStore
}

// ExecuteAssignBed moves a person onto a bed slot for one night. A person
// holds at most one slot per night, so any current slot is released
// first; if the new claim then fails the person is left unassigned
// rather than double-booked. Claiming a slot someone else holds simply
// displaces them (last write wins). Sending bed.Available as the person
// clears the slot itself.
// PRE: Date is YYYY-MM-DD, PersonID is non-empty
// POST: Person holds exactly the requested slot, or none for Available
func ExecuteAssignBed(ctx context.Context, input AssignBedInput, deps AssignBedDeps) error {
	if input.Date == "" {
		return errors.New("date is required")
	}
	if input.PersonID == "" {
		return errors.New("person ID is required")
	}

	if input.BedID == bed.Available {
		// Releasing an unheld slot is a no-op.
		if err := deps.Board.DeleteForPerson(ctx, input.Date, input.PersonID); err != nil {
			return err
		}
		slog.Info("bed_event", "event", "bed_released", "date", input.Date, "person_id", input.PersonID)
		return nil
	}

	yard, err := deps.Board.YardSpaces(ctx, input.Date)
	if err != nil {
		return err
	}
	rooms := bed.EffectiveRooms(yard)

	b, _, err := bed.Find(rooms, input.BedID)
	if err != nil {
		return err
	}
	key, err := bed.NewSlotKey(b, input.Slot)
	if err != nil {
		return err
	}

	if input.PersonID == bed.Available {
		// Writing the sentinel as an occupant would leave a phantom row;
		// an open slot is represented by having no row at all.
		if err := deps.Board.Delete(ctx, input.Date, key); err != nil {
			return err
		}
		slog.Info("bed_event", "event", "slot_cleared", "date", input.Date, "bed_id", key.BedID, "slot", key.Slot)
		return nil
	}

	if err := deps.Board.DeleteForPerson(ctx, input.Date, input.PersonID); err != nil {
		return err
	}
	if err := deps.Board.Upsert(ctx, input.Date, key, input.PersonID); err != nil {
		return err
	}

	slog.Info("bed_event", "event", "bed_assigned",
		"date", input.Date,
		"bed_id", key.BedID,
		"slot", key.Slot,
		"person_id", input.PersonID,
	)
	return nil
}
