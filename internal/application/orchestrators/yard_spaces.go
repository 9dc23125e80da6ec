package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"bunganutz/internal/domain/bed"
)

// AddYardSpacesInput carries input for the add orchestrator.
type AddYardSpacesInput struct {
	Date  string
	Count int
}

// YardSpacesDeps holds dependencies for the yard orchestrators.
type YardSpacesDeps struct {
	Board BoardStore
}

// ExecuteAddYardSpaces opens extra tent spaces in the yard for one night.
// A non-positive count is ignored.
// PRE: Date is YYYY-MM-DD
// POST: Yard space count increased by Count
func ExecuteAddYardSpaces(ctx context.Context, input AddYardSpacesInput, deps YardSpacesDeps) error {
	if input.Date == "" {
		return errors.New("date is required")
	}
	if input.Count <= 0 {
		return nil
	}

	current, err := deps.Board.YardSpaces(ctx, input.Date)
	if err != nil {
		return err
	}
	if err := deps.Board.SetYardSpaces(ctx, input.Date, current+input.Count); err != nil {
		return err
	}

	slog.Info("bed_event", "event", "yard_spaces_added", "date", input.Date, "count", input.Count)
	return nil
}

// RemoveYardSpaceInput carries input for the remove orchestrator.
type RemoveYardSpaceInput struct {
	Date string
}

// ExecuteRemoveYardSpace closes the highest-numbered yard space for the
// night, evicting whoever holds it. Removing from an empty yard is a
// no-op.
// PRE: Date is YYYY-MM-DD
// POST: Yard space count decreased by one, floor of zero
func ExecuteRemoveYardSpace(ctx context.Context, input RemoveYardSpaceInput, deps YardSpacesDeps) error {
	if input.Date == "" {
		return errors.New("date is required")
	}

	current, err := deps.Board.YardSpaces(ctx, input.Date)
	if err != nil {
		return err
	}
	if current <= 0 {
		return nil
	}

	key := bed.SlotKey{BedID: fmt.Sprintf("yard-space-%d", current), Slot: 0}
	if err := deps.Board.Delete(ctx, input.Date, key); err != nil {
		return err
	}
	if err := deps.Board.SetYardSpaces(ctx, input.Date, current-1); err != nil {
		return err
	}

	slog.Info("bed_event", "event", "yard_space_removed", "date", input.Date, "remaining", current-1)
	return nil
}
