package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"bunganutz/internal/adapters/email"
	"bunganutz/internal/domain/member"
	"bunganutz/internal/domain/stay"

	"github.com/google/uuid"
)

// StayStore defines the interface for stay persistence.
type StayStore interface {
	Save(ctx context.Context, s stay.Stay) error
	GetByID(ctx context.Context, id string) (stay.Stay, error)
	Delete(ctx context.Context, id string) error
}

// MemberLookup is the member store slice needed to resolve attendees.
type MemberLookup interface {
	GetByID(ctx context.Context, id string) (member.Member, error)
}

// ScheduleStayInput carries input for the orchestrator.
type ScheduleStayInput struct {
	OrganizerID    string
	MemberIDs      []string
	Guests         []stay.GuestCount
	StartDate      string
	EndDate        string
	ArrivalMeals   []string
	DepartureMeals []string
}

// ScheduleStayDeps holds dependencies for ScheduleStay.
type ScheduleStayDeps struct {
	StayStore   StayStore
	MemberStore MemberLookup
	EmailSender email.Sender // optional, nil skips confirmation
}

// ExecuteScheduleStay records a new reservation. The organizer defaults
// to the first listed member when not set. A confirmation email goes to
// the organizer on a best-effort basis: a send failure never fails the
// booking.
// PRE: at least one member, StartDate <= EndDate
// POST: Stay created with generated ID
func ExecuteScheduleStay(ctx context.Context, input ScheduleStayInput, deps ScheduleStayDeps) (string, error) {
	if len(input.MemberIDs) == 0 {
		return "", errors.New("a stay needs at least one member")
	}

	organizerID := input.OrganizerID
	if organizerID == "" {
		organizerID = input.MemberIDs[0]
	}

	s := stay.Stay{
		ID:             uuid.New().String(),
		OrganizerID:    organizerID,
		MemberIDs:      input.MemberIDs,
		Guests:         input.Guests,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		ArrivalMeals:   input.ArrivalMeals,
		DepartureMeals: input.DepartureMeals,
		CreatedAt:      time.Now(),
	}

	if err := s.Validate(); err != nil {
		return "", err
	}

	if err := deps.StayStore.Save(ctx, s); err != nil {
		return "", err
	}

	slog.Info("stay_event", "event", "stay_scheduled",
		"stay_id", s.ID,
		"start_date", s.StartDate,
		"end_date", s.EndDate,
		"members", len(s.MemberIDs),
	)

	if deps.EmailSender != nil {
		if err := sendStayConfirmation(ctx, s, deps); err != nil {
			slog.Error("stay_confirmation_failed", "stay_id", s.ID, "error", err)
		}
	}

	return s.ID, nil
}

// UpdateStayInput carries input for the update orchestrator. All fields
// replace the stored ones.
type UpdateStayInput struct {
	StayID         string
	OrganizerID    string
	MemberIDs      []string
	Guests         []stay.GuestCount
	StartDate      string
	EndDate        string
	ArrivalMeals   []string
	DepartureMeals []string
}

// ExecuteUpdateStay rewrites an existing reservation.
// PRE: StayID references an existing stay
// POST: Stay fields replaced; bed assignments outside the new range are
// left behind for the board to ignore
func ExecuteUpdateStay(ctx context.Context, input UpdateStayInput, deps ScheduleStayDeps) error {
	s, err := deps.StayStore.GetByID(ctx, input.StayID)
	if err != nil {
		return err
	}

	s.OrganizerID = input.OrganizerID
	if s.OrganizerID == "" && len(input.MemberIDs) > 0 {
		s.OrganizerID = input.MemberIDs[0]
	}
	s.MemberIDs = input.MemberIDs
	s.Guests = input.Guests
	s.StartDate = input.StartDate
	s.EndDate = input.EndDate
	s.ArrivalMeals = input.ArrivalMeals
	s.DepartureMeals = input.DepartureMeals

	if err := s.Validate(); err != nil {
		return err
	}

	if err := deps.StayStore.Save(ctx, s); err != nil {
		return err
	}

	slog.Info("stay_event", "event", "stay_updated", "stay_id", s.ID)
	return nil
}

// CancelStayInput carries input for the cancel orchestrator.
type CancelStayInput struct {
	StayID string
}

// ExecuteCancelStay removes a reservation and its dependent rows.
// PRE: StayID is non-empty
// POST: Stay removed; cancelling a missing stay is a no-op
func ExecuteCancelStay(ctx context.Context, input CancelStayInput, deps ScheduleStayDeps) error {
	if input.StayID == "" {
		return errors.New("stay ID is required")
	}

	if err := deps.StayStore.Delete(ctx, input.StayID); err != nil {
		return err
	}

	slog.Info("stay_event", "event", "stay_cancelled", "stay_id", input.StayID)
	return nil
}
