package orchestrators

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"bunganutz/internal/domain/member"

	"github.com/google/uuid"
)

// MemberStore defines the interface for member persistence.
type MemberStore interface {
	Save(ctx context.Context, m member.Member) error
	GetByID(ctx context.Context, id string) (member.Member, error)
}

// RegisterMemberInput carries input for the orchestrator.
type RegisterMemberInput struct {
	FirstName       string
	FamilyName      string
	Email           string
	FoodPreferences string
	IsGuest         bool
}

// RegisterMemberDeps holds dependencies for RegisterMember.
type RegisterMemberDeps struct {
	MemberStore MemberStore
}

// ExecuteRegisterMember adds a person to the cottage roster. A blank
// first name is treated as an abandoned form and skipped without error.
// PRE: none
// POST: Member created with generated ID, or empty ID when skipped
func ExecuteRegisterMember(ctx context.Context, input RegisterMemberInput, deps RegisterMemberDeps) (string, error) {
	if strings.TrimSpace(input.FirstName) == "" {
		return "", nil
	}

	m := member.Member{
		ID:              uuid.New().String(),
		FirstName:       strings.TrimSpace(input.FirstName),
		FamilyName:      strings.TrimSpace(input.FamilyName),
		Email:           strings.TrimSpace(input.Email),
		FoodPreferences: strings.TrimSpace(input.FoodPreferences),
		IsGuest:         input.IsGuest,
		CreatedAt:       time.Now(),
	}

	if err := m.Validate(); err != nil {
		return "", err
	}

	if err := deps.MemberStore.Save(ctx, m); err != nil {
		return "", err
	}

	slog.Info("member_event", "event", "member_registered", "member_id", m.ID, "is_guest", m.IsGuest)
	return m.ID, nil
}

// UpdateMemberInput carries input for the update orchestrator.
type UpdateMemberInput struct {
	MemberID        string
	FirstName       string
	FamilyName      string
	Email           string
	FoodPreferences string
}

// ExecuteUpdateMember updates a roster entry's editable fields.
// PRE: MemberID references an existing member
// POST: Member fields updated
func ExecuteUpdateMember(ctx context.Context, input UpdateMemberInput, deps RegisterMemberDeps) error {
	m, err := deps.MemberStore.GetByID(ctx, input.MemberID)
	if err != nil {
		return err
	}

	m.FirstName = strings.TrimSpace(input.FirstName)
	m.FamilyName = strings.TrimSpace(input.FamilyName)
	m.Email = strings.TrimSpace(input.Email)
	m.FoodPreferences = strings.TrimSpace(input.FoodPreferences)

	if err := m.Validate(); err != nil {
		return err
	}

	if err := deps.MemberStore.Save(ctx, m); err != nil {
		return err
	}

	slog.Info("member_event", "event", "member_updated", "member_id", m.ID)
	return nil
}
