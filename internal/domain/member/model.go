package member

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 100
)

// Member holds state for a person on the cottage roster: a family member
// or a named guest. Guests differ only by the IsGuest flag; they have real
// records and can hold beds, cook, and carry food preferences.
type Member struct {
	ID              string
	FirstName       string
	FamilyName      string
	Email           string // optional, used for stay confirmations
	FoodPreferences string
	IsGuest         bool
	CreatedAt       time.Time
}

// Validate checks if the Member has valid data.
// PRE: Member struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: FirstName must not be empty
func (m *Member) Validate() error {
	if strings.TrimSpace(m.FirstName) == "" {
		return errors.New("member first name cannot be empty")
	}
	if len(m.FirstName) > MaxNameLength {
		return errors.New("member first name cannot exceed 100 characters")
	}
	if len(m.FamilyName) > MaxNameLength {
		return errors.New("member family name cannot exceed 100 characters")
	}
	return nil
}

// PersonID returns the member's id.
func (m Member) PersonID() string { return m.ID }

// DisplayName returns "First Family", or just "First" when no family name
// is recorded.
func (m Member) DisplayName() string {
	if m.FamilyName == "" {
		return m.FirstName
	}
	return m.FirstName + " " + m.FamilyName
}

// FoodPreference returns the member's free-text food preferences.
func (m Member) FoodPreference() string { return m.FoodPreferences }

// HeadcountGuest is a placeholder identity synthesized from the legacy
// per-stay guest counts. Older stay records predate named-guest members
// and carry only a quantity; each unit becomes guest-1, guest-2, ... with
// no backing Member record.
type HeadcountGuest struct {
	N int // 1-based position across the date's headcount total
}

// PersonID returns the synthetic id "guest-{n}".
func (g HeadcountGuest) PersonID() string { return fmt.Sprintf("guest-%d", g.N) }

// DisplayName returns the placeholder name "Guest {n}".
func (g HeadcountGuest) DisplayName() string { return fmt.Sprintf("Guest %d", g.N) }

// FoodPreference returns "" since headcount guests have no record to carry one.
func (g HeadcountGuest) FoodPreference() string { return "" }

// Person is the capability surface shared by real members and synthesized
// headcount guests. Callers needing an id, display name, or food
// preference accept Person instead of probing optional fields.
type Person interface {
	PersonID() string
	DisplayName() string
	FoodPreference() string
}

// SynthesizeHeadcount expands a total headcount into placeholder guests
// numbered 1..total.
// PRE: none
// POST: returns total placeholders; empty slice when total <= 0
func SynthesizeHeadcount(total int) []Person {
	if total <= 0 {
		return []Person{}
	}
	people := make([]Person, 0, total)
	for i := 1; i <= total; i++ {
		people = append(people, HeadcountGuest{N: i})
	}
	return people
}
