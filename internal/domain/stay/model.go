package stay

import (
	"errors"
	"time"
)

// DayKind classifies a date relative to a stay's inclusive range.
type DayKind string

// Day kind constants.
const (
	DayArrival   DayKind = "arrival"   // date == start date
	DayDeparture DayKind = "departure" // date == end date
	DayMiddle    DayKind = "middle"    // strictly between
	DayOutside   DayKind = "outside"   // not covered
)

// DateLayout is the canonical calendar-day form for all stay dates.
// Dates are compared as YYYY-MM-DD strings; time of day and zone never
// enter the comparison.
const DateLayout = "2006-01-02"

// Domain errors.
var ErrNotFound = errors.New("stay not found")

// GuestCount is a legacy headcount entry: older stays recorded anonymous
// guests as a type plus quantity instead of member ids.
type GuestCount struct {
	Type     string // "adult-guest" or "child-guest"
	Quantity int
}

// Stay is a reservation spanning an inclusive date range with attendees.
// INVARIANT: StartDate <= EndDate; MemberIDs unique; dates are
// calendar-day granularity.
type Stay struct {
	ID             string
	OrganizerID    string
	MemberIDs      []string // ordered, unique
	Guests         []GuestCount
	StartDate      string   // YYYY-MM-DD
	EndDate        string   // YYYY-MM-DD
	ArrivalMeals   []string // meal types attended on the arrival day
	DepartureMeals []string // meal types attended on the departure day
	CreatedAt      time.Time
}

// Validate checks the stay's invariants.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (s *Stay) Validate() error {
	if s.OrganizerID == "" {
		return errors.New("stay organizer is required")
	}
	if len(s.MemberIDs) == 0 {
		return errors.New("stay must have at least one member")
	}
	seen := make(map[string]bool, len(s.MemberIDs))
	for _, id := range s.MemberIDs {
		if id == "" {
			return errors.New("stay member id cannot be empty")
		}
		if seen[id] {
			return errors.New("stay member ids must be unique")
		}
		seen[id] = true
	}
	if _, err := time.Parse(DateLayout, s.StartDate); err != nil {
		return errors.New("stay start date must be YYYY-MM-DD")
	}
	if _, err := time.Parse(DateLayout, s.EndDate); err != nil {
		return errors.New("stay end date must be YYYY-MM-DD")
	}
	if s.EndDate < s.StartDate {
		return errors.New("stay end date cannot be before start date")
	}
	for _, g := range s.Guests {
		if g.Quantity < 0 {
			return errors.New("stay guest quantity cannot be negative")
		}
	}
	return nil
}

// ActiveOn reports whether the stay covers the date, inclusive on both
// ends. ISO date strings compare correctly as plain strings.
// PRE: date is YYYY-MM-DD
// POST: returns true iff StartDate <= date <= EndDate
func (s *Stay) ActiveOn(date string) bool {
	return s.StartDate <= date && date <= s.EndDate
}

// DayKindOn classifies the date relative to the stay. A single-day stay
// (start == end) classifies as an arrival day; arrival is checked first,
// matching how boundary meal opt-ins are applied.
// PRE: date is YYYY-MM-DD
// POST: returns one of DayArrival, DayDeparture, DayMiddle, DayOutside
func (s *Stay) DayKindOn(date string) DayKind {
	if !s.ActiveOn(date) {
		return DayOutside
	}
	switch date {
	case s.StartDate:
		return DayArrival
	case s.EndDate:
		return DayDeparture
	default:
		return DayMiddle
	}
}

// HeadcountTotal sums the legacy guest quantities on the stay.
func (s *Stay) HeadcountTotal() int {
	total := 0
	for _, g := range s.Guests {
		total += g.Quantity
	}
	return total
}

// ActiveOn returns every stay whose inclusive range covers the date,
// preserving input order. A turnover day (one stay's end, another's start)
// returns both.
// PRE: date is YYYY-MM-DD
// POST: result contains exactly the stays with StartDate <= date <= EndDate
func ActiveOn(date string, stays []Stay) []Stay {
	var active []Stay
	for _, s := range stays {
		if s.ActiveOn(date) {
			active = append(active, s)
		}
	}
	return active
}

// NormalizeDate truncates a timestamp to its calendar-day string form.
// Mixing zone-aware timestamps with date strings is a known pitfall; all
// interval checks go through this form.
func NormalizeDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DatesInRange lists every date from start to end inclusive.
// PRE: start and end are YYYY-MM-DD
// POST: returns dates in ascending order; empty when end < start or either
// date is malformed
func DatesInRange(start, end string) []string {
	from, err := time.Parse(DateLayout, start)
	if err != nil {
		return nil
	}
	to, err := time.Parse(DateLayout, end)
	if err != nil {
		return nil
	}
	var dates []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateLayout))
	}
	return dates
}
