package mealplan

import (
	"errors"
	"time"

	"bunganutz/internal/domain/member"
)

// MealType identifies one of the day's four meals.
type MealType string

// Meal type constants.
const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Apps      MealType = "apps"
	Dinner    MealType = "dinner"
)

// MealTypes lists the meals in serving order.
var MealTypes = []MealType{Breakfast, Lunch, Apps, Dinner}

// CookOnYourOwn is the sentinel cook id meaning the meal explicitly has
// no cook and everyone fends for themselves. It is distinct from having
// no cook rows at all, which means the meal is not yet decided.
const CookOnYourOwn = "on-your-own"

// Domain errors.
var (
	ErrUnknownMealType    = errors.New("unknown meal type")
	ErrAssignmentNotFound = errors.New("meal assignment not found")
)

// ValidMealType reports whether t is one of the four meals.
func ValidMealType(t MealType) bool {
	for _, m := range MealTypes {
		if m == t {
			return true
		}
	}
	return false
}

// Cook is one cook signed up for a meal. CookID references a member, or
// carries the CookOnYourOwn sentinel.
type Cook struct {
	ID           string
	AssignmentID string
	CookID       string
	Role         string // optional, e.g. "grill"
	CreatedAt    time.Time
}

// Assignment is the plan for one meal on one date within a stay: the menu
// text plus who is cooking.
type Assignment struct {
	ID        string
	StayID    string
	Date      string // YYYY-MM-DD
	MealType  MealType
	Menu      string
	Cooks     []Cook
	CreatedAt time.Time
}

// Validate checks the assignment's invariants.
// PRE: none
// POST: returns nil if valid
func (a *Assignment) Validate() error {
	if a.StayID == "" {
		return errors.New("meal assignment must belong to a stay")
	}
	if a.Date == "" {
		return errors.New("meal assignment date is required")
	}
	if !ValidMealType(a.MealType) {
		return ErrUnknownMealType
	}
	return nil
}

// OnYourOwn reports whether the sentinel cook is recorded.
func (a *Assignment) OnYourOwn() bool {
	for _, c := range a.Cooks {
		if c.CookID == CookOnYourOwn {
			return true
		}
	}
	return false
}

// Decided reports whether any cook decision exists, including the
// on-your-own sentinel. An undecided meal has no cook rows at all.
func (a *Assignment) Decided() bool {
	return len(a.Cooks) > 0
}

// HasCook reports whether the given person is already signed up.
func (a *Assignment) HasCook(cookID string) bool {
	for _, c := range a.Cooks {
		if c.CookID == cookID {
			return true
		}
	}
	return false
}

// Attendance records a day guest: someone attending meals on a date
// without lodging overnight. Independent of any stay.
type Attendance struct {
	ID        string
	Date      string // YYYY-MM-DD
	MemberID  string
	CreatedAt time.Time
}

// FoodPreferences aggregates the attendees' non-empty preference strings,
// deduplicated, order preserved by first occurrence.
// PRE: none
// POST: result holds each distinct preference once, in first-seen order
func FoodPreferences(people []member.Person) []string {
	seen := make(map[string]bool)
	var prefs []string
	for _, p := range people {
		pref := p.FoodPreference()
		if pref == "" || seen[pref] {
			continue
		}
		seen[pref] = true
		prefs = append(prefs, pref)
	}
	return prefs
}
