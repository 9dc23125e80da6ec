package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"bunganutz/internal/domain/mealplan"

	"github.com/google/uuid"
)

// MealAssignmentStore defines the meal plan persistence interface.
type MealAssignmentStore interface {
	GetForMeal(ctx context.Context, stayID, date string, mealType mealplan.MealType) (mealplan.Assignment, error)
	Save(ctx context.Context, a mealplan.Assignment) error
	AddCook(ctx context.Context, c mealplan.Cook) error
	RemoveCook(ctx context.Context, assignmentID, cookID string) error
}

// DayGuestStore defines the day guest persistence interface.
type DayGuestStore interface {
	Add(ctx context.Context, a mealplan.Attendance) error
	Remove(ctx context.Context, date, memberID string) error
}

// MealPlanDeps holds dependencies for the meal orchestrators.
type MealPlanDeps struct {
	Assignments MealAssignmentStore
	DayGuests   DayGuestStore
}

// getOrCreateAssignment loads the assignment for one meal, creating an
// empty one when the meal has not been planned yet.
func getOrCreateAssignment(ctx context.Context, stayID, date string, mealType mealplan.MealType, deps MealPlanDeps) (mealplan.Assignment, error) {
	a, err := deps.Assignments.GetForMeal(ctx, stayID, date, mealType)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, mealplan.ErrAssignmentNotFound) {
		return mealplan.Assignment{}, err
	}

	a = mealplan.Assignment{
		ID:        uuid.New().String(),
		StayID:    stayID,
		Date:      date,
		MealType:  mealType,
		CreatedAt: time.Now(),
	}
	if err := a.Validate(); err != nil {
		return mealplan.Assignment{}, err
	}
	if err := deps.Assignments.Save(ctx, a); err != nil {
		return mealplan.Assignment{}, err
	}
	return a, nil
}

// SaveMenuInput carries input for the menu orchestrator.
type SaveMenuInput struct {
	StayID   string
	Date     string
	MealType mealplan.MealType
	Menu     string
}

// ExecuteSaveMenu records the menu text for one meal, creating the plan
// row if needed.
// PRE: StayID and Date are non-empty, MealType is valid
// POST: Assignment exists with the given menu
func ExecuteSaveMenu(ctx context.Context, input SaveMenuInput, deps MealPlanDeps) error {
	if !mealplan.ValidMealType(input.MealType) {
		return mealplan.ErrUnknownMealType
	}

	a, err := getOrCreateAssignment(ctx, input.StayID, input.Date, input.MealType, deps)
	if err != nil {
		return err
	}

	a.Menu = input.Menu
	if err := deps.Assignments.Save(ctx, a); err != nil {
		return err
	}

	slog.Info("meal_event", "event", "menu_saved",
		"date", input.Date, "meal_type", input.MealType, "stay_id", input.StayID)
	return nil
}

// AddCookInput carries input for the cook signup orchestrator. CookID may
// be the on-your-own sentinel, which marks the meal as every party for
// itself.
type AddCookInput struct {
	StayID   string
	Date     string
	MealType mealplan.MealType
	CookID   string
	Role     string
}

// ExecuteAddCook signs a cook up for one meal. Signing up twice is a
// no-op.
// PRE: StayID, Date and CookID are non-empty, MealType is valid
// POST: Cook row exists for the meal
func ExecuteAddCook(ctx context.Context, input AddCookInput, deps MealPlanDeps) error {
	if !mealplan.ValidMealType(input.MealType) {
		return mealplan.ErrUnknownMealType
	}
	if input.CookID == "" {
		return errors.New("cook ID is required")
	}

	a, err := getOrCreateAssignment(ctx, input.StayID, input.Date, input.MealType, deps)
	if err != nil {
		return err
	}
	if a.HasCook(input.CookID) {
		return nil
	}

	cook := mealplan.Cook{
		ID:           uuid.New().String(),
		AssignmentID: a.ID,
		CookID:       input.CookID,
		Role:         input.Role,
		CreatedAt:    time.Now(),
	}
	if err := deps.Assignments.AddCook(ctx, cook); err != nil {
		return err
	}

	slog.Info("meal_event", "event", "cook_added",
		"date", input.Date, "meal_type", input.MealType, "cook_id", input.CookID)
	return nil
}

// RemoveCookInput carries input for the cook removal orchestrator.
type RemoveCookInput struct {
	StayID   string
	Date     string
	MealType mealplan.MealType
	CookID   string
}

// ExecuteRemoveCook takes a cook off one meal. Removing from an
// unplanned meal or an absent signup is a no-op.
// PRE: MealType is valid
// POST: No cook row exists for the meal and cook
func ExecuteRemoveCook(ctx context.Context, input RemoveCookInput, deps MealPlanDeps) error {
	if !mealplan.ValidMealType(input.MealType) {
		return mealplan.ErrUnknownMealType
	}

	a, err := deps.Assignments.GetForMeal(ctx, input.StayID, input.Date, input.MealType)
	if errors.Is(err, mealplan.ErrAssignmentNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := deps.Assignments.RemoveCook(ctx, a.ID, input.CookID); err != nil {
		return err
	}

	slog.Info("meal_event", "event", "cook_removed",
		"date", input.Date, "meal_type", input.MealType, "cook_id", input.CookID)
	return nil
}

// DayGuestInput carries input for the day guest orchestrators.
type DayGuestInput struct {
	Date     string
	MemberID string
}

// ExecuteAddDayGuest signs a member up for a date's meals without an
// overnight stay. Duplicate signups are no-ops.
// PRE: Date and MemberID are non-empty
// POST: Attendance row exists for the pair
func ExecuteAddDayGuest(ctx context.Context, input DayGuestInput, deps MealPlanDeps) error {
	if input.Date == "" || input.MemberID == "" {
		return errors.New("date and member ID are required")
	}

	a := mealplan.Attendance{
		ID:        uuid.New().String(),
		Date:      input.Date,
		MemberID:  input.MemberID,
		CreatedAt: time.Now(),
	}
	if err := deps.DayGuests.Add(ctx, a); err != nil {
		return err
	}

	slog.Info("meal_event", "event", "day_guest_added", "date", input.Date, "member_id", input.MemberID)
	return nil
}

// ExecuteRemoveDayGuest removes a day guest signup. Removing an absent
// signup is a no-op.
// PRE: Date and MemberID are non-empty
// POST: No attendance row exists for the pair
func ExecuteRemoveDayGuest(ctx context.Context, input DayGuestInput, deps MealPlanDeps) error {
	if input.Date == "" || input.MemberID == "" {
		return errors.New("date and member ID are required")
	}

	if err := deps.DayGuests.Remove(ctx, input.Date, input.MemberID); err != nil {
		return err
	}

	slog.Info("meal_event", "event", "day_guest_removed", "date", input.Date, "member_id", input.MemberID)
	return nil
}
