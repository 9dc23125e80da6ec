package projections

import (
	"context"
	"testing"

	domainMealplan "bunganutz/internal/domain/mealplan"
	domainStay "bunganutz/internal/domain/stay"
)

func TestQueryGetMealSummary(t *testing.T) {
	stays := boundaryStay()
	assignments := &stubAssignmentStore{assignments: []domainMealplan.Assignment{
		{
			ID: "a1", StayID: "s1", Date: "2025-07-05", MealType: domainMealplan.Dinner,
			Cooks: []domainMealplan.Cook{{ID: "c1", AssignmentID: "a1", CookID: "wayne"}},
		},
	}}
	dayGuests := &stubDayGuestStore{attendances: []domainMealplan.Attendance{
		{ID: "d1", Date: "2025-07-05", MemberID: "june"},
	}}

	result, err := QueryGetMealSummary(context.Background(), GetMealSummaryQuery{
		StartDate: "2025-07-04",
		EndDate:   "2025-07-06",
	}, GetMealSummaryDeps{StayStore: stays, Assignments: assignments, DayGuests: dayGuests})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Days) != 3 {
		t.Fatalf("got %d days, want 3", len(result.Days))
	}

	countFor := func(day MealSummaryDay, mealType domainMealplan.MealType) MealCount {
		for _, m := range day.Meals {
			if m.Type == mealType {
				return m
			}
		}
		t.Fatalf("meal %s missing", mealType)
		return MealCount{}
	}

	// Arrival day: only dinner is eaten by the party of two.
	if got := countFor(result.Days[0], domainMealplan.Dinner).Eaters; got != 2 {
		t.Errorf("arrival dinner eaters = %d, want 2", got)
	}
	if got := countFor(result.Days[0], domainMealplan.Breakfast).Eaters; got != 0 {
		t.Errorf("arrival breakfast eaters = %d, want 0", got)
	}

	// Middle day: party of two plus a day guest at every meal.
	middle := result.Days[1]
	if got := countFor(middle, domainMealplan.Lunch).Eaters; got != 3 {
		t.Errorf("middle lunch eaters = %d, want 3", got)
	}
	if dinner := countFor(middle, domainMealplan.Dinner); !dinner.Decided {
		t.Error("middle dinner should be decided")
	}
	if lunch := countFor(middle, domainMealplan.Lunch); lunch.Decided {
		t.Error("middle lunch should be undecided")
	}

	// Departure day: only breakfast.
	if got := countFor(result.Days[2], domainMealplan.Breakfast).Eaters; got != 2 {
		t.Errorf("departure breakfast eaters = %d, want 2", got)
	}
	if got := countFor(result.Days[2], domainMealplan.Dinner).Eaters; got != 0 {
		t.Errorf("departure dinner eaters = %d, want 0", got)
	}
}

// A day-guest row for someone already lodging that night must not count
// them a second time.
func TestQueryGetMealSummary_OvernightDayGuestNotDoubleCounted(t *testing.T) {
	stays := boundaryStay()
	dayGuests := &stubDayGuestStore{attendances: []domainMealplan.Attendance{
		{ID: "d1", Date: "2025-07-05", MemberID: "kathy"},
	}}

	result, err := QueryGetMealSummary(context.Background(), GetMealSummaryQuery{
		StartDate: "2025-07-05",
		EndDate:   "2025-07-05",
	}, GetMealSummaryDeps{StayStore: stays, Assignments: &stubAssignmentStore{}, DayGuests: dayGuests})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, m := range result.Days[0].Meals {
		if m.Eaters != 2 {
			t.Errorf("%s eaters = %d, want 2", m.Type, m.Eaters)
		}
	}
}

func TestQueryGetMealSummary_HeadcountGuestsCount(t *testing.T) {
	stays := &stubStayStore{stays: []domainStay.Stay{
		{
			ID: "s1", OrganizerID: "kathy", MemberIDs: []string{"kathy"},
			Guests:    []domainStay.GuestCount{{Type: "adult-guest", Quantity: 4}},
			StartDate: "2025-07-04", EndDate: "2025-07-06",
		},
	}}

	result, err := QueryGetMealSummary(context.Background(), GetMealSummaryQuery{
		StartDate: "2025-07-05",
		EndDate:   "2025-07-05",
	}, GetMealSummaryDeps{StayStore: stays, Assignments: &stubAssignmentStore{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, m := range result.Days[0].Meals {
		if m.Eaters != 5 {
			t.Errorf("%s eaters = %d, want 5", m.Type, m.Eaters)
		}
	}
}
