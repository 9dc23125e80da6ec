package projections

import (
	"context"
	"errors"

	domainMealplan "bunganutz/internal/domain/mealplan"
	domainStay "bunganutz/internal/domain/stay"
)

// GetMealSummaryQuery carries query parameters.
type GetMealSummaryQuery struct {
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD inclusive
}

// MealCount is one meal's headcount on one date.
type MealCount struct {
	Type    domainMealplan.MealType
	Eaters  int
	Decided bool
}

// MealSummaryDay is the planning row for one date.
type MealSummaryDay struct {
	Date  string
	Meals []MealCount
}

// GetMealSummaryResult carries the query result.
type GetMealSummaryResult struct {
	Days []MealSummaryDay
}

// GetMealSummaryDeps holds dependencies for GetMealSummary.
type GetMealSummaryDeps struct {
	StayStore   StayStore
	Assignments MealAssignmentStore
	DayGuests   DayGuestStore
}

// QueryGetMealSummary counts eaters per meal across a date range, for
// shopping and duty planning. A meal is decided once any cook signup
// exists, the on-your-own sentinel included.
// PRE: StartDate <= EndDate
// POST: One row per date in order, meals in serving order
func QueryGetMealSummary(ctx context.Context, query GetMealSummaryQuery, deps GetMealSummaryDeps) (GetMealSummaryResult, error) {
	if query.StartDate == "" || query.EndDate == "" {
		return GetMealSummaryResult{}, errors.New("start and end dates are required")
	}
	if query.EndDate < query.StartDate {
		return GetMealSummaryResult{}, errors.New("end date precedes start date")
	}

	stays, err := deps.StayStore.ListOverlapping(ctx, query.StartDate, query.EndDate)
	if err != nil {
		return GetMealSummaryResult{}, err
	}

	guestsByDate := make(map[string][]string)
	if deps.DayGuests != nil {
		attendances, err := deps.DayGuests.ListByDateRange(ctx, query.StartDate, query.EndDate)
		if err != nil {
			return GetMealSummaryResult{}, err
		}
		for _, a := range attendances {
			guestsByDate[a.Date] = append(guestsByDate[a.Date], a.MemberID)
		}
	}

	var days []MealSummaryDay
	for _, date := range domainStay.DatesInRange(query.StartDate, query.EndDate) {
		assignments, err := deps.Assignments.ListForDate(ctx, date)
		if err != nil {
			return GetMealSummaryResult{}, err
		}
		decided := make(map[domainMealplan.MealType]bool)
		for _, a := range assignments {
			if a.Decided() {
				decided[a.MealType] = true
			}
		}

		// A day-guest row for someone already lodging that night is
		// redundant; their meals follow the stay's boundary rules.
		overnight := make(map[string]bool)
		active := domainStay.ActiveOn(date, stays)
		for _, s := range active {
			for _, id := range s.MemberIDs {
				overnight[id] = true
			}
		}

		day := MealSummaryDay{Date: date}
		for _, mealType := range domainMealplan.MealTypes {
			count := 0
			for _, id := range guestsByDate[date] {
				if !overnight[id] {
					count++
				}
			}
			seen := make(map[string]bool)
			for _, s := range active {
				if !stayAttendsMeal(s, date, string(mealType)) {
					continue
				}
				for _, id := range s.MemberIDs {
					if !seen[id] {
						seen[id] = true
						count++
					}
				}
				for _, g := range s.Guests {
					count += g.Quantity
				}
			}
			day.Meals = append(day.Meals, MealCount{
				Type:    mealType,
				Eaters:  count,
				Decided: decided[mealType],
			})
		}
		days = append(days, day)
	}

	return GetMealSummaryResult{Days: days}, nil
}
