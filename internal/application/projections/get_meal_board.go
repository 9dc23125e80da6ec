package projections

import (
	"context"
	"errors"

	domainMealplan "bunganutz/internal/domain/mealplan"
	domainMember "bunganutz/internal/domain/member"
)

// GetMealBoardQuery carries query parameters.
type GetMealBoardQuery struct {
	Date string // YYYY-MM-DD
}

// MealPlanView is one stay's plan for a meal: menu text plus cook names.
type MealPlanView struct {
	StayID    string
	Menu      string
	Cooks     []string
	OnYourOwn bool
	Decided   bool
}

// MealView is one meal of the day with its eaters and plans.
type MealView struct {
	Type            domainMealplan.MealType
	Attendees       []PersonView
	FoodPreferences []string
	Plans           []MealPlanView
}

// GetMealBoardResult carries the query result, one MealView per meal in
// serving order.
type GetMealBoardResult struct {
	Date  string
	Meals []MealView
}

// GetMealBoardDeps holds dependencies for GetMealBoard.
type GetMealBoardDeps struct {
	StayStore   StayStore
	MemberStore MemberStore
	Assignments MealAssignmentStore
	DayGuests   DayGuestStore
}

// QueryGetMealBoard builds the duty board for one date: per meal, who is
// eating (boundary meals honored for arriving and departing parties, day
// guests at every meal) and what each stay has planned.
// PRE: Date is YYYY-MM-DD
// POST: Meals appear in serving order with attendees in signup order
func QueryGetMealBoard(ctx context.Context, query GetMealBoardQuery, deps GetMealBoardDeps) (GetMealBoardResult, error) {
	if query.Date == "" {
		return GetMealBoardResult{}, errors.New("date is required")
	}

	active, err := deps.StayStore.ListActiveOn(ctx, query.Date)
	if err != nil {
		return GetMealBoardResult{}, err
	}

	// Resolve all members once.
	idSet := make(map[string]bool)
	var ids []string
	for _, s := range active {
		for _, id := range s.MemberIDs {
			if !idSet[id] {
				idSet[id] = true
				ids = append(ids, id)
			}
		}
	}
	resolved, err := deps.MemberStore.ListByIDs(ctx, ids)
	if err != nil {
		return GetMealBoardResult{}, err
	}
	memberByID := make(map[string]domainMember.Member, len(resolved))
	for _, m := range resolved {
		memberByID[m.ID] = m
	}

	var dayGuests []domainMember.Member
	if deps.DayGuests != nil {
		attendances, err := deps.DayGuests.ListByDate(ctx, query.Date)
		if err != nil {
			return GetMealBoardResult{}, err
		}
		for _, a := range attendances {
			if idSet[a.MemberID] {
				continue
			}
			m, err := deps.MemberStore.GetByID(ctx, a.MemberID)
			if err != nil {
				return GetMealBoardResult{}, err
			}
			dayGuests = append(dayGuests, m)
		}
	}

	assignments, err := deps.Assignments.ListForDate(ctx, query.Date)
	if err != nil {
		return GetMealBoardResult{}, err
	}

	result := GetMealBoardResult{Date: query.Date}
	for _, mealType := range domainMealplan.MealTypes {
		view := MealView{Type: mealType}

		var eaters []domainMember.Person
		seen := make(map[string]bool)
		headcount := 0
		for _, s := range active {
			if !stayAttendsMeal(s, query.Date, string(mealType)) {
				continue
			}
			for _, id := range s.MemberIDs {
				if seen[id] {
					continue
				}
				seen[id] = true
				if m, ok := memberByID[id]; ok {
					eaters = append(eaters, m)
					view.Attendees = append(view.Attendees, personView(m, m.IsGuest))
				}
			}
			for _, g := range s.Guests {
				headcount += g.Quantity
			}
		}
		for _, p := range domainMember.SynthesizeHeadcount(headcount) {
			eaters = append(eaters, p)
			view.Attendees = append(view.Attendees, personView(p, true))
		}
		for _, m := range dayGuests {
			eaters = append(eaters, m)
			view.Attendees = append(view.Attendees, personView(m, m.IsGuest))
		}
		view.FoodPreferences = domainMealplan.FoodPreferences(eaters)

		for _, a := range assignments {
			if a.MealType != mealType {
				continue
			}
			plan := MealPlanView{
				StayID:    a.StayID,
				Menu:      a.Menu,
				OnYourOwn: a.OnYourOwn(),
				Decided:   a.Decided(),
			}
			for _, c := range a.Cooks {
				if c.CookID == domainMealplan.CookOnYourOwn {
					continue
				}
				if m, ok := memberByID[c.CookID]; ok {
					plan.Cooks = append(plan.Cooks, m.DisplayName())
				} else if m, err := deps.MemberStore.GetByID(ctx, c.CookID); err == nil {
					plan.Cooks = append(plan.Cooks, m.DisplayName())
				} else {
					plan.Cooks = append(plan.Cooks, c.CookID)
				}
			}
			view.Plans = append(view.Plans, plan)
		}

		result.Meals = append(result.Meals, view)
	}

	return result, nil
}
