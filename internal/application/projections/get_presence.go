package projections

import (
	"context"

	domainMember "bunganutz/internal/domain/member"
	domainStay "bunganutz/internal/domain/stay"
)

// GetPresenceQuery carries query parameters.
type GetPresenceQuery struct {
	Date string // YYYY-MM-DD
}

// GetPresenceResult lists everyone at the cottage on one date, split the
// way the boards group them. Total counts overnight people plus day
// guests.
type GetPresenceResult struct {
	Date            string
	Family          []PersonView
	NamedGuests     []PersonView
	HeadcountGuests []PersonView
	DayGuests       []PersonView
	Total           int
}

// GetPresenceDeps holds dependencies for GetPresence.
type GetPresenceDeps struct {
	StayStore   StayStore
	MemberStore MemberStore
	DayGuests   DayGuestStore
}

// overnightAttendees resolves the people lodging on a date across all
// active stays: roster members in stay order plus synthesized headcount
// guests. Duplicate members across overlapping stays appear once.
func overnightAttendees(ctx context.Context, date string, stays StayStore, members MemberStore) ([]domainMember.Member, []domainMember.Person, error) {
	active, err := stays.ListActiveOn(ctx, date)
	if err != nil {
		return nil, nil, err
	}

	seen := make(map[string]bool)
	var ids []string
	headcount := 0
	for _, s := range active {
		for _, id := range s.MemberIDs {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
		for _, g := range s.Guests {
			headcount += g.Quantity
		}
	}

	resolved, err := members.ListByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	// Preserve stay signup order rather than the store's name order.
	byID := make(map[string]domainMember.Member, len(resolved))
	for _, m := range resolved {
		byID[m.ID] = m
	}
	ordered := make([]domainMember.Member, 0, len(ids))
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			ordered = append(ordered, m)
		}
	}

	return ordered, domainMember.SynthesizeHeadcount(headcount), nil
}

// QueryGetPresence reports who is at the cottage on a date.
// PRE: Date is YYYY-MM-DD
// POST: Returns each group in signup order; a turnover date counts both
// the departing and the arriving party
func QueryGetPresence(ctx context.Context, query GetPresenceQuery, deps GetPresenceDeps) (GetPresenceResult, error) {
	overnight, headcount, err := overnightAttendees(ctx, query.Date, deps.StayStore, deps.MemberStore)
	if err != nil {
		return GetPresenceResult{}, err
	}

	result := GetPresenceResult{Date: query.Date}
	for _, m := range overnight {
		if m.IsGuest {
			result.NamedGuests = append(result.NamedGuests, personView(m, true))
		} else {
			result.Family = append(result.Family, personView(m, false))
		}
	}
	for _, p := range headcount {
		result.HeadcountGuests = append(result.HeadcountGuests, personView(p, true))
	}

	if deps.DayGuests != nil {
		attendances, err := deps.DayGuests.ListByDate(ctx, query.Date)
		if err != nil {
			return GetPresenceResult{}, err
		}
		overnightIDs := make(map[string]bool, len(overnight))
		for _, m := range overnight {
			overnightIDs[m.ID] = true
		}
		for _, a := range attendances {
			// Someone already lodging is not also a day guest.
			if overnightIDs[a.MemberID] {
				continue
			}
			m, err := deps.MemberStore.GetByID(ctx, a.MemberID)
			if err != nil {
				return GetPresenceResult{}, err
			}
			result.DayGuests = append(result.DayGuests, personView(m, m.IsGuest))
		}
	}

	result.Total = len(result.Family) + len(result.NamedGuests) +
		len(result.HeadcountGuests) + len(result.DayGuests)
	return result, nil
}

// stayAttendsMeal applies the boundary rule: the arriving party joins
// from its chosen first meal, the departing party leaves after its chosen
// last meal, and everyone in between eats everything. A single-day stay
// counts as an arrival.
func stayAttendsMeal(s domainStay.Stay, date string, mealType string) bool {
	switch s.DayKindOn(date) {
	case domainStay.DayArrival:
		return containsMeal(s.ArrivalMeals, mealType)
	case domainStay.DayDeparture:
		return containsMeal(s.DepartureMeals, mealType)
	case domainStay.DayMiddle:
		return true
	default:
		return false
	}
}

func containsMeal(meals []string, mealType string) bool {
	for _, m := range meals {
		if m == mealType {
			return true
		}
	}
	return false
}
