package projections

import (
	"context"
	"errors"

	"bunganutz/internal/domain/bed"
	domainStay "bunganutz/internal/domain/stay"
)

// GetOccupancyRangeQuery carries query parameters for the calendar view.
type GetOccupancyRangeQuery struct {
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD inclusive
}

// OccupancyDay is one calendar cell: who sleeps over and how many beds
// are left.
type OccupancyDay struct {
	Date     string
	Names    []string
	Sleepers int
	OpenBeds int
}

// GetOccupancyRangeResult carries the query result.
type GetOccupancyRangeResult struct {
	Days []OccupancyDay
}

// GetOccupancyRangeDeps holds dependencies for GetOccupancyRange.
type GetOccupancyRangeDeps struct {
	StayStore   StayStore
	MemberStore MemberStore
	Board       BoardStore
}

// QueryGetOccupancyRange builds the calendar strip for a date range: the
// people sleeping over each night and the number of open beds, counting
// any yard spaces opened for that night.
// PRE: StartDate <= EndDate
// POST: One OccupancyDay per date in order
func QueryGetOccupancyRange(ctx context.Context, query GetOccupancyRangeQuery, deps GetOccupancyRangeDeps) (GetOccupancyRangeResult, error) {
	if query.StartDate == "" || query.EndDate == "" {
		return GetOccupancyRangeResult{}, errors.New("start and end dates are required")
	}
	if query.EndDate < query.StartDate {
		return GetOccupancyRangeResult{}, errors.New("end date precedes start date")
	}

	stays, err := deps.StayStore.ListOverlapping(ctx, query.StartDate, query.EndDate)
	if err != nil {
		return GetOccupancyRangeResult{}, err
	}

	// Resolve every member named by any overlapping stay once.
	idSet := make(map[string]bool)
	var ids []string
	for _, s := range stays {
		for _, id := range s.MemberIDs {
			if !idSet[id] {
				idSet[id] = true
				ids = append(ids, id)
			}
		}
	}
	resolved, err := deps.MemberStore.ListByIDs(ctx, ids)
	if err != nil {
		return GetOccupancyRangeResult{}, err
	}
	nameByID := make(map[string]string, len(resolved))
	for _, m := range resolved {
		nameByID[m.ID] = m.DisplayName()
	}

	var days []OccupancyDay
	for _, date := range domainStay.DatesInRange(query.StartDate, query.EndDate) {
		day := OccupancyDay{Date: date}

		seen := make(map[string]bool)
		headcount := 0
		for _, s := range domainStay.ActiveOn(date, stays) {
			for _, id := range s.MemberIDs {
				if seen[id] {
					continue
				}
				seen[id] = true
				name := nameByID[id]
				if name == "" {
					name = id
				}
				day.Names = append(day.Names, name)
			}
			for _, g := range s.Guests {
				headcount += g.Quantity
			}
		}
		day.Sleepers = len(day.Names) + headcount

		yard, err := deps.Board.YardSpaces(ctx, date)
		if err != nil {
			return GetOccupancyRangeResult{}, err
		}
		capacity := bed.TotalCapacity(bed.EffectiveRooms(yard))
		day.OpenBeds = capacity - day.Sleepers
		if day.OpenBeds < 0 {
			day.OpenBeds = 0
		}

		days = append(days, day)
	}

	return GetOccupancyRangeResult{Days: days}, nil
}
