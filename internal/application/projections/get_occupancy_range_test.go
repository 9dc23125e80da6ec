package projections

import (
	"context"
	"testing"

	domainStay "bunganutz/internal/domain/stay"
)

func TestQueryGetOccupancyRange(t *testing.T) {
	stays := &stubStayStore{stays: []domainStay.Stay{
		{
			ID: "a", OrganizerID: "kathy", MemberIDs: []string{"kathy", "wayne"},
			Guests:    []domainStay.GuestCount{{Type: "adult-guest", Quantity: 1}},
			StartDate: "2025-07-04", EndDate: "2025-07-05",
		},
	}}
	board := newStubBoardStore()

	result, err := QueryGetOccupancyRange(context.Background(), GetOccupancyRangeQuery{
		StartDate: "2025-07-03",
		EndDate:   "2025-07-05",
	}, GetOccupancyRangeDeps{StayStore: stays, MemberStore: testRoster(), Board: board})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Days) != 3 {
		t.Fatalf("got %d days, want 3", len(result.Days))
	}

	// The day before arrival is empty with a full house open.
	empty := result.Days[0]
	if empty.Sleepers != 0 {
		t.Errorf("day 0 sleepers = %d, want 0", empty.Sleepers)
	}
	if empty.OpenBeds != 21 {
		t.Errorf("day 0 open beds = %d, want 21", empty.OpenBeds)
	}

	// Arrival day: two named members plus one headcount guest.
	arrival := result.Days[1]
	if arrival.Sleepers != 3 {
		t.Errorf("day 1 sleepers = %d, want 3", arrival.Sleepers)
	}
	if arrival.OpenBeds != 18 {
		t.Errorf("day 1 open beds = %d, want 18", arrival.OpenBeds)
	}
	if len(arrival.Names) != 2 || arrival.Names[0] != "Kathy" {
		t.Errorf("day 1 names = %v, want [Kathy Wayne]", arrival.Names)
	}
}

// Opening yard spaces raises a night's capacity.
func TestQueryGetOccupancyRange_YardSpaces(t *testing.T) {
	board := newStubBoardStore()
	board.yards["2025-07-04"] = 2

	result, err := QueryGetOccupancyRange(context.Background(), GetOccupancyRangeQuery{
		StartDate: "2025-07-04",
		EndDate:   "2025-07-04",
	}, GetOccupancyRangeDeps{StayStore: &stubStayStore{}, MemberStore: testRoster(), Board: board})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Days[0].OpenBeds != 23 {
		t.Errorf("open beds = %d, want 23 with two yard spaces", result.Days[0].OpenBeds)
	}
}

func TestQueryGetOccupancyRange_BadRange(t *testing.T) {
	_, err := QueryGetOccupancyRange(context.Background(), GetOccupancyRangeQuery{
		StartDate: "2025-07-05",
		EndDate:   "2025-07-04",
	}, GetOccupancyRangeDeps{StayStore: &stubStayStore{}, MemberStore: testRoster(), Board: newStubBoardStore()})
	if err == nil {
		t.Fatal("expected error for inverted range")
	}
}
