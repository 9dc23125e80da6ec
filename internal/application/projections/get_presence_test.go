package projections

import (
	"context"
	"errors"
	"testing"

	"bunganutz/internal/domain/bed"
	domainMealplan "bunganutz/internal/domain/mealplan"
	domainMember "bunganutz/internal/domain/member"
	domainStay "bunganutz/internal/domain/stay"
)

// stubStayStore implements StayStore over a fixed slice.
type stubStayStore struct {
	stays []domainStay.Stay
}

func (s *stubStayStore) GetByID(_ context.Context, id string) (domainStay.Stay, error) {
	for _, st := range s.stays {
		if st.ID == id {
			return st, nil
		}
	}
	return domainStay.Stay{}, domainStay.ErrNotFound
}

func (s *stubStayStore) List(_ context.Context) ([]domainStay.Stay, error) {
	return s.stays, nil
}

func (s *stubStayStore) ListActiveOn(_ context.Context, date string) ([]domainStay.Stay, error) {
	return domainStay.ActiveOn(date, s.stays), nil
}

func (s *stubStayStore) ListOverlapping(_ context.Context, startDate, endDate string) ([]domainStay.Stay, error) {
	var out []domainStay.Stay
	for _, st := range s.stays {
		if st.StartDate <= endDate && st.EndDate >= startDate {
			out = append(out, st)
		}
	}
	return out, nil
}

// stubMemberStore implements MemberStore over a fixed map.
type stubMemberStore struct {
	members map[string]domainMember.Member
}

func (s *stubMemberStore) GetByID(_ context.Context, id string) (domainMember.Member, error) {
	m, ok := s.members[id]
	if !ok {
		return domainMember.Member{}, errors.New("member not found")
	}
	return m, nil
}

func (s *stubMemberStore) List(_ context.Context) ([]domainMember.Member, error) {
	var out []domainMember.Member
	for _, m := range s.members {
		out = append(out, m)
	}
	return out, nil
}

func (s *stubMemberStore) ListByIDs(_ context.Context, ids []string) ([]domainMember.Member, error) {
	var out []domainMember.Member
	for _, id := range ids {
		if m, ok := s.members[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

// stubBoardStore implements BoardStore over in-memory maps.
type stubBoardStore struct {
	sheets map[string]bed.Sheet
	yards  map[string]int
}

func newStubBoardStore() *stubBoardStore {
	return &stubBoardStore{
		sheets: make(map[string]bed.Sheet),
		yards:  make(map[string]int),
	}
}

func (s *stubBoardStore) SheetForDate(_ context.Context, date string) (bed.Sheet, error) {
	if s.sheets[date] == nil {
		return bed.Sheet{}, nil
	}
	return s.sheets[date], nil
}

func (s *stubBoardStore) YardSpaces(_ context.Context, date string) (int, error) {
	return s.yards[date], nil
}

// stubAssignmentStore implements MealAssignmentStore over a fixed slice.
type stubAssignmentStore struct {
	assignments []domainMealplan.Assignment
}

func (s *stubAssignmentStore) ListForDate(_ context.Context, date string) ([]domainMealplan.Assignment, error) {
	var out []domainMealplan.Assignment
	for _, a := range s.assignments {
		if a.Date == date {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubAssignmentStore) ListForStay(_ context.Context, stayID string) ([]domainMealplan.Assignment, error) {
	var out []domainMealplan.Assignment
	for _, a := range s.assignments {
		if a.StayID == stayID {
			out = append(out, a)
		}
	}
	return out, nil
}

// stubDayGuestStore implements DayGuestStore over a fixed slice.
type stubDayGuestStore struct {
	attendances []domainMealplan.Attendance
}

func (s *stubDayGuestStore) ListByDate(_ context.Context, date string) ([]domainMealplan.Attendance, error) {
	var out []domainMealplan.Attendance
	for _, a := range s.attendances {
		if a.Date == date {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubDayGuestStore) ListByDateRange(_ context.Context, startDate, endDate string) ([]domainMealplan.Attendance, error) {
	var out []domainMealplan.Attendance
	for _, a := range s.attendances {
		if a.Date >= startDate && a.Date <= endDate {
			out = append(out, a)
		}
	}
	return out, nil
}

func testRoster() *stubMemberStore {
	return &stubMemberStore{members: map[string]domainMember.Member{
		"kathy": {ID: "kathy", FirstName: "Kathy"},
		"wayne": {ID: "wayne", FirstName: "Wayne"},
		"june":  {ID: "june", FirstName: "June"},
		"rex":   {ID: "rex", FirstName: "Rex", IsGuest: true},
	}}
}

func TestQueryGetPresence_TurnoverDayCountsBothParties(t *testing.T) {
	stays := &stubStayStore{stays: []domainStay.Stay{
		{ID: "a", OrganizerID: "kathy", MemberIDs: []string{"kathy", "wayne"}, StartDate: "2025-07-01", EndDate: "2025-07-05"},
		{ID: "b", OrganizerID: "june", MemberIDs: []string{"june", "rex"}, StartDate: "2025-07-05", EndDate: "2025-07-08"},
	}}

	result, err := QueryGetPresence(context.Background(), GetPresenceQuery{Date: "2025-07-05"},
		GetPresenceDeps{StayStore: stays, MemberStore: testRoster()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Family) != 3 {
		t.Errorf("got %d family, want 3", len(result.Family))
	}
	if len(result.NamedGuests) != 1 || result.NamedGuests[0].ID != "rex" {
		t.Errorf("NamedGuests = %v, want [rex]", result.NamedGuests)
	}
	if result.Total != 4 {
		t.Errorf("Total = %d, want 4", result.Total)
	}
}

func TestQueryGetPresence_HeadcountGuests(t *testing.T) {
	stays := &stubStayStore{stays: []domainStay.Stay{
		{
			ID: "a", OrganizerID: "kathy", MemberIDs: []string{"kathy"},
			Guests:    []domainStay.GuestCount{{Type: "adult-guest", Quantity: 2}, {Type: "child-guest", Quantity: 1}},
			StartDate: "2025-07-04", EndDate: "2025-07-06",
		},
	}}

	result, err := QueryGetPresence(context.Background(), GetPresenceQuery{Date: "2025-07-05"},
		GetPresenceDeps{StayStore: stays, MemberStore: testRoster()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.HeadcountGuests) != 3 {
		t.Fatalf("got %d headcount guests, want 3", len(result.HeadcountGuests))
	}
	if result.HeadcountGuests[0].ID != "guest-1" {
		t.Errorf("first headcount id = %q, want guest-1", result.HeadcountGuests[0].ID)
	}
	if result.HeadcountGuests[2].Name != "Guest 3" {
		t.Errorf("third headcount name = %q, want Guest 3", result.HeadcountGuests[2].Name)
	}
}

func TestQueryGetPresence_DayGuests(t *testing.T) {
	stays := &stubStayStore{stays: []domainStay.Stay{
		{ID: "a", OrganizerID: "kathy", MemberIDs: []string{"kathy"}, StartDate: "2025-07-04", EndDate: "2025-07-06"},
	}}
	dayGuests := &stubDayGuestStore{attendances: []domainMealplan.Attendance{
		{ID: "d1", Date: "2025-07-05", MemberID: "june"},
		{ID: "d2", Date: "2025-07-05", MemberID: "kathy"}, // already overnight, skip
	}}

	result, err := QueryGetPresence(context.Background(), GetPresenceQuery{Date: "2025-07-05"},
		GetPresenceDeps{StayStore: stays, MemberStore: testRoster(), DayGuests: dayGuests})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.DayGuests) != 1 || result.DayGuests[0].ID != "june" {
		t.Errorf("DayGuests = %v, want [june]", result.DayGuests)
	}
	if result.Total != 2 {
		t.Errorf("Total = %d, want 2", result.Total)
	}
}

func TestQueryGetPresence_EmptyDate(t *testing.T) {
	result, err := QueryGetPresence(context.Background(), GetPresenceQuery{Date: "2025-12-25"},
		GetPresenceDeps{StayStore: &stubStayStore{}, MemberStore: testRoster()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 0 {
		t.Errorf("Total = %d, want 0", result.Total)
	}
}
