package stay

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"bunganutz/internal/adapters/storage"
	domain "bunganutz/internal/domain/stay"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// An in-memory database lives per connection.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := storage.InitDB(db); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}

	// Seed the members the stays reference.
	for _, id := range []string{"m1", "m2", "m3"} {
		_, err := db.Exec(
			"INSERT INTO member (id, first_name, created_at) VALUES (?, ?, ?)",
			id, "Member "+id, time.Now().Format(time.RFC3339Nano),
		)
		if err != nil {
			t.Fatalf("failed to seed member %s: %v", id, err)
		}
	}

	return NewSQLiteStore(db)
}

func TestSQLiteStore_SaveAndGetByID(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	entity := domain.Stay{
		ID:             "s1",
		OrganizerID:    "m1",
		MemberIDs:      []string{"m1", "m2"},
		Guests:         []domain.GuestCount{{Type: "adult-guest", Quantity: 2}},
		StartDate:      "2025-07-04",
		EndDate:        "2025-07-06",
		ArrivalMeals:   []string{"dinner"},
		DepartureMeals: []string{"breakfast"},
		CreatedAt:      time.Now(),
	}
	if err := store.Save(ctx, entity); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.GetByID(ctx, "s1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.OrganizerID != "m1" {
		t.Errorf("OrganizerID = %q, want %q", got.OrganizerID, "m1")
	}
	if len(got.MemberIDs) != 2 || got.MemberIDs[0] != "m1" || got.MemberIDs[1] != "m2" {
		t.Errorf("MemberIDs = %v, want [m1 m2]", got.MemberIDs)
	}
	if len(got.Guests) != 1 || got.Guests[0].Quantity != 2 {
		t.Errorf("Guests = %v, want one adult-guest x2", got.Guests)
	}
	if len(got.ArrivalMeals) != 1 || got.ArrivalMeals[0] != "dinner" {
		t.Errorf("ArrivalMeals = %v, want [dinner]", got.ArrivalMeals)
	}
	if len(got.DepartureMeals) != 1 || got.DepartureMeals[0] != "breakfast" {
		t.Errorf("DepartureMeals = %v, want [breakfast]", got.DepartureMeals)
	}
}

func TestSQLiteStore_SaveReplacesAttendees(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	entity := domain.Stay{
		ID:          "s1",
		OrganizerID: "m1",
		MemberIDs:   []string{"m1", "m2"},
		StartDate:   "2025-07-04",
		EndDate:     "2025-07-06",
		CreatedAt:   time.Now(),
	}
	if err := store.Save(ctx, entity); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}

	entity.MemberIDs = []string{"m1", "m3"}
	entity.Guests = []domain.GuestCount{{Type: "child-guest", Quantity: 1}}
	if err := store.Save(ctx, entity); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	got, err := store.GetByID(ctx, "s1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.MemberIDs) != 2 || got.MemberIDs[0] != "m1" || got.MemberIDs[1] != "m3" {
		t.Errorf("MemberIDs = %v, want [m1 m3]", got.MemberIDs)
	}
	if len(got.Guests) != 1 || got.Guests[0].Type != "child-guest" {
		t.Errorf("Guests = %v, want one child-guest", got.Guests)
	}
}

func TestSQLiteStore_GetByID_NotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.GetByID(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSQLiteStore_EmptyMealsRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	entity := domain.Stay{
		ID:          "s1",
		OrganizerID: "m1",
		MemberIDs:   []string{"m1"},
		StartDate:   "2025-07-04",
		EndDate:     "2025-07-04",
		CreatedAt:   time.Now(),
	}
	if err := store.Save(ctx, entity); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.GetByID(ctx, "s1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.ArrivalMeals) != 0 {
		t.Errorf("ArrivalMeals = %v, want empty", got.ArrivalMeals)
	}
	if len(got.DepartureMeals) != 0 {
		t.Errorf("DepartureMeals = %v, want empty", got.DepartureMeals)
	}
}

func TestSQLiteStore_ListActiveOn(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	stays := []domain.Stay{
		{ID: "a", OrganizerID: "m1", MemberIDs: []string{"m1"}, StartDate: "2025-07-01", EndDate: "2025-07-05", CreatedAt: time.Now()},
		{ID: "b", OrganizerID: "m2", MemberIDs: []string{"m2"}, StartDate: "2025-07-05", EndDate: "2025-07-10", CreatedAt: time.Now()},
		{ID: "c", OrganizerID: "m3", MemberIDs: []string{"m3"}, StartDate: "2025-08-01", EndDate: "2025-08-02", CreatedAt: time.Now()},
	}
	for _, st := range stays {
		if err := store.Save(ctx, st); err != nil {
			t.Fatalf("Save %s failed: %v", st.ID, err)
		}
	}

	// Turnover day: both departing and arriving stays are active.
	active, err := store.ListActiveOn(ctx, "2025-07-05")
	if err != nil {
		t.Fatalf("ListActiveOn failed: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("got %d active stays, want 2", len(active))
	}
	if active[0].ID != "a" || active[1].ID != "b" {
		t.Errorf("active = [%s %s], want [a b]", active[0].ID, active[1].ID)
	}
}

func TestSQLiteStore_ListOverlapping(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	stays := []domain.Stay{
		{ID: "a", OrganizerID: "m1", MemberIDs: []string{"m1"}, StartDate: "2025-07-01", EndDate: "2025-07-05", CreatedAt: time.Now()},
		{ID: "b", OrganizerID: "m2", MemberIDs: []string{"m2"}, StartDate: "2025-08-01", EndDate: "2025-08-02", CreatedAt: time.Now()},
	}
	for _, st := range stays {
		if err := store.Save(ctx, st); err != nil {
			t.Fatalf("Save %s failed: %v", st.ID, err)
		}
	}

	got, err := store.ListOverlapping(ctx, "2025-07-04", "2025-07-20")
	if err != nil {
		t.Fatalf("ListOverlapping failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("got %v, want [a]", got)
	}
}
