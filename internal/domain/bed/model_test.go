package bed

import "testing"

// TestEffectiveRooms_YardGeneration tests dynamic yard bed generation.
func TestEffectiveRooms_YardGeneration(t *testing.T) {
	rooms := EffectiveRooms(3)

	var yard Room
	found := false
	for _, r := range rooms {
		if r.Name == YardRoom {
			yard = r
			found = true
		}
	}
	if !found {
		t.Fatal("expected Yard room in catalog")
	}
	if len(yard.Beds) != 3 {
		t.Fatalf("expected 3 yard beds, got %d", len(yard.Beds))
	}
	for i, b := range yard.Beds {
		wantID := "yard-space-" + string(rune('1'+i))
		if b.ID != wantID {
			t.Errorf("yard bed %d: expected id %s, got %s", i, wantID, b.ID)
		}
		if b.Capacity != 1 {
			t.Errorf("yard bed %s: expected capacity 1, got %d", b.ID, b.Capacity)
		}
		if b.Type != TypePersonalTent {
			t.Errorf("yard bed %s: expected type personal-tent, got %s", b.ID, b.Type)
		}
	}
}

// TestEffectiveRooms_Pure tests that snapshots are independent and the
// shared catalog is never mutated.
func TestEffectiveRooms_Pure(t *testing.T) {
	a := EffectiveRooms(2)
	b := EffectiveRooms(0)

	var yardA, yardB int
	for _, r := range a {
		if r.Name == YardRoom {
			yardA = len(r.Beds)
		}
	}
	for _, r := range b {
		if r.Name == YardRoom {
			yardB = len(r.Beds)
		}
	}
	if yardA != 2 || yardB != 0 {
		t.Fatalf("snapshots not independent: yardA=%d yardB=%d", yardA, yardB)
	}

	// Mutating one snapshot must not leak into the next.
	a[0].Beds[0].Capacity = 99
	c := EffectiveRooms(0)
	if c[0].Beds[0].Capacity == 99 {
		t.Error("catalog mutated through a snapshot")
	}
}

// TestTotalCapacity tests the fixed catalog's capacity sum.
func TestTotalCapacity(t *testing.T) {
	// kw-queen 2 + bunk room 6 + porch 2 + loft 5 + main room 2 + tent stand 4 = 21
	if got := TotalCapacity(EffectiveRooms(0)); got != 21 {
		t.Errorf("expected total capacity 21 with no yard spaces, got %d", got)
	}
	if got := TotalCapacity(EffectiveRooms(2)); got != 23 {
		t.Errorf("expected total capacity 23 with two yard spaces, got %d", got)
	}
}

// TestFind tests bed lookup across the snapshot.
func TestFind(t *testing.T) {
	rooms := EffectiveRooms(1)

	b, r, err := Find(rooms, "bunk-bottom-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Capacity != 2 || r.Name != "Bunk Room" {
		t.Errorf("expected bunk-bottom-2 (cap 2) in Bunk Room, got %+v in %s", b, r.Name)
	}

	if _, _, err := Find(rooms, "yard-space-1"); err != nil {
		t.Errorf("expected yard-space-1 present with one yard space: %v", err)
	}
	if _, _, err := Find(rooms, "yard-space-2"); err == nil {
		t.Error("expected yard-space-2 absent with one yard space")
	}
}

// TestNewSlotKey tests slot range validation against capacity.
func TestNewSlotKey(t *testing.T) {
	b := Bed{ID: "porch-queen", Capacity: 2}

	if _, err := NewSlotKey(b, 0); err != nil {
		t.Errorf("slot 0 should be valid: %v", err)
	}
	if _, err := NewSlotKey(b, 1); err != nil {
		t.Errorf("slot 1 should be valid: %v", err)
	}
	if _, err := NewSlotKey(b, 2); err == nil {
		t.Error("slot 2 should exceed capacity 2")
	}
	if _, err := NewSlotKey(b, -1); err == nil {
		t.Error("negative slot should be rejected")
	}
}

// TestSheet_Accounting tests occupied/open counts and the capacity sum
// invariant across a sequence of assigns and clears.
func TestSheet_Accounting(t *testing.T) {
	rooms := EffectiveRooms(0)
	sheet := Sheet{}

	bunk, bunkRoom, err := Find(rooms, "bunk-bottom-1")
	if err != nil {
		t.Fatal(err)
	}

	sheet.Set(SlotKey{BedID: "bunk-bottom-1", Slot: 0}, "m1")
	sheet.Set(SlotKey{BedID: "bunk-bottom-1", Slot: 1}, "m2")
	sheet.Set(SlotKey{BedID: "bunk-top-1", Slot: 0}, "m3")

	if got := sheet.OccupiedCount(bunk); got != 2 {
		t.Errorf("expected bunk-bottom-1 occupied 2, got %d", got)
	}
	if got := sheet.OpenBeds(bunkRoom); got != bunkRoom.Capacity()-3 {
		t.Errorf("expected %d open beds in Bunk Room, got %d", bunkRoom.Capacity()-3, got)
	}

	// Capacity sum invariant holds after every mutation.
	checkInvariant := func() {
		t.Helper()
		for _, r := range rooms {
			occupied := 0
			for _, b := range r.Beds {
				occupied += sheet.OccupiedCount(b)
			}
			if sheet.OpenBeds(r)+occupied != r.Capacity() {
				t.Errorf("room %s: open %d + occupied %d != capacity %d",
					r.Name, sheet.OpenBeds(r), occupied, r.Capacity())
			}
		}
	}
	checkInvariant()

	sheet.Clear(SlotKey{BedID: "bunk-bottom-1", Slot: 0})
	checkInvariant()
	if got := sheet.OccupiedCount(bunk); got != 1 {
		t.Errorf("expected occupied 1 after clear, got %d", got)
	}

	if got := sheet.TotalOpen(rooms); got != TotalCapacity(rooms)-2 {
		t.Errorf("expected total open %d, got %d", TotalCapacity(rooms)-2, got)
	}
}

// TestSheet_SetAvailableClears tests that the sentinel clears and the
// operation is idempotent.
func TestSheet_SetAvailableClears(t *testing.T) {
	sheet := Sheet{}
	k := SlotKey{BedID: "main-couch", Slot: 0}

	sheet.Set(k, "m1")
	sheet.Set(k, Available)
	if got := sheet.Occupant(k); got != Available {
		t.Errorf("expected slot available, got %s", got)
	}

	// Clearing again changes nothing and raises no error.
	sheet.Set(k, Available)
	if got := sheet.Occupant(k); got != Available {
		t.Errorf("expected slot still available, got %s", got)
	}
	if len(sheet) != 0 {
		t.Errorf("expected empty sheet, got %d entries", len(sheet))
	}
}

// TestSheet_SlotOf tests the at-most-one-bed lookup helper.
func TestSheet_SlotOf(t *testing.T) {
	sheet := Sheet{}
	k1 := SlotKey{BedID: "loft-mattress-1", Slot: 0}
	sheet.Set(k1, "m1")

	got, ok := sheet.SlotOf("m1")
	if !ok || got != k1 {
		t.Errorf("expected slot %v for m1, got %v (found=%v)", k1, got, ok)
	}
	if _, ok := sheet.SlotOf("m2"); ok {
		t.Error("expected no slot for unassigned person")
	}

	ids := sheet.AssignedIDs()
	if !ids["m1"] || len(ids) != 1 {
		t.Errorf("expected assigned ids {m1}, got %v", ids)
	}
}
