package storage

import (
	"database/sql"
	"sort"
	"testing"

	_ "modernc.org/sqlite"
)

// openTestDB creates an in-memory SQLite database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// An in-memory database lives per connection.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

// getTableNames returns sorted table names from sqlite_master, excluding internal tables.
func getTableNames(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		t.Fatalf("failed to query sqlite_master: %v", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("failed to scan table name: %v", err)
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// expectedTables is the sorted list of tables after InitDB.
var expectedTables = []string{
	"bed_assignment",
	"meal_assignment",
	"meal_attendance",
	"meal_cook",
	"member",
	"stay",
	"stay_guest",
	"stay_member",
	"yard_space",
}

// TestInitDB_Fresh verifies the schema applies cleanly to an empty database.
func TestInitDB_Fresh(t *testing.T) {
	db := openTestDB(t)

	if err := InitDB(db); err != nil {
		t.Fatalf("InitDB failed on fresh db: %v", err)
	}

	tables := getTableNames(t, db)
	if len(tables) != len(expectedTables) {
		t.Errorf("got %d tables, want %d\ngot:  %v\nwant: %v", len(tables), len(expectedTables), tables, expectedTables)
	}
	for i, want := range expectedTables {
		if i >= len(tables) {
			t.Errorf("missing table: %s", want)
			continue
		}
		if tables[i] != want {
			t.Errorf("table[%d] = %q, want %q", i, tables[i], want)
		}
	}
}

// TestInitDB_Idempotent verifies that running InitDB twice produces no errors.
func TestInitDB_Idempotent(t *testing.T) {
	db := openTestDB(t)

	if err := InitDB(db); err != nil {
		t.Fatalf("first InitDB failed: %v", err)
	}
	if err := InitDB(db); err != nil {
		t.Fatalf("second InitDB failed: %v", err)
	}

	tables := getTableNames(t, db)
	if len(tables) != len(expectedTables) {
		t.Errorf("got %d tables after second init, want %d", len(tables), len(expectedTables))
	}
}

// TestInitDB_ForeignKeysEnabled verifies the foreign_keys pragma sticks.
func TestInitDB_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	if err := InitDB(db); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}

	var enabled int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
		t.Fatalf("failed to read foreign_keys pragma: %v", err)
	}
	if enabled != 1 {
		t.Errorf("foreign_keys = %d, want 1", enabled)
	}
}
