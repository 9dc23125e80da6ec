package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Create tables
	schema := `
	CREATE TABLE IF NOT EXISTS member (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		family_name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		food_preferences TEXT NOT NULL DEFAULT '',
		is_guest INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS stay (
		id TEXT PRIMARY KEY,
		organizer_id TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		arrival_meals TEXT NOT NULL DEFAULT '',
		departure_meals TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		FOREIGN KEY (organizer_id) REFERENCES member(id)
	);

	CREATE TABLE IF NOT EXISTS stay_member (
		stay_id TEXT NOT NULL,
		member_id TEXT NOT NULL,
		position INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (stay_id, member_id),
		FOREIGN KEY (stay_id) REFERENCES stay(id) ON DELETE CASCADE,
		FOREIGN KEY (member_id) REFERENCES member(id)
	);

	CREATE TABLE IF NOT EXISTS stay_guest (
		stay_id TEXT NOT NULL,
		guest_type TEXT NOT NULL,
		quantity INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (stay_id, guest_type),
		FOREIGN KEY (stay_id) REFERENCES stay(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS bed_assignment (
		date TEXT NOT NULL,
		bed_id TEXT NOT NULL,
		slot INTEGER NOT NULL DEFAULT 0,
		person_id TEXT NOT NULL,
		PRIMARY KEY (date, bed_id, slot)
	);

	CREATE INDEX IF NOT EXISTS idx_bed_assignment_person
		ON bed_assignment(date, person_id);

	CREATE TABLE IF NOT EXISTS yard_space (
		date TEXT PRIMARY KEY,
		count INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS meal_assignment (
		id TEXT PRIMARY KEY,
		stay_id TEXT NOT NULL,
		date TEXT NOT NULL,
		meal_type TEXT NOT NULL,
		menu TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		UNIQUE (stay_id, date, meal_type),
		FOREIGN KEY (stay_id) REFERENCES stay(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS meal_cook (
		id TEXT PRIMARY KEY,
		assignment_id TEXT NOT NULL,
		cook_id TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		UNIQUE (assignment_id, cook_id),
		FOREIGN KEY (assignment_id) REFERENCES meal_assignment(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS meal_attendance (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		member_id TEXT NOT NULL,
		created_at TEXT NOT NULL,
		UNIQUE (date, member_id),
		FOREIGN KEY (member_id) REFERENCES member(id)
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
