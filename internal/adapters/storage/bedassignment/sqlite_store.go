package bedassignment

import (
	"context"
	"database/sql"

	"bunganutz/internal/adapters/storage"
	"bunganutz/internal/domain/bed"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new bed assignment store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// SheetForDate loads all assignments for a date into a Sheet.
// PRE: date is YYYY-MM-DD
// POST: Returns a sheet, empty if nothing is assigned
func (s *SQLiteStore) SheetForDate(ctx context.Context, date string) (bed.Sheet, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT bed_id, slot, person_id FROM bed_assignment WHERE date = ?",
		date,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sheet := bed.Sheet{}
	for rows.Next() {
		var key bed.SlotKey
		var personID string
		if err := rows.Scan(&key.BedID, &key.Slot, &personID); err != nil {
			return nil, err
		}
		sheet[key] = personID
	}
	return sheet, rows.Err()
}

// Upsert records that personID holds the slot on the given date,
// displacing any previous occupant of that slot.
// PRE: key has been validated against the bed catalog
// POST: The slot row exists with the given occupant
func (s *SQLiteStore) Upsert(ctx context.Context, date string, key bed.SlotKey, personID string) error {
	query := `INSERT INTO bed_assignment (date, bed_id, slot, person_id)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date, bed_id, slot) DO UPDATE SET person_id=excluded.person_id`

	_, err := s.db.ExecContext(ctx, query, date, key.BedID, key.Slot, personID)
	return err
}

// Delete frees the slot on the given date. Deleting an already free slot
// is a no-op.
// PRE: date is YYYY-MM-DD
// POST: No row exists for the slot on that date
func (s *SQLiteStore) Delete(ctx context.Context, date string, key bed.SlotKey) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM bed_assignment WHERE date = ? AND bed_id = ? AND slot = ?",
		date, key.BedID, key.Slot,
	)
	return err
}

// DeleteForPerson frees every slot the person holds on the given date.
// PRE: personID is non-empty
// POST: The person holds no slot on that date
func (s *SQLiteStore) DeleteForPerson(ctx context.Context, date string, personID string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM bed_assignment WHERE date = ? AND person_id = ?",
		date, personID,
	)
	return err
}

// YardSpaces returns the number of tent spaces open in the yard on the
// given date. Zero when the date has no row.
// PRE: date is YYYY-MM-DD
// POST: Returns a non-negative count
func (s *SQLiteStore) YardSpaces(ctx context.Context, date string) (int, error) {
	row := s.db.QueryRowContext(ctx, "SELECT count FROM yard_space WHERE date = ?", date)

	var count int
	err := row.Scan(&count)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return count, err
}

// SetYardSpaces records the number of tent spaces open on the given date.
// A count of zero removes the row.
// PRE: count >= 0
// POST: YardSpaces returns count for that date
func (s *SQLiteStore) SetYardSpaces(ctx context.Context, date string, count int) error {
	if count <= 0 {
		_, err := s.db.ExecContext(ctx, "DELETE FROM yard_space WHERE date = ?", date)
		return err
	}

	query := `INSERT INTO yard_space (date, count) VALUES (?, ?)
		ON CONFLICT(date) DO UPDATE SET count=excluded.count`
	_, err := s.db.ExecContext(ctx, query, date, count)
	return err
}
