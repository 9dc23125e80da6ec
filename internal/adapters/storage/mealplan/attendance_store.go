package mealplan

import (
	"context"
	"time"

	"bunganutz/internal/adapters/storage"
	domain "bunganutz/internal/domain/mealplan"
)

// SQLiteAttendanceStore implements AttendanceStore using SQLite.
type SQLiteAttendanceStore struct {
	db storage.SQLDB
}

// NewSQLiteAttendanceStore creates a new day guest store.
func NewSQLiteAttendanceStore(db storage.SQLDB) *SQLiteAttendanceStore {
	return &SQLiteAttendanceStore{db: db}
}

// ListByDate retrieves all day guests for a date.
// PRE: date is YYYY-MM-DD
// POST: Returns matching records in signup order
func (s *SQLiteAttendanceStore) ListByDate(ctx context.Context, date string) ([]domain.Attendance, error) {
	query := "SELECT id, date, member_id, created_at FROM meal_attendance WHERE date = ? ORDER BY created_at, id"
	return s.listQuery(ctx, query, date)
}

// ListByDateRange retrieves day guests across an inclusive date range.
// PRE: startDate <= endDate, both YYYY-MM-DD
// POST: Returns matching records ordered by date
func (s *SQLiteAttendanceStore) ListByDateRange(ctx context.Context, startDate, endDate string) ([]domain.Attendance, error) {
	query := "SELECT id, date, member_id, created_at FROM meal_attendance WHERE date >= ? AND date <= ? ORDER BY date, created_at, id"
	return s.listQuery(ctx, query, startDate, endDate)
}

func (s *SQLiteAttendanceStore) listQuery(ctx context.Context, query string, args ...any) ([]domain.Attendance, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Attendance
	for rows.Next() {
		var entity domain.Attendance
		var createdStr string
		if err := rows.Scan(&entity.ID, &entity.Date, &entity.MemberID, &createdStr); err != nil {
			return nil, err
		}
		created, err := parseStoredTime(createdStr)
		if err != nil {
			return nil, err
		}
		entity.CreatedAt = created
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Add records a day guest. Adding the same member twice for a date is a
// no-op.
// PRE: entity has non-empty Date and MemberID
// POST: The record exists
func (s *SQLiteAttendanceStore) Add(ctx context.Context, entity domain.Attendance) error {
	query := `INSERT INTO meal_attendance (id, date, member_id, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date, member_id) DO NOTHING`

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.Date,
		entity.MemberID,
		entity.CreatedAt.Format(time.RFC3339Nano),
	)
	return err
}

// Remove deletes a day guest record. Removing an absent record is a no-op.
// PRE: date and memberID are non-empty
// POST: No record exists for the pair
func (s *SQLiteAttendanceStore) Remove(ctx context.Context, date, memberID string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM meal_attendance WHERE date = ? AND member_id = ?",
		date, memberID,
	)
	return err
}
