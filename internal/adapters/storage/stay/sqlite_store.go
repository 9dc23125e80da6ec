package stay

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"bunganutz/internal/adapters/storage"
	domain "bunganutz/internal/domain/stay"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new stay store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const stayColumns = "id, organizer_id, start_date, end_date, arrival_meals, departure_meals, created_at"

// GetByID retrieves a Stay with its attendee lists.
// PRE: id is non-empty
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Stay, error) {
	query := "SELECT " + stayColumns + " FROM stay WHERE id = ?"

	row := s.db.QueryRowContext(ctx, query, id)
	entity, err := scanStay(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Stay{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Stay{}, err
	}

	if err := s.loadAttendees(ctx, []*domain.Stay{&entity}); err != nil {
		return domain.Stay{}, err
	}
	return entity, nil
}

// Save persists a Stay along with its member and guest lists.
// The attendee rows are replaced wholesale so updates never leave
// stragglers behind.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Stay) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO stay (id, organizer_id, start_date, end_date, arrival_meals, departure_meals, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			organizer_id=excluded.organizer_id,
			start_date=excluded.start_date,
			end_date=excluded.end_date,
			arrival_meals=excluded.arrival_meals,
			departure_meals=excluded.departure_meals`

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.OrganizerID,
		entity.StartDate,
		entity.EndDate,
		strings.Join(entity.ArrivalMeals, ","),
		strings.Join(entity.DepartureMeals, ","),
		entity.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM stay_member WHERE stay_id = ?", entity.ID); err != nil {
		return err
	}
	for i, memberID := range entity.MemberIDs {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO stay_member (stay_id, member_id, position) VALUES (?, ?, ?)",
			entity.ID, memberID, i,
		)
		if err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM stay_guest WHERE stay_id = ?", entity.ID); err != nil {
		return err
	}
	for _, guest := range entity.Guests {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO stay_guest (stay_id, guest_type, quantity) VALUES (?, ?, ?)",
			entity.ID, guest.Type, guest.Quantity,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Delete removes a Stay. Attendee rows cascade.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM stay WHERE id = ?", id)
	return err
}

// List retrieves all stays ordered by start date.
// PRE: none
// POST: Returns all stays with attendee lists populated
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Stay, error) {
	query := "SELECT " + stayColumns + " FROM stay ORDER BY start_date, id"
	return s.listQuery(ctx, query)
}

// ListActiveOn retrieves stays whose inclusive date range covers date.
// PRE: date is YYYY-MM-DD
// POST: Returns stays active on the given date
func (s *SQLiteStore) ListActiveOn(ctx context.Context, date string) ([]domain.Stay, error) {
	query := "SELECT " + stayColumns + " FROM stay WHERE start_date <= ? AND end_date >= ? ORDER BY start_date, id"
	return s.listQuery(ctx, query, date, date)
}

// ListOverlapping retrieves stays intersecting the inclusive range.
// PRE: startDate <= endDate, both YYYY-MM-DD
// POST: Returns stays with at least one day inside the range
func (s *SQLiteStore) ListOverlapping(ctx context.Context, startDate, endDate string) ([]domain.Stay, error) {
	query := "SELECT " + stayColumns + " FROM stay WHERE start_date <= ? AND end_date >= ? ORDER BY start_date, id"
	return s.listQuery(ctx, query, endDate, startDate)
}

func (s *SQLiteStore) listQuery(ctx context.Context, query string, args ...any) ([]domain.Stay, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Stay
	for rows.Next() {
		entity, err := scanStay(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*domain.Stay, len(results))
	for i := range results {
		refs[i] = &results[i]
	}
	if err := s.loadAttendees(ctx, refs); err != nil {
		return nil, err
	}
	return results, nil
}

// loadAttendees fills MemberIDs and Guests for each stay.
func (s *SQLiteStore) loadAttendees(ctx context.Context, stays []*domain.Stay) error {
	if len(stays) == 0 {
		return nil
	}

	byID := make(map[string]*domain.Stay, len(stays))
	placeholders := make([]string, 0, len(stays))
	args := make([]any, 0, len(stays))
	for _, st := range stays {
		byID[st.ID] = st
		placeholders = append(placeholders, "?")
		args = append(args, st.ID)
	}
	in := strings.Join(placeholders, ",")

	memberRows, err := s.db.QueryContext(ctx,
		"SELECT stay_id, member_id FROM stay_member WHERE stay_id IN ("+in+") ORDER BY stay_id, position",
		args...,
	)
	if err != nil {
		return err
	}
	defer memberRows.Close()

	for memberRows.Next() {
		var stayID, memberID string
		if err := memberRows.Scan(&stayID, &memberID); err != nil {
			return err
		}
		if st, ok := byID[stayID]; ok {
			st.MemberIDs = append(st.MemberIDs, memberID)
		}
	}
	if err := memberRows.Err(); err != nil {
		return err
	}

	guestRows, err := s.db.QueryContext(ctx,
		"SELECT stay_id, guest_type, quantity FROM stay_guest WHERE stay_id IN ("+in+") ORDER BY stay_id, guest_type",
		args...,
	)
	if err != nil {
		return err
	}
	defer guestRows.Close()

	for guestRows.Next() {
		var stayID string
		var guest domain.GuestCount
		if err := guestRows.Scan(&stayID, &guest.Type, &guest.Quantity); err != nil {
			return err
		}
		if st, ok := byID[stayID]; ok {
			st.Guests = append(st.Guests, guest)
		}
	}
	return guestRows.Err()
}

func scanStay(scan func(dest ...any) error) (domain.Stay, error) {
	var entity domain.Stay
	var arrivalStr, departureStr, createdStr string
	if err := scan(
		&entity.ID,
		&entity.OrganizerID,
		&entity.StartDate,
		&entity.EndDate,
		&arrivalStr,
		&departureStr,
		&createdStr,
	); err != nil {
		return domain.Stay{}, err
	}
	entity.ArrivalMeals = splitMeals(arrivalStr)
	entity.DepartureMeals = splitMeals(departureStr)

	created, err := parseStoredTime(createdStr)
	if err != nil {
		return domain.Stay{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	entity.CreatedAt = created
	return entity, nil
}

// splitMeals reverses the comma join used on write. An empty column means
// no meals, not one empty meal.
func splitMeals(value string) []string {
	if value == "" {
		return nil
	}
	return strings.Split(value, ",")
}

func parseStoredTime(value string) (time.Time, error) {
	if idx := strings.Index(value, " m="); idx != -1 {
		value = value[:idx]
	}
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05.999999999 -0700 MST",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format: %q", value)
}
