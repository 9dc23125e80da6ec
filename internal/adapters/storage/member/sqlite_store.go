package member

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"bunganutz/internal/adapters/storage"
	domain "bunganutz/internal/domain/member"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new member store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const memberColumns = "id, first_name, family_name, email, food_preferences, is_guest, created_at"

// GetByID retrieves a Member by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Member, error) {
	query := "SELECT " + memberColumns + " FROM member WHERE id = ?"

	row := s.db.QueryRowContext(ctx, query, id)
	entity, err := scanMember(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Member{}, fmt.Errorf("member not found: %w", err)
	}
	return entity, err
}

// Save persists a Member to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Member) error {
	query := `INSERT INTO member (id, first_name, family_name, email, food_preferences, is_guest, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			first_name=excluded.first_name,
			family_name=excluded.family_name,
			email=excluded.email,
			food_preferences=excluded.food_preferences,
			is_guest=excluded.is_guest`

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.FirstName,
		entity.FamilyName,
		entity.Email,
		entity.FoodPreferences,
		boolToInt(entity.IsGuest),
		entity.CreatedAt.Format(time.RFC3339Nano),
	)
	return err
}

// Delete removes a Member from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM member WHERE id = ?", id)
	return err
}

// List retrieves all members ordered by family then first name.
// PRE: none
// POST: Returns all members
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Member, error) {
	query := "SELECT " + memberColumns + " FROM member ORDER BY family_name, first_name"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMembers(rows)
}

// ListByIDs retrieves the members matching the given ids. Missing ids are
// silently skipped.
// PRE: none
// POST: Returns members whose id appears in ids
func (s *SQLiteStore) ListByIDs(ctx context.Context, ids []string) ([]domain.Member, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	query := "SELECT " + memberColumns + " FROM member WHERE id IN (" + placeholders + ") ORDER BY family_name, first_name"

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMembers(rows)
}

func scanMembers(rows *sql.Rows) ([]domain.Member, error) {
	var results []domain.Member
	for rows.Next() {
		entity, err := scanMember(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

func scanMember(scan func(dest ...any) error) (domain.Member, error) {
	var entity domain.Member
	var isGuest int
	var createdStr string
	if err := scan(
		&entity.ID,
		&entity.FirstName,
		&entity.FamilyName,
		&entity.Email,
		&entity.FoodPreferences,
		&isGuest,
		&createdStr,
	); err != nil {
		return domain.Member{}, err
	}
	entity.IsGuest = isGuest != 0

	created, err := parseStoredTime(createdStr)
	if err != nil {
		return domain.Member{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	entity.CreatedAt = created
	return entity, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// parseStoredTime parses a timestamp stored by this or an earlier schema
// version. SQLite stores whatever string we hand it, so be liberal.
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
