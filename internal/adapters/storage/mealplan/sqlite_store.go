package mealplan

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"bunganutz/internal/adapters/storage"
	domain "bunganutz/internal/domain/mealplan"
)

// SQLiteStore implements AssignmentStore using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new meal assignment store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const assignmentColumns = "id, stay_id, date, meal_type, menu, created_at"

// GetByID retrieves an Assignment with its cooks.
// PRE: id is non-empty
// POST: Returns the entity or domain.ErrAssignmentNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Assignment, error) {
	query := "SELECT " + assignmentColumns + " FROM meal_assignment WHERE id = ?"
	return s.getOne(ctx, query, id)
}

// GetForMeal retrieves the assignment for one meal of one stay.
// PRE: date is YYYY-MM-DD, mealType is valid
// POST: Returns the entity or domain.ErrAssignmentNotFound
func (s *SQLiteStore) GetForMeal(ctx context.Context, stayID, date string, mealType domain.MealType) (domain.Assignment, error) {
	query := "SELECT " + assignmentColumns + " FROM meal_assignment WHERE stay_id = ? AND date = ? AND meal_type = ?"
	return s.getOne(ctx, query, stayID, date, string(mealType))
}

func (s *SQLiteStore) getOne(ctx context.Context, query string, args ...any) (domain.Assignment, error) {
	row := s.db.QueryRowContext(ctx, query, args...)
	entity, err := scanAssignment(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Assignment{}, domain.ErrAssignmentNotFound
	}
	if err != nil {
		return domain.Assignment{}, err
	}

	if err := s.loadCooks(ctx, []*domain.Assignment{&entity}); err != nil {
		return domain.Assignment{}, err
	}
	return entity, nil
}

// Save persists an Assignment row. Cooks are managed separately through
// AddCook and RemoveCook.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Assignment) error {
	query := `INSERT INTO meal_assignment (id, stay_id, date, meal_type, menu, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET menu=excluded.menu`

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.StayID,
		entity.Date,
		string(entity.MealType),
		entity.Menu,
		entity.CreatedAt.Format(time.RFC3339Nano),
	)
	return err
}

// ListForDate retrieves all assignments for a date, cooks included.
// PRE: date is YYYY-MM-DD
// POST: Returns matching assignments ordered by meal type
func (s *SQLiteStore) ListForDate(ctx context.Context, date string) ([]domain.Assignment, error) {
	query := "SELECT " + assignmentColumns + " FROM meal_assignment WHERE date = ? ORDER BY meal_type, stay_id"
	return s.listQuery(ctx, query, date)
}

// ListForStay retrieves all assignments belonging to a stay.
// PRE: stayID is non-empty
// POST: Returns matching assignments ordered by date then meal type
func (s *SQLiteStore) ListForStay(ctx context.Context, stayID string) ([]domain.Assignment, error) {
	query := "SELECT " + assignmentColumns + " FROM meal_assignment WHERE stay_id = ? ORDER BY date, meal_type"
	return s.listQuery(ctx, query, stayID)
}

func (s *SQLiteStore) listQuery(ctx context.Context, query string, args ...any) ([]domain.Assignment, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Assignment
	for rows.Next() {
		entity, err := scanAssignment(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*domain.Assignment, len(results))
	for i := range results {
		refs[i] = &results[i]
	}
	if err := s.loadCooks(ctx, refs); err != nil {
		return nil, err
	}
	return results, nil
}

// AddCook records a cook signup. Signing the same cook up twice for the
// same meal is a no-op.
// PRE: cook.AssignmentID references an existing assignment
// POST: The cook row exists
func (s *SQLiteStore) AddCook(ctx context.Context, cook domain.Cook) error {
	query := `INSERT INTO meal_cook (id, assignment_id, cook_id, role, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(assignment_id, cook_id) DO UPDATE SET role=excluded.role`

	_, err := s.db.ExecContext(ctx, query,
		cook.ID,
		cook.AssignmentID,
		cook.CookID,
		cook.Role,
		cook.CreatedAt.Format(time.RFC3339Nano),
	)
	return err
}

// RemoveCook deletes a cook signup. Removing a cook that is not signed up
// is a no-op.
// PRE: assignmentID and cookID are non-empty
// POST: No cook row exists for the pair
func (s *SQLiteStore) RemoveCook(ctx context.Context, assignmentID, cookID string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM meal_cook WHERE assignment_id = ? AND cook_id = ?",
		assignmentID, cookID,
	)
	return err
}

// loadCooks fills Cooks for each assignment.
func (s *SQLiteStore) loadCooks(ctx context.Context, assignments []*domain.Assignment) error {
	if len(assignments) == 0 {
		return nil
	}

	byID := make(map[string]*domain.Assignment, len(assignments))
	placeholders := make([]string, 0, len(assignments))
	args := make([]any, 0, len(assignments))
	for _, a := range assignments {
		byID[a.ID] = a
		placeholders = append(placeholders, "?")
		args = append(args, a.ID)
	}

	query := "SELECT id, assignment_id, cook_id, role, created_at FROM meal_cook WHERE assignment_id IN (" +
		strings.Join(placeholders, ",") + ") ORDER BY created_at, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var cook domain.Cook
		var createdStr string
		if err := rows.Scan(&cook.ID, &cook.AssignmentID, &cook.CookID, &cook.Role, &createdStr); err != nil {
			return err
		}
		created, err := parseStoredTime(createdStr)
		if err != nil {
			return fmt.Errorf("failed to parse created_at: %w", err)
		}
		cook.CreatedAt = created

		if a, ok := byID[cook.AssignmentID]; ok {
			a.Cooks = append(a.Cooks, cook)
		}
	}
	return rows.Err()
}

func scanAssignment(scan func(dest ...any) error) (domain.Assignment, error) {
	var entity domain.Assignment
	var mealType, createdStr string
	if err := scan(
		&entity.ID,
		&entity.StayID,
		&entity.Date,
		&mealType,
		&entity.Menu,
		&createdStr,
	); err != nil {
		return domain.Assignment{}, err
	}
	entity.MealType = domain.MealType(mealType)

	created, err := parseStoredTime(createdStr)
	if err != nil {
		return domain.Assignment{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	entity.CreatedAt = created
	return entity, nil
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
