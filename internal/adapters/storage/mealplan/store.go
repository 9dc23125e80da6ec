package mealplan

import (
	"context"

	domain "bunganutz/internal/domain/mealplan"
)

// AssignmentStore persists meal plans and their cook signups.
type AssignmentStore interface {
	GetByID(ctx context.Context, id string) (domain.Assignment, error)
	GetForMeal(ctx context.Context, stayID, date string, mealType domain.MealType) (domain.Assignment, error)
	Save(ctx context.Context, value domain.Assignment) error
	ListForDate(ctx context.Context, date string) ([]domain.Assignment, error)
	ListForStay(ctx context.Context, stayID string) ([]domain.Assignment, error)
	AddCook(ctx context.Context, cook domain.Cook) error
	RemoveCook(ctx context.Context, assignmentID, cookID string) error
}

// AttendanceStore persists day guests: people attending a date's meals
// without staying overnight.
type AttendanceStore interface {
	ListByDate(ctx context.Context, date string) ([]domain.Attendance, error)
	ListByDateRange(ctx context.Context, startDate, endDate string) ([]domain.Attendance, error)
	Add(ctx context.Context, value domain.Attendance) error
	Remove(ctx context.Context, date, memberID string) error
}
