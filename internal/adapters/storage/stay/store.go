package stay

import (
	"context"

	domain "bunganutz/internal/domain/stay"
)

// Store persists Stay state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Stay, error)
	Save(ctx context.Context, value domain.Stay) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Stay, error)
	ListActiveOn(ctx context.Context, date string) ([]domain.Stay, error)
	ListOverlapping(ctx context.Context, startDate, endDate string) ([]domain.Stay, error)
}
