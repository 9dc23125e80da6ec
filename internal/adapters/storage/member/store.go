package member

import (
	"context"

	domain "bunganutz/internal/domain/member"
)

// Store persists Member state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Member, error)
	Save(ctx context.Context, value domain.Member) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Member, error)
	ListByIDs(ctx context.Context, ids []string) ([]domain.Member, error)
}
