package bedassignment

import (
	"context"

	"bunganutz/internal/domain/bed"
)

// Store persists per-date sleeping arrangements: who holds which bed slot
// on a given night, plus how many yard tent spaces are open that night.
type Store interface {
	SheetForDate(ctx context.Context, date string) (bed.Sheet, error)
	Upsert(ctx context.Context, date string, key bed.SlotKey, personID string) error
	Delete(ctx context.Context, date string, key bed.SlotKey) error
	DeleteForPerson(ctx context.Context, date string, personID string) error
	YardSpaces(ctx context.Context, date string) (int, error)
	SetYardSpaces(ctx context.Context, date string, count int) error
}
