package game

import (
	"context"
	"time"
)

// Repository persists games with insert-once semantics.
type Repository interface {
	// Ensure returns the id of the game with g.ExternalID, inserting it first
	// when absent. An existing row is returned as-is; none of its columns are
	// overwritten. Safe under concurrent callers racing on the same external
	// id: the unique constraint decides the winner and the loser re-reads.
	Ensure(ctx context.Context, g Game) (int64, error)
	GetByExternalID(ctx context.Context, externalID string) (Game, bool, error)
	ListByDate(ctx context.Context, day time.Time) ([]Game, error)
}
