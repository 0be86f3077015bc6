package odds

import "context"

// Repository persists odds records with insert-once semantics.
type Repository interface {
	// InsertIfAbsent writes r unless a row with the same
	// (game, bookmaker, market, timestamp) tuple already exists.
	// Returns false when the row was already there; that is a normal
	// outcome, not an error. Existing rows are never overwritten.
	InsertIfAbsent(ctx context.Context, r Record) (bool, error)
	ListByGame(ctx context.Context, gameID int64) ([]Record, error)
}
