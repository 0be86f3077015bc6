package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/courtdata/gamelines/internal/domain/game"
	qb "github.com/courtdata/gamelines/internal/platform/querybuilder"
)

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

// Ensure inserts the game on first sighting and returns the row id either
// way. Concurrent callers racing on the same external id are arbitrated by
// the unique constraint: the loser's insert affects zero rows and the
// re-read below picks up the winner's row.
func (r *GameRepository) Ensure(ctx context.Context, g game.Game) (int64, error) {
	if err := g.Validate(); err != nil {
		return 0, fmt.Errorf("validate game: %w", err)
	}

	existing, found, err := r.GetByExternalID(ctx, g.ExternalID)
	if err != nil {
		return 0, err
	}
	if found {
		return existing.ID, nil
	}

	query, args, err := qb.InsertModel("games", gameInsertModel{
		ExternalID:   g.ExternalID,
		HomeTeamID:   g.HomeTeamID,
		AwayTeamID:   g.AwayTeamID,
		CommenceTime: g.CommenceTime,
	}, "ON CONFLICT (external_game_id) DO NOTHING")
	if err != nil {
		return 0, fmt.Errorf("build insert game query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if !isUniqueViolation(err) {
			return 0, fmt.Errorf("insert game external_id=%s: %w", g.ExternalID, err)
		}
	}

	existing, found, err = r.GetByExternalID(ctx, g.ExternalID)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, fmt.Errorf("game external_id=%s missing after insert", g.ExternalID)
	}

	return existing.ID, nil
}

func (r *GameRepository) GetByExternalID(ctx context.Context, externalID string) (game.Game, bool, error) {
	query, args, err := qb.Select("*").From("games").
		Where(qb.Eq("external_game_id", externalID)).
		ToSQL()
	if err != nil {
		return game.Game{}, false, fmt.Errorf("build select game by external id query: %w", err)
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("select game by external id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *GameRepository) ListByDate(ctx context.Context, day time.Time) ([]game.Game, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	query, args, err := qb.Select("*").From("games").
		Where(qb.Expr("commence_time >= ? AND commence_time < ?", start, end)).
		OrderBy("commence_time", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select games by date query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select games by date: %w", err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}
