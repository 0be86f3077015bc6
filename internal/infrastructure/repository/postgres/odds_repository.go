package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/courtdata/gamelines/internal/domain/odds"
	qb "github.com/courtdata/gamelines/internal/platform/querybuilder"
)

type OddsRepository struct {
	db *sqlx.DB
}

func NewOddsRepository(db *sqlx.DB) *OddsRepository {
	return &OddsRepository{db: db}
}

// InsertIfAbsent is first-writer-wins: the unique constraint on
// (game_id, bookmaker_id, market_type, timestamp) absorbs duplicates and
// concurrent racers alike, and an existing row is never touched.
func (r *OddsRepository) InsertIfAbsent(ctx context.Context, rec odds.Record) (bool, error) {
	if err := rec.Validate(); err != nil {
		return false, fmt.Errorf("validate odds record: %w", err)
	}

	query, args, err := qb.InsertModel("game_odds", oddsInsertModel{
		GameID:      rec.GameID,
		BookmakerID: rec.BookmakerID,
		MarketType:  string(rec.MarketType),
		Timestamp:   rec.Timestamp,
		HomePrice:   rec.HomePrice,
		AwayPrice:   rec.AwayPrice,
		Spread:      rec.Spread,
		Total:       rec.Total,
		OverPrice:   rec.OverPrice,
		UnderPrice:  rec.UnderPrice,
	}, "ON CONFLICT (game_id, bookmaker_id, market_type, timestamp) DO NOTHING")
	if err != nil {
		return false, fmt.Errorf("build insert odds query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("insert odds game_id=%d bookmaker_id=%d market=%s: %w",
			rec.GameID, rec.BookmakerID, rec.MarketType, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert odds rows affected: %w", err)
	}

	return affected > 0, nil
}

func (r *OddsRepository) ListByGame(ctx context.Context, gameID int64) ([]odds.Record, error) {
	query, args, err := qb.Select("*").From("game_odds").
		Where(qb.Eq("game_id", gameID)).
		OrderBy("timestamp", "bookmaker_id", "market_type").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select odds by game query: %w", err)
	}

	var rows []oddsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select odds by game: %w", err)
	}

	out := make([]odds.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}
