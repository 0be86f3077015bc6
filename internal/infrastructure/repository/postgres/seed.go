package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/courtdata/gamelines/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads team and bookmaker master data on an empty database.
// A populated teams table short-circuits the whole thing, so running it on
// every startup is safe.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM teams`); err != nil {
		return fmt.Errorf("count teams for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, t := range memory.SeedTeams() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO teams (name, abbreviation, location)
VALUES (:name, :abbreviation, :location)
ON CONFLICT (name) DO NOTHING`, map[string]any{
			"name":         t.Name,
			"abbreviation": t.Abbreviation,
			"location":     t.Location,
		})
		if err != nil {
			return fmt.Errorf("bind seed team %s query: %w", t.Name, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed team %s: %w", t.Name, err)
		}
	}

	for _, b := range memory.SeedBookmakers() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO bookmakers (key, name, is_active)
VALUES (:key, :name, :is_active)
ON CONFLICT (key) DO NOTHING`, map[string]any{
			"key":       b.Key,
			"name":      b.Name,
			"is_active": b.IsActive,
		})
		if err != nil {
			return fmt.Errorf("bind seed bookmaker %s query: %w", b.Key, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed bookmaker %s: %w", b.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
