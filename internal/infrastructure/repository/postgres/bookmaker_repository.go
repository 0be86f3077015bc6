package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/courtdata/gamelines/internal/domain/bookmaker"
	qb "github.com/courtdata/gamelines/internal/platform/querybuilder"
)

type BookmakerRepository struct {
	db *sqlx.DB
}

func NewBookmakerRepository(db *sqlx.DB) *BookmakerRepository {
	return &BookmakerRepository{db: db}
}

func (r *BookmakerRepository) GetByKey(ctx context.Context, key string) (bookmaker.Bookmaker, bool, error) {
	query, args, err := qb.Select("*").From("bookmakers").
		Where(qb.Eq("key", key)).
		ToSQL()
	if err != nil {
		return bookmaker.Bookmaker{}, false, fmt.Errorf("build select bookmaker by key query: %w", err)
	}

	var row bookmakerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return bookmaker.Bookmaker{}, false, nil
		}
		return bookmaker.Bookmaker{}, false, fmt.Errorf("select bookmaker by key: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *BookmakerRepository) List(ctx context.Context) ([]bookmaker.Bookmaker, error) {
	query, args, err := qb.Select("*").From("bookmakers").
		OrderBy("key").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select bookmakers query: %w", err)
	}

	var rows []bookmakerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select bookmakers: %w", err)
	}

	out := make([]bookmaker.Bookmaker, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}
