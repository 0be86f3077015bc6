package postgres

import (
	"time"

	"github.com/courtdata/gamelines/internal/domain/bookmaker"
)

type bookmakerTableModel struct {
	ID        int64     `db:"id"`
	Key       string    `db:"key"`
	Name      string    `db:"name"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
}

func (m bookmakerTableModel) toDomain() bookmaker.Bookmaker {
	return bookmaker.Bookmaker{
		ID:       m.ID,
		Key:      m.Key,
		Name:     m.Name,
		IsActive: m.IsActive,
	}
}
