package postgres

import (
	"database/sql"
	"time"

	"github.com/courtdata/gamelines/internal/domain/team"
)

type teamTableModel struct {
	ID           int64          `db:"id"`
	Name         string         `db:"name"`
	Abbreviation sql.NullString `db:"abbreviation"`
	Location     sql.NullString `db:"location"`
	CreatedAt    time.Time      `db:"created_at"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:           m.ID,
		Name:         m.Name,
		Abbreviation: m.Abbreviation.String,
		Location:     m.Location.String,
	}
}
