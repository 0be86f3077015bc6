package postgres

import (
	"time"

	"github.com/courtdata/gamelines/internal/domain/game"
)

type gameTableModel struct {
	ID           int64     `db:"id"`
	ExternalID   string    `db:"external_game_id"`
	HomeTeamID   int64     `db:"home_team_id"`
	AwayTeamID   int64     `db:"away_team_id"`
	CommenceTime time.Time `db:"commence_time"`
	CreatedAt    time.Time `db:"created_at"`
}

func (m gameTableModel) toDomain() game.Game {
	return game.Game{
		ID:           m.ID,
		ExternalID:   m.ExternalID,
		HomeTeamID:   m.HomeTeamID,
		AwayTeamID:   m.AwayTeamID,
		CommenceTime: m.CommenceTime,
	}
}

type gameInsertModel struct {
	ExternalID   string    `db:"external_game_id"`
	HomeTeamID   int64     `db:"home_team_id"`
	AwayTeamID   int64     `db:"away_team_id"`
	CommenceTime time.Time `db:"commence_time"`
}
