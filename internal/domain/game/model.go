package game

import (
	"fmt"
	"time"
)

// Game is one scheduled matchup, created on first sighting of the provider's
// game id and never updated by ingestion afterwards.
type Game struct {
	ID           int64
	ExternalID   string
	HomeTeamID   int64
	AwayTeamID   int64
	CommenceTime time.Time
}

func (g Game) Validate() error {
	if g.ExternalID == "" {
		return fmt.Errorf("game external id is required")
	}
	if g.HomeTeamID <= 0 || g.AwayTeamID <= 0 {
		return fmt.Errorf("game team references are required")
	}
	if g.CommenceTime.IsZero() {
		return fmt.Errorf("game commence time is required")
	}
	return nil
}
