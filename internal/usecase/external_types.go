package usecase

import (
	"context"
	"time"
)

// ExternalSnapshot is one point-in-time odds payload from the provider,
// already decoded out of the wire shape by the provider client.
type ExternalSnapshot struct {
	Timestamp         time.Time
	PreviousTimestamp *time.Time
	NextTimestamp     *time.Time
	Games             []ExternalGame
}

type ExternalGame struct {
	ExternalID   string
	SportKey     string
	CommenceTime time.Time
	HomeTeam     string
	AwayTeam     string
	Bookmakers   []ExternalBookmakerOdds
}

type ExternalBookmakerOdds struct {
	Key        string
	Title      string
	LastUpdate time.Time
	Markets    []ExternalMarket
}

type ExternalMarket struct {
	Key      string
	Outcomes []ExternalOutcome
}

type ExternalOutcome struct {
	Name  string
	Price float64
	Point *float64
}

// SnapshotFetcher retrieves the odds snapshot closest to the given date.
// Implementations perform no normalization beyond wire decoding; they also
// never retry across invocations, since retry cadence belongs to the caller's
// scheduler.
type SnapshotFetcher interface {
	FetchSnapshot(ctx context.Context, date time.Time) (ExternalSnapshot, error)
}
