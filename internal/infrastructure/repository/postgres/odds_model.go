package postgres

import (
	"time"

	"github.com/courtdata/gamelines/internal/domain/odds"
)

type oddsTableModel struct {
	ID          int64     `db:"id"`
	GameID      int64     `db:"game_id"`
	BookmakerID int64     `db:"bookmaker_id"`
	MarketType  string    `db:"market_type"`
	Timestamp   time.Time `db:"timestamp"`
	HomePrice   *float64  `db:"home_price"`
	AwayPrice   *float64  `db:"away_price"`
	Spread      *float64  `db:"spread"`
	Total       *float64  `db:"total"`
	OverPrice   *float64  `db:"over_price"`
	UnderPrice  *float64  `db:"under_price"`
	CreatedAt   time.Time `db:"created_at"`
}

func (m oddsTableModel) toDomain() odds.Record {
	return odds.Record{
		ID:          m.ID,
		GameID:      m.GameID,
		BookmakerID: m.BookmakerID,
		MarketType:  odds.MarketType(m.MarketType),
		Timestamp:   m.Timestamp,
		HomePrice:   m.HomePrice,
		AwayPrice:   m.AwayPrice,
		Spread:      m.Spread,
		Total:       m.Total,
		OverPrice:   m.OverPrice,
		UnderPrice:  m.UnderPrice,
	}
}

type oddsInsertModel struct {
	GameID      int64     `db:"game_id"`
	BookmakerID int64     `db:"bookmaker_id"`
	MarketType  string    `db:"market_type"`
	Timestamp   time.Time `db:"timestamp"`
	HomePrice   *float64  `db:"home_price"`
	AwayPrice   *float64  `db:"away_price"`
	Spread      *float64  `db:"spread"`
	Total       *float64  `db:"total"`
	OverPrice   *float64  `db:"over_price"`
	UnderPrice  *float64  `db:"under_price"`
}
