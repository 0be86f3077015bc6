package odds

import (
	"fmt"
	"time"
)

type MarketType string

const (
	MarketMoneyline MarketType = "MONEYLINE"
	MarketSpread    MarketType = "SPREAD"
	MarketTotal     MarketType = "TOTAL"
)

// Provider market keys as served by the odds API.
const (
	providerKeyMoneyline = "h2h"
	providerKeySpread    = "spreads"
	providerKeyTotal     = "totals"
)

// ParseMarketKey maps a provider market key to a MarketType. Unknown keys
// return ok=false and are skipped by callers, not treated as errors.
func ParseMarketKey(key string) (MarketType, bool) {
	switch key {
	case providerKeyMoneyline:
		return MarketMoneyline, true
	case providerKeySpread:
		return MarketSpread, true
	case providerKeyTotal:
		return MarketTotal, true
	default:
		return "", false
	}
}

// Record is one bookmaker's quote for one market at one capture time.
// Only the fields meaningful to the market type are set; the rest stay nil,
// which the store keeps as NULL.
type Record struct {
	ID          int64
	GameID      int64
	BookmakerID int64
	MarketType  MarketType
	Timestamp   time.Time
	HomePrice   *float64
	AwayPrice   *float64
	Spread      *float64
	Total       *float64
	OverPrice   *float64
	UnderPrice  *float64
}

func (r Record) Validate() error {
	if r.GameID <= 0 {
		return fmt.Errorf("odds game reference is required")
	}
	if r.BookmakerID <= 0 {
		return fmt.Errorf("odds bookmaker reference is required")
	}
	switch r.MarketType {
	case MarketMoneyline, MarketSpread, MarketTotal:
	default:
		return fmt.Errorf("unsupported market type %q", r.MarketType)
	}
	if r.Timestamp.IsZero() {
		return fmt.Errorf("odds timestamp is required")
	}
	return nil
}
