package odds

// Outcome is one priced selection inside a market, already detached from the
// provider payload shape.
type Outcome struct {
	Label string
	Price float64
	Point *float64
}

const (
	labelOver  = "Over"
	labelUnder = "Under"
)

// DecodeMarket maps one bookmaker market into the Record price fields for
// that market type. Labels are matched against the enclosing game's team
// names, never by position in the outcome list. Unrecognized labels and
// missing points degrade to unset fields; decoding never fails.
func DecodeMarket(marketType MarketType, outcomes []Outcome, homeTeam, awayTeam string) Record {
	rec := Record{MarketType: marketType}

	switch marketType {
	case MarketMoneyline:
		for _, outcome := range outcomes {
			price := outcome.Price
			switch outcome.Label {
			case homeTeam:
				rec.HomePrice = &price
			case awayTeam:
				rec.AwayPrice = &price
			}
		}
	case MarketSpread:
		for _, outcome := range outcomes {
			price := outcome.Price
			switch outcome.Label {
			case homeTeam:
				rec.HomePrice = &price
				if outcome.Point != nil {
					point := *outcome.Point
					rec.Spread = &point
				}
			case awayTeam:
				rec.AwayPrice = &price
			}
		}
	case MarketTotal:
		for _, outcome := range outcomes {
			price := outcome.Price
			switch outcome.Label {
			case labelOver:
				rec.OverPrice = &price
				if outcome.Point != nil {
					point := *outcome.Point
					rec.Total = &point
				}
			case labelUnder:
				rec.UnderPrice = &price
			}
		}
	}

	return rec
}

// Empty reports whether decoding produced no priced fields at all, meaning
// the market offered nothing recognizable for this game.
func (r Record) Empty() bool {
	return r.HomePrice == nil && r.AwayPrice == nil &&
		r.Spread == nil && r.Total == nil &&
		r.OverPrice == nil && r.UnderPrice == nil
}
