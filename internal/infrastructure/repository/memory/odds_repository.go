package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/courtdata/gamelines/internal/domain/odds"
)

type oddsKey struct {
	gameID      int64
	bookmakerID int64
	marketType  odds.MarketType
	timestamp   int64
}

type OddsRepository struct {
	mu     sync.Mutex
	rows   map[oddsKey]odds.Record
	nextID int64
}

func NewOddsRepository() *OddsRepository {
	return &OddsRepository{rows: make(map[oddsKey]odds.Record), nextID: 1}
}

func (r *OddsRepository) InsertIfAbsent(_ context.Context, rec odds.Record) (bool, error) {
	if err := rec.Validate(); err != nil {
		return false, fmt.Errorf("validate odds record: %w", err)
	}

	key := oddsKey{
		gameID:      rec.GameID,
		bookmakerID: rec.BookmakerID,
		marketType:  rec.MarketType,
		timestamp:   rec.Timestamp.UTC().UnixNano(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[key]; ok {
		return false, nil
	}

	rec.ID = r.nextID
	r.nextID++
	r.rows[key] = rec

	return true, nil
}

func (r *OddsRepository) ListByGame(_ context.Context, gameID int64) ([]odds.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]odds.Record, 0)
	for _, item := range r.rows {
		if item.GameID == gameID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}
