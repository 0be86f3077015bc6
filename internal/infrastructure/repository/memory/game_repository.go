package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/courtdata/gamelines/internal/domain/game"
)

type GameRepository struct {
	mu           sync.Mutex
	byExternalID map[string]game.Game
	nextID       int64
}

func NewGameRepository() *GameRepository {
	return &GameRepository{byExternalID: make(map[string]game.Game), nextID: 1}
}

func (r *GameRepository) Ensure(_ context.Context, g game.Game) (int64, error) {
	if err := g.Validate(); err != nil {
		return 0, fmt.Errorf("validate game: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byExternalID[g.ExternalID]; ok {
		return existing.ID, nil
	}

	g.ID = r.nextID
	r.nextID++
	r.byExternalID[g.ExternalID] = g

	return g.ID, nil
}

func (r *GameRepository) GetByExternalID(_ context.Context, externalID string) (game.Game, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.byExternalID[externalID]
	return item, ok, nil
}

func (r *GameRepository) ListByDate(_ context.Context, day time.Time) ([]game.Game, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]game.Game, 0)
	for _, item := range r.byExternalID {
		if !item.CommenceTime.Before(start) && item.CommenceTime.Before(end) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CommenceTime.Equal(out[j].CommenceTime) {
			return out[i].ID < out[j].ID
		}
		return out[i].CommenceTime.Before(out[j].CommenceTime)
	})

	return out, nil
}
