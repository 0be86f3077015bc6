package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/courtdata/gamelines/internal/domain/bookmaker"
)

type BookmakerRepository struct {
	mu    sync.RWMutex
	byKey map[string]bookmaker.Bookmaker
}

func NewBookmakerRepository(bookmakers []bookmaker.Bookmaker) *BookmakerRepository {
	byKey := make(map[string]bookmaker.Bookmaker, len(bookmakers))
	for _, item := range bookmakers {
		byKey[item.Key] = item
	}

	return &BookmakerRepository{byKey: byKey}
}

func (r *BookmakerRepository) GetByKey(_ context.Context, key string) (bookmaker.Bookmaker, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byKey[key]
	return item, ok, nil
}

func (r *BookmakerRepository) List(_ context.Context) ([]bookmaker.Bookmaker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]bookmaker.Bookmaker, 0, len(r.byKey))
	for _, item := range r.byKey {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })

	return out, nil
}
