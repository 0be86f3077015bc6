package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/courtdata/gamelines/internal/domain/team"
)

type TeamRepository struct {
	mu     sync.RWMutex
	byName map[string]team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	byName := make(map[string]team.Team, len(teams))
	for _, item := range teams {
		byName[item.Name] = item
	}

	return &TeamRepository{byName: byName}
}

func (r *TeamRepository) GetByName(_ context.Context, name string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byName[name]
	return item, ok, nil
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.byName))
	for _, item := range r.byName {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}
