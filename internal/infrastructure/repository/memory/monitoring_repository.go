package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/courtdata/gamelines/internal/domain/monitoring"
)

type MonitoringRepository struct {
	mu     sync.Mutex
	events []monitoring.Event
	nextID int64
}

func NewMonitoringRepository() *MonitoringRepository {
	return &MonitoringRepository{nextID: 1}
}

func (r *MonitoringRepository) Insert(_ context.Context, e monitoring.Event) (monitoring.Event, error) {
	if err := e.Validate(); err != nil {
		return monitoring.Event{}, fmt.Errorf("validate monitoring event: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e.ID = r.nextID
	r.nextID++
	e.CreatedAt = time.Now().UTC()
	r.events = append(r.events, e)

	return e, nil
}

// Events returns a copy of everything recorded so far, oldest first.
func (r *MonitoringRepository) Events() []monitoring.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]monitoring.Event, len(r.events))
	copy(out, r.events)

	return out
}
