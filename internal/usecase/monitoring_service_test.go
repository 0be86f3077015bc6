package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/courtdata/gamelines/internal/domain/monitoring"
	"github.com/courtdata/gamelines/internal/infrastructure/repository/memory"
	"github.com/courtdata/gamelines/internal/platform/logging"
)

func TestMonitoringService_Record(t *testing.T) {
	t.Parallel()

	repo := memory.NewMonitoringRepository()
	service := NewMonitoringService(repo, logging.NewNop())

	durationMs := int64(125)
	stored, err := service.Record(context.Background(), monitoring.Event{
		FunctionName: "ingest-odds",
		EventType:    monitoring.EventSuccess,
		DurationMs:   &durationMs,
		Metadata:     map[string]any{"games_total": 3},
		Timestamp:    time.Date(2021, 10, 18, 12, 0, 5, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Record error: %v", err)
	}
	if stored.ID == 0 {
		t.Fatal("stored event must carry an id")
	}
	if stored.CreatedAt.IsZero() {
		t.Fatal("stored event must carry created_at")
	}
}

func TestMonitoringService_Record_InvalidInput(t *testing.T) {
	t.Parallel()

	service := NewMonitoringService(memory.NewMonitoringRepository(), logging.NewNop())

	tests := []struct {
		name  string
		event monitoring.Event
	}{
		{"missing function name", monitoring.Event{EventType: monitoring.EventStart, Timestamp: time.Now()}},
		{"unknown event type", monitoring.Event{FunctionName: "f", EventType: "finished", Timestamp: time.Now()}},
		{"zero timestamp", monitoring.Event{FunctionName: "f", EventType: monitoring.EventStart}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := service.Record(context.Background(), tc.event)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

type mockMonitoringRepo struct {
	mock.Mock
}

func (m *mockMonitoringRepo) Insert(ctx context.Context, e monitoring.Event) (monitoring.Event, error) {
	args := m.Called(ctx, e)
	return args.Get(0).(monitoring.Event), args.Error(1)
}

func TestMonitoringService_RecordQuiet_SwallowsStoreFailure(t *testing.T) {
	t.Parallel()

	repo := &mockMonitoringRepo{}
	repo.On("Insert", mock.Anything, mock.Anything).
		Return(monitoring.Event{}, errors.New("connection refused"))

	service := NewMonitoringService(repo, logging.NewNop())

	// Must not panic or propagate: telemetry never changes run outcomes.
	service.RecordQuiet(context.Background(), monitoring.Event{
		FunctionName: "ingest-odds",
		EventType:    monitoring.EventStart,
		Timestamp:    time.Now().UTC(),
	})

	repo.AssertExpectations(t)
}
