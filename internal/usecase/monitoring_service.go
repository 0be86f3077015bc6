package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/courtdata/gamelines/internal/domain/monitoring"
	"github.com/courtdata/gamelines/internal/platform/logging"
)

// MonitoringService appends audit events for ingestion runs.
type MonitoringService struct {
	repo   monitoring.Repository
	logger *logging.Logger
}

func NewMonitoringService(repo monitoring.Repository, logger *logging.Logger) *MonitoringService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MonitoringService{repo: repo, logger: logger}
}

// Record validates and appends one event, returning the stored row.
func (s *MonitoringService) Record(ctx context.Context, e monitoring.Event) (monitoring.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MonitoringService.Record")
	defer span.End()

	e.FunctionName = strings.TrimSpace(e.FunctionName)
	e.EventType = strings.TrimSpace(e.EventType)
	if err := e.Validate(); err != nil {
		return monitoring.Event{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	stored, err := s.repo.Insert(ctx, e)
	if err != nil {
		return monitoring.Event{}, fmt.Errorf("insert monitoring event: %w", err)
	}
	return stored, nil
}

// RecordQuiet appends one event and swallows any failure. Telemetry must
// never change the outcome of the ingestion run it describes.
func (s *MonitoringService) RecordQuiet(ctx context.Context, e monitoring.Event) {
	if _, err := s.Record(ctx, e); err != nil {
		s.logger.WarnContext(ctx, "monitoring event dropped",
			"function_name", e.FunctionName,
			"event_type", e.EventType,
			"error", err,
		)
	}
}
