package app

import (
	"context"
	"time"

	"github.com/courtdata/gamelines/internal/platform/logging"
	"github.com/courtdata/gamelines/internal/usecase"
)

// Scheduler periodically triggers an ingestion run for the current moment.
// It carries no retry or business logic: a failed run is logged and the next
// tick tries again on its own schedule.
type Scheduler struct {
	ingest   *usecase.IngestService
	interval time.Duration
	logger   *logging.Logger
}

func NewScheduler(ingest *usecase.IngestService, interval time.Duration, logger *logging.Logger) *Scheduler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Scheduler{ingest: ingest, interval: interval, logger: logger}
}

// Run blocks until ctx is cancelled. With a non-positive interval the
// scheduler is disabled and returns immediately; ingestion then happens only
// through the HTTP trigger.
func (s *Scheduler) Run(ctx context.Context) {
	if s.interval <= 0 {
		s.logger.Info("ingest scheduler disabled", "reason", "INGEST_INTERVAL not set")
		return
	}

	s.logger.Info("ingest scheduler starting", "interval", s.interval.String())
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("ingest scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	date := time.Now().UTC()
	result, err := s.ingest.Run(ctx, date)
	if err != nil {
		s.logger.ErrorContext(ctx, "scheduled ingest run failed",
			"date", date.Format(time.RFC3339), "error", err)
		return
	}

	s.logger.InfoContext(ctx, "scheduled ingest run finished",
		"date", date.Format(time.RFC3339),
		"games_total", result.GamesTotal,
		"games_processed", result.GamesProcessed,
		"games_skipped", result.GamesSkipped,
		"games_failed", result.GamesFailed,
		"odds_inserted", result.OddsInserted,
		"odds_duplicate", result.OddsDuplicate,
	)
}
