package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/courtdata/gamelines/internal/domain/bookmaker"
	"github.com/courtdata/gamelines/internal/domain/game"
	"github.com/courtdata/gamelines/internal/domain/monitoring"
	"github.com/courtdata/gamelines/internal/domain/odds"
	"github.com/courtdata/gamelines/internal/domain/team"
	"github.com/courtdata/gamelines/internal/platform/logging"
)

// IngestFunctionName labels monitoring events emitted by odds ingestion runs.
const IngestFunctionName = "ingest-odds"

type IngestConfig struct {
	Workers int
}

type IngestService struct {
	fetcher       SnapshotFetcher
	teamRepo      team.Repository
	bookmakerRepo bookmaker.Repository
	gameRepo      game.Repository
	oddsRepo      odds.Repository
	recorder      *MonitoringService
	cfg           IngestConfig
	logger        *logging.Logger
	now           func() time.Time
}

func NewIngestService(
	fetcher SnapshotFetcher,
	teamRepo team.Repository,
	bookmakerRepo bookmaker.Repository,
	gameRepo game.Repository,
	oddsRepo odds.Repository,
	recorder *MonitoringService,
	cfg IngestConfig,
	logger *logging.Logger,
) *IngestService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 8
	}
	return &IngestService{
		fetcher:       fetcher,
		teamRepo:      teamRepo,
		bookmakerRepo: bookmakerRepo,
		gameRepo:      gameRepo,
		oddsRepo:      oddsRepo,
		recorder:      recorder,
		cfg:           cfg,
		logger:        logger,
		now:           time.Now,
	}
}

// BatchResult summarizes one ingestion run. A run either failed before any
// game was processed (Succeeded=false, typically a fetch failure) or ran to
// completion with per-game outcomes tallied here.
type BatchResult struct {
	Date              time.Time `json:"date"`
	SnapshotTimestamp time.Time `json:"snapshot_timestamp"`
	GamesTotal        int       `json:"games_total"`
	GamesProcessed    int       `json:"games_processed"`
	GamesSkipped      int       `json:"games_skipped"`
	GamesFailed       int       `json:"games_failed"`
	OddsInserted      int       `json:"odds_inserted"`
	OddsDuplicate     int       `json:"odds_duplicate"`
	DurationMs        int64     `json:"duration_ms"`
	Succeeded         bool      `json:"succeeded"`
}

type gameOutcome struct {
	processed  bool
	skipped    bool
	failed     bool
	inserted   int
	duplicates int
}

// Run ingests the snapshot for date. Fetch failures abort the whole batch;
// anything that goes wrong inside a single game only affects that game,
// unless every game errors, which fails the run as a whole.
// Re-running the same date is a no-op end to end.
func (s *IngestService) Run(ctx context.Context, date time.Time) (BatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestService.Run")
	defer span.End()

	started := s.now()
	s.recorder.RecordQuiet(ctx, monitoring.Event{
		FunctionName: IngestFunctionName,
		EventType:    monitoring.EventStart,
		Timestamp:    started.UTC(),
		Metadata:     map[string]any{"date": date.UTC().Format(time.RFC3339)},
	})

	snapshot, err := s.fetcher.FetchSnapshot(ctx, date)
	if err != nil {
		s.recordTerminal(ctx, started, monitoring.EventError, BatchResult{}, err)
		return BatchResult{Date: date, DurationMs: time.Since(started).Milliseconds()},
			fmt.Errorf("fetch odds snapshot: %w", err)
	}

	result, err := s.processSnapshot(ctx, date, snapshot)
	result.DurationMs = time.Since(started).Milliseconds()
	if err != nil {
		s.recordTerminal(ctx, started, monitoring.EventError, result, err)
		return result, err
	}

	result.Succeeded = true
	s.recordTerminal(ctx, started, monitoring.EventSuccess, result, nil)
	return result, nil
}

func (s *IngestService) processSnapshot(ctx context.Context, date time.Time, snapshot ExternalSnapshot) (BatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestService.processSnapshot")
	defer span.End()

	result := BatchResult{
		Date:              date,
		SnapshotTimestamp: snapshot.Timestamp,
		GamesTotal:        len(snapshot.Games),
	}
	if len(snapshot.Games) == 0 {
		return result, nil
	}

	pool, err := ants.NewPool(s.cfg.Workers)
	if err != nil {
		return result, fmt.Errorf("create ingest worker pool: %w", err)
	}
	defer pool.Release()

	var processed, skipped, failed atomic.Int32
	var inserted, duplicates atomic.Int64

	var workers sync.WaitGroup
	for _, item := range snapshot.Games {
		item := item
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			outcome := s.processGame(ctx, snapshot.Timestamp, item)
			switch {
			case outcome.failed:
				failed.Add(1)
			case outcome.skipped:
				skipped.Add(1)
			default:
				processed.Add(1)
			}
			inserted.Add(int64(outcome.inserted))
			duplicates.Add(int64(outcome.duplicates))
		}); err != nil {
			workers.Done()
			return result, fmt.Errorf("submit game to worker pool: %w", err)
		}
	}
	workers.Wait()

	result.GamesProcessed = int(processed.Load())
	result.GamesSkipped = int(skipped.Load())
	result.GamesFailed = int(failed.Load())
	result.OddsInserted = int(inserted.Load())
	result.OddsDuplicate = int(duplicates.Load())

	// Every single game erroring means the batch never got a real evaluation,
	// almost always an unreachable store. That is a failed run, not a run with
	// casualties.
	if result.GamesTotal > 0 && result.GamesFailed == result.GamesTotal {
		return result, fmt.Errorf("all %d games in batch failed", result.GamesTotal)
	}
	return result, nil
}

// processGame runs one game's pipeline sequentially: resolve teams, ensure
// the game row, then insert per-bookmaker per-market odds. Returns an outcome
// instead of an error so one game can never abort its siblings.
func (s *IngestService) processGame(ctx context.Context, capturedAt time.Time, item ExternalGame) gameOutcome {
	homeTeam, found, err := s.teamRepo.GetByName(ctx, item.HomeTeam)
	if err != nil {
		s.logger.ErrorContext(ctx, "resolve home team failed",
			"external_game_id", item.ExternalID, "team", item.HomeTeam, "error", err)
		return gameOutcome{failed: true}
	}
	if !found {
		s.logger.WarnContext(ctx, "skipping game with unknown home team",
			"external_game_id", item.ExternalID, "team", item.HomeTeam)
		return gameOutcome{skipped: true}
	}

	awayTeam, found, err := s.teamRepo.GetByName(ctx, item.AwayTeam)
	if err != nil {
		s.logger.ErrorContext(ctx, "resolve away team failed",
			"external_game_id", item.ExternalID, "team", item.AwayTeam, "error", err)
		return gameOutcome{failed: true}
	}
	if !found {
		s.logger.WarnContext(ctx, "skipping game with unknown away team",
			"external_game_id", item.ExternalID, "team", item.AwayTeam)
		return gameOutcome{skipped: true}
	}

	gameID, err := s.gameRepo.Ensure(ctx, game.Game{
		ExternalID:   item.ExternalID,
		HomeTeamID:   homeTeam.ID,
		AwayTeamID:   awayTeam.ID,
		CommenceTime: item.CommenceTime,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "ensure game failed",
			"external_game_id", item.ExternalID, "error", err)
		return gameOutcome{failed: true}
	}

	outcome := gameOutcome{processed: true}
	for _, block := range item.Bookmakers {
		book, found, err := s.bookmakerRepo.GetByKey(ctx, block.Key)
		if err != nil {
			s.logger.ErrorContext(ctx, "resolve bookmaker failed",
				"external_game_id", item.ExternalID, "bookmaker", block.Key, "error", err)
			outcome.failed = true
			outcome.processed = false
			return outcome
		}
		if !found {
			continue
		}

		for _, market := range block.Markets {
			marketType, ok := odds.ParseMarketKey(market.Key)
			if !ok {
				continue
			}

			rec := odds.DecodeMarket(marketType, toOutcomes(market.Outcomes), item.HomeTeam, item.AwayTeam)
			if rec.Empty() {
				continue
			}
			rec.GameID = gameID
			rec.BookmakerID = book.ID
			rec.Timestamp = capturedAt

			wasInserted, err := s.oddsRepo.InsertIfAbsent(ctx, rec)
			if err != nil {
				s.logger.ErrorContext(ctx, "insert odds failed",
					"external_game_id", item.ExternalID,
					"bookmaker", block.Key,
					"market_type", string(marketType),
					"error", err)
				outcome.failed = true
				outcome.processed = false
				return outcome
			}
			if wasInserted {
				outcome.inserted++
			} else {
				outcome.duplicates++
			}
		}
	}

	return outcome
}

func (s *IngestService) recordTerminal(ctx context.Context, started time.Time, eventType string, result BatchResult, runErr error) {
	durationMs := time.Since(started).Milliseconds()
	event := monitoring.Event{
		FunctionName: IngestFunctionName,
		EventType:    eventType,
		DurationMs:   &durationMs,
		Timestamp:    s.now().UTC(),
		Metadata: map[string]any{
			"games_total":     result.GamesTotal,
			"games_processed": result.GamesProcessed,
			"games_skipped":   result.GamesSkipped,
			"games_failed":    result.GamesFailed,
			"odds_inserted":   result.OddsInserted,
			"odds_duplicate":  result.OddsDuplicate,
		},
	}
	if runErr != nil {
		event.ErrorMessage = runErr.Error()
	}
	s.recorder.RecordQuiet(ctx, event)
}

func toOutcomes(items []ExternalOutcome) []odds.Outcome {
	out := make([]odds.Outcome, 0, len(items))
	for _, item := range items {
		out = append(out, odds.Outcome{Label: item.Name, Price: item.Price, Point: item.Point})
	}
	return out
}
