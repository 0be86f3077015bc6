package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/courtdata/gamelines/internal/domain/bookmaker"
	"github.com/courtdata/gamelines/internal/domain/monitoring"
	"github.com/courtdata/gamelines/internal/domain/odds"
	"github.com/courtdata/gamelines/internal/domain/team"
	"github.com/courtdata/gamelines/internal/infrastructure/repository/memory"
	"github.com/courtdata/gamelines/internal/platform/logging"
)

type stubFetcher struct {
	snapshot ExternalSnapshot
	err      error
	calls    int
}

func (f *stubFetcher) FetchSnapshot(_ context.Context, _ time.Time) (ExternalSnapshot, error) {
	f.calls++
	if f.err != nil {
		return ExternalSnapshot{}, f.err
	}
	return f.snapshot, nil
}

type ingestFixture struct {
	service    *IngestService
	games      *memory.GameRepository
	odds       *memory.OddsRepository
	monitoring *memory.MonitoringRepository
}

func newIngestFixture(t *testing.T, fetcher *stubFetcher) ingestFixture {
	t.Helper()

	teams := memory.NewTeamRepository([]team.Team{
		{ID: 1, Name: "Tennessee Titans", Abbreviation: "TEN", Location: "Tennessee"},
		{ID: 2, Name: "Buffalo Bills", Abbreviation: "BUF", Location: "Buffalo"},
		{ID: 3, Name: "Boston Celtics", Abbreviation: "BOS", Location: "Boston"},
	})
	return newIngestFixtureWithTeams(t, fetcher, teams)
}

func newIngestFixtureWithTeams(t *testing.T, fetcher *stubFetcher, teams team.Repository) ingestFixture {
	t.Helper()

	bookmakers := memory.NewBookmakerRepository([]bookmaker.Bookmaker{
		{ID: 1, Key: "draftkings", Name: "DraftKings", IsActive: true},
	})
	games := memory.NewGameRepository()
	oddsRepo := memory.NewOddsRepository()
	monitoringRepo := memory.NewMonitoringRepository()
	recorder := NewMonitoringService(monitoringRepo, logging.NewNop())

	service := NewIngestService(
		fetcher, teams, bookmakers, games, oddsRepo, recorder,
		IngestConfig{Workers: 4}, logging.NewNop(),
	)

	return ingestFixture{service: service, games: games, odds: oddsRepo, monitoring: monitoringRepo}
}

func snapshotDate() time.Time {
	return time.Date(2021, 10, 18, 12, 0, 0, 0, time.UTC)
}

func moneylineSnapshot() ExternalSnapshot {
	return ExternalSnapshot{
		Timestamp: snapshotDate(),
		Games: []ExternalGame{
			{
				ExternalID:   "e912304de2b2ce35b473ce2ecd3d1502",
				CommenceTime: time.Date(2021, 10, 19, 0, 15, 0, 0, time.UTC),
				HomeTeam:     "Tennessee Titans",
				AwayTeam:     "Buffalo Bills",
				Bookmakers: []ExternalBookmakerOdds{
					{
						Key: "draftkings",
						Markets: []ExternalMarket{
							{
								Key: "h2h",
								Outcomes: []ExternalOutcome{
									{Name: "Buffalo Bills", Price: -294},
									{Name: "Tennessee Titans", Price: 230},
								},
							},
						},
					},
				},
			},
		},
	}
}

func TestIngestService_Run_EndToEndMoneyline(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{snapshot: moneylineSnapshot()}
	fx := newIngestFixture(t, fetcher)

	result, err := fx.service.Run(context.Background(), snapshotDate())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if !result.Succeeded || result.GamesProcessed != 1 || result.OddsInserted != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}

	g, found, err := fx.games.GetByExternalID(context.Background(), "e912304de2b2ce35b473ce2ecd3d1502")
	if err != nil || !found {
		t.Fatalf("game not stored: found=%v err=%v", found, err)
	}
	if g.HomeTeamID != 1 || g.AwayTeamID != 2 {
		t.Fatalf("unexpected team references: %+v", g)
	}

	rows, err := fx.odds.ListByGame(context.Background(), g.ID)
	if err != nil {
		t.Fatalf("ListByGame error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 odds row, got %d", len(rows))
	}

	row := rows[0]
	if row.MarketType != odds.MarketMoneyline {
		t.Fatalf("unexpected market type: %s", row.MarketType)
	}
	// Label-matched, not position-matched: Titans are home, Bills away.
	if row.HomePrice == nil || *row.HomePrice != 230 {
		t.Fatalf("unexpected home price: %+v", row.HomePrice)
	}
	if row.AwayPrice == nil || *row.AwayPrice != -294 {
		t.Fatalf("unexpected away price: %+v", row.AwayPrice)
	}
	if row.Spread != nil || row.Total != nil || row.OverPrice != nil || row.UnderPrice != nil {
		t.Fatalf("moneyline row must not populate spread/total fields: %+v", row)
	}
	if !row.Timestamp.Equal(snapshotDate()) {
		t.Fatalf("odds timestamp must be the snapshot capture time, got %s", row.Timestamp)
	}
}

func TestIngestService_Run_Idempotent(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{snapshot: moneylineSnapshot()}
	fx := newIngestFixture(t, fetcher)

	first, err := fx.service.Run(context.Background(), snapshotDate())
	if err != nil {
		t.Fatalf("first Run error: %v", err)
	}
	second, err := fx.service.Run(context.Background(), snapshotDate())
	if err != nil {
		t.Fatalf("second Run error: %v", err)
	}

	if first.OddsInserted != 1 {
		t.Fatalf("first run should insert 1 row, got %d", first.OddsInserted)
	}
	if second.OddsInserted != 0 || second.OddsDuplicate != 1 {
		t.Fatalf("second run must be a no-op: %+v", second)
	}
}

func TestIngestService_Run_SkipsUnknownTeam(t *testing.T) {
	t.Parallel()

	snapshot := moneylineSnapshot()
	snapshot.Games = append(snapshot.Games, ExternalGame{
		ExternalID:   "unknown-team-game",
		CommenceTime: time.Date(2021, 10, 19, 1, 0, 0, 0, time.UTC),
		HomeTeam:     "Springfield Isotopes",
		AwayTeam:     "Boston Celtics",
	})
	fetcher := &stubFetcher{snapshot: snapshot}
	fx := newIngestFixture(t, fetcher)

	result, err := fx.service.Run(context.Background(), snapshotDate())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if result.GamesProcessed != 1 || result.GamesSkipped != 1 || result.GamesFailed != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if _, found, _ := fx.games.GetByExternalID(context.Background(), "unknown-team-game"); found {
		t.Fatal("game with unknown team must not be stored")
	}
}

func TestIngestService_Run_SkipsUnknownBookmakerAndMarket(t *testing.T) {
	t.Parallel()

	snapshot := moneylineSnapshot()
	snapshot.Games[0].Bookmakers = append(snapshot.Games[0].Bookmakers,
		ExternalBookmakerOdds{
			Key: "unknown-book",
			Markets: []ExternalMarket{
				{Key: "h2h", Outcomes: []ExternalOutcome{{Name: "Tennessee Titans", Price: 100}}},
			},
		},
	)
	snapshot.Games[0].Bookmakers[0].Markets = append(snapshot.Games[0].Bookmakers[0].Markets,
		ExternalMarket{Key: "player_points", Outcomes: []ExternalOutcome{{Name: "someone", Price: 1}}},
	)
	fetcher := &stubFetcher{snapshot: snapshot}
	fx := newIngestFixture(t, fetcher)

	result, err := fx.service.Run(context.Background(), snapshotDate())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if result.GamesProcessed != 1 || result.GamesFailed != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.OddsInserted != 1 {
		t.Fatalf("only the known bookmaker's known market should insert, got %d", result.OddsInserted)
	}
}

func TestIngestService_Run_FetchFailureAbortsBatch(t *testing.T) {
	t.Parallel()

	fetchErr := errors.New("provider unavailable")
	fetcher := &stubFetcher{err: fetchErr}
	fx := newIngestFixture(t, fetcher)

	_, err := fx.service.Run(context.Background(), snapshotDate())
	if err == nil || !errors.Is(err, fetchErr) {
		t.Fatalf("expected wrapped fetch error, got %v", err)
	}

	events := fx.monitoring.Events()
	if len(events) != 2 {
		t.Fatalf("expected start + error events, got %d", len(events))
	}
	if events[0].EventType != monitoring.EventStart {
		t.Fatalf("first event must be start, got %s", events[0].EventType)
	}
	if events[1].EventType != monitoring.EventError {
		t.Fatalf("terminal event must be error, got %s", events[1].EventType)
	}
	if events[1].ErrorMessage == "" {
		t.Fatal("error event must carry the cause")
	}
}

func TestIngestService_Run_MonitoringCompleteness(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{snapshot: moneylineSnapshot()}
	fx := newIngestFixture(t, fetcher)

	if _, err := fx.service.Run(context.Background(), snapshotDate()); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	events := fx.monitoring.Events()
	if len(events) != 2 {
		t.Fatalf("expected start + success events, got %d", len(events))
	}
	if events[0].EventType != monitoring.EventStart || events[0].FunctionName != IngestFunctionName {
		t.Fatalf("unexpected start event: %+v", events[0])
	}

	terminal := events[1]
	if terminal.EventType != monitoring.EventSuccess {
		t.Fatalf("terminal event must be success, got %s", terminal.EventType)
	}
	if terminal.DurationMs == nil {
		t.Fatal("terminal event must carry duration")
	}
	if terminal.Metadata["games_processed"] != 1 || terminal.Metadata["odds_inserted"] != 1 {
		t.Fatalf("unexpected terminal metadata: %+v", terminal.Metadata)
	}
}

func TestIngestService_Run_FirstWriterWins(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{snapshot: moneylineSnapshot()}
	fx := newIngestFixture(t, fetcher)

	if _, err := fx.service.Run(context.Background(), snapshotDate()); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	// Same tuple, different prices: must be a no-op, not an overwrite.
	conflicting := moneylineSnapshot()
	conflicting.Games[0].Bookmakers[0].Markets[0].Outcomes = []ExternalOutcome{
		{Name: "Buffalo Bills", Price: -110},
		{Name: "Tennessee Titans", Price: -110},
	}
	fetcher.snapshot = conflicting

	result, err := fx.service.Run(context.Background(), snapshotDate())
	if err != nil {
		t.Fatalf("second Run error: %v", err)
	}
	if result.OddsInserted != 0 || result.OddsDuplicate != 1 {
		t.Fatalf("conflicting insert must be a duplicate no-op: %+v", result)
	}

	g, _, _ := fx.games.GetByExternalID(context.Background(), "e912304de2b2ce35b473ce2ecd3d1502")
	rows, _ := fx.odds.ListByGame(context.Background(), g.ID)
	if len(rows) != 1 {
		t.Fatalf("expected exactly 1 row, got %d", len(rows))
	}
	if rows[0].HomePrice == nil || *rows[0].HomePrice != 230 {
		t.Fatalf("first writer's prices must survive, got %+v", rows[0].HomePrice)
	}
}

// faultyTeamRepo fails lookups for failOn, or for every name when failOn is
// empty, standing in for an unreachable store.
type faultyTeamRepo struct {
	inner  *memory.TeamRepository
	failOn string
}

func (r *faultyTeamRepo) GetByName(ctx context.Context, name string) (team.Team, bool, error) {
	if r.failOn == "" || name == r.failOn {
		return team.Team{}, false, errors.New("connection refused")
	}
	return r.inner.GetByName(ctx, name)
}

func (r *faultyTeamRepo) List(ctx context.Context) ([]team.Team, error) {
	return r.inner.List(ctx)
}

func TestIngestService_Run_StoreUnreachableFailsBatch(t *testing.T) {
	t.Parallel()

	snapshot := moneylineSnapshot()
	snapshot.Games = append(snapshot.Games, ExternalGame{
		ExternalID:   "second-game",
		CommenceTime: time.Date(2021, 10, 19, 2, 0, 0, 0, time.UTC),
		HomeTeam:     "Boston Celtics",
		AwayTeam:     "Buffalo Bills",
	})
	fetcher := &stubFetcher{snapshot: snapshot}
	fx := newIngestFixtureWithTeams(t, fetcher, &faultyTeamRepo{})

	result, err := fx.service.Run(context.Background(), snapshotDate())
	if err == nil {
		t.Fatal("a batch where every game errored must fail the run")
	}
	if result.Succeeded {
		t.Fatalf("result must not report success: %+v", result)
	}
	if result.GamesFailed != 2 || result.GamesProcessed != 0 || result.GamesSkipped != 0 {
		t.Fatalf("unexpected counts: %+v", result)
	}

	events := fx.monitoring.Events()
	if len(events) != 2 {
		t.Fatalf("expected start + error events, got %d", len(events))
	}
	if events[1].EventType != monitoring.EventError {
		t.Fatalf("terminal event must be error, got %s", events[1].EventType)
	}
	if events[1].ErrorMessage == "" {
		t.Fatal("error event must carry the cause")
	}
}

func TestIngestService_Run_PartialFailureStillSucceeds(t *testing.T) {
	t.Parallel()

	snapshot := moneylineSnapshot()
	snapshot.Games = append(snapshot.Games, ExternalGame{
		ExternalID:   "second-game",
		CommenceTime: time.Date(2021, 10, 19, 2, 0, 0, 0, time.UTC),
		HomeTeam:     "Boston Celtics",
		AwayTeam:     "Buffalo Bills",
	})
	fetcher := &stubFetcher{snapshot: snapshot}
	teams := memory.NewTeamRepository([]team.Team{
		{ID: 1, Name: "Tennessee Titans", Abbreviation: "TEN", Location: "Tennessee"},
		{ID: 2, Name: "Buffalo Bills", Abbreviation: "BUF", Location: "Buffalo"},
		{ID: 3, Name: "Boston Celtics", Abbreviation: "BOS", Location: "Boston"},
	})
	fx := newIngestFixtureWithTeams(t, fetcher, &faultyTeamRepo{inner: teams, failOn: "Boston Celtics"})

	result, err := fx.service.Run(context.Background(), snapshotDate())
	if err != nil {
		t.Fatalf("one failed game must not fail the run: %v", err)
	}
	if !result.Succeeded || result.GamesProcessed != 1 || result.GamesFailed != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}

	events := fx.monitoring.Events()
	if len(events) != 2 || events[1].EventType != monitoring.EventSuccess {
		t.Fatalf("terminal event must be success, got %+v", events)
	}
}
