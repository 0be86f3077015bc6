package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/courtdata/gamelines/external/oddsapi"
	"github.com/courtdata/gamelines/internal/config"
	"github.com/courtdata/gamelines/internal/domain/bookmaker"
	"github.com/courtdata/gamelines/internal/domain/game"
	"github.com/courtdata/gamelines/internal/domain/monitoring"
	"github.com/courtdata/gamelines/internal/domain/odds"
	"github.com/courtdata/gamelines/internal/domain/team"
	"github.com/courtdata/gamelines/internal/infrastructure/repository/memory"
	"github.com/courtdata/gamelines/internal/infrastructure/repository/postgres"
	"github.com/courtdata/gamelines/internal/interfaces/httpapi"
	"github.com/courtdata/gamelines/internal/platform/logging"
	"github.com/courtdata/gamelines/internal/usecase"
)

// App owns the wired service graph: repositories, use cases, the provider
// client, and the HTTP server.
type App struct {
	Server *http.Server
	Ingest *usecase.IngestService

	db     *sqlx.DB
	logger *logging.Logger
}

type repositories struct {
	teams      team.Repository
	bookmakers bookmaker.Repository
	games      game.Repository
	odds       odds.Repository
	monitoring monitoring.Repository
}

// New builds the application. With DB_URL set it runs against Postgres
// (instrumented via otelsqlx, seeded on first boot); without it everything
// lives in memory, which is the DB-less dev mode.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	app := &App{logger: logger}

	repos, err := app.buildRepositories(ctx, cfg)
	if err != nil {
		return nil, err
	}

	fetcher := oddsapi.NewClient(oddsapi.ClientConfig{
		BaseURL:    cfg.OddsAPIBaseURL,
		APIKey:     cfg.OddsAPIKey,
		Sport:      cfg.OddsAPISport,
		Regions:    cfg.OddsAPIRegions,
		Markets:    cfg.OddsAPIMarkets,
		OddsFormat: cfg.OddsAPIOddsFormat,
		Timeout:    cfg.OddsAPITimeout,
		Logger:     logger,
	})

	recorder := usecase.NewMonitoringService(repos.monitoring, logger)
	app.Ingest = usecase.NewIngestService(
		fetcher,
		repos.teams,
		repos.bookmakers,
		repos.games,
		repos.odds,
		recorder,
		usecase.IngestConfig{Workers: cfg.IngestWorkers},
		logger,
	)
	catalog := usecase.NewCatalogService(repos.teams, repos.bookmakers, repos.games, repos.odds)

	handler := httpapi.NewHandler(app.Ingest, recorder, catalog, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.MonitoringToken)

	app.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if app.Server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return app, nil
}

func (a *App) buildRepositories(ctx context.Context, cfg config.Config) (repositories, error) {
	if cfg.DBURL == "" {
		a.logger.Info("running with in-memory repositories", "reason", "DB_URL empty")
		return repositories{
			teams:      memory.NewTeamRepository(memory.SeedTeams()),
			bookmakers: memory.NewBookmakerRepository(memory.SeedBookmakers()),
			games:      memory.NewGameRepository(),
			odds:       memory.NewOddsRepository(),
			monitoring: memory.NewMonitoringRepository(),
		}, nil
	}

	db, err := otelsqlx.ConnectContext(ctx, "postgres", cfg.DBURL)
	if err != nil {
		return repositories{}, fmt.Errorf("connect postgres: %w", err)
	}
	a.db = db

	if err := postgres.BootstrapSeed(ctx, db); err != nil {
		return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
	}

	a.logger.Info("running with postgres repositories")
	return repositories{
		teams:      postgres.NewTeamRepository(db),
		bookmakers: postgres.NewBookmakerRepository(db),
		games:      postgres.NewGameRepository(db),
		odds:       postgres.NewOddsRepository(db),
		monitoring: postgres.NewMonitoringRepository(db),
	}, nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
