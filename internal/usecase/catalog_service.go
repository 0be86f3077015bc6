package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/courtdata/gamelines/internal/domain/bookmaker"
	"github.com/courtdata/gamelines/internal/domain/game"
	"github.com/courtdata/gamelines/internal/domain/odds"
	"github.com/courtdata/gamelines/internal/domain/team"
)

// CatalogService serves the read side: master data and normalized odds.
type CatalogService struct {
	teamRepo      team.Repository
	bookmakerRepo bookmaker.Repository
	gameRepo      game.Repository
	oddsRepo      odds.Repository
}

func NewCatalogService(
	teamRepo team.Repository,
	bookmakerRepo bookmaker.Repository,
	gameRepo game.Repository,
	oddsRepo odds.Repository,
) *CatalogService {
	return &CatalogService{
		teamRepo:      teamRepo,
		bookmakerRepo: bookmakerRepo,
		gameRepo:      gameRepo,
		oddsRepo:      oddsRepo,
	}
}

func (s *CatalogService) ListTeams(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListTeams")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return teams, nil
}

func (s *CatalogService) ListBookmakers(ctx context.Context) ([]bookmaker.Bookmaker, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListBookmakers")
	defer span.End()

	bookmakers, err := s.bookmakerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookmakers: %w", err)
	}
	return bookmakers, nil
}

// ListGamesByDate returns games commencing on the given UTC calendar day.
func (s *CatalogService) ListGamesByDate(ctx context.Context, day time.Time) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListGamesByDate")
	defer span.End()

	if day.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	games, err := s.gameRepo.ListByDate(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("list games by date: %w", err)
	}
	return games, nil
}

// GetGameOdds returns the game identified by the provider's game id together
// with every odds row captured for it.
func (s *CatalogService) GetGameOdds(ctx context.Context, externalGameID string) (game.Game, []odds.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.GetGameOdds")
	defer span.End()

	externalGameID = strings.TrimSpace(externalGameID)
	if externalGameID == "" {
		return game.Game{}, nil, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	g, found, err := s.gameRepo.GetByExternalID(ctx, externalGameID)
	if err != nil {
		return game.Game{}, nil, fmt.Errorf("get game by external id: %w", err)
	}
	if !found {
		return game.Game{}, nil, fmt.Errorf("%w: game %s", ErrNotFound, externalGameID)
	}

	rows, err := s.oddsRepo.ListByGame(ctx, g.ID)
	if err != nil {
		return game.Game{}, nil, fmt.Errorf("list odds by game: %w", err)
	}

	return g, rows, nil
}
