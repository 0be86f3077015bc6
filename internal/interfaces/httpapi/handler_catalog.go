package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/courtdata/gamelines/internal/domain/bookmaker"
	"github.com/courtdata/gamelines/internal/domain/game"
	"github.com/courtdata/gamelines/internal/domain/odds"
	"github.com/courtdata/gamelines/internal/domain/team"
	"github.com/courtdata/gamelines/internal/usecase"
)

type teamDTO struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Location     string `json:"location"`
}

type bookmakerDTO struct {
	ID       int64  `json:"id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

type gameDTO struct {
	ID             int64     `json:"id"`
	ExternalGameID string    `json:"external_game_id"`
	HomeTeamID     int64     `json:"home_team_id"`
	AwayTeamID     int64     `json:"away_team_id"`
	CommenceTime   time.Time `json:"commence_time"`
}

type oddsDTO struct {
	ID          int64     `json:"id"`
	GameID      int64     `json:"game_id"`
	BookmakerID int64     `json:"bookmaker_id"`
	MarketType  string    `json:"market_type"`
	Timestamp   time.Time `json:"timestamp"`
	HomePrice   *float64  `json:"home_price,omitempty"`
	AwayPrice   *float64  `json:"away_price,omitempty"`
	Spread      *float64  `json:"spread,omitempty"`
	Total       *float64  `json:"total,omitempty"`
	OverPrice   *float64  `json:"over_price,omitempty"`
	UnderPrice  *float64  `json:"under_price,omitempty"`
}

type gameOddsDTO struct {
	Game gameDTO   `json:"game"`
	Odds []oddsDTO `json:"odds"`
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.catalogService.ListTeams(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}

	writeData(ctx, w, items)
}

func (h *Handler) ListBookmakers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListBookmakers")
	defer span.End()

	bookmakers, err := h.catalogService.ListBookmakers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list bookmakers failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]bookmakerDTO, 0, len(bookmakers))
	for _, b := range bookmakers {
		items = append(items, bookmakerToDTO(b))
	}

	writeData(ctx, w, items)
}

func (h *Handler) ListGamesByDate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGamesByDate")
	defer span.End()

	rawDate := strings.TrimSpace(r.URL.Query().Get("date"))
	if rawDate == "" {
		writeError(ctx, w, fmt.Errorf("%w: date query parameter is required", usecase.ErrInvalidInput))
		return
	}
	day, err := time.Parse("2006-01-02", rawDate)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", usecase.ErrInvalidInput, rawDate))
		return
	}

	games, err := h.catalogService.ListGamesByDate(ctx, day)
	if err != nil {
		h.logger.ErrorContext(ctx, "list games by date failed", "date", rawDate, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameDTO, 0, len(games))
	for _, g := range games {
		items = append(items, gameToDTO(g))
	}

	writeData(ctx, w, items)
}

func (h *Handler) GetGameOdds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGameOdds")
	defer span.End()

	externalGameID := r.PathValue("externalGameID")
	g, rows, err := h.catalogService.GetGameOdds(ctx, externalGameID)
	if err != nil {
		h.logger.WarnContext(ctx, "get game odds failed", "external_game_id", externalGameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]oddsDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, oddsToDTO(row))
	}

	writeData(ctx, w, gameOddsDTO{Game: gameToDTO(g), Odds: items})
}

func teamToDTO(t team.Team) teamDTO {
	return teamDTO{ID: t.ID, Name: t.Name, Abbreviation: t.Abbreviation, Location: t.Location}
}

func bookmakerToDTO(b bookmaker.Bookmaker) bookmakerDTO {
	return bookmakerDTO{ID: b.ID, Key: b.Key, Name: b.Name, IsActive: b.IsActive}
}

func gameToDTO(g game.Game) gameDTO {
	return gameDTO{
		ID:             g.ID,
		ExternalGameID: g.ExternalID,
		HomeTeamID:     g.HomeTeamID,
		AwayTeamID:     g.AwayTeamID,
		CommenceTime:   g.CommenceTime,
	}
}

func oddsToDTO(r odds.Record) oddsDTO {
	return oddsDTO{
		ID:          r.ID,
		GameID:      r.GameID,
		BookmakerID: r.BookmakerID,
		MarketType:  string(r.MarketType),
		Timestamp:   r.Timestamp,
		HomePrice:   r.HomePrice,
		AwayPrice:   r.AwayPrice,
		Spread:      r.Spread,
		Total:       r.Total,
		OverPrice:   r.OverPrice,
		UnderPrice:  r.UnderPrice,
	}
}
