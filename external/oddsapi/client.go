package oddsapi

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/courtdata/gamelines/internal/platform/logging"
	"github.com/courtdata/gamelines/internal/usecase"
)

const (
	defaultBaseURL    = "https://api.the-odds-api.com/v4"
	defaultSport      = "basketball_nba"
	defaultRegions    = "us"
	defaultMarkets    = "h2h,spreads,totals"
	defaultOddsFormat = "american"

	maxResponseBytes = 6 << 20
)

var apiKeyParamRegex = regexp.MustCompile(`apiKey=[^&\s"']+`)

// errOddsAPITransient marks failures the caller's scheduler may reasonably
// retry on its own cadence. The client itself never retries.
var errOddsAPITransient = crerr.New("odds api transient failure")

func IsTransientError(err error) bool {
	return stderrors.Is(err, errOddsAPITransient)
}

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
	Sport      string
	Regions    string
	Markets    string
	OddsFormat string
	Timeout    time.Duration
	Logger     *logging.Logger
}

// Client fetches historical odds snapshots from The Odds API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	sport      string
	regions    string
	markets    string
	oddsFormat string
	logger     *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		sport:      firstNonEmpty(cfg.Sport, defaultSport),
		regions:    firstNonEmpty(cfg.Regions, defaultRegions),
		markets:    firstNonEmpty(cfg.Markets, defaultMarkets),
		oddsFormat: firstNonEmpty(cfg.OddsFormat, defaultOddsFormat),
		logger:     logger,
	}
}

// FetchSnapshot retrieves the historical odds snapshot at or before date.
// One request, no retries: the scheduler owns retry cadence.
func (c *Client) FetchSnapshot(ctx context.Context, date time.Time) (usecase.ExternalSnapshot, error) {
	if date.IsZero() {
		return usecase.ExternalSnapshot{}, fmt.Errorf("snapshot date is required")
	}

	values := url.Values{}
	values.Set("apiKey", c.apiKey)
	values.Set("regions", c.regions)
	values.Set("markets", c.markets)
	values.Set("oddsFormat", c.oddsFormat)
	values.Set("date", date.UTC().Format("2006-01-02T15:04:05Z"))

	fullURL := fmt.Sprintf("%s/historical/sports/%s/odds?%s", c.baseURL, c.sport, values.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return usecase.ExternalSnapshot{}, fmt.Errorf("build snapshot request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "odds api request failed",
			"url", redactAPIURL(fullURL), "error", sanitizeKey(err.Error(), c.apiKey))
		return usecase.ExternalSnapshot{}, fmt.Errorf("%w: send request: %s",
			errOddsAPITransient, sanitizeKey(err.Error(), c.apiKey))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return usecase.ExternalSnapshot{}, fmt.Errorf("%w: read response body: %v", errOddsAPITransient, err)
	}

	c.logQuota(ctx, resp.Header)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if isRetryableStatus(resp.StatusCode) {
			return usecase.ExternalSnapshot{}, fmt.Errorf("%w: %w: provider status=%d body=%s",
				usecase.ErrDependencyUnavailable, errOddsAPITransient, resp.StatusCode, abbreviateBody(raw))
		}
		return usecase.ExternalSnapshot{}, fmt.Errorf("provider status=%d body=%s",
			resp.StatusCode, abbreviateBody(raw))
	}

	var envelope snapshotEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return usecase.ExternalSnapshot{}, fmt.Errorf("decode provider payload: %w", err)
	}

	return mapSnapshot(envelope)
}

func (c *Client) logQuota(ctx context.Context, header http.Header) {
	remaining := header.Get("x-requests-remaining")
	used := header.Get("x-requests-used")
	if remaining == "" && used == "" {
		return
	}
	c.logger.DebugContext(ctx, "odds api quota", "remaining", remaining, "used", used)
}

type snapshotEnvelope struct {
	Timestamp         string      `json:"timestamp"`
	PreviousTimestamp string      `json:"previous_timestamp"`
	NextTimestamp     string      `json:"next_timestamp"`
	Data              []eventItem `json:"data"`
}

type eventItem struct {
	ID           string          `json:"id"`
	SportKey     string          `json:"sport_key"`
	CommenceTime string          `json:"commence_time"`
	HomeTeam     string          `json:"home_team"`
	AwayTeam     string          `json:"away_team"`
	Bookmakers   []bookmakerItem `json:"bookmakers"`
}

type bookmakerItem struct {
	Key        string       `json:"key"`
	Title      string       `json:"title"`
	LastUpdate string       `json:"last_update"`
	Markets    []marketItem `json:"markets"`
}

type marketItem struct {
	Key      string        `json:"key"`
	Outcomes []outcomeItem `json:"outcomes"`
}

type outcomeItem struct {
	Name  string   `json:"name"`
	Price float64  `json:"price"`
	Point *float64 `json:"point"`
}

func mapSnapshot(envelope snapshotEnvelope) (usecase.ExternalSnapshot, error) {
	capturedAt, err := parseProviderTime(envelope.Timestamp)
	if err != nil {
		return usecase.ExternalSnapshot{}, fmt.Errorf("parse snapshot timestamp %q: %w", envelope.Timestamp, err)
	}

	snapshot := usecase.ExternalSnapshot{
		Timestamp:         capturedAt,
		PreviousTimestamp: parseOptionalTime(envelope.PreviousTimestamp),
		NextTimestamp:     parseOptionalTime(envelope.NextTimestamp),
		Games:             make([]usecase.ExternalGame, 0, len(envelope.Data)),
	}

	for _, item := range envelope.Data {
		if strings.TrimSpace(item.ID) == "" {
			continue
		}
		commence, err := parseProviderTime(item.CommenceTime)
		if err != nil {
			// A game with an unparseable commence time is dropped here; the
			// orchestrator counts it as absent, not as a batch failure.
			continue
		}

		mapped := usecase.ExternalGame{
			ExternalID:   item.ID,
			SportKey:     item.SportKey,
			CommenceTime: commence,
			HomeTeam:     item.HomeTeam,
			AwayTeam:     item.AwayTeam,
			Bookmakers:   make([]usecase.ExternalBookmakerOdds, 0, len(item.Bookmakers)),
		}

		for _, block := range item.Bookmakers {
			mappedBlock := usecase.ExternalBookmakerOdds{
				Key:     block.Key,
				Title:   block.Title,
				Markets: make([]usecase.ExternalMarket, 0, len(block.Markets)),
			}
			if parsed := parseOptionalTime(block.LastUpdate); parsed != nil {
				mappedBlock.LastUpdate = *parsed
			}
			for _, market := range block.Markets {
				outcomes := make([]usecase.ExternalOutcome, 0, len(market.Outcomes))
				for _, outcome := range market.Outcomes {
					outcomes = append(outcomes, usecase.ExternalOutcome{
						Name:  outcome.Name,
						Price: outcome.Price,
						Point: outcome.Point,
					})
				}
				mappedBlock.Markets = append(mappedBlock.Markets, usecase.ExternalMarket{
					Key:      market.Key,
					Outcomes: outcomes,
				})
			}
			mapped.Bookmakers = append(mapped.Bookmakers, mappedBlock)
		}

		snapshot.Games = append(snapshot.Games, mapped)
	}

	return snapshot, nil
}

func parseProviderTime(value string) (time.Time, error) {
	return time.Parse(time.RFC3339, strings.TrimSpace(value))
}

func parseOptionalTime(value string) *time.Time {
	parsed, err := parseProviderTime(value)
	if err != nil {
		return nil
	}
	return &parsed
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	text := strings.TrimSpace(string(raw))
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}

func redactAPIURL(fullURL string) string {
	return apiKeyParamRegex.ReplaceAllString(fullURL, "apiKey=REDACTED")
}

func sanitizeKey(text, key string) string {
	if key == "" {
		return text
	}
	return strings.ReplaceAll(text, key, "REDACTED")
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
