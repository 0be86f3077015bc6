package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/courtdata/gamelines/internal/domain/bookmaker"
	"github.com/courtdata/gamelines/internal/domain/team"
	"github.com/courtdata/gamelines/internal/infrastructure/repository/memory"
	"github.com/courtdata/gamelines/internal/platform/logging"
	"github.com/courtdata/gamelines/internal/usecase"
)

const testMonitoringToken = "test-token"

type stubFetcher struct {
	snapshot usecase.ExternalSnapshot
	err      error
}

func (f *stubFetcher) FetchSnapshot(_ context.Context, _ time.Time) (usecase.ExternalSnapshot, error) {
	if f.err != nil {
		return usecase.ExternalSnapshot{}, f.err
	}
	return f.snapshot, nil
}

func newTestRouter(t *testing.T, fetcher *stubFetcher) http.Handler {
	t.Helper()

	teams := memory.NewTeamRepository([]team.Team{
		{ID: 1, Name: "Tennessee Titans", Abbreviation: "TEN", Location: "Tennessee"},
		{ID: 2, Name: "Buffalo Bills", Abbreviation: "BUF", Location: "Buffalo"},
	})
	bookmakers := memory.NewBookmakerRepository([]bookmaker.Bookmaker{
		{ID: 1, Key: "draftkings", Name: "DraftKings", IsActive: true},
	})
	games := memory.NewGameRepository()
	oddsRepo := memory.NewOddsRepository()
	recorder := usecase.NewMonitoringService(memory.NewMonitoringRepository(), logging.NewNop())

	ingest := usecase.NewIngestService(
		fetcher, teams, bookmakers, games, oddsRepo, recorder,
		usecase.IngestConfig{Workers: 2}, logging.NewNop(),
	)
	catalog := usecase.NewCatalogService(teams, bookmakers, games, oddsRepo)

	handler := NewHandler(ingest, recorder, catalog, logging.NewNop())
	return NewRouter(handler, logging.NewNop(), nil, testMonitoringToken)
}

func testSnapshot() usecase.ExternalSnapshot {
	return usecase.ExternalSnapshot{
		Timestamp: time.Date(2021, 10, 18, 12, 0, 0, 0, time.UTC),
		Games: []usecase.ExternalGame{
			{
				ExternalID:   "e912304de2b2ce35b473ce2ecd3d1502",
				CommenceTime: time.Date(2021, 10, 19, 0, 15, 0, 0, time.UTC),
				HomeTeam:     "Tennessee Titans",
				AwayTeam:     "Buffalo Bills",
				Bookmakers: []usecase.ExternalBookmakerOdds{
					{
						Key: "draftkings",
						Markets: []usecase.ExternalMarket{
							{
								Key: "h2h",
								Outcomes: []usecase.ExternalOutcome{
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

func doRequest(t *testing.T, router http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	out := map[string]any{}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestRunIngestOddsJob_Success(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &stubFetcher{snapshot: testSnapshot()})

	rec := doRequest(t, router, http.MethodPost, "/v1/internal/jobs/ingest-odds",
		`{"date":"2021-10-18T12:00:00Z"}`, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Fatalf("expected success=true, got %+v", body)
	}
	if body["message"] != "Processed 1 games" {
		t.Fatalf("unexpected message: %+v", body["message"])
	}
}

func TestRunIngestOddsJob_MissingDate(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &stubFetcher{snapshot: testSnapshot()})

	for _, body := range []string{"", "{}", `{"date":""}`, `{"date":"   "}`} {
		rec := doRequest(t, router, http.MethodPost, "/v1/internal/jobs/ingest-odds", body, nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, rec.Code)
		}
		decoded := decodeBody(t, rec)
		if decoded["error"] != "Date parameter is required" {
			t.Fatalf("body %q: unexpected error: %+v", body, decoded["error"])
		}
	}
}

func TestRunIngestOddsJob_FetchFailure(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &stubFetcher{err: errors.New("provider unavailable")})

	rec := doRequest(t, router, http.MethodPost, "/v1/internal/jobs/ingest-odds",
		`{"date":"2021-10-18T12:00:00Z"}`, nil)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	errText, _ := body["error"].(string)
	if !strings.Contains(errText, "provider unavailable") {
		t.Fatalf("error must surface the cause, got %+v", body)
	}
}

func TestRecordMonitoringEvent_RequiresAuth(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &stubFetcher{})

	payload := `{"function_name":"ingest-odds","event_type":"start","timestamp":"2021-10-18T12:00:00Z"}`

	tests := []struct {
		name    string
		headers map[string]string
	}{
		{"no header", nil},
		{"wrong scheme", map[string]string{"Authorization": "Basic abc"}},
		{"wrong token", map[string]string{"Authorization": "Bearer nope"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rec := doRequest(t, router, http.MethodPost, "/v1/monitoring", payload, tc.headers)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestRecordMonitoringEvent_MissingFields(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &stubFetcher{})

	rec := doRequest(t, router, http.MethodPost, "/v1/monitoring",
		`{"function_name":"ingest-odds"}`,
		map[string]string{"Authorization": "Bearer " + testMonitoringToken})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	fields, ok := body["missingFields"].([]any)
	if !ok || len(fields) != 2 {
		t.Fatalf("expected 2 missing fields, got %+v", body)
	}
	if fields[0] != "event_type" || fields[1] != "timestamp" {
		t.Fatalf("unexpected missing fields: %+v", fields)
	}
}

func TestRecordMonitoringEvent_Success(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &stubFetcher{})

	rec := doRequest(t, router, http.MethodPost, "/v1/monitoring",
		`{"function_name":"ingest-odds","event_type":"error","error_message":"boom",
		  "duration_ms":41,"metadata":{"date":"2021-10-18"},"timestamp":"2021-10-18T12:00:00Z"}`,
		map[string]string{"Authorization": "Bearer " + testMonitoringToken})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Fatalf("expected success=true, got %+v", body)
	}
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected stored row in data, got %+v", body)
	}
	if data["function_name"] != "ingest-odds" || data["event_type"] != "error" {
		t.Fatalf("unexpected stored row: %+v", data)
	}
	if data["id"] == nil || data["created_at"] == nil {
		t.Fatalf("stored row must carry id and created_at: %+v", data)
	}
}

func TestGetGameOdds_ReadBack(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &stubFetcher{snapshot: testSnapshot()})

	rec := doRequest(t, router, http.MethodPost, "/v1/internal/jobs/ingest-odds",
		`{"date":"2021-10-18T12:00:00Z"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("ingest failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/games/e912304de2b2ce35b473ce2ecd3d1502/odds", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %+v", body)
	}
	oddsRows, ok := data["odds"].([]any)
	if !ok || len(oddsRows) != 1 {
		t.Fatalf("expected 1 odds row, got %+v", data["odds"])
	}
	row := oddsRows[0].(map[string]any)
	if row["market_type"] != "MONEYLINE" || row["home_price"] != float64(230) {
		t.Fatalf("unexpected odds row: %+v", row)
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/games/missing/odds", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown game, got %d", rec.Code)
	}
}

func TestListGamesByDate_Validation(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &stubFetcher{})

	rec := doRequest(t, router, http.MethodGet, "/v1/games", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing date, got %d", rec.Code)
	}
	rec = doRequest(t, router, http.MethodGet, "/v1/games?date=18-10-2021", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed date, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &stubFetcher{})

	rec := doRequest(t, router, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
