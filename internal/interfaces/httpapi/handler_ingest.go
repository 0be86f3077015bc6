package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
)

const maxTriggerBodyBytes = 4 << 10

type ingestTriggerRequest struct {
	Date string `json:"date"`
}

// RunIngestOddsJob triggers one ingestion run for the requested snapshot
// date and relays the orchestrator's outcome as its own response.
func (h *Handler) RunIngestOddsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunIngestOddsJob")
	defer span.End()

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxTriggerBodyBytes))
	if err != nil {
		writeErrorMessage(ctx, w, http.StatusBadRequest, "Date parameter is required")
		return
	}

	var req ingestTriggerRequest
	if len(raw) > 0 {
		if err := sonic.Unmarshal(raw, &req); err != nil {
			writeErrorMessage(ctx, w, http.StatusBadRequest, "Date parameter is required")
			return
		}
	}
	if strings.TrimSpace(req.Date) == "" {
		writeErrorMessage(ctx, w, http.StatusBadRequest, "Date parameter is required")
		return
	}

	date, err := time.Parse(time.RFC3339, strings.TrimSpace(req.Date))
	if err != nil {
		writeErrorMessage(ctx, w, http.StatusBadRequest, fmt.Sprintf("Invalid date %q, expected ISO-8601", req.Date))
		return
	}

	result, err := h.ingestService.Run(ctx, date)
	if err != nil {
		h.logger.ErrorContext(ctx, "ingest odds job failed", "date", req.Date, "error", err)
		writeErrorMessage(ctx, w, http.StatusInternalServerError, err.Error())
		return
	}

	h.logger.InfoContext(ctx, "ingest odds job finished",
		"date", req.Date,
		"games_total", result.GamesTotal,
		"games_processed", result.GamesProcessed,
		"games_skipped", result.GamesSkipped,
		"games_failed", result.GamesFailed,
		"odds_inserted", result.OddsInserted,
		"odds_duplicate", result.OddsDuplicate,
	)
	writeMessage(ctx, w, fmt.Sprintf("Processed %d games", result.GamesProcessed))
}
