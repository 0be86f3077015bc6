package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/courtdata/gamelines/internal/domain/monitoring"
	"github.com/courtdata/gamelines/internal/usecase"
)

const maxMonitoringBodyBytes = 64 << 10

type monitoringEventRequest struct {
	FunctionName string         `json:"function_name"`
	EventType    string         `json:"event_type" validate:"omitempty,oneof=start success error"`
	DurationMs   *int64         `json:"duration_ms"`
	ErrorMessage string         `json:"error_message"`
	Metadata     map[string]any `json:"metadata"`
	Timestamp    string         `json:"timestamp"`
}

type monitoringEventDTO struct {
	ID           int64          `json:"id"`
	FunctionName string         `json:"function_name"`
	EventType    string         `json:"event_type"`
	DurationMs   *int64         `json:"duration_ms,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	Timestamp    time.Time      `json:"timestamp"`
	CreatedAt    time.Time      `json:"created_at"`
}

// RecordMonitoringEvent appends one audit event on behalf of an external
// caller, e.g. a sibling pipeline reporting its lifecycle.
func (h *Handler) RecordMonitoringEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordMonitoringEvent")
	defer span.End()

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxMonitoringBodyBytes))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: read request body", usecase.ErrInvalidInput))
		return
	}

	var req monitoringEventRequest
	if err := sonic.Unmarshal(raw, &req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON body", usecase.ErrInvalidInput))
		return
	}

	missing := missingMonitoringFields(req)
	if len(missing) > 0 {
		writeMissingFields(ctx, w, missing)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: event_type must be one of start, success, error", usecase.ErrInvalidInput))
		return
	}

	timestamp, err := time.Parse(time.RFC3339, strings.TrimSpace(req.Timestamp))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid timestamp %q, expected ISO-8601", usecase.ErrInvalidInput, req.Timestamp))
		return
	}

	stored, err := h.monitoringService.Record(ctx, monitoring.Event{
		FunctionName: req.FunctionName,
		EventType:    req.EventType,
		DurationMs:   req.DurationMs,
		ErrorMessage: req.ErrorMessage,
		Metadata:     req.Metadata,
		Timestamp:    timestamp,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "record monitoring event failed",
			"function_name", req.FunctionName, "event_type", req.EventType, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeData(ctx, w, monitoringEventToDTO(stored))
}

func missingMonitoringFields(req monitoringEventRequest) []string {
	missing := make([]string, 0, 3)
	if strings.TrimSpace(req.FunctionName) == "" {
		missing = append(missing, "function_name")
	}
	if strings.TrimSpace(req.EventType) == "" {
		missing = append(missing, "event_type")
	}
	if strings.TrimSpace(req.Timestamp) == "" {
		missing = append(missing, "timestamp")
	}
	return missing
}

func monitoringEventToDTO(e monitoring.Event) monitoringEventDTO {
	return monitoringEventDTO{
		ID:           e.ID,
		FunctionName: e.FunctionName,
		EventType:    e.EventType,
		DurationMs:   e.DurationMs,
		ErrorMessage: e.ErrorMessage,
		Metadata:     e.Metadata,
		Timestamp:    e.Timestamp,
		CreatedAt:    e.CreatedAt,
	}
}
