package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/courtdata/gamelines/internal/usecase"
)

type successMessageBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type successDataBody struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type errorBody struct {
	Error         string   `json:"error"`
	MissingFields []string `json:"missingFields,omitempty"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeMessage(ctx context.Context, w http.ResponseWriter, message string) {
	writeJSON(ctx, w, http.StatusOK, successMessageBody{Success: true, Message: message})
}

func writeData(ctx context.Context, w http.ResponseWriter, data any) {
	writeJSON(ctx, w, http.StatusOK, successDataBody{Success: true, Data: data})
}

func writeErrorMessage(ctx context.Context, w http.ResponseWriter, status int, message string) {
	writeJSON(ctx, w, status, errorBody{Error: message})
}

func writeMissingFields(ctx context.Context, w http.ResponseWriter, fields []string) {
	writeJSON(ctx, w, http.StatusBadRequest, errorBody{
		Error:         "Missing required fields",
		MissingFields: fields,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	writeErrorMessage(ctx, w, statusForError(err), err.Error())
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeErrorMessage(ctx, w, http.StatusInternalServerError, "internal server error")
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
