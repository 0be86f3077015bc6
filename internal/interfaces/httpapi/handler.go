package httpapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/courtdata/gamelines/internal/platform/logging"
	"github.com/courtdata/gamelines/internal/usecase"
)

type Handler struct {
	ingestService     *usecase.IngestService
	monitoringService *usecase.MonitoringService
	catalogService    *usecase.CatalogService
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	ingestService *usecase.IngestService,
	monitoringService *usecase.MonitoringService,
	catalogService *usecase.CatalogService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		ingestService:     ingestService,
		monitoringService: monitoringService,
		catalogService:    catalogService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeData(ctx, w, map[string]string{"status": "ok"})
}
