package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/bookmakers", handler.ListBookmakers)
	mux.HandleFunc("GET /v1/games", handler.ListGamesByDate)
	mux.HandleFunc("GET /v1/games/{externalGameID}/odds", handler.GetGameOdds)
}

func registerInternalRoutes(mux *http.ServeMux, handler *Handler, monitoringToken string) {
	mux.HandleFunc("POST /v1/internal/jobs/ingest-odds", handler.RunIngestOddsJob)
	mux.Handle("POST /v1/monitoring", RequireBearerToken(monitoringToken, http.HandlerFunc(handler.RecordMonitoringEvent)))
}
