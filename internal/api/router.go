package api

import (
	"net/http"

	"mixtrail-service/internal/api/handlers"
	"mixtrail-service/internal/platform/metrics"
	"mixtrail-service/internal/ports"
)

// Deps are the ports the HTTP API needs. Geocoder may be nil, in which case
// address endpoints are rejected.
type Deps struct {
	Geocoder   ports.Geocoder
	Provider   ports.RouteProvider
	Candidates ports.CandidateSource
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	routeHandler := &handlers.RouteHandler{Geocoder: deps.Geocoder, Provider: deps.Provider}
	candidateHandler := &handlers.CandidateHandler{
		Source:   deps.Candidates,
		Geocoder: deps.Geocoder,
		Provider: deps.Provider,
	}

	mux.HandleFunc("GET /health", handlers.Health)
	mux.Handle("GET /metrics", metrics.Handler())

	mux.HandleFunc("POST /api/route/plan", routeHandler.Plan)
	mux.HandleFunc("POST /api/gpx/import", handlers.ImportGPX)
	mux.HandleFunc("POST /api/candidates", candidateHandler.List)
	mux.HandleFunc("POST /api/route/select", candidateHandler.Select)
	mux.HandleFunc("POST /api/suggest", candidateHandler.Suggest)

	mux.HandleFunc("POST /api/export/gpx", handlers.ExportGPX)
	mux.HandleFunc("POST /api/export/kml", handlers.ExportKML)
	mux.HandleFunc("POST /api/export/geojson", handlers.ExportGeoJSON)
	mux.HandleFunc("POST /api/geocaching/export", handlers.GeocachingExport)

	return Chain(mux, requestID, accessLog, recovery)
}
