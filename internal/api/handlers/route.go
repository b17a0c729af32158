package handlers

import (
	"errors"
	"net/http"

	"mixtrail-service/internal/adapters/gpxio"
	"mixtrail-service/internal/api/dto"
	"mixtrail-service/internal/ports"
	"mixtrail-service/internal/services"
)

// Upper bound on uploaded GPX files.
const maxUploadBytes = 16 << 20

type RouteHandler struct {
	Geocoder ports.Geocoder
	Provider ports.RouteProvider
}

// Plan resolves the stops and returns the routed polyline.
func (h *RouteHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var req dto.RoutePlanRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	route, err := services.PlanRoute(r.Context(), req.ToService(), h.Geocoder, h.Provider)
	if err != nil {
		writeServiceError(w, r, "route_plan", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.PolylineFromDomain(route))
}

// ImportGPX turns the uploaded multipart "file" into a walking polyline.
func ImportGPX(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "Upload GPX file (field 'file')")
		return
	}
	defer file.Close()

	route, err := gpxio.ParseTrack(file)
	if errors.Is(err, gpxio.ErrNoPoints) {
		writeError(w, r, http.StatusBadRequest, "No track/route/waypoints found")
		return
	}
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid gpx file")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.PolylineFromDomain(route))
}
