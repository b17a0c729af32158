package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"mixtrail-service/internal/adapters/gpxio"
	"mixtrail-service/internal/adapters/mapdata"
	"mixtrail-service/internal/api/dto"
	"mixtrail-service/internal/domain"
)

const geocachingListURL = "https://www.geocaching.com/plan/lists/%s?mock=1"

func exportRoute(w http.ResponseWriter, r *http.Request, p *dto.Polyline) ([]domain.GeoPoint, bool) {
	if p == nil {
		return nil, true
	}
	route, err := p.ToDomain()
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return route.Points, true
}

func writeAttachment(w http.ResponseWriter, r *http.Request, contentType, filename string, body []byte) {
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	writeBody(w, r, contentType, body)
}

func writeBody(w http.ResponseWriter, r *http.Request, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		slog.WarnContext(r.Context(), "write_failed", "path", r.URL.Path, "err", err)
	}
}

// ExportGPX renders the picks, and the route when given, as a GPX download.
func ExportGPX(w http.ResponseWriter, r *http.Request) {
	var req dto.ExportRequest
	if !decodeLooseJSON(w, r, &req) {
		return
	}
	route, ok := exportRoute(w, r, req.Route)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := gpxio.WriteGPX(&buf, dto.PicksToDomain(req.Picks), route); err != nil {
		slog.ErrorContext(r.Context(), "export_gpx_failed", "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeAttachment(w, r, "application/gpx+xml", "mixtrail-picks.gpx", buf.Bytes())
}

// ExportKML renders the picks, and the route when given, as a KML download.
func ExportKML(w http.ResponseWriter, r *http.Request) {
	var req dto.ExportRequest
	if !decodeLooseJSON(w, r, &req) {
		return
	}
	route, ok := exportRoute(w, r, req.Route)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := gpxio.WriteKML(&buf, dto.PicksToDomain(req.Picks), route); err != nil {
		slog.ErrorContext(r.Context(), "export_kml_failed", "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeAttachment(w, r, "application/vnd.google-earth.kml+xml", "mixtrail-picks.kml", buf.Bytes())
}

// ExportGeoJSON returns route, candidates and picks as one FeatureCollection.
func ExportGeoJSON(w http.ResponseWriter, r *http.Request) {
	var req dto.GeoJSONExportRequest
	if !decodeLooseJSON(w, r, &req) {
		return
	}
	route, ok := exportRoute(w, r, req.Route)
	if !ok {
		return
	}

	candidates := make([]domain.Candidate, 0, len(req.Candidates))
	for _, c := range req.Candidates {
		candidates = append(candidates, domain.Candidate{
			RawCandidate:     c.ToDomain(),
			DistanceToRouteM: c.DistanceToRouteM,
			ExtraDetourM:     c.ExtraDetourM,
			RouteKmMarker:    c.RouteKmMarker,
		})
	}

	fc := mapdata.BuildFeatureCollection(route, candidates, dto.PicksToDomain(req.Picks))
	body, err := fc.MarshalJSON()
	if err != nil {
		slog.ErrorContext(r.Context(), "export_geojson_failed", "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeBody(w, r, "application/geo+json", body)
}

// GeocachingExport stands in for a Geocaching.com list upload and returns a
// mock list URL.
func GeocachingExport(w http.ResponseWriter, r *http.Request) {
	var req dto.GeocachingExportRequest
	if !decodeLooseJSON(w, r, &req) {
		return
	}

	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	slog.InfoContext(r.Context(), "geocaching_list_exported", "list_name", req.ListName, "picks", len(req.Picks), "list_id", id)

	writeJSON(w, r, http.StatusOK, dto.GeocachingExportResponse{
		OK:      true,
		ListURL: fmt.Sprintf(geocachingListURL, id),
	})
}
