package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mixtrail-service/internal/adapters/repositories"
	"mixtrail-service/internal/adapters/routing"
	"mixtrail-service/internal/api/dto"
	"mixtrail-service/internal/domain"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	router := NewRouter(Deps{
		Geocoder: routing.NewMockGeocoder(map[string]domain.GeoPoint{
			"Washington, DC":  {Lat: 38.9072, Lng: -77.0369},
			"Shenandoah, VA":  {Lat: 38.2929, Lng: -78.6796},
			"Front Royal, VA": {Lat: 38.9182, Lng: -78.1944},
		}),
		Provider:   routing.NewMockRouteProvider(40),
		Candidates: repositories.NewStaticCandidateSource(repositories.DemoCandidates()),
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, srv *httptest.Server, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

const demoPolyline = `{
	"points": [{"lat": 38.9072, "lng": -77.0369}, {"lat": 38.6, "lng": -77.9}, {"lat": 38.2929, "lng": -78.6796}],
	"distance_km": 160,
	"mode": "drive"
}`

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	assert.Equal(t, map[string]string{"status": "ok"}, decode[map[string]string](t, resp))
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/route/plan")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestRoutePlan_Coordinates(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/route/plan", `{
		"start": {"lat": 38.9072, "lng": -77.0369},
		"end": {"lat": 38.2929, "lng": -78.6796},
		"mode": "hike"
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	poly := decode[dto.Polyline](t, resp)
	assert.Len(t, poly.Points, 42)
	assert.Equal(t, "hike", poly.Mode)
	assert.NotEmpty(t, poly.Encoded)
	assert.Greater(t, poly.DistanceKm, 150.0)
	assert.Len(t, poly.ElevationSamples, 42)
}

func TestRoutePlan_AddressesAndWaypoints(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/route/plan", `{
		"start": {"address": "Washington, DC"},
		"waypoints": [{"address": "Front Royal, VA"}],
		"end": {"address": "Shenandoah, VA"}
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	poly := decode[dto.Polyline](t, resp)
	assert.Equal(t, "drive", poly.Mode)
	require.Len(t, poly.Points, 83)
	assert.InDelta(t, 38.9182, poly.Points[41].Lat, 1e-9)
	assert.InDelta(t, -78.1944, poly.Points[41].Lng, 1e-9)
}

func TestRoutePlan_UnknownAddress(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/route/plan", `{"start": {"address": "Atlantis"}, "end": {"lat": 0, "lng": 0}}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRoutePlan_Validation(t *testing.T) {
	srv := newTestServer(t)

	cases := map[string]string{
		"missing end":      `{"start": {"lat": 1, "lng": 1}}`,
		"half coordinates": `{"start": {"lat": 1}, "end": {"lat": 2, "lng": 2}}`,
		"bad latitude":     `{"start": {"lat": 91, "lng": 1}, "end": {"lat": 2, "lng": 2}}`,
		"unknown field":    `{"start": {"lat": 1, "lng": 1}, "end": {"lat": 2, "lng": 2}, "via": []}`,
		"two objects":      `{"start": {"lat": 1, "lng": 1}, "end": {"lat": 2, "lng": 2}} {}`,
		"not json":         `start=1`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			resp := postJSON(t, srv, "/api/route/plan", body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.NotEmpty(t, decode[map[string]string](t, resp)["error"])
		})
	}
}

func TestCandidates(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/candidates", `{"polyline": `+demoPolyline+`, "prefs": {}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	res := decode[dto.CandidatesResponse](t, resp)
	require.Len(t, res.Candidates, 5)
	assert.Equal(t, "GC10001", res.Candidates[0].GCCode)
	for _, c := range res.Candidates {
		assert.InDelta(t, 2*c.DistanceToRouteM, c.ExtraDetourM, 1e-6)
		assert.GreaterOrEqual(t, c.RouteKmMarker, 0.0)
	}
}

func TestSelect_SpacingScenario(t *testing.T) {
	srv := newTestServer(t)

	// Two caches 5 km apart along the equator; spacing 25 km keeps only one.
	body := `{
		"polyline": {"points": [{"lat": 0, "lng": 0}, {"lat": 0, "lng": 0.04496}, {"lat": 0, "lng": 1}], "distance_km": 111, "mode": "walk"},
		"prefs": {"spacing_km": 25},
		"candidates": [
			{"gc_code": "GCLOW", "name": "low", "coords": {"lat": 0, "lng": 0}, "type": "Traditional",
			 "difficulty": 2, "terrain": 2, "favorite_points": 10},
			{"gc_code": "GCHIGH", "name": "high", "coords": {"lat": 0, "lng": 0.04496}, "type": "Traditional",
			 "difficulty": 2, "terrain": 2, "favorite_points": 200, "last_found_days": 1,
			 "distance_to_route_m": 9999, "extra_detour_m": 9999, "route_km_marker": 77}
		]
	}`

	resp := postJSON(t, srv, "/api/route/select", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	res := decode[dto.SelectResponse](t, resp)
	require.Len(t, res.Picks, 1)
	assert.Equal(t, "GCHIGH", res.Picks[0].GCCode)
	assert.Equal(t, "Heuristic pick", res.Picks[0].Reason)
	assert.InDelta(t, 5.0, res.Picks[0].RouteKmMarker, 0.01)
	assert.Equal(t, 0.0, res.Picks[0].ExtraDetourM)

	require.Len(t, res.Shortlist, 2)
	assert.Equal(t, "GCHIGH", res.Shortlist[0].GCCode)
	assert.Greater(t, res.Shortlist[0].Score, res.Shortlist[1].Score)
}

func TestSelect_EncodedPolyline(t *testing.T) {
	srv := newTestServer(t)

	encoded := dto.EncodePoints([]domain.GeoPoint{{Lat: 38.9, Lng: -77.2}, {Lat: 38.3, Lng: -78.7}})
	body := `{
		"polyline": {"encoded": "` + encoded + `", "distance_km": 150, "mode": "drive"},
		"candidates": [{"gc_code": "GC10001", "name": "Blue Ridge Vista", "coords": {"lat": 38.9, "lng": -77.2},
			"type": "Traditional", "difficulty": 2, "terrain": 2.5}]
	}`

	resp := postJSON(t, srv, "/api/route/select", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	res := decode[dto.SelectResponse](t, resp)
	require.Len(t, res.Picks, 1)
	assert.Equal(t, 0.0, res.Picks[0].RouteKmMarker)
}

func TestSelect_RejectsBadPreferences(t *testing.T) {
	srv := newTestServer(t)

	cases := map[string]string{
		"target_caches":    `{"target_caches": 0}`,
		"max_corridor_m":   `{"max_corridor_m": 10}`,
		"types":            `{"types": ["Webcam"]}`,
		"difficulty_range": `{"difficulty_range": [4, 2]}`,
	}

	for field, prefs := range cases {
		t.Run(field, func(t *testing.T) {
			resp := postJSON(t, srv, "/api/route/select", `{"polyline": `+demoPolyline+`, "prefs": `+prefs+`, "candidates": []}`)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, decode[map[string]string](t, resp)["error"], field)
		})
	}
}

func TestSuggest(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/suggest", `{
		"start": {"address": "Washington, DC"},
		"end": {"address": "Shenandoah, VA"},
		"prefs": {"max_corridor_m": 5000, "max_extra_detour_m": 20000}
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	res := decode[dto.SuggestResponse](t, resp)
	assert.Len(t, res.Route.Points, 42)
	assert.Len(t, res.Candidates, 5)
	assert.NotEmpty(t, res.Picks)
	assert.Len(t, res.Shortlist, 5)
}

func multipartBody(t *testing.T, field, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, "track.gpx")
	require.NoError(t, err)
	_, err = io.WriteString(fw, content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestImportGPX(t *testing.T) {
	srv := newTestServer(t)

	gpxDoc := `<?xml version="1.0"?>
<gpx version="1.1" creator="t" xmlns="http://www.topografix.com/GPX/1/1">
  <trk><trkseg>
    <trkpt lat="38.0" lon="-78.0"><ele>100</ele></trkpt>
    <trkpt lat="38.1" lon="-78.1"><ele>160</ele></trkpt>
  </trkseg></trk>
</gpx>`

	body, ct := multipartBody(t, "file", gpxDoc)
	resp, err := http.Post(srv.URL+"/api/gpx/import", ct, body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	poly := decode[dto.Polyline](t, resp)
	assert.Equal(t, "walk", poly.Mode)
	assert.Len(t, poly.Points, 2)
	assert.InDelta(t, 60.0, poly.ElevationGainM, 1e-9)
}

func TestImportGPX_Errors(t *testing.T) {
	srv := newTestServer(t)

	body, ct := multipartBody(t, "upload", "<gpx/>")
	resp, err := http.Post(srv.URL+"/api/gpx/import", ct, body)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Upload GPX file (field 'file')", decode[map[string]string](t, resp)["error"])

	body, ct = multipartBody(t, "file", `<?xml version="1.0"?>
<gpx version="1.1" creator="t" xmlns="http://www.topografix.com/GPX/1/1"><wpt lat="1" lon="1"></wpt></gpx>`)
	resp2, err := http.Post(srv.URL+"/api/gpx/import", ct, body)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
	assert.Equal(t, "No track/route/waypoints found", decode[map[string]string](t, resp2)["error"])
}

const exportBody = `{
	"picks": [{"gc_code": "GC10001", "name": "Blue Ridge <Vista>", "coords": {"lat": 38.9, "lng": -77.2}}],
	"route": ` + demoPolyline + `
}`

func TestExportGPX(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/export/gpx", exportBody)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/gpx+xml", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="mixtrail-picks.gpx"`, resp.Header.Get("Content-Disposition"))

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := string(b)
	assert.Contains(t, out, `creator="MixTrail"`)
	assert.Contains(t, out, "<name>GC10001</name>")
	assert.Contains(t, out, "Blue Ridge &lt;Vista&gt;")
	assert.Equal(t, 3, strings.Count(out, "<rtept"))
}

func TestExportGPX_RequiresPicks(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/export/gpx", `{"picks": []}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExportKML(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/export/kml", exportBody)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/vnd.google-earth.kml+xml", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="mixtrail-picks.kml"`, resp.Header.Get("Content-Disposition"))

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(b), "<Placemark>")
}

func TestExportGeoJSON(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/export/geojson", exportBody)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/geo+json", resp.Header.Get("Content-Type"))

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type string `json:"type"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 2)
	assert.Equal(t, "LineString", fc.Features[0].Geometry.Type)
	assert.Equal(t, "pick", fc.Features[1].Properties["kind"])
}

func TestGeocachingExport(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/geocaching/export", `{"listName": "My MixTrail Plan", "picks": [{"gc_code": "GC10001"}]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, true, res["ok"])
	assert.Regexp(t, regexp.MustCompile(`^https://www\.geocaching\.com/plan/lists/[0-9a-f]{8}\?mock=1$`), res["listUrl"])

	bad := postJSON(t, srv, "/api/geocaching/export", `{"listName": "", "picks": [{"gc_code": "GC1"}]}`)
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)

	noPicks := postJSON(t, srv, "/api/geocaching/export", `{"listName": "x", "picks": []}`)
	assert.Equal(t, http.StatusBadRequest, noPicks.StatusCode)
}

// plannerPicks are candidates exactly as /api/candidates returns them; the web
// planner posts them back unchanged as picks.
const plannerPicks = `[
	{"gc_code": "GC10001", "name": "Blue Ridge Vista", "coords": {"lat": 38.9, "lng": -77.2},
	 "type": "Traditional", "difficulty": 2, "terrain": 2.5, "size": "Small", "favorite_points": 80,
	 "last_found_days": 7, "recent_dnfs": 0, "on_trail_hint": false,
	 "distance_to_route_m": 3120.4, "extra_detour_m": 6240.8, "route_km_marker": 12.7},
	{"gc_code": "GC10003", "name": "Skyline Geology", "coords": {"lat": 38.55, "lng": -78.3},
	 "type": "Earthcache", "difficulty": 2.5, "terrain": 2, "favorite_points": 120,
	 "last_found_days": null, "recent_dnfs": 1, "on_trail_hint": false,
	 "distance_to_route_m": 800, "extra_detour_m": 1600, "route_km_marker": 101.3}
]`

func TestExports_AcceptWholeCandidatesAsPicks(t *testing.T) {
	srv := newTestServer(t)

	body := `{
		"picks": ` + plannerPicks + `,
		"route": {
			"points": [{"lat": 38.9072, "lng": -77.0369}, {"lat": 38.2929, "lng": -78.6796}],
			"distance_km": 158.3, "mode": "drive", "elevation_gain_m": 412,
			"elevation_samples": [{"km": 0, "m": 20}, {"km": 158.3, "m": 430}]
		}
	}`

	gpxResp := postJSON(t, srv, "/api/export/gpx", body)
	require.Equal(t, http.StatusOK, gpxResp.StatusCode)
	b, err := io.ReadAll(gpxResp.Body)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(b), "<wpt"))
	assert.Contains(t, string(b), "<desc>Skyline Geology</desc>")

	kmlResp := postJSON(t, srv, "/api/export/kml", body)
	assert.Equal(t, http.StatusOK, kmlResp.StatusCode)

	geoResp := postJSON(t, srv, "/api/export/geojson", `{"candidates": `+plannerPicks+`, "picks": `+plannerPicks+`}`)
	assert.Equal(t, http.StatusOK, geoResp.StatusCode)
}

func TestExports_RequirePickCoordinates(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/api/export/gpx", "/api/export/kml", "/api/export/geojson"} {
		t.Run(path, func(t *testing.T) {
			resp := postJSON(t, srv, path, `{"picks": [{"gc_code": "GC10001", "name": "Blue Ridge Vista"}]}`)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, decode[map[string]string](t, resp)["error"], "coords")
		})
	}
}

func TestStrictEndpointsRejectUnknownFields(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/route/select", `{"polyline": `+demoPolyline+`, "candidates": [], "extra": 1}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRecoveryWritesJSON(t *testing.T) {
	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}), requestID, accessLog, recovery)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/explode", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	health, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	health.Body.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(b), "mixtrail_http_requests_total")
}
