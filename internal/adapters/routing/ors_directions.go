package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"mixtrail-service/internal/domain"
	"mixtrail-service/internal/geo"
	"mixtrail-service/internal/platform/obs"
	"mixtrail-service/internal/ports"
)

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
	Elevation   bool        `json:"elevation"`
}

type directionsResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Ascent  float64 `json:"ascent"`
			Summary struct {
				Distance float64 `json:"distance"`
			} `json:"summary"`
			Segments []struct {
				Distance float64 `json:"distance"`
			} `json:"segments"`
		} `json:"properties"`
	} `json:"features"`
}

// PlanRoute requests a route through req.Stops from /v2/directions.
// Cached routes are returned without calling ORS; cache failures are logged
// and otherwise ignored.
func (o *ORSClient) PlanRoute(ctx context.Context, req ports.RouteRequest) (_ domain.Route, err error) {
	defer obs.Time(ctx, "ors.PlanRoute")(&err)

	if len(req.Stops) < 2 {
		return domain.Route{}, errors.New("plan route: need at least two stops")
	}
	if !req.Mode.Valid() {
		req.Mode = domain.ModeDrive
	}

	if o.directionsCache != nil {
		route, ok, err := o.directionsCache.Get(ctx, req)
		if err != nil {
			slog.WarnContext(ctx, "cache_read_failed", "cache", "directions", "err", err)
		} else if ok {
			return route, nil
		}
	}

	route, err := o.fetchDirections(ctx, req)
	if err != nil {
		return domain.Route{}, fmt.Errorf("plan route: %w", err)
	}

	if o.directionsCache != nil {
		if err := o.directionsCache.Set(ctx, req, route); err != nil {
			slog.WarnContext(ctx, "cache_write_failed", "cache", "directions", "err", err)
		}
	}

	return route, nil
}

func (o *ORSClient) fetchDirections(ctx context.Context, req ports.RouteRequest) (domain.Route, error) {
	endpoint := fmt.Sprintf("%s/v2/directions/%s/geojson", o.baseURL, Profile(req.Mode))

	coords := make([][]float64, 0, len(req.Stops))
	for _, s := range req.Stops {
		coords = append(coords, s.CoordsToList())
	}

	payload, err := json.Marshal(directionsRequest{Coordinates: coords, Elevation: true})
	if err != nil {
		return domain.Route{}, fmt.Errorf("marshal directions request: %w", err)
	}

	resp, err := o.doWithRetry(ctx, "directions", func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return domain.Route{}, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	var dr directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return domain.Route{}, fmt.Errorf("decode directions response: %w", err)
	}

	return routeFromDirections(dr, req.Mode)
}

// routeFromDirections converts the first feature's [lng, lat, z] line into a
// route. Vertices without z get elevation 0.
func routeFromDirections(dr directionsResponse, mode domain.TravelMode) (domain.Route, error) {
	if len(dr.Features) == 0 {
		return domain.Route{}, ports.ErrNoRoute
	}
	f := dr.Features[0]

	points := make([]domain.GeoPoint, 0, len(f.Geometry.Coordinates))
	elevations := make([]float64, 0, len(f.Geometry.Coordinates))
	for i, c := range f.Geometry.Coordinates {
		if len(c) < 2 {
			return domain.Route{}, fmt.Errorf("invalid coordinate at index %d", i)
		}
		points = append(points, domain.GeoPoint{Lat: c[1], Lng: c[0]})
		z := 0.0
		if len(c) > 2 {
			z = c[2]
		}
		elevations = append(elevations, z)
	}
	if len(points) < 2 {
		return domain.Route{}, ports.ErrNoRoute
	}

	meters := f.Properties.Summary.Distance
	if meters == 0 {
		for _, s := range f.Properties.Segments {
			meters += s.Distance
		}
	}

	return domain.Route{
		Points:           points,
		DistanceKm:       meters / 1000,
		Mode:             mode,
		ElevationGainM:   f.Properties.Ascent,
		ElevationSamples: geo.ElevationProfile(points, elevations),
	}, nil
}
