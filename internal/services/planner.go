package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"mixtrail-service/internal/domain"
	"mixtrail-service/internal/ports"
)

// Endpoint is one stop of a route request, given either as coordinates or
// as a free-text address. Coordinates win when both are set.
type Endpoint struct {
	Coords  *domain.GeoPoint
	Address string
}

type PlanRouteRequest struct {
	Start     Endpoint
	End       Endpoint
	Waypoints []Endpoint
	Mode      domain.TravelMode
}

// Plan a route through start, waypoints and end, in that order.
//
// All address endpoints are resolved with a single Geocode call before the
// routing provider is asked for geometry. An unknown or empty mode plans a
// driving route.
func PlanRoute(
	ctx context.Context,
	req PlanRouteRequest,
	geocoder ports.Geocoder,
	provider ports.RouteProvider,
) (domain.Route, error) {
	endpoints := make([]Endpoint, 0, 2+len(req.Waypoints))
	endpoints = append(endpoints, req.Start)
	endpoints = append(endpoints, req.Waypoints...)
	endpoints = append(endpoints, req.End)

	var addresses []string
	for i, e := range endpoints {
		if e.Coords != nil {
			continue
		}
		if strings.TrimSpace(e.Address) == "" {
			return domain.Route{}, fmt.Errorf("plan route: stop %d has neither coordinates nor address", i)
		}
		addresses = append(addresses, e.Address)
	}

	var resolved map[string]domain.GeoPoint
	if len(addresses) > 0 {
		if geocoder == nil {
			return domain.Route{}, errors.New("plan route: addresses given but no geocoder configured")
		}
		var err error
		resolved, err = geocoder.Geocode(ctx, addresses)
		if err != nil {
			return domain.Route{}, fmt.Errorf("plan route: resolve addresses: %w", err)
		}
	}

	stops := make([]domain.GeoPoint, 0, len(endpoints))
	for _, e := range endpoints {
		if e.Coords != nil {
			stops = append(stops, *e.Coords)
			continue
		}
		p, ok := resolved[e.Address]
		if !ok {
			return domain.Route{}, fmt.Errorf("plan route: missing coordinates for %q: %w", e.Address, ports.ErrNotFound)
		}
		stops = append(stops, p)
	}

	mode := req.Mode
	if !mode.Valid() {
		mode = domain.ModeDrive
	}

	route, err := provider.PlanRoute(ctx, ports.RouteRequest{Stops: stops, Mode: mode})
	if err != nil {
		return domain.Route{}, fmt.Errorf("plan route: %w", err)
	}

	slog.InfoContext(ctx, "route_planned",
		"mode", route.Mode,
		"stops", len(stops),
		"vertices", len(route.Points),
		"distance_km", route.DistanceKm,
	)

	return route, nil
}
