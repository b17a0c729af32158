package routing

import (
	"context"
	"errors"
	"fmt"

	"mixtrail-service/internal/domain"
	"mixtrail-service/internal/geo"
	"mixtrail-service/internal/ports"
)

// MockRouteProvider draws straight lines between stops, inserting
// Densify evenly spaced vertices per leg. It needs no network and is used in
// tests and when no ORS key is configured.
type MockRouteProvider struct {
	Densify int
}

func NewMockRouteProvider(densify int) *MockRouteProvider {
	return &MockRouteProvider{Densify: max(0, densify)}
}

func (p *MockRouteProvider) PlanRoute(ctx context.Context, req ports.RouteRequest) (domain.Route, error) {
	if err := ctx.Err(); err != nil {
		return domain.Route{}, err
	}
	if len(req.Stops) < 2 {
		return domain.Route{}, errors.New("mock route: need at least two stops")
	}

	mode := req.Mode
	if !mode.Valid() {
		mode = domain.ModeDrive
	}

	points := []domain.GeoPoint{req.Stops[0]}
	for i := 1; i < len(req.Stops); i++ {
		a, b := req.Stops[i-1], req.Stops[i]
		steps := p.Densify + 1
		for s := 1; s <= steps; s++ {
			f := float64(s) / float64(steps)
			points = append(points, domain.GeoPoint{
				Lat: a.Lat + (b.Lat-a.Lat)*f,
				Lng: a.Lng + (b.Lng-a.Lng)*f,
			})
		}
	}

	return domain.Route{
		Points:           points,
		DistanceKm:       geo.RouteLengthKm(points),
		Mode:             mode,
		ElevationSamples: geo.ElevationProfile(points, nil),
	}, nil
}

// MockGeocoder resolves addresses from a fixed table.
type MockGeocoder struct {
	m map[string]domain.GeoPoint
}

func NewMockGeocoder(known map[string]domain.GeoPoint) *MockGeocoder {
	m := make(map[string]domain.GeoPoint, len(known))
	for k, v := range known {
		m[normalize(k)] = v
	}
	return &MockGeocoder{m: m}
}

func (g *MockGeocoder) Geocode(ctx context.Context, addresses []string) (map[string]domain.GeoPoint, error) {
	out := make(map[string]domain.GeoPoint, len(addresses))
	for _, a := range addresses {
		n := normalize(a)
		p, ok := g.m[n]
		if !ok {
			return nil, fmt.Errorf("mock geocode %q: %w", a, ports.ErrNotFound)
		}
		out[a] = p
	}
	return out, nil
}
