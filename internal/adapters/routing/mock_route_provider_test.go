package routing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mixtrail-service/internal/domain"
	"mixtrail-service/internal/geo"
	"mixtrail-service/internal/ports"
)

func TestMockRouteProvider_Densifies(t *testing.T) {
	p := NewMockRouteProvider(3)

	route, err := p.PlanRoute(context.Background(), ports.RouteRequest{
		Stops: []domain.GeoPoint{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 4}, {Lat: 4, Lng: 4}},
	})
	require.NoError(t, err)

	require.Len(t, route.Points, 9)
	assert.Equal(t, domain.GeoPoint{Lat: 0, Lng: 1}, route.Points[1])
	assert.Equal(t, domain.GeoPoint{Lat: 0, Lng: 4}, route.Points[4])
	assert.Equal(t, domain.GeoPoint{Lat: 4, Lng: 4}, route.Points[8])
	assert.Equal(t, domain.ModeDrive, route.Mode)
	assert.InDelta(t, geo.RouteLengthKm(route.Points), route.DistanceKm, 1e-9)
	assert.Len(t, route.ElevationSamples, 9)
}

func TestMockRouteProvider_NeedsTwoStops(t *testing.T) {
	_, err := NewMockRouteProvider(0).PlanRoute(context.Background(), ports.RouteRequest{
		Stops: []domain.GeoPoint{{}},
	})
	assert.Error(t, err)
}

func TestMockGeocoder(t *testing.T) {
	g := NewMockGeocoder(map[string]domain.GeoPoint{"Front Royal, VA": {Lat: 38.9182, Lng: -78.1944}})

	got, err := g.Geocode(context.Background(), []string{"Front  Royal, VA"})
	require.NoError(t, err)
	assert.Equal(t, domain.GeoPoint{Lat: 38.9182, Lng: -78.1944}, got["Front  Royal, VA"])

	_, err = g.Geocode(context.Background(), []string{"Atlantis"})
	assert.ErrorIs(t, err, ports.ErrNotFound)
}
