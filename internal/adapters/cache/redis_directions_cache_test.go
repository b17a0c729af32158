package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mixtrail-service/internal/domain"
	"mixtrail-service/internal/ports"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

var sampleRequest = ports.RouteRequest{
	Stops: []domain.GeoPoint{{Lat: 38.9072, Lng: -77.0369}, {Lat: 38.2929, Lng: -78.6796}},
	Mode:  domain.ModeDrive,
}

func TestRedisDirectionsCache_MissThenHit(t *testing.T) {
	_, client := newTestRedis(t)
	c := NewRedisDirectionsCache(client, time.Minute)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, sampleRequest)
	require.NoError(t, err)
	assert.False(t, ok)

	route := domain.Route{
		Points:           sampleRequest.Stops,
		DistanceKm:       158.3,
		Mode:             domain.ModeDrive,
		ElevationGainM:   412,
		ElevationSamples: []domain.ElevationSample{{KM: 0, M: 20}, {KM: 158.3, M: 300}},
	}
	require.NoError(t, c.Set(ctx, sampleRequest, route))

	got, ok, err := c.Get(ctx, sampleRequest)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, route, got)
}

func TestRedisDirectionsCache_Expires(t *testing.T) {
	mr, client := newTestRedis(t)
	c := NewRedisDirectionsCache(client, 30*time.Second)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, sampleRequest, domain.Route{Points: sampleRequest.Stops}))
	assert.Equal(t, 30*time.Second, mr.TTL(DirectionsKey(sampleRequest)))

	mr.FastForward(31 * time.Second)

	_, ok, err := c.Get(ctx, sampleRequest)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisDirectionsCache_CorruptValue(t *testing.T) {
	mr, client := newTestRedis(t)
	c := NewRedisDirectionsCache(client, 0)

	require.NoError(t, mr.Set(DirectionsKey(sampleRequest), "{not json"))

	_, _, err := c.Get(context.Background(), sampleRequest)
	assert.Error(t, err)
}

func TestRedisDirectionsCache_ConnectionError(t *testing.T) {
	mr, client := newTestRedis(t)
	c := NewRedisDirectionsCache(client, 0)
	mr.Close()

	_, _, err := c.Get(context.Background(), sampleRequest)
	assert.Error(t, err)
}

func TestDirectionsKey(t *testing.T) {
	walk := sampleRequest
	walk.Mode = domain.ModeWalk

	assert.Equal(t, "directions:v1:drive:38.90720,-77.03690:38.29290,-78.67960", DirectionsKey(sampleRequest))
	assert.NotEqual(t, DirectionsKey(sampleRequest), DirectionsKey(walk))

	reversed := ports.RouteRequest{Stops: []domain.GeoPoint{sampleRequest.Stops[1], sampleRequest.Stops[0]}, Mode: domain.ModeDrive}
	assert.NotEqual(t, DirectionsKey(sampleRequest), DirectionsKey(reversed))
}
