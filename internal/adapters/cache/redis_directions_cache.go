package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"mixtrail-service/internal/domain"
	"mixtrail-service/internal/platform/metrics"
	"mixtrail-service/internal/platform/obs"
	"mixtrail-service/internal/ports"
)

const (
	directionsKeyPrefix  = "directions:v1:"
	defaultDirectionsTTL = time.Hour
)

// RedisDirectionsCache stores routing results as JSON values with a TTL.
type RedisDirectionsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDirectionsCache(client *redis.Client, ttl time.Duration) *RedisDirectionsCache {
	if ttl <= 0 {
		ttl = defaultDirectionsTTL
	}
	return &RedisDirectionsCache{client: client, ttl: ttl}
}

// Open a client for addr. An empty addr disables the cache and returns nil.
func OpenRedis(addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
}

type cachedRoute struct {
	Points           [][2]float64             `json:"points"`
	DistanceKm       float64                  `json:"distance_km"`
	Mode             domain.TravelMode        `json:"mode"`
	ElevationGainM   float64                  `json:"elevation_gain_m"`
	ElevationSamples []domain.ElevationSample `json:"elevation_samples,omitempty"`
}

// DirectionsKey derives the cache key from the mode and the stop coordinates
// rounded to 1e-5 degrees (about a metre).
func DirectionsKey(req ports.RouteRequest) string {
	var b strings.Builder
	b.WriteString(directionsKeyPrefix)
	b.WriteString(string(req.Mode))
	for _, s := range req.Stops {
		b.WriteByte(':')
		b.WriteString(strconv.FormatFloat(s.Lat, 'f', 5, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(s.Lng, 'f', 5, 64))
	}
	return b.String()
}

func (c *RedisDirectionsCache) Get(ctx context.Context, req ports.RouteRequest) (_ domain.Route, _ bool, err error) {
	defer obs.Time(ctx, "directions.cache.Get")(&err)

	raw, err := c.client.Get(ctx, DirectionsKey(req)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.DirectionsCacheMissesTotal.Inc()
		return domain.Route{}, false, nil
	}
	if err != nil {
		return domain.Route{}, false, fmt.Errorf("get directions cache: %w", err)
	}

	var cr cachedRoute
	if err := json.Unmarshal(raw, &cr); err != nil {
		return domain.Route{}, false, fmt.Errorf("get directions cache: decode: %w", err)
	}
	metrics.DirectionsCacheHitsTotal.Inc()

	points := make([]domain.GeoPoint, 0, len(cr.Points))
	for _, p := range cr.Points {
		points = append(points, domain.GeoPoint{Lat: p[0], Lng: p[1]})
	}

	return domain.Route{
		Points:           points,
		DistanceKm:       cr.DistanceKm,
		Mode:             cr.Mode,
		ElevationGainM:   cr.ElevationGainM,
		ElevationSamples: cr.ElevationSamples,
	}, true, nil
}

func (c *RedisDirectionsCache) Set(ctx context.Context, req ports.RouteRequest, route domain.Route) (err error) {
	defer obs.Time(ctx, "directions.cache.Set")(&err)

	cr := cachedRoute{
		Points:           make([][2]float64, 0, len(route.Points)),
		DistanceKm:       route.DistanceKm,
		Mode:             route.Mode,
		ElevationGainM:   route.ElevationGainM,
		ElevationSamples: route.ElevationSamples,
	}
	for _, p := range route.Points {
		cr.Points = append(cr.Points, [2]float64{p.Lat, p.Lng})
	}

	b, err := json.Marshal(cr)
	if err != nil {
		return fmt.Errorf("set directions cache: encode: %w", err)
	}

	if err := c.client.Set(ctx, DirectionsKey(req), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("set directions cache: %w", err)
	}
	return nil
}
