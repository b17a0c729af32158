package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"

	"mixtrail-service/internal/domain"
	"mixtrail-service/internal/platform/obs"
	"mixtrail-service/internal/ports"
)

// Concurrent /geocode/search calls per Geocode invocation.
const geocodeConcurrency = 4

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Geocode resolves addresses to coordinates, consulting the geocode cache
// first. Cache entries are keyed by the whitespace-normalized address; the
// result is keyed by the addresses as given.
func (o *ORSClient) Geocode(ctx context.Context, addresses []string) (_ map[string]domain.GeoPoint, err error) {
	defer obs.Time(ctx, "ors.Geocode")(&err)

	seen := make(map[string]struct{}, len(addresses))
	needed := make([]string, 0, len(addresses))
	for _, a := range addresses {
		n := normalize(a)
		if n == "" {
			return nil, fmt.Errorf("geocode: empty address")
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		needed = append(needed, n)
	}

	if len(needed) == 0 {
		return map[string]domain.GeoPoint{}, nil
	}

	hits := map[string]domain.GeoPoint{}
	if o.geocodeCache != nil {
		hits, err = o.geocodeCache.GetMany(ctx, needed)
		if err != nil {
			return nil, fmt.Errorf("geocode: read cache: %w", err)
		}
	}

	misses := make([]string, 0, len(needed))
	for _, a := range needed {
		if _, ok := hits[a]; !ok {
			misses = append(misses, a)
		}
	}

	fresh, err := o.geocodeMany(ctx, misses)
	if err != nil {
		return nil, fmt.Errorf("geocode: %w", err)
	}

	if o.geocodeCache != nil && len(fresh) > 0 {
		if err := o.geocodeCache.PutMany(ctx, fresh); err != nil {
			slog.WarnContext(ctx, "cache_write_failed", "cache", "geocode", "err", err)
		}
	}

	out := make(map[string]domain.GeoPoint, len(addresses))
	for _, a := range addresses {
		n := normalize(a)
		if p, ok := hits[n]; ok {
			out[a] = p
		} else {
			out[a] = fresh[n]
		}
	}

	return out, nil
}

// geocodeMany resolves already-normalized addresses through /geocode/search,
// a few at a time. The first failure cancels the remaining lookups.
func (o *ORSClient) geocodeMany(ctx context.Context, addresses []string) (map[string]domain.GeoPoint, error) {
	out := make(map[string]domain.GeoPoint, len(addresses))
	if len(addresses) == 0 {
		return out, nil
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(geocodeConcurrency)

	for _, a := range addresses {
		g.Go(func() error {
			p, err := o.geocodeOne(gctx, a)
			if err != nil {
				return err
			}
			mu.Lock()
			out[a] = p
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (o *ORSClient) geocodeOne(ctx context.Context, address string) (domain.GeoPoint, error) {
	endpoint := o.baseURL + "/geocode/search"

	resp, err := o.doWithRetry(ctx, "geocode", func() (*http.Request, error) {
		req, err := o.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", address)
		q.Set("size", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("geocode %q: %w", address, err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.GeoPoint{}, fmt.Errorf("decode geocode response for %q: %w", address, err)
	}

	if len(decoded.Features) == 0 {
		return domain.GeoPoint{}, fmt.Errorf("geocode %q: %w", address, ports.ErrNotFound)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) < 2 {
		return domain.GeoPoint{}, fmt.Errorf("invalid coordinate format for %q", address)
	}

	return domain.GeoPoint{Lat: coords[1], Lng: coords[0]}, nil
}
