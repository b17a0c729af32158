package repositories

import (
	"context"
	"slices"

	"mixtrail-service/internal/domain"
)

// StaticCandidateSource serves a fixed in-memory list and ignores the
// bounding box.
type StaticCandidateSource struct {
	candidates []domain.RawCandidate
}

func NewStaticCandidateSource(candidates []domain.RawCandidate) *StaticCandidateSource {
	return &StaticCandidateSource{candidates: slices.Clone(candidates)}
}

func (s *StaticCandidateSource) ListCandidates(ctx context.Context, _ domain.BoundingBox) ([]domain.RawCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(s.candidates), nil
}

func days(n int) *int { return &n }

// DemoCandidates returns five caches along the Washington to Shenandoah
// corridor, used when no catalogue is configured.
func DemoCandidates() []domain.RawCandidate {
	return []domain.RawCandidate{
		{
			Code: "GC10001", Name: "Blue Ridge Vista", Coords: domain.GeoPoint{Lat: 38.9, Lng: -77.2},
			Type: domain.TypeTraditional, Difficulty: 2, Terrain: 2.5, Size: domain.SizeSmall,
			FavoritePoints: 80, LastFoundDays: days(7),
		},
		{
			Code: "GC10002", Name: "Historic Marker Virtual", Coords: domain.GeoPoint{Lat: 38.7, Lng: -77.6},
			Type: domain.TypeVirtual, Difficulty: 1.5, Terrain: 1.5, Size: domain.SizeSmall,
			FavoritePoints: 65, LastFoundDays: days(3),
		},
		{
			Code: "GC10003", Name: "Skyline Geology", Coords: domain.GeoPoint{Lat: 38.55, Lng: -78.3},
			Type: domain.TypeEarthcache, Difficulty: 2.5, Terrain: 2, Size: domain.SizeSmall,
			FavoritePoints: 120, LastFoundDays: days(10), RecentDNFs: 1,
		},
		{
			Code: "GC10004", Name: "Wayside Traditional", Coords: domain.GeoPoint{Lat: 38.44, Lng: -78.55},
			Type: domain.TypeTraditional, Difficulty: 2, Terrain: 2, Size: domain.SizeSmall,
			FavoritePoints: 40, LastFoundDays: days(20),
		},
		{
			Code: "GC10005", Name: "Trail Letterbox", Coords: domain.GeoPoint{Lat: 38.62, Lng: -78.0},
			Type: domain.TypeLetterbox, Difficulty: 2, Terrain: 3, Size: domain.SizeSmall,
			FavoritePoints: 25, LastFoundDays: days(2),
		},
	}
}
