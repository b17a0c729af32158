package domain

import "slices"

// Closed interval [Min, Max].
type Range struct {
	Min float64
	Max float64
}

// Report whether v lies within the range, bounds included.
func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// User-tunable selection preferences. Values are validated at the API
// boundary; the engine assumes they lie within their documented domains.
type UserPreferences struct {
	TargetCount         int
	MaxCorridorM        float64
	MaxExtraDetourM     float64
	DifficultyRange     Range
	TerrainRange        Range
	AllowedTypes        []CacheType
	AvoidRecentFailures bool
	SpacingKm           float64
}

// Return the preferences used when the caller supplies none.
func DefaultUserPreferences() UserPreferences {
	return UserPreferences{
		TargetCount:         8,
		MaxCorridorM:        800,
		MaxExtraDetourM:     1500,
		DifficultyRange:     Range{Min: 1, Max: 4},
		TerrainRange:        Range{Min: 1, Max: 4},
		AllowedTypes:        []CacheType{TypeTraditional, TypeVirtual, TypeEarthcache},
		AvoidRecentFailures: true,
		SpacingKm:           25,
	}
}

func (p UserPreferences) AllowsType(t CacheType) bool {
	return slices.Contains(p.AllowedTypes, t)
}
