package dto

import (
	"errors"

	"mixtrail-service/internal/domain"
)

// UserPrefs carries optional overrides of the default preferences. Omitted
// fields take their defaults.
type UserPrefs struct {
	TargetCaches    *int        `json:"target_caches" validate:"omitnil,min=1,max=200"`
	MaxCorridorM    *float64    `json:"max_corridor_m" validate:"omitnil,min=50,max=5000"`
	MaxExtraDetourM *float64    `json:"max_extra_detour_m" validate:"omitnil,min=0,max=20000"`
	DifficultyRange *[2]float64 `json:"difficulty_range" validate:"omitnil,dive,min=1,max=5"`
	TerrainRange    *[2]float64 `json:"terrain_range" validate:"omitnil,dive,min=1,max=5"`
	Types           []string    `json:"types" validate:"omitempty,dive,oneof=Traditional Mystery Multi Letterbox Earthcache Virtual"`
	AvoidRecentDNFs *bool       `json:"avoid_recent_dnfs"`
	SpacingKm       *float64    `json:"spacing_km" validate:"omitnil,min=0"`
}

// ToDomain applies the overrides to the defaults. A nil receiver yields the
// defaults unchanged.
func (p *UserPrefs) ToDomain() (domain.UserPreferences, error) {
	prefs := domain.DefaultUserPreferences()
	if p == nil {
		return prefs, nil
	}

	if p.TargetCaches != nil {
		prefs.TargetCount = *p.TargetCaches
	}
	if p.MaxCorridorM != nil {
		prefs.MaxCorridorM = *p.MaxCorridorM
	}
	if p.MaxExtraDetourM != nil {
		prefs.MaxExtraDetourM = *p.MaxExtraDetourM
	}
	if p.DifficultyRange != nil {
		prefs.DifficultyRange = domain.Range{Min: p.DifficultyRange[0], Max: p.DifficultyRange[1]}
		if prefs.DifficultyRange.Min > prefs.DifficultyRange.Max {
			return prefs, errors.New("prefs.difficulty_range must be ordered [min, max]")
		}
	}
	if p.TerrainRange != nil {
		prefs.TerrainRange = domain.Range{Min: p.TerrainRange[0], Max: p.TerrainRange[1]}
		if prefs.TerrainRange.Min > prefs.TerrainRange.Max {
			return prefs, errors.New("prefs.terrain_range must be ordered [min, max]")
		}
	}
	if p.Types != nil {
		prefs.AllowedTypes = make([]domain.CacheType, 0, len(p.Types))
		for _, t := range p.Types {
			prefs.AllowedTypes = append(prefs.AllowedTypes, domain.CacheType(t))
		}
	}
	if p.AvoidRecentDNFs != nil {
		prefs.AvoidRecentFailures = *p.AvoidRecentDNFs
	}
	if p.SpacingKm != nil {
		prefs.SpacingKm = *p.SpacingKm
	}

	return prefs, nil
}
