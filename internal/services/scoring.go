package services

import "mixtrail-service/internal/domain"

// Fixed signed weights of the desirability score.
const (
	weightProximity = 0.25
	weightQuality   = 0.20
	weightFreshness = 0.10
	weightFit       = 0.25
	weightDetour    = -0.15
	weightFailures  = -0.05
)

const (
	// Favorite points at which a cache counts as very popular.
	popularFavoritePoints = 200
	// Days after the last find at which freshness bottoms out.
	staleAfterDays = 180
	// Freshness assumed when the last find date is unknown.
	unknownFreshness = 0.4
	// Recent failed attempts at which the failure penalty saturates.
	failureSaturation = 3
)

func clamp01(x float64) float64 { return max(0, min(1, x)) }

// saturation returns x/limit clamped to [0, 1]. A non-positive limit
// saturates as soon as x is positive.
func saturation(x, limit float64) float64 {
	if limit <= 0 {
		if x > 0 {
			return 1
		}
		return 0
	}
	return clamp01(x / limit)
}

// Normalized sub-scores of a candidate, each in [0, 1].
type ScoreComponents struct {
	Proximity      float64
	Quality        float64
	Freshness      float64
	Fit            float64
	DetourPenalty  float64
	FailurePenalty float64
}

// Total combines the components with the fixed weights. Penalties enter with
// negative weight, so the result is not bounded to [0, 1].
func (s ScoreComponents) Total() float64 {
	return weightProximity*s.Proximity +
		weightQuality*s.Quality +
		weightFreshness*s.Freshness +
		weightFit*s.Fit +
		weightDetour*s.DetourPenalty +
		weightFailures*s.FailurePenalty
}

// ScoreComponentsFor normalizes a candidate's attributes under prefs.
func ScoreComponentsFor(c domain.Candidate, prefs domain.UserPreferences) ScoreComponents {
	freshness := unknownFreshness
	if c.LastFoundDays != nil {
		freshness = 1 - clamp01(float64(*c.LastFoundDays)/staleAfterDays)
	}

	fitDifficultyTerrain := 0.3
	if prefs.DifficultyRange.Contains(c.Difficulty) && prefs.TerrainRange.Contains(c.Terrain) {
		fitDifficultyTerrain = 1
	}
	// Disallowed types are softened, not excluded.
	fitType := 0.5
	if prefs.AllowsType(c.Type) {
		fitType = 1
	}

	failures := 0.0
	if prefs.AvoidRecentFailures {
		failures = clamp01(float64(c.RecentDNFs) / failureSaturation)
	}

	return ScoreComponents{
		Proximity:      1 - saturation(c.DistanceToRouteM, prefs.MaxCorridorM),
		Quality:        clamp01(float64(c.FavoritePoints) / popularFavoritePoints),
		Freshness:      freshness,
		Fit:            0.7*fitDifficultyTerrain + 0.3*fitType,
		DetourPenalty:  saturation(c.ExtraDetourM, prefs.MaxExtraDetourM),
		FailurePenalty: failures,
	}
}

// ScoreCandidate returns the weighted desirability of c under prefs.
func ScoreCandidate(c domain.Candidate, prefs domain.UserPreferences) float64 {
	return ScoreComponentsFor(c, prefs).Total()
}

// ScoreCandidates scores every candidate, preserving input order.
func ScoreCandidates(candidates []domain.Candidate, prefs domain.UserPreferences) []domain.ScoredCandidate {
	scored := make([]domain.ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, domain.ScoredCandidate{Candidate: c, Score: ScoreCandidate(c, prefs)})
	}
	return scored
}
