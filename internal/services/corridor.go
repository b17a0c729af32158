package services

import (
	"mixtrail-service/internal/domain"
	"mixtrail-service/internal/geo"
)

// Out-and-back factor applied to the straight-line distance to the route.
const detourRoundTripFactor = 2

// EvaluateCandidate attaches route geometry to a raw candidate.
//
// Any geometry the supplier may have computed is ignored; the marker and
// distances are always derived here from the route vertices.
func EvaluateCandidate(route []domain.GeoPoint, raw domain.RawCandidate) domain.Candidate {
	proj := geo.ProjectOntoRoute(route, raw.Coords)
	distM := geo.DistanceKm(route[proj.Index], raw.Coords) * 1000

	return domain.Candidate{
		RawCandidate:     raw,
		DistanceToRouteM: distM,
		ExtraDetourM:     distM * detourRoundTripFactor,
		RouteKmMarker:    proj.KmMarker,
	}
}

// EvaluateCandidates evaluates every raw candidate against route, in order.
func EvaluateCandidates(route []domain.GeoPoint, raws []domain.RawCandidate) []domain.Candidate {
	out := make([]domain.Candidate, 0, len(raws))
	for _, r := range raws {
		out = append(out, EvaluateCandidate(route, r))
	}
	return out
}
