package ports

import (
	"context"
	"mixtrail-service/internal/domain"
)

// Port: a boundary for retrieving raw caches from a data source.
type CandidateSource interface {
	// Retrieve caches whose coordinates fall inside the box.
	ListCandidates(ctx context.Context, box domain.BoundingBox) ([]domain.RawCandidate, error)
}
