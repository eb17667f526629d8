package ports

import (
	"context"
	"time"
	"transport-optimizer-service/internal/domain"
)

// Contract for retrieving a unit-cost matrix from an external source.
type CostSource interface {
	// Return the cost matrix as of the given point in time, or the latest
	// available matrix when asOf is nil. Implementations must either cover
	// the full route cross product or fail explicitly; a sparse matrix is
	// never silently padded.
	GetCostMatrix(ctx context.Context, asOf *time.Time) (domain.CostMatrix, error)
}
