package ports

import (
	"context"
	"transport-optimizer-service/internal/domain"
)

// Port: a boundary for loading the base constraint template (warehouse
// capacities and customer demands) from a structured document.
type ConstraintLoader interface {
	LoadBaseConstraints(ctx context.Context) (domain.Constraints, error)
}
