package ports

import (
	"context"
	"transport-optimizer-service/internal/domain"
)

// Optional cache for externally-retrieved cost matrices, keyed by the
// point-in-time marker the matrix was requested with. Keys are expected to be
// consistent (e.g., already normalized) by the caller.
type MatrixCache interface {
	// Fetch a cached matrix. The second return reports whether the key was
	// present; absence is not an error.
	GetMatrix(ctx context.Context, key string) (domain.CostMatrix, bool, error)

	// Store a matrix under the given key, replacing any previous entry.
	PutMatrix(ctx context.Context, key string, m domain.CostMatrix) error
}
