package featurestore

import (
	"context"
	"fmt"
	"sync"
	"time"
	"transport-optimizer-service/internal/domain"
)

// MockCostSource serves canned matrices keyed by point-in-time for tests.
// Safe for concurrent use: the batch runner solves scenarios in parallel.
type MockCostSource struct {
	Latest domain.CostMatrix
	ByTime map[time.Time]domain.CostMatrix
	Fail   error

	mu    sync.Mutex
	calls int
}

func (m *MockCostSource) GetCostMatrix(ctx context.Context, asOf *time.Time) (domain.CostMatrix, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.Fail != nil {
		return nil, m.Fail
	}

	if asOf == nil {
		return m.Latest.Clone(), nil
	}
	matrix, ok := m.ByTime[*asOf]
	if !ok {
		return nil, fmt.Errorf("%w: no cost matrix recorded for %s", domain.ErrExternalSource, asOf.Format(time.RFC3339))
	}
	return matrix.Clone(), nil
}

// Calls reports how many lookups the source has served.
func (m *MockCostSource) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
