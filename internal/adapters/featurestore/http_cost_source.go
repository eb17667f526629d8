package featurestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"
	"transport-optimizer-service/internal/domain"
	"transport-optimizer-service/internal/platform/obs"
	"transport-optimizer-service/internal/ports"
)

// HTTPCostSource implements CostSource against the remote feature-store
// service that versions aggregated cost matrices by route entity.
//
// It coordinates:
//   - Point-in-time matrix retrieval
//   - Optional persistent matrix caching
//   - External API calls with retry/backoff
//
// The source is safe for concurrent use.
type HTTPCostSource struct {
	session *http.Client
	apiKey  string
	baseURL string
	cache   ports.MatrixCache
}

func NewHTTPCostSource(baseURL, apiKey string, cache ports.MatrixCache) (*HTTPCostSource, error) {
	if baseURL == "" {
		return nil, errors.New("feature store base URL is empty")
	}
	if apiKey == "" {
		return nil, errors.New("feature store api key is empty")
	}

	source := &HTTPCostSource{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: baseURL,
		cache:   cache,
	}

	return source, nil
}

type matrixRow struct {
	Warehouse string  `json:"warehouse"`
	Customer  string  `json:"customer"`
	UnitCost  float64 `json:"unit_cost"`
}

type matrixResponse struct {
	Routes []matrixRow `json:"routes"`
}

// CacheKey normalizes a point-in-time marker into a stable cache key.
func CacheKey(asOf *time.Time) string {
	if asOf == nil {
		return "latest"
	}
	return asOf.UTC().Format(time.RFC3339)
}

// GetCostMatrix retrieves the unit-cost matrix, preferring the cache when
// one is configured.
func (s *HTTPCostSource) GetCostMatrix(ctx context.Context, asOf *time.Time) (_ domain.CostMatrix, err error) {
	defer obs.Time(ctx, "featurestore.GetCostMatrix")(&err)

	key := CacheKey(asOf)

	if s.cache != nil {
		cached, ok, err := s.cache.GetMatrix(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("get matrix cache: %w", err)
		}
		if ok {
			return cached, nil
		}
	}

	endpoint := s.baseURL + "/v1/cost-matrix"
	if asOf != nil {
		endpoint += "?as_of=" + url.QueryEscape(asOf.UTC().Format(time.RFC3339))
	}

	resp, err := s.doWithRetry(ctx, func() (*http.Request, error) {
		return s.newRequest(ctx, http.MethodGet, endpoint, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: cost matrix request failed: %v", domain.ErrExternalSource, err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("%w: decode cost matrix response: %v", domain.ErrExternalSource, err)
	}

	if len(mr.Routes) == 0 {
		return nil, fmt.Errorf("%w: feature store returned an empty cost matrix", domain.ErrExternalSource)
	}

	matrix := make(domain.CostMatrix, len(mr.Routes))
	for _, row := range mr.Routes {
		if row.Warehouse == "" || row.Customer == "" {
			return nil, fmt.Errorf("%w: cost matrix row with empty node name", domain.ErrExternalSource)
		}
		if row.UnitCost < 0 {
			return nil, fmt.Errorf("%w: negative unit cost %v for %s->%s", domain.ErrExternalSource, row.UnitCost, row.Warehouse, row.Customer)
		}
		matrix[domain.Route{Warehouse: row.Warehouse, Customer: row.Customer}] = row.UnitCost
	}

	if s.cache != nil {
		if err := s.cache.PutMatrix(ctx, key, matrix); err != nil {
			log.Printf("matrix cache write failed: %v", err)
		}
	}

	return matrix, nil
}
