package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"transport-optimizer-service/internal/domain"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "cost_matrix:"

// Redis backed cache for externally-retrieved cost matrices. Entries expire
// after TTL so a long-lived worker eventually re-reads the feature store.
type RedisMatrixCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisMatrixCache(client *redis.Client, ttl time.Duration) *RedisMatrixCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisMatrixCache{Client: client, TTL: ttl}
}

type cachedRoute struct {
	Warehouse string  `json:"warehouse"`
	Customer  string  `json:"customer"`
	UnitCost  float64 `json:"unit_cost"`
}

func (r *RedisMatrixCache) GetMatrix(ctx context.Context, key string) (domain.CostMatrix, bool, error) {
	if r.Client == nil {
		return nil, false, errors.New("matrix cache: redis client is nil")
	}
	if key == "" {
		return nil, false, errors.New("get matrix cache: key must not be empty")
	}

	payload, err := r.Client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get matrix cache: redis get: %w", err)
	}

	var routes []cachedRoute
	if err := json.Unmarshal(payload, &routes); err != nil {
		return nil, false, fmt.Errorf("get matrix cache: decode payload: %w", err)
	}

	matrix := make(domain.CostMatrix, len(routes))
	for _, row := range routes {
		matrix[domain.Route{Warehouse: row.Warehouse, Customer: row.Customer}] = row.UnitCost
	}
	return matrix, true, nil
}

func (r *RedisMatrixCache) PutMatrix(ctx context.Context, key string, m domain.CostMatrix) error {
	if r.Client == nil {
		return errors.New("matrix cache: redis client is nil")
	}
	if key == "" {
		return errors.New("insert matrix cache: key must not be empty")
	}
	if len(m) == 0 {
		return nil
	}

	routes := make([]cachedRoute, 0, len(m))
	for _, route := range m.Routes() {
		routes = append(routes, cachedRoute{
			Warehouse: route.Warehouse,
			Customer:  route.Customer,
			UnitCost:  m[route],
		})
	}

	payload, err := json.Marshal(routes)
	if err != nil {
		return fmt.Errorf("insert matrix cache: encode payload: %w", err)
	}

	if err := r.Client.Set(ctx, redisKeyPrefix+key, payload, r.TTL).Err(); err != nil {
		return fmt.Errorf("insert matrix cache: redis set: %w", err)
	}

	return nil
}
