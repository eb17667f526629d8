package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"transport-optimizer-service/internal/domain"
)

// SQLite backed cache for externally-retrieved cost matrices, keyed by the
// point-in-time marker. Keys are expected to be consistent (e.g., already
// normalized) by the caller.
type SqliteMatrixCache struct {
	DB *sql.DB
}

func NewSqliteMatrixCache(db *sql.DB) *SqliteMatrixCache {
	return &SqliteMatrixCache{DB: db}
}

// Fetch a cached matrix. Absence is reported via the bool, not an error.
func (s *SqliteMatrixCache) GetMatrix(ctx context.Context, key string) (domain.CostMatrix, bool, error) {
	if s.DB == nil {
		return nil, false, errors.New("matrix cache: db is nil")
	}
	if key == "" {
		return nil, false, errors.New("get matrix cache: key must not be empty")
	}

	query := `
	SELECT
        warehouse,
        customer,
        unit_cost
    FROM cost_matrix_cache
    WHERE cache_key = ?;
	`

	rows, err := s.DB.QueryContext(ctx, query, key)
	if err != nil {
		return nil, false, fmt.Errorf("get matrix cache: query cost_matrix_cache table: %w", err)
	}
	defer rows.Close()

	matrix := make(domain.CostMatrix)
	for rows.Next() {
		var warehouse, customer string
		var cost float64
		if err := rows.Scan(&warehouse, &customer, &cost); err != nil {
			return nil, false, fmt.Errorf("get matrix cache: scan rows: %w", err)
		}
		matrix[domain.Route{Warehouse: warehouse, Customer: customer}] = cost
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("get matrix cache: row iteration: %w", err)
	}

	if len(matrix) == 0 {
		return nil, false, nil
	}
	return matrix, true, nil
}

// Store a matrix under the given key, replacing any previous entry.
func (s *SqliteMatrixCache) PutMatrix(ctx context.Context, key string, m domain.CostMatrix) error {
	if s.DB == nil {
		return errors.New("matrix cache: db is nil")
	}
	if key == "" {
		return errors.New("insert matrix cache: key must not be empty")
	}
	if len(m) == 0 {
		return nil
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return fmt.Errorf("insert matrix cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Replace wholesale so a shrunken matrix never leaves stale routes behind.
	if _, err := tx.ExecContext(ctx, `DELETE FROM cost_matrix_cache WHERE cache_key = ?;`, key); err != nil {
		return fmt.Errorf("insert matrix cache: clear key: %w", err)
	}

	stmt, err := tx.Prepare(`
	INSERT INTO cost_matrix_cache (
        cache_key,
        warehouse,
        customer,
        unit_cost
    )
    VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("insert matrix cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for _, route := range m.Routes() {
		if _, err := stmt.Exec(key, route.Warehouse, route.Customer, m[route]); err != nil {
			return fmt.Errorf("insert matrix cache route=%s: %w", route, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert matrix cache commit: %w", err)
	}

	return nil
}
