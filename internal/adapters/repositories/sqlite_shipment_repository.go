package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"transport-optimizer-service/internal/domain"
)

// SQLite-backed implementation of the ShipmentFeed port.
type SqliteShipmentRepository struct{ DB *sql.DB }

func NewSqliteShipmentRepository(db *sql.DB) *SqliteShipmentRepository {
	return &SqliteShipmentRepository{DB: db}
}

// Return shipment records, optionally restricted to those recorded at or
// after since.
func (s *SqliteShipmentRepository) ListShipments(ctx context.Context, since *time.Time) ([]domain.ShipmentRecord, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite shipment repository: DB is nil")
	}

	query := `
	SELECT
		shipment_id,
		warehouse,
		customer,
		distance_km,
		base_rate_per_km,
		road_condition_factor,
		vehicle_capacity_tons,
		fuel_price_per_liter,
		travel_time_hours,
		seasonal_factor,
		priority_multiplier,
		recorded_at
	FROM shipment_records
	`
	args := []any{}
	if since != nil {
		query += ` WHERE recorded_at >= ?`
		args = append(args, since.UTC())
	}
	query += ` ORDER BY shipment_id;`

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list shipments: query shipment_records table: %w", err)
	}
	defer rows.Close()

	records := make([]domain.ShipmentRecord, 0, 64)
	for rows.Next() {
		var rec domain.ShipmentRecord
		err := rows.Scan(
			&rec.ShipmentID,
			&rec.Warehouse,
			&rec.Customer,
			&rec.DistanceKM,
			&rec.BaseRatePerKM,
			&rec.RoadConditionFactor,
			&rec.VehicleCapacityTons,
			&rec.FuelPricePerLiter,
			&rec.TravelTimeHours,
			&rec.SeasonalFactor,
			&rec.PriorityMultiplier,
			&rec.RecordedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("list shipments: scan row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list shipments: row iteration: %w", err)
	}

	return records, nil
}
