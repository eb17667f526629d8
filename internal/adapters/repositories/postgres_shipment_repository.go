package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"transport-optimizer-service/internal/domain"
)

// Postgres-backed implementation of the ShipmentFeed port, for deployments
// where the shipment observations land in a warehouse table instead of the
// embedded store.
type PostgresShipmentRepository struct{ DB *sql.DB }

func NewPostgresShipmentRepository(db *sql.DB) *PostgresShipmentRepository {
	return &PostgresShipmentRepository{DB: db}
}

func (p *PostgresShipmentRepository) ListShipments(ctx context.Context, since *time.Time) ([]domain.ShipmentRecord, error) {
	if p.DB == nil {
		return nil, errors.New("postgres shipment repository: DB is nil")
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
		query += ` WHERE recorded_at >= $1`
		args = append(args, since.UTC())
	}
	query += ` ORDER BY shipment_id;`

	rows, err := p.DB.QueryContext(ctx, query, args...)
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

// InitPostgresSchema creates the shipment table for the dbtool.
func InitPostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	query := `
	CREATE TABLE IF NOT EXISTS shipment_records (
		shipment_id BIGINT PRIMARY KEY,
		warehouse TEXT NOT NULL,
		customer TEXT NOT NULL,
		distance_km DOUBLE PRECISION NOT NULL,
		base_rate_per_km DOUBLE PRECISION NOT NULL,
		road_condition_factor DOUBLE PRECISION NOT NULL,
		vehicle_capacity_tons DOUBLE PRECISION NOT NULL,
		fuel_price_per_liter DOUBLE PRECISION NOT NULL,
		travel_time_hours DOUBLE PRECISION NOT NULL,
		seasonal_factor DOUBLE PRECISION NOT NULL,
		priority_multiplier DOUBLE PRECISION NOT NULL,
		recorded_at TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_shipment_records_recorded_at
	ON shipment_records(recorded_at);
	`

	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("init postgres schema: %w", err)
	}
	return nil
}

// SeedPostgresFromJSON loads shipment observations into Postgres using the
// same seed file format as the embedded store.
func SeedPostgresFromJSON(db *sql.DB, jsonPath string) error {
	rows, err := loadSeeds(jsonPath)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed shipments: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO shipment_records (
		shipment_id, warehouse, customer, distance_km, base_rate_per_km,
		road_condition_factor, vehicle_capacity_tons, fuel_price_per_liter,
		travel_time_hours, seasonal_factor, priority_multiplier, recorded_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	ON CONFLICT (shipment_id) DO UPDATE SET
		warehouse = EXCLUDED.warehouse,
		customer = EXCLUDED.customer,
		distance_km = EXCLUDED.distance_km,
		base_rate_per_km = EXCLUDED.base_rate_per_km,
		road_condition_factor = EXCLUDED.road_condition_factor,
		vehicle_capacity_tons = EXCLUDED.vehicle_capacity_tons,
		fuel_price_per_liter = EXCLUDED.fuel_price_per_liter,
		travel_time_hours = EXCLUDED.travel_time_hours,
		seasonal_factor = EXCLUDED.seasonal_factor,
		priority_multiplier = EXCLUDED.priority_multiplier,
		recorded_at = EXCLUDED.recorded_at;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed shipments: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		_, err := stmt.Exec(
			r.seed.ShipmentID,
			r.seed.Warehouse,
			r.seed.Customer,
			r.seed.DistanceKM,
			r.seed.BaseRatePerKM,
			r.seed.RoadConditionFactor,
			r.seed.VehicleCapacityTons,
			r.seed.FuelPricePerLiter,
			r.seed.TravelTimeHours,
			r.seed.SeasonalFactor,
			r.seed.PriorityMultiplier,
			r.recordedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("seed shipments: insert shipment_id=%d: %w", r.seed.ShipmentID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed shipments: commit tx: %w", err)
	}

	return nil
}
