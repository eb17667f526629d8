package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createShipmentsQuery := `
	CREATE TABLE IF NOT EXISTS shipment_records (
		shipment_id INTEGER PRIMARY KEY,
		warehouse TEXT NOT NULL,
		customer TEXT NOT NULL,
		distance_km REAL NOT NULL,
		base_rate_per_km REAL NOT NULL,
		road_condition_factor REAL NOT NULL,
		vehicle_capacity_tons REAL NOT NULL,
		fuel_price_per_liter REAL NOT NULL,
		travel_time_hours REAL NOT NULL,
		seasonal_factor REAL NOT NULL,
		priority_multiplier REAL NOT NULL,
		recorded_at TIMESTAMP NOT NULL
	);
	`

	createMatrixCacheQuery := `
	CREATE TABLE IF NOT EXISTS cost_matrix_cache (
        cache_key TEXT NOT NULL,
        warehouse TEXT NOT NULL,
        customer TEXT NOT NULL,
        unit_cost REAL NOT NULL,
        PRIMARY KEY (cache_key, warehouse, customer)
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_shipment_records_recorded_at
    ON shipment_records(recorded_at);
	`

	createRouteIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_shipment_records_route
    ON shipment_records(warehouse, customer);
	`

	statements := []string{
		createShipmentsQuery,
		createMatrixCacheQuery,
		createIndexQuery,
		createRouteIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type ShipmentSeed struct {
	ShipmentID          int     `json:"shipment_id"`
	Warehouse           string  `json:"warehouse"`
	Customer            string  `json:"customer"`
	DistanceKM          float64 `json:"distance_km"`
	BaseRatePerKM       float64 `json:"base_rate_per_km"`
	RoadConditionFactor float64 `json:"road_condition_factor"`
	VehicleCapacityTons float64 `json:"vehicle_capacity_tons"`
	FuelPricePerLiter   float64 `json:"fuel_price_per_liter"`
	TravelTimeHours     float64 `json:"travel_time_hours"`
	SeasonalFactor      float64 `json:"seasonal_factor"`
	PriorityMultiplier  float64 `json:"priority_multiplier"`
	RecordedAt          string  `json:"recorded_at"`
}

type seedRow struct {
	seed       ShipmentSeed
	recordedAt time.Time
}

// loadSeeds reads and validates a shipment seed file. Shared by the SQLite
// and Postgres seeders.
func loadSeeds(jsonPath string) ([]seedRow, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("seed shipments: read %q: %w", jsonPath, err)
	}

	var data []ShipmentSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("seed shipments: parse json: %w", err)
	}

	rows := make([]seedRow, 0, len(data))
	for i, item := range data {
		if item.ShipmentID <= 0 {
			return nil, fmt.Errorf("seed shipments: invalid shipment_id at index %d: %d", i+1, item.ShipmentID)
		}
		if strings.TrimSpace(item.Warehouse) == "" || strings.TrimSpace(item.Customer) == "" {
			return nil, fmt.Errorf("seed shipments: item at index %d: warehouse and customer cannot be empty", i+1)
		}
		if item.VehicleCapacityTons <= 0 {
			return nil, fmt.Errorf("seed shipments: item at index %d: vehicle_capacity_tons must be positive", i+1)
		}

		recordedAt, err := time.Parse(time.RFC3339, item.RecordedAt)
		if err != nil {
			return nil, fmt.Errorf("seed shipments: item at index %d: parse recorded_at: %w", i+1, err)
		}
		rows = append(rows, seedRow{seed: item, recordedAt: recordedAt})
	}

	return rows, nil
}

// Populate the database with shipment observations from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	rows, err := loadSeeds(jsonPath)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed shipments: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT OR REPLACE INTO shipment_records (
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
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
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
