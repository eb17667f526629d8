package services

import (
	"errors"
	"math"
	"testing"
	"time"
	"transport-optimizer-service/internal/domain"
)

func shipment(id int, warehouse, customer string, travelHours float64) domain.ShipmentRecord {
	return domain.ShipmentRecord{
		ShipmentID:          id,
		Warehouse:           warehouse,
		Customer:            customer,
		DistanceKM:          120,
		BaseRatePerKM:       0.5,
		RoadConditionFactor: 1.2,
		VehicleCapacityTons: 8,
		FuelPricePerLiter:   1.5,
		TravelTimeHours:     travelHours,
		SeasonalFactor:      1.1,
		PriorityMultiplier:  1.0,
		RecordedAt:          time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestBuildCostMatrixUnknownModel(t *testing.T) {
	records := []domain.ShipmentRecord{shipment(1, "Warehouse_A", "Customer_1", 2)}

	_, _, err := BuildCostMatrix(records, AggregateOptions{Model: "bogus"})
	if !errors.Is(err, domain.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestBuildCostMatrixUnknownStatistic(t *testing.T) {
	records := []domain.ShipmentRecord{shipment(1, "Warehouse_A", "Customer_1", 2)}

	_, _, err := BuildCostMatrix(records, AggregateOptions{Statistic: "mode"})
	if !errors.Is(err, domain.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestTimeModelSingleRecord(t *testing.T) {
	rec := shipment(1, "Warehouse_A", "Customer_1", 2)

	// 2h * 25/h * 1.1 * 1.0 = 55.
	want := 55.0

	for _, stat := range []string{StatMean, StatMedian, StatMin, StatMax} {
		matrix, _, err := BuildCostMatrix([]domain.ShipmentRecord{rec}, AggregateOptions{
			Model:     ModelTime,
			Statistic: stat,
		})
		if err != nil {
			t.Fatalf("statistic %s: unexpected error: %v", stat, err)
		}

		got := matrix[domain.Route{Warehouse: "Warehouse_A", Customer: "Customer_1"}]
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("statistic %s: cost = %v, want %v", stat, got, want)
		}
	}
}

func TestCompositeModelSingleRecord(t *testing.T) {
	rec := shipment(1, "Warehouse_A", "Customer_1", 2)

	// distance: 120 * 0.5 * 1.2 = 72
	// fuel efficiency: 8 * (8/10) * (1/1.2) = 5.3333..., fuel: (120/5.3333)*1.5 = 33.75
	// time: 2 * 25 * 0.3 = 15
	// capacity factor: 10/8 = 1.25, environmental: 1.1 * 1.0
	// total: (72 + 33.75 + 15) * 1.25 * 1.1 = 166.031(25), rounded to 4 decimals.
	want := 166.0313

	matrix, diag, err := BuildCostMatrix([]domain.ShipmentRecord{rec}, AggregateOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := matrix[domain.Route{Warehouse: "Warehouse_A", Customer: "Customer_1"}]
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("composite cost = %v, want %v", got, want)
	}

	if diag.RecordCount != 1 || diag.RouteCount != 1 {
		t.Errorf("diagnostics = %+v, want 1 record / 1 route", diag)
	}
}

func TestAggregationStatistics(t *testing.T) {
	records := []domain.ShipmentRecord{
		shipment(1, "Warehouse_A", "Customer_1", 1), // time cost 27.5
		shipment(2, "Warehouse_A", "Customer_1", 2), // time cost 55
		shipment(3, "Warehouse_A", "Customer_1", 4), // time cost 110
	}
	route := domain.Route{Warehouse: "Warehouse_A", Customer: "Customer_1"}

	cases := []struct {
		stat string
		want float64
	}{
		{StatMean, (27.5 + 55 + 110) / 3},
		{StatMedian, 55},
		{StatMin, 27.5},
		{StatMax, 110},
	}

	for _, tc := range cases {
		matrix, _, err := BuildCostMatrix(records, AggregateOptions{Model: ModelTime, Statistic: tc.stat})
		if err != nil {
			t.Fatalf("statistic %s: unexpected error: %v", tc.stat, err)
		}
		got := matrix[route]
		if math.Abs(got-roundTo(tc.want, costPrecision)) > 1e-9 {
			t.Errorf("statistic %s: cost = %v, want %v", tc.stat, got, tc.want)
		}
	}
}

func TestMedianEvenGroup(t *testing.T) {
	records := []domain.ShipmentRecord{
		shipment(1, "Warehouse_A", "Customer_1", 1), // 27.5
		shipment(2, "Warehouse_A", "Customer_1", 2), // 55
		shipment(3, "Warehouse_A", "Customer_1", 4), // 110
		shipment(4, "Warehouse_A", "Customer_1", 8), // 220
	}

	matrix, _, err := BuildCostMatrix(records, AggregateOptions{Model: ModelTime, Statistic: StatMedian})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := matrix[domain.Route{Warehouse: "Warehouse_A", Customer: "Customer_1"}]
	if math.Abs(got-82.5) > 1e-9 {
		t.Errorf("median = %v, want 82.5", got)
	}
}

func TestCompositeModelRejectsZeroCapacity(t *testing.T) {
	rec := shipment(1, "Warehouse_A", "Customer_1", 2)
	rec.VehicleCapacityTons = 0

	_, _, err := BuildCostMatrix([]domain.ShipmentRecord{rec}, AggregateOptions{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestFuelPriceVolatility(t *testing.T) {
	a := shipment(1, "Warehouse_A", "Customer_1", 2)
	b := shipment(2, "Warehouse_A", "Customer_1", 2)
	c := shipment(3, "Warehouse_A", "Customer_1", 2)
	a.FuelPricePerLiter = 1.0
	b.FuelPricePerLiter = 2.0
	c.FuelPricePerLiter = 3.0

	_, diag, err := BuildCostMatrix([]domain.ShipmentRecord{a, b, c}, AggregateOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stats := diag.Volatility[domain.Route{Warehouse: "Warehouse_A", Customer: "Customer_1"}]
	if stats.FuelPriceMin != 1.0 || stats.FuelPriceMax != 3.0 {
		t.Errorf("min/max = %v/%v, want 1/3", stats.FuelPriceMin, stats.FuelPriceMax)
	}
	// Sample stddev of {1,2,3} is 1.
	if math.Abs(stats.FuelPriceStdDev-1.0) > 1e-9 {
		t.Errorf("stddev = %v, want 1", stats.FuelPriceStdDev)
	}
}
