package services

import (
	"fmt"
	"math"
	"sort"
	"transport-optimizer-service/internal/domain"
)

// Cost model selection for per-record cost computation.
const (
	ModelTime      = "time"
	ModelComposite = "composite"
)

// Aggregation statistic applied per route group.
const (
	StatMean   = "mean"
	StatMedian = "median"
	StatMin    = "min"
	StatMax    = "max"
)

// costPrecision is the number of decimal places matrix values are rounded to
// so that repeated aggregations over the same feed are reproducible.
const costPrecision = 4

// CostParams holds the calibration constants of the cost models. The defaults
// reproduce the operational calibration; none of the specific values are
// load-bearing beyond that.
type CostParams struct {
	// HourlyRate prices one hour of travel time.
	HourlyRate float64
	// BaseFuelEfficiency is the km-per-liter baseline of a reference vehicle.
	BaseFuelEfficiency float64
	// TimeWeight down-weights the time component inside the composite model.
	TimeWeight float64
	// ReferenceCapacityTons is the vehicle size the capacity scaling is
	// normalized against.
	ReferenceCapacityTons float64
}

func DefaultCostParams() CostParams {
	return CostParams{
		HourlyRate:            25,
		BaseFuelEfficiency:    8,
		TimeWeight:            0.3,
		ReferenceCapacityTons: 10,
	}
}

// AggregateOptions selects the cost model and reduction statistic.
// Zero values select the operational defaults (composite, mean).
type AggregateOptions struct {
	Model     string
	Statistic string
	Params    CostParams
}

// VolatilityStats captures per-route spread of the fuel-price factor, the
// auxiliary observability output of the windowed aggregation.
type VolatilityStats struct {
	FuelPriceStdDev float64
	FuelPriceMin    float64
	FuelPriceMax    float64
}

// AggregateDiagnostics accompanies a built matrix for observability. It is
// not part of the solver contract.
type AggregateDiagnostics struct {
	RecordCount int
	RouteCount  int
	MinCost     float64
	MaxCost     float64
	Volatility  map[domain.Route]VolatilityStats
}

// BuildCostMatrix reduces raw shipment records into one unit cost per route.
//
// Records are priced individually with the selected cost model, grouped by
// route, and reduced with the selected statistic. Unknown model or statistic
// names fail before any record is touched. Matrix values are rounded to
// costPrecision decimals; nothing downstream rounds again.
func BuildCostMatrix(records []domain.ShipmentRecord, opts AggregateOptions) (domain.CostMatrix, *AggregateDiagnostics, error) {
	model := opts.Model
	if model == "" {
		model = ModelComposite
	}
	stat := opts.Statistic
	if stat == "" {
		stat = StatMean
	}
	params := opts.Params
	if params == (CostParams{}) {
		params = DefaultCostParams()
	}

	switch model {
	case ModelTime, ModelComposite:
	default:
		return nil, nil, fmt.Errorf("%w: unknown cost model %q", domain.ErrInvalidParameter, model)
	}
	switch stat {
	case StatMean, StatMedian, StatMin, StatMax:
	default:
		return nil, nil, fmt.Errorf("%w: unknown aggregation %q", domain.ErrInvalidParameter, stat)
	}

	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%w: no shipment records to aggregate", domain.ErrValidation)
	}

	grouped := make(map[domain.Route][]float64)
	fuelPrices := make(map[domain.Route][]float64)
	for _, rec := range records {
		cost, err := recordCost(rec, model, params)
		if err != nil {
			return nil, nil, err
		}

		route := domain.Route{Warehouse: rec.Warehouse, Customer: rec.Customer}
		grouped[route] = append(grouped[route], cost)
		fuelPrices[route] = append(fuelPrices[route], rec.FuelPricePerLiter)
	}

	matrix := make(domain.CostMatrix, len(grouped))
	diag := &AggregateDiagnostics{
		RecordCount: len(records),
		RouteCount:  len(grouped),
		MinCost:     math.Inf(1),
		MaxCost:     math.Inf(-1),
		Volatility:  make(map[domain.Route]VolatilityStats, len(grouped)),
	}

	for route, costs := range grouped {
		reduced := reduce(costs, stat)
		rounded := roundTo(reduced, costPrecision)
		matrix[route] = rounded

		if rounded < diag.MinCost {
			diag.MinCost = rounded
		}
		if rounded > diag.MaxCost {
			diag.MaxCost = rounded
		}
		diag.Volatility[route] = fuelVolatility(fuelPrices[route])
	}

	return matrix, diag, nil
}

// recordCost prices a single shipment observation.
func recordCost(rec domain.ShipmentRecord, model string, p CostParams) (float64, error) {
	switch model {
	case ModelTime:
		if rec.TravelTimeHours < 0 {
			return 0, fmt.Errorf("%w: shipment %d has negative travel time", domain.ErrValidation, rec.ShipmentID)
		}
		return rec.TravelTimeHours * p.HourlyRate * rec.SeasonalFactor * rec.PriorityMultiplier, nil

	case ModelComposite:
		if rec.VehicleCapacityTons <= 0 {
			return 0, fmt.Errorf("%w: shipment %d has non-positive vehicle capacity %v", domain.ErrValidation, rec.ShipmentID, rec.VehicleCapacityTons)
		}
		if rec.RoadConditionFactor <= 0 {
			return 0, fmt.Errorf("%w: shipment %d has non-positive road condition factor %v", domain.ErrValidation, rec.ShipmentID, rec.RoadConditionFactor)
		}
		if rec.DistanceKM < 0 {
			return 0, fmt.Errorf("%w: shipment %d has negative distance", domain.ErrValidation, rec.ShipmentID)
		}

		distance := rec.DistanceKM * rec.BaseRatePerKM * rec.RoadConditionFactor

		fuelEfficiency := p.BaseFuelEfficiency * (rec.VehicleCapacityTons / p.ReferenceCapacityTons) * (1 / rec.RoadConditionFactor)
		fuel := (rec.DistanceKM / fuelEfficiency) * rec.FuelPricePerLiter

		// Time is deliberately down-weighted relative to the pure time model.
		timeCost := rec.TravelTimeHours * p.HourlyRate * p.TimeWeight

		// Smaller vehicles cost proportionally more per unit shipped.
		capacityFactor := p.ReferenceCapacityTons / rec.VehicleCapacityTons

		return (distance + fuel + timeCost) * capacityFactor * rec.SeasonalFactor * rec.PriorityMultiplier, nil

	default:
		return 0, fmt.Errorf("%w: unknown cost model %q", domain.ErrInvalidParameter, model)
	}
}

func reduce(costs []float64, stat string) float64 {
	switch stat {
	case StatMean:
		var sum float64
		for _, c := range costs {
			sum += c
		}
		return sum / float64(len(costs))

	case StatMedian:
		sorted := append([]float64(nil), costs...)
		sort.Float64s(sorted)
		mid := len(sorted) / 2
		if len(sorted)%2 == 1 {
			return sorted[mid]
		}
		return (sorted[mid-1] + sorted[mid]) / 2

	case StatMin:
		min := costs[0]
		for _, c := range costs[1:] {
			if c < min {
				min = c
			}
		}
		return min

	case StatMax:
		max := costs[0]
		for _, c := range costs[1:] {
			if c > max {
				max = c
			}
		}
		return max
	}
	return 0
}

// fuelVolatility computes sample standard deviation plus min/max of the
// fuel-price factor for one route group.
func fuelVolatility(prices []float64) VolatilityStats {
	stats := VolatilityStats{FuelPriceMin: prices[0], FuelPriceMax: prices[0]}

	var sum float64
	for _, p := range prices {
		sum += p
		if p < stats.FuelPriceMin {
			stats.FuelPriceMin = p
		}
		if p > stats.FuelPriceMax {
			stats.FuelPriceMax = p
		}
	}

	if len(prices) < 2 {
		return stats
	}

	mean := sum / float64(len(prices))
	var sq float64
	for _, p := range prices {
		d := p - mean
		sq += d * d
	}
	stats.FuelPriceStdDev = math.Sqrt(sq / float64(len(prices)-1))
	return stats
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
