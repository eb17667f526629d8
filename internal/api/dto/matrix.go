package dto

// RouteCost is one warehouse->customer unit cost in a request or response.
type RouteCost struct {
	Warehouse string  `json:"warehouse"`
	Customer  string  `json:"customer"`
	UnitCost  float64 `json:"unit_cost"`
}

type AggregateRequest struct {
	Model      string `json:"model"`
	Statistic  string `json:"statistic"`
	WindowDays int    `json:"window_days"`
}

type VolatilityResponse struct {
	Warehouse       string  `json:"warehouse"`
	Customer        string  `json:"customer"`
	FuelPriceStdDev float64 `json:"fuel_price_stddev"`
	FuelPriceMin    float64 `json:"fuel_price_min"`
	FuelPriceMax    float64 `json:"fuel_price_max"`
}

type AggregateResponse struct {
	Matrix      []RouteCost          `json:"matrix"`
	RecordCount int                  `json:"record_count"`
	RouteCount  int                  `json:"route_count"`
	MinCost     float64              `json:"min_cost"`
	MaxCost     float64              `json:"max_cost"`
	Volatility  []VolatilityResponse `json:"volatility"`
}
