package dto

type SolveRequest struct {
	Costs      []RouteCost        `json:"costs"`
	Capacities map[string]float64 `json:"capacities"`
	Demands    map[string]float64 `json:"demands"`
}

type FlowResponse struct {
	Warehouse string  `json:"warehouse"`
	Customer  string  `json:"customer"`
	Units     float64 `json:"units"`
}

type SolveResponse struct {
	Feasible     bool               `json:"feasible"`
	OptimalCost  *float64           `json:"optimal_cost,omitempty"`
	Flows        []FlowResponse     `json:"flows"`
	Utilization  map[string]float64 `json:"utilization,omitempty"`
	Satisfaction map[string]float64 `json:"satisfaction,omitempty"`
}
