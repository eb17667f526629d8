package dto

import "time"

type ScenarioRequest struct {
	ScenarioName      string             `json:"scenario_name"`
	CapacityOverrides map[string]float64 `json:"capacity_overrides,omitempty"`
	DemandOverrides   map[string]float64 `json:"demand_overrides,omitempty"`
	CostOverrides     []RouteCost        `json:"cost_overrides,omitempty"`
	AsOf              *time.Time         `json:"as_of,omitempty"`
}

type BatchRequest struct {
	Scenarios []ScenarioRequest `json:"scenarios"`
}

type ScenarioResultResponse struct {
	ScenarioName string             `json:"scenario_name"`
	Feasible     bool               `json:"feasible"`
	OptimalCost  *float64           `json:"optimal_cost,omitempty"`
	Flows        []FlowResponse     `json:"flows"`
	Utilization  map[string]float64 `json:"utilization,omitempty"`
	Satisfaction map[string]float64 `json:"satisfaction,omitempty"`
	CostSource   string             `json:"cost_source,omitempty"`
	AsOf         *time.Time         `json:"as_of,omitempty"`
	Error        string             `json:"error,omitempty"`
}

type BatchResponse struct {
	Results []ScenarioResultResponse `json:"results"`
}
