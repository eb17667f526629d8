package domain

import "time"

// Cost-source tags recorded on each scenario result for auditability.
const (
	CostSourceFeatureStore         = "feature_store"
	CostSourceFeatureStoreOverride = "feature_store+override"
	CostSourceOverrideOnly         = "override_only"
)

// Scenario is one named input bundle for the batch runner: optional
// constraint overrides, optional unit-cost overrides (full or partial), and an
// optional point-in-time marker for cost retrieval. Scenarios are ephemeral
// inputs and are never persisted by the engine.
type Scenario struct {
	ID                string
	CapacityOverrides map[string]float64
	DemandOverrides   map[string]float64
	CostOverrides     CostMatrix
	AsOf              *time.Time
}

// ScenarioResult is one output row of a batch run. Err is non-empty when the
// scenario failed before a solve could complete; infeasible solves are normal
// rows with Feasible=false and zeroed flows.
type ScenarioResult struct {
	ScenarioID   string
	Feasible     bool
	OptimalCost  *float64
	Flows        map[Route]float64
	Utilization  map[string]float64
	Satisfaction map[string]float64
	CostSource   string
	AsOf         *time.Time
	Err          string
}
