package domain

// FlowPlan is the output of exactly one solve invocation and is read-only
// afterward. A plan is either fully populated (Feasible=true) or entirely
// zeroed with Feasible=false; partial plans are not a valid state.
type FlowPlan struct {
	Flows     map[Route]float64
	TotalCost float64
	Feasible  bool
}

// Outflow returns the total quantity shipped out of a warehouse.
func (p *FlowPlan) Outflow(warehouse string) float64 {
	var total float64
	for r, units := range p.Flows {
		if r.Warehouse == warehouse {
			total += units
		}
	}
	return total
}

// Inflow returns the total quantity delivered to a customer.
func (p *FlowPlan) Inflow(customer string) float64 {
	var total float64
	for r, units := range p.Flows {
		if r.Customer == customer {
			total += units
		}
	}
	return total
}

// SolutionSummary is a pure derivation over a feasible FlowPlan: the optimal
// cost plus per-node utilization (outflow / capacity) and satisfaction
// (inflow / demand) ratios. It is recomputed on demand, never cached.
type SolutionSummary struct {
	TotalCost    float64
	Utilization  map[string]float64
	Satisfaction map[string]float64
}
