package services

import "transport-optimizer-service/internal/domain"

// Summarize derives utilization and satisfaction ratios from a solved plan.
//
// Returns nil for an infeasible plan: summaries are never computed over one.
// Zero-capacity warehouses and zero-demand customers are valid inputs, so a
// zero denominator yields a 0 ratio rather than a division fault.
func Summarize(plan *domain.FlowPlan, cs domain.Constraints) *domain.SolutionSummary {
	if plan == nil || !plan.Feasible {
		return nil
	}

	summary := &domain.SolutionSummary{
		TotalCost:    plan.TotalCost,
		Utilization:  make(map[string]float64, len(cs.Capacities)),
		Satisfaction: make(map[string]float64, len(cs.Demands)),
	}

	for w, capacity := range cs.Capacities {
		if capacity == 0 {
			summary.Utilization[w] = 0
			continue
		}
		summary.Utilization[w] = plan.Outflow(w) / capacity
	}

	for cust, demand := range cs.Demands {
		if demand == 0 {
			summary.Satisfaction[cust] = 0
			continue
		}
		summary.Satisfaction[cust] = plan.Inflow(cust) / demand
	}

	return summary
}
