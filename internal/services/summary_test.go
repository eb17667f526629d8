package services

import (
	"math"
	"testing"
	"transport-optimizer-service/internal/domain"
)

func TestSummarizeReferenceScenario(t *testing.T) {
	plan, err := Solve(referenceMatrix(), referenceConstraints())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	summary := Summarize(plan, referenceConstraints())
	if summary == nil {
		t.Fatal("expected summary for feasible plan")
	}

	if math.Abs(summary.TotalCost-590) > tolerance {
		t.Errorf("total cost = %v, want 590", summary.TotalCost)
	}
	if got := summary.Utilization["Warehouse_A"]; math.Abs(got-0.70) > tolerance {
		t.Errorf("Warehouse_A utilization = %v, want 0.70", got)
	}
	if got := summary.Utilization["Warehouse_B"]; math.Abs(got-0.75) > tolerance {
		t.Errorf("Warehouse_B utilization = %v, want 0.75", got)
	}
	for cust := range referenceConstraints().Demands {
		if got := summary.Satisfaction[cust]; got < 1-tolerance {
			t.Errorf("%s satisfaction = %v, want >= 1", cust, got)
		}
	}
}

func TestSummarizeInfeasiblePlanIsNil(t *testing.T) {
	plan := &domain.FlowPlan{Feasible: false, Flows: map[domain.Route]float64{}}

	if summary := Summarize(plan, referenceConstraints()); summary != nil {
		t.Fatalf("expected nil summary, got %+v", summary)
	}
	if summary := Summarize(nil, referenceConstraints()); summary != nil {
		t.Fatalf("expected nil summary for nil plan, got %+v", summary)
	}
}

func TestSummarizeZeroDenominators(t *testing.T) {
	cs := domain.Constraints{
		Capacities: map[string]float64{"Warehouse_A": 100, "Warehouse_B": 0},
		Demands:    map[string]float64{"Customer_1": 70, "Customer_2": 0},
	}
	plan, err := Solve(referenceMatrix(), cs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	summary := Summarize(plan, cs)
	if summary == nil {
		t.Fatal("expected summary for feasible plan")
	}

	// Zero capacity and zero demand are defined as ratio 0, not a fault.
	if got := summary.Utilization["Warehouse_B"]; got != 0 {
		t.Errorf("zero-capacity utilization = %v, want 0", got)
	}
	if got := summary.Satisfaction["Customer_2"]; got != 0 {
		t.Errorf("zero-demand satisfaction = %v, want 0", got)
	}
}
