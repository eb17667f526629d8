package services

import (
	"errors"
	"math"
	"testing"
	"transport-optimizer-service/internal/domain"
)

const tolerance = 1e-6

func referenceMatrix() domain.CostMatrix {
	return domain.CostMatrix{
		{Warehouse: "Warehouse_A", Customer: "Customer_1"}: 5,
		{Warehouse: "Warehouse_A", Customer: "Customer_2"}: 8,
		{Warehouse: "Warehouse_B", Customer: "Customer_1"}: 6,
		{Warehouse: "Warehouse_B", Customer: "Customer_2"}: 4,
	}
}

func referenceConstraints() domain.Constraints {
	return domain.Constraints{
		Capacities: map[string]float64{"Warehouse_A": 100, "Warehouse_B": 80},
		Demands:    map[string]float64{"Customer_1": 70, "Customer_2": 60},
	}
}

func TestSolveReferenceScenario(t *testing.T) {
	plan, err := Solve(referenceMatrix(), referenceConstraints())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !plan.Feasible {
		t.Fatal("expected feasible plan")
	}
	if math.Abs(plan.TotalCost-590) > tolerance {
		t.Fatalf("total cost = %v, want 590", plan.TotalCost)
	}

	// Cheapest assignment: A->1 at 5, B->2 at 4.
	a1 := plan.Flows[domain.Route{Warehouse: "Warehouse_A", Customer: "Customer_1"}]
	b2 := plan.Flows[domain.Route{Warehouse: "Warehouse_B", Customer: "Customer_2"}]
	if math.Abs(a1-70) > tolerance {
		t.Errorf("flow A->1 = %v, want 70", a1)
	}
	if math.Abs(b2-60) > tolerance {
		t.Errorf("flow B->2 = %v, want 60", b2)
	}
}

func TestSolveInfeasibleWhenDemandExceedsCapacity(t *testing.T) {
	cs := domain.Constraints{
		Capacities: map[string]float64{"Warehouse_A": 50, "Warehouse_B": 40},
		Demands:    map[string]float64{"Customer_1": 70, "Customer_2": 60},
	}

	plan, err := Solve(referenceMatrix(), cs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if plan.Feasible {
		t.Fatal("expected infeasible plan")
	}
	for route, units := range plan.Flows {
		if units != 0 {
			t.Errorf("flow %s = %v, want 0 on infeasible plan", route, units)
		}
	}
	if plan.TotalCost != 0 {
		t.Errorf("total cost = %v, want 0 on infeasible plan", plan.TotalCost)
	}
}

func TestSolveRespectsConstraints(t *testing.T) {
	matrix := referenceMatrix()
	cs := referenceConstraints()

	plan, err := Solve(matrix, cs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !plan.Feasible {
		t.Fatal("expected feasible plan")
	}

	for w, capacity := range cs.Capacities {
		if out := plan.Outflow(w); out > capacity+tolerance {
			t.Errorf("warehouse %s outflow %v exceeds capacity %v", w, out, capacity)
		}
	}
	for cust, demand := range cs.Demands {
		if in := plan.Inflow(cust); in < demand-tolerance {
			t.Errorf("customer %s inflow %v below demand %v", cust, in, demand)
		}
	}
	if plan.TotalCost < 0 {
		t.Errorf("total cost %v is negative", plan.TotalCost)
	}
}

func TestSolveIsIdempotent(t *testing.T) {
	first, err := Solve(referenceMatrix(), referenceConstraints())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Solve(referenceMatrix(), referenceConstraints())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The optimal value is unique even when degenerate ties make the flow
	// assignment non-unique.
	if math.Abs(first.TotalCost-second.TotalCost) > tolerance {
		t.Errorf("total cost differs across solves: %v vs %v", first.TotalCost, second.TotalCost)
	}
}

func TestSolveZeroCapacityWarehouseIsValid(t *testing.T) {
	matrix := referenceMatrix()
	cs := domain.Constraints{
		Capacities: map[string]float64{"Warehouse_A": 130, "Warehouse_B": 0},
		Demands:    map[string]float64{"Customer_1": 70, "Customer_2": 60},
	}

	plan, err := Solve(matrix, cs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !plan.Feasible {
		t.Fatal("expected feasible plan")
	}

	if out := plan.Outflow("Warehouse_B"); math.Abs(out) > tolerance {
		t.Errorf("zero-capacity warehouse shipped %v units", out)
	}
	// Everything routes through A: 70*5 + 60*8 = 830.
	if math.Abs(plan.TotalCost-830) > tolerance {
		t.Errorf("total cost = %v, want 830", plan.TotalCost)
	}
}

func TestSolveMissingPairFailsValidation(t *testing.T) {
	matrix := referenceMatrix()
	delete(matrix, domain.Route{Warehouse: "Warehouse_B", Customer: "Customer_2"})

	_, err := Solve(matrix, referenceConstraints())
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestSolveUnknownMatrixNodeFailsValidation(t *testing.T) {
	matrix := referenceMatrix()
	matrix[domain.Route{Warehouse: "Warehouse_C", Customer: "Customer_1"}] = 3

	_, err := Solve(matrix, referenceConstraints())
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestSolveNegativeCapacityFailsValidation(t *testing.T) {
	cs := referenceConstraints()
	cs.Capacities["Warehouse_A"] = -10

	_, err := Solve(referenceMatrix(), cs)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
