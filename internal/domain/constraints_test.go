package domain

import (
	"errors"
	"testing"
)

func TestConstraintsMergeDoesNotMutateBase(t *testing.T) {
	base := Constraints{
		Capacities: map[string]float64{"Warehouse_A": 100, "Warehouse_B": 80},
		Demands:    map[string]float64{"Customer_1": 70, "Customer_2": 60},
	}

	merged := base.Merge(
		map[string]float64{"Warehouse_A": 150},
		map[string]float64{"Customer_2": 90},
	)

	if merged.Capacities["Warehouse_A"] != 150 {
		t.Errorf("merged capacity = %v, want 150", merged.Capacities["Warehouse_A"])
	}
	if merged.Demands["Customer_2"] != 90 {
		t.Errorf("merged demand = %v, want 90", merged.Demands["Customer_2"])
	}

	// Base template must be untouched.
	if base.Capacities["Warehouse_A"] != 100 {
		t.Errorf("base capacity mutated: %v", base.Capacities["Warehouse_A"])
	}
	if base.Demands["Customer_2"] != 60 {
		t.Errorf("base demand mutated: %v", base.Demands["Customer_2"])
	}
}

func TestConstraintsValidateRejectsNegative(t *testing.T) {
	cs := Constraints{
		Capacities: map[string]float64{"Warehouse_A": -5},
		Demands:    map[string]float64{"Customer_1": 70},
	}

	err := cs.Validate()
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestConstraintsValidateAllowsExcessDemand(t *testing.T) {
	// Total demand above total capacity is a solve outcome, not an input error.
	cs := Constraints{
		Capacities: map[string]float64{"Warehouse_A": 50, "Warehouse_B": 40},
		Demands:    map[string]float64{"Customer_1": 70, "Customer_2": 60},
	}

	if err := cs.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCostMatrixCompleteDetectsMissingPair(t *testing.T) {
	cs := Constraints{
		Capacities: map[string]float64{"Warehouse_A": 100, "Warehouse_B": 80},
		Demands:    map[string]float64{"Customer_1": 70, "Customer_2": 60},
	}

	m := CostMatrix{
		{Warehouse: "Warehouse_A", Customer: "Customer_1"}: 5,
		{Warehouse: "Warehouse_A", Customer: "Customer_2"}: 8,
		{Warehouse: "Warehouse_B", Customer: "Customer_1"}: 6,
		// Warehouse_B -> Customer_2 deliberately absent.
	}

	err := m.Complete(cs)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for missing pair, got %v", err)
	}
}

func TestCostMatrixMergeReturnsNewMatrix(t *testing.T) {
	base := CostMatrix{
		{Warehouse: "Warehouse_A", Customer: "Customer_1"}: 5,
	}

	merged := base.Merge(CostMatrix{
		{Warehouse: "Warehouse_A", Customer: "Customer_1"}: 7,
		{Warehouse: "Warehouse_B", Customer: "Customer_1"}: 6,
	})

	if got := merged[Route{Warehouse: "Warehouse_A", Customer: "Customer_1"}]; got != 7 {
		t.Errorf("merged cost = %v, want 7", got)
	}
	if got := base[Route{Warehouse: "Warehouse_A", Customer: "Customer_1"}]; got != 5 {
		t.Errorf("base cost mutated: %v", got)
	}
	if len(merged) != 2 {
		t.Errorf("merged size = %d, want 2", len(merged))
	}
}
