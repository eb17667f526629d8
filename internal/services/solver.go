package services

import (
	"fmt"
	"transport-optimizer-service/internal/domain"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// Solve minimizes total shipping cost over the classical transportation LP:
// one non-negative flow variable per route, warehouse outflow bounded above by
// capacity, customer inflow bounded below by demand.
//
// Each call builds a fresh formulation; there is no incremental re-solve.
// Validation failures (missing cost pairs, negative inputs, extra matrix
// nodes) are returned as errors before any solve is attempted. An infeasible
// or unbounded program is a normal outcome: the returned plan carries
// Feasible=false with all flows zeroed and no error.
func Solve(matrix domain.CostMatrix, cs domain.Constraints) (*domain.FlowPlan, error) {
	if err := validateSolveInput(matrix, cs); err != nil {
		return nil, err
	}

	warehouses := cs.Warehouses()
	customers := cs.Customers()
	nW := len(warehouses)
	nC := len(customers)

	// Standard form: flow variables first, then one slack per warehouse
	// (capacity row becomes an equality) and one surplus per customer
	// (demand row becomes an equality). All variables are >= 0.
	nFlows := nW * nC
	nVars := nFlows + nW + nC
	nRows := nW + nC

	c := make([]float64, nVars)
	b := make([]float64, nRows)
	a := mat.NewDense(nRows, nVars, nil)

	for i, w := range warehouses {
		for j, cust := range customers {
			col := i*nC + j
			c[col] = matrix[domain.Route{Warehouse: w, Customer: cust}]
			a.Set(i, col, 1)
			a.Set(nW+j, col, 1)
		}
	}
	for i, w := range warehouses {
		a.Set(i, nFlows+i, 1)
		b[i] = cs.Capacities[w]
	}
	for j, cust := range customers {
		a.Set(nW+j, nFlows+nW+j, -1)
		b[nW+j] = cs.Demands[cust]
	}

	_, x, err := lp.Simplex(c, a, b, 0, nil)
	if err != nil {
		// Infeasible, unbounded, or a simplex breakdown: all are reported as
		// an infeasible plan rather than an error.
		return infeasiblePlan(warehouses, customers), nil
	}

	plan := &domain.FlowPlan{
		Flows:    make(map[domain.Route]float64, nFlows),
		Feasible: true,
	}
	for i, w := range warehouses {
		for j, cust := range customers {
			route := domain.Route{Warehouse: w, Customer: cust}
			units := x[i*nC+j]
			// Clamp simplex round-off so flows stay non-negative.
			if units < 0 {
				units = 0
			}
			plan.Flows[route] = units
			plan.TotalCost += matrix[route] * units
		}
	}

	return plan, nil
}

func validateSolveInput(matrix domain.CostMatrix, cs domain.Constraints) error {
	if err := cs.Validate(); err != nil {
		return fmt.Errorf("solve: %w", err)
	}
	if err := matrix.Complete(cs); err != nil {
		return fmt.Errorf("solve: %w", err)
	}

	// The matrix key set must equal the cross product, not merely cover it.
	if len(matrix) != len(cs.Capacities)*len(cs.Demands) {
		for _, r := range matrix.Routes() {
			if _, ok := cs.Capacities[r.Warehouse]; !ok {
				return fmt.Errorf("solve: %w: matrix references unknown warehouse %q", domain.ErrValidation, r.Warehouse)
			}
			if _, ok := cs.Demands[r.Customer]; !ok {
				return fmt.Errorf("solve: %w: matrix references unknown customer %q", domain.ErrValidation, r.Customer)
			}
		}
		return fmt.Errorf("solve: %w: matrix has %d routes, constraint set implies %d", domain.ErrValidation, len(matrix), len(cs.Capacities)*len(cs.Demands))
	}

	return nil
}

func infeasiblePlan(warehouses, customers []string) *domain.FlowPlan {
	flows := make(map[domain.Route]float64, len(warehouses)*len(customers))
	for _, w := range warehouses {
		for _, c := range customers {
			flows[domain.Route{Warehouse: w, Customer: c}] = 0
		}
	}
	return &domain.FlowPlan{Flows: flows, Feasible: false}
}
