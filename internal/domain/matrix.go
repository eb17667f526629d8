package domain

import (
	"fmt"
	"sort"
)

// Route identifies one warehouse -> customer shipping lane.
type Route struct {
	Warehouse string
	Customer  string
}

func (r Route) String() string { return r.Warehouse + "->" + r.Customer }

// CostMatrix maps each route to a non-negative unit cost.
//
// A matrix is a value object: overrides produce a new matrix via Merge, the
// receiver is never mutated. At solve time the key set must cover exactly the
// cross product of the constraint set's nodes; a missing pair is a hard error,
// never a silent zero.
type CostMatrix map[Route]float64

// Clone returns an independent copy of the matrix.
func (m CostMatrix) Clone() CostMatrix {
	out := make(CostMatrix, len(m))
	for r, c := range m {
		out[r] = c
	}
	return out
}

// Merge returns a new matrix with the override costs layered on top.
func (m CostMatrix) Merge(overrides CostMatrix) CostMatrix {
	out := m.Clone()
	for r, c := range overrides {
		out[r] = c
	}
	return out
}

// Complete verifies the matrix covers the full warehouse x customer cross
// product of the given constraint set and carries no negative costs.
func (m CostMatrix) Complete(cs Constraints) error {
	for _, w := range cs.Warehouses() {
		for _, c := range cs.Customers() {
			route := Route{Warehouse: w, Customer: c}
			cost, ok := m[route]
			if !ok {
				return fmt.Errorf("%w: missing unit cost for route %s", ErrValidation, route)
			}
			if cost < 0 {
				return fmt.Errorf("%w: negative unit cost %v for route %s", ErrValidation, cost, route)
			}
		}
	}
	return nil
}

// Routes returns the matrix keys in deterministic order.
func (m CostMatrix) Routes() []Route {
	routes := make([]Route, 0, len(m))
	for r := range m {
		routes = append(routes, r)
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Warehouse != routes[j].Warehouse {
			return routes[i].Warehouse < routes[j].Warehouse
		}
		return routes[i].Customer < routes[j].Customer
	})
	return routes
}
