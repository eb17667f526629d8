package domain

import (
	"fmt"
	"sort"
)

// Constraints is an immutable snapshot of warehouse capacities (upper bound on
// total outflow) and customer demands (lower bound on total inflow).
//
// Total capacity below total demand is allowed: infeasibility is a reportable
// solve outcome, not a constraint-set error.
type Constraints struct {
	Capacities map[string]float64
	Demands    map[string]float64
}

// Merge returns a new constraint set with the given capacity and demand
// overrides applied on top of the receiver. The base template is never
// mutated; scenarios each work on their own copy.
func (c Constraints) Merge(capacities, demands map[string]float64) Constraints {
	out := Constraints{
		Capacities: make(map[string]float64, len(c.Capacities)),
		Demands:    make(map[string]float64, len(c.Demands)),
	}
	for k, v := range c.Capacities {
		out.Capacities[k] = v
	}
	for k, v := range c.Demands {
		out.Demands[k] = v
	}
	for k, v := range capacities {
		out.Capacities[k] = v
	}
	for k, v := range demands {
		out.Demands[k] = v
	}
	return out
}

// Validate rejects empty node sets and negative capacities or demands.
// Zero-capacity warehouses and zero-demand customers are valid.
func (c Constraints) Validate() error {
	if len(c.Capacities) == 0 {
		return fmt.Errorf("%w: constraint set has no warehouses", ErrValidation)
	}
	if len(c.Demands) == 0 {
		return fmt.Errorf("%w: constraint set has no customers", ErrValidation)
	}
	for w, cap := range c.Capacities {
		if cap < 0 {
			return fmt.Errorf("%w: warehouse %q has negative capacity %v", ErrValidation, w, cap)
		}
	}
	for cust, d := range c.Demands {
		if d < 0 {
			return fmt.Errorf("%w: customer %q has negative demand %v", ErrValidation, cust, d)
		}
	}
	return nil
}

// Warehouses returns the warehouse names in sorted order so that repeated
// solves see the same variable ordering.
func (c Constraints) Warehouses() []string {
	names := make([]string, 0, len(c.Capacities))
	for w := range c.Capacities {
		names = append(names, w)
	}
	sort.Strings(names)
	return names
}

// Customers returns the customer names in sorted order.
func (c Constraints) Customers() []string {
	names := make([]string, 0, len(c.Demands))
	for cust := range c.Demands {
		names = append(names, cust)
	}
	sort.Strings(names)
	return names
}
