package domain

import "errors"

// Error taxonomy shared across the engine.
//
// Infeasibility is deliberately absent: a solvable-but-infeasible program is a
// normal outcome reported on the FlowPlan, not an error.
var (
	// ErrValidation marks malformed or incomplete solver input: missing cost
	// pairs, negative capacities or demands, mismatched node sets.
	ErrValidation = errors.New("validation error")

	// ErrInvalidParameter marks an unknown cost model or aggregation choice.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrExternalSource marks a failed or malformed response from the cost
	// source or the constraint template loader.
	ErrExternalSource = errors.New("external source error")
)
