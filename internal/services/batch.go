package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"transport-optimizer-service/internal/domain"
	"transport-optimizer-service/internal/platform/obs"
	"transport-optimizer-service/internal/ports"
)

// defaultBatchConcurrency bounds concurrent scenario solves. Scenarios share
// no mutable state, so the bound only limits memory and cost-source pressure.
const defaultBatchConcurrency = 4

// BatchRequest bundles the inputs of one batch run. Source may be nil, in
// which case every scenario must carry a full cost-override matrix.
type BatchRequest struct {
	Base        domain.Constraints
	Scenarios   []domain.Scenario
	Source      ports.CostSource
	Concurrency int
}

// RunBatch applies the solver to each scenario independently and returns one
// result row per scenario, in input order.
//
// A failure inside one scenario (unavailable cost source, missing pair,
// malformed constraint) is converted into an error row carrying the scenario
// identifier; it never aborts the rest of the batch. Each scenario works on
// its own merged copies of the base constraints and retrieved matrix.
func RunBatch(ctx context.Context, req BatchRequest) []domain.ScenarioResult {
	results := make([]domain.ScenarioResult, len(req.Scenarios))

	// Scenario identifiers must be unique within a batch; later duplicates
	// become error rows rather than silently shadowing earlier ones.
	seen := make(map[string]struct{}, len(req.Scenarios))
	duplicate := make([]bool, len(req.Scenarios))
	for i, sc := range req.Scenarios {
		if _, ok := seen[sc.ID]; ok {
			duplicate[i] = true
			continue
		}
		seen[sc.ID] = struct{}{}
	}

	concurrency := req.Concurrency
	if concurrency <= 0 {
		concurrency = defaultBatchConcurrency
	}

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i, sc := range req.Scenarios {
		wg.Add(1)
		go func(i int, sc domain.Scenario) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			if duplicate[i] {
				results[i] = errorRow(sc, fmt.Sprintf("duplicate scenario id %q", sc.ID))
				return
			}
			results[i] = runScenario(ctx, req, sc)
		}(i, sc)
	}

	wg.Wait()
	return results
}

func runScenario(ctx context.Context, req BatchRequest, sc domain.Scenario) domain.ScenarioResult {
	if sc.ID == "" {
		return errorRow(sc, "scenario id must be non-empty")
	}

	constraints := req.Base.Merge(sc.CapacityOverrides, sc.DemandOverrides)

	// Tag the context so cost-source timing logs are attributable to the row.
	ctx = context.WithValue(ctx, obs.ScenarioIDKey, sc.ID)

	matrix, source, err := resolveMatrix(ctx, req.Source, sc)
	if err != nil {
		return errorRow(sc, err.Error())
	}

	plan, err := Solve(matrix, constraints)
	if err != nil {
		return errorRow(sc, err.Error())
	}

	result := domain.ScenarioResult{
		ScenarioID: sc.ID,
		Feasible:   plan.Feasible,
		Flows:      plan.Flows,
		CostSource: source,
		AsOf:       sc.AsOf,
	}

	if summary := Summarize(plan, constraints); summary != nil {
		cost := summary.TotalCost
		result.OptimalCost = &cost
		result.Utilization = summary.Utilization
		result.Satisfaction = summary.Satisfaction
	}

	return result
}

// resolveMatrix produces the effective cost matrix for one scenario along
// with the audit tag recording where it came from.
func resolveMatrix(ctx context.Context, source ports.CostSource, sc domain.Scenario) (domain.CostMatrix, string, error) {
	if source == nil {
		if len(sc.CostOverrides) == 0 {
			return nil, "", fmt.Errorf("no cost source configured and scenario %q supplies no cost overrides", sc.ID)
		}
		return sc.CostOverrides.Clone(), domain.CostSourceOverrideOnly, nil
	}

	matrix, err := source.GetCostMatrix(ctx, sc.AsOf)
	if err != nil {
		if errors.Is(err, domain.ErrExternalSource) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("%w: %v", domain.ErrExternalSource, err)
	}

	if len(sc.CostOverrides) > 0 {
		return matrix.Merge(sc.CostOverrides), domain.CostSourceFeatureStoreOverride, nil
	}
	return matrix.Clone(), domain.CostSourceFeatureStore, nil
}

// errorRow builds the zeroed row emitted for a scenario-scoped failure.
func errorRow(sc domain.Scenario, msg string) domain.ScenarioResult {
	return domain.ScenarioResult{
		ScenarioID: sc.ID,
		Feasible:   false,
		Flows:      map[domain.Route]float64{},
		AsOf:       sc.AsOf,
		Err:        msg,
	}
}
