package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"transport-optimizer-service/internal/api/dto"
	"transport-optimizer-service/internal/domain"
	"transport-optimizer-service/internal/ports"
	"transport-optimizer-service/internal/services"
)

const maxBatchScenarios = 500

type BatchHandler struct {
	Loader ports.ConstraintLoader
	Source ports.CostSource
}

// Batch runs the solver over a list of scenarios and returns one result row
// per scenario. Scenario-scoped failures come back as error rows; only
// shared-setup failures (constraint template unavailable) fail the request.
func (h *BatchHandler) Batch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.BatchRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if len(req.Scenarios) == 0 {
		writeError(w, r, http.StatusBadRequest, "scenarios must be non-empty")
		return
	}
	if len(req.Scenarios) > maxBatchScenarios {
		writeError(w, r, http.StatusBadRequest, "too many scenarios in one batch")
		return
	}

	base, err := h.Loader.LoadBaseConstraints(r.Context())
	if err != nil {
		// No scenario can proceed without the template: abort the whole run.
		log.Printf("load base constraints failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "constraint template unavailable")
		return
	}

	scenarios := make([]domain.Scenario, 0, len(req.Scenarios))
	for _, sc := range req.Scenarios {
		scenario := domain.Scenario{
			ID:                sc.ScenarioName,
			CapacityOverrides: sc.CapacityOverrides,
			DemandOverrides:   sc.DemandOverrides,
			AsOf:              sc.AsOf,
		}
		if len(sc.CostOverrides) > 0 {
			scenario.CostOverrides = make(domain.CostMatrix, len(sc.CostOverrides))
			for _, rc := range sc.CostOverrides {
				scenario.CostOverrides[domain.Route{Warehouse: rc.Warehouse, Customer: rc.Customer}] = rc.UnitCost
			}
		}
		scenarios = append(scenarios, scenario)
	}

	results := services.RunBatch(r.Context(), services.BatchRequest{
		Base:      base,
		Scenarios: scenarios,
		Source:    h.Source,
	})

	res := dto.BatchResponse{Results: make([]dto.ScenarioResultResponse, 0, len(results))}
	for i, row := range results {
		effective := base.Merge(req.Scenarios[i].CapacityOverrides, req.Scenarios[i].DemandOverrides)
		res.Results = append(res.Results, dto.ScenarioResultResponse{
			ScenarioName: row.ScenarioID,
			Feasible:     row.Feasible,
			OptimalCost:  row.OptimalCost,
			Flows:        flowResponses(row.Flows, effective),
			Utilization:  row.Utilization,
			Satisfaction: row.Satisfaction,
			CostSource:   row.CostSource,
			AsOf:         row.AsOf,
			Error:        row.Err,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
