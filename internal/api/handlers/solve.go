package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"transport-optimizer-service/internal/api/dto"
	"transport-optimizer-service/internal/domain"
	"transport-optimizer-service/internal/services"
)

type SolveHandler struct{}

// Solve runs a one-off transportation solve over an explicit cost matrix and
// constraint set.
func (h *SolveHandler) Solve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.SolveRequest

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

	matrix := make(domain.CostMatrix, len(req.Costs))
	for _, rc := range req.Costs {
		matrix[domain.Route{Warehouse: rc.Warehouse, Customer: rc.Customer}] = rc.UnitCost
	}
	cs := domain.Constraints{Capacities: req.Capacities, Demands: req.Demands}

	plan, err := services.Solve(matrix, cs)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("solve failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.SolveResponse{
		Feasible: plan.Feasible,
		Flows:    flowResponses(plan.Flows, cs),
	}
	if summary := services.Summarize(plan, cs); summary != nil {
		cost := summary.TotalCost
		res.OptimalCost = &cost
		res.Utilization = summary.Utilization
		res.Satisfaction = summary.Satisfaction
	}

	writeJSON(w, r, http.StatusOK, res)
}

// flowResponses flattens a flow map into deterministic warehouse/customer
// order for stable JSON output.
func flowResponses(flows map[domain.Route]float64, cs domain.Constraints) []dto.FlowResponse {
	out := make([]dto.FlowResponse, 0, len(flows))
	for _, w := range cs.Warehouses() {
		for _, c := range cs.Customers() {
			route := domain.Route{Warehouse: w, Customer: c}
			units, ok := flows[route]
			if !ok {
				continue
			}
			out = append(out, dto.FlowResponse{Warehouse: w, Customer: c, Units: units})
		}
	}
	return out
}
