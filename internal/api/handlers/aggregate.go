package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"
	"transport-optimizer-service/internal/api/dto"
	"transport-optimizer-service/internal/domain"
	"transport-optimizer-service/internal/ports"
	"transport-optimizer-service/internal/services"
)

type AggregateHandler struct {
	Feed ports.ShipmentFeed
}

// Aggregate pulls the shipment feed and reduces it into a unit-cost matrix.
func (h *AggregateHandler) Aggregate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.AggregateRequest

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

	var since *time.Time
	if req.WindowDays < 0 {
		writeError(w, r, http.StatusBadRequest, "window_days must not be negative")
		return
	}
	if req.WindowDays > 0 {
		s := time.Now().AddDate(0, 0, -req.WindowDays)
		since = &s
	}

	records, err := h.Feed.ListShipments(r.Context(), since)
	if err != nil {
		log.Printf("list shipments failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "shipment feed unavailable")
		return
	}

	matrix, diag, err := services.BuildCostMatrix(records, services.AggregateOptions{
		Model:     req.Model,
		Statistic: req.Statistic,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidParameter) || errors.Is(err, domain.ErrValidation) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("aggregate failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.AggregateResponse{
		Matrix:      make([]dto.RouteCost, 0, len(matrix)),
		RecordCount: diag.RecordCount,
		RouteCount:  diag.RouteCount,
		MinCost:     diag.MinCost,
		MaxCost:     diag.MaxCost,
		Volatility:  make([]dto.VolatilityResponse, 0, len(diag.Volatility)),
	}
	for _, route := range matrix.Routes() {
		res.Matrix = append(res.Matrix, dto.RouteCost{
			Warehouse: route.Warehouse,
			Customer:  route.Customer,
			UnitCost:  matrix[route],
		})
		stats := diag.Volatility[route]
		res.Volatility = append(res.Volatility, dto.VolatilityResponse{
			Warehouse:       route.Warehouse,
			Customer:        route.Customer,
			FuelPriceStdDev: stats.FuelPriceStdDev,
			FuelPriceMin:    stats.FuelPriceMin,
			FuelPriceMax:    stats.FuelPriceMax,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
