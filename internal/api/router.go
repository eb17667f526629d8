package api

import (
	"net/http"
	"transport-optimizer-service/internal/api/handlers"
	"transport-optimizer-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(feed ports.ShipmentFeed, loader ports.ConstraintLoader, source ports.CostSource) http.Handler {
	mux := http.NewServeMux()

	aggregateHandler := &handlers.AggregateHandler{Feed: feed}
	solveHandler := &handlers.SolveHandler{}
	batchHandler := &handlers.BatchHandler{
		Loader: loader,
		Source: source,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/matrix/aggregate", aggregateHandler.Aggregate)
	mux.HandleFunc("/solve", solveHandler.Solve)
	mux.HandleFunc("/batch", batchHandler.Batch)

	return loggingMiddleware(mux)
}
