package ports

import (
	"context"
	"time"
	"transport-optimizer-service/internal/domain"
)

// Port: a boundary for enumerating raw shipment observations.
type ShipmentFeed interface {
	// Return shipment records, optionally restricted to those recorded at or
	// after since. Consumed only by the cost aggregator.
	ListShipments(ctx context.Context, since *time.Time) ([]domain.ShipmentRecord, error)
}
