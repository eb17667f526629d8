package featurestore

import (
	"context"
	"fmt"
	"time"
	"transport-optimizer-service/internal/domain"
	"transport-optimizer-service/internal/ports"
	"transport-optimizer-service/internal/services"
)

// FeedCostSource builds the cost matrix on demand by aggregating the raw
// shipment feed over a trailing window. It serves deployments without a
// remote feature store: the matrix for a point in time is recomputed from
// the observations available up to that point.
type FeedCostSource struct {
	Feed       ports.ShipmentFeed
	Options    services.AggregateOptions
	WindowDays int
}

func NewFeedCostSource(feed ports.ShipmentFeed, opts services.AggregateOptions, windowDays int) *FeedCostSource {
	if windowDays <= 0 {
		windowDays = 30
	}
	return &FeedCostSource{Feed: feed, Options: opts, WindowDays: windowDays}
}

func (f *FeedCostSource) GetCostMatrix(ctx context.Context, asOf *time.Time) (domain.CostMatrix, error) {
	end := time.Now()
	if asOf != nil {
		end = *asOf
	}
	since := end.AddDate(0, 0, -f.WindowDays)

	records, err := f.Feed.ListShipments(ctx, &since)
	if err != nil {
		return nil, fmt.Errorf("%w: list shipments: %v", domain.ErrExternalSource, err)
	}

	// The feed filters on the window start; the point-in-time upper bound is
	// applied here so historical lookups never see later observations.
	windowed := records[:0:0]
	for _, rec := range records {
		if rec.RecordedAt.After(end) {
			continue
		}
		windowed = append(windowed, rec)
	}

	if len(windowed) == 0 {
		return nil, fmt.Errorf("%w: no shipment records in the %d-day window ending %s", domain.ErrExternalSource, f.WindowDays, end.Format(time.RFC3339))
	}

	matrix, _, err := services.BuildCostMatrix(windowed, f.Options)
	if err != nil {
		return nil, fmt.Errorf("aggregate shipment feed: %w", err)
	}
	return matrix, nil
}
