package domain

import "time"

// ShipmentRecord is one observed shipment between a warehouse and a customer,
// carrying the raw factors the cost aggregator derives a unit cost from.
// Records are immutable once ingested; they are produced by an external feed.
type ShipmentRecord struct {
	ShipmentID          int
	Warehouse           string
	Customer            string
	DistanceKM          float64
	BaseRatePerKM       float64
	RoadConditionFactor float64
	VehicleCapacityTons float64
	FuelPricePerLiter   float64
	TravelTimeHours     float64
	SeasonalFactor      float64
	PriorityMultiplier  float64
	RecordedAt          time.Time
}
