package ports

import (
	"context"
	"encoding/json"

	"github.com/99minutos/tracking-aggregator/internal/core/domain"
)

// TrackShipmentInput is the DTO passed from the transport layer to TrackingService.
type TrackShipmentInput struct {
	TrackingNumber string
	CourierCode    string // optional; detected when empty
}

// TrackShipmentResult is the unified view of one shipment.
type TrackShipmentResult struct {
	TrackingNumber string
	CourierCode    string
	Status         domain.ClearanceStatus
	Timeline       []domain.TimelineEvent
	Source         domain.DataSource

	// Raw provider payloads, kept for operator diagnosis.
	DetectRaw json.RawMessage
	Raw       json.RawMessage
}

// TrackingService runs the tracking aggregation pipeline.
type TrackingService interface {
	TrackShipment(ctx context.Context, input TrackShipmentInput) (*TrackShipmentResult, error)
}

// LookupRepository persists completed lookups.
type LookupRepository interface {
	Record(ctx context.Context, snapshot *domain.LookupSnapshot) error
	// Latest returns the most recent snapshot or domain.ErrLookupNotFound.
	Latest(ctx context.Context, trackingNumber string) (*domain.LookupSnapshot, error)
}
