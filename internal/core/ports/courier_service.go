package ports

import (
	"context"
	"encoding/json"
	"time"

	"github.com/99minutos/tracking-aggregator/internal/core/domain"
)

// CourierCache stores the courier directory between provider fetches.
type CourierCache interface {
	// Get returns the cached directory; ok is false on a miss.
	Get(ctx context.Context) (dir *domain.CourierDirectory, ok bool, err error)
	Set(ctx context.Context, dir *domain.CourierDirectory, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

// CourierSearchResult is a filtered page of the courier directory.
type CourierSearchResult struct {
	Endpoint  string
	FromCache bool
	Total     int
	Query     string
	Couriers  []domain.Courier
}

// CourierDetectResult is the ranked carrier list for one tracking number.
type CourierDetectResult struct {
	TrackingNumber string
	Candidates     []domain.CarrierCandidate
	Raw            json.RawMessage
}

// CourierService exposes the provider's courier directory.
type CourierService interface {
	Search(ctx context.Context, query string) (*CourierSearchResult, error)
	Detect(ctx context.Context, trackingNumber string) (*CourierDetectResult, error)
	Invalidate(ctx context.Context) error
}
