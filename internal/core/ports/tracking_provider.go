package ports

import (
	"context"

	"github.com/99minutos/tracking-aggregator/internal/core/domain"
)

// TrackingProvider is the upstream tracking API. Implementations return the
// provider envelope for any response that was received; an error means the
// exchange itself failed (network, timeout, cancelled context).
type TrackingProvider interface {
	DetectCarrier(ctx context.Context, trackingNumber string) (*domain.Envelope, error)
	CreateTracking(ctx context.Context, trackingNumber, courierCode string) (*domain.Envelope, error)
	GetTracking(ctx context.Context, trackingNumber, courierCode string) (*domain.Envelope, error)
	// ListCouriers fetches a courier directory from the given path relative
	// to the provider base URL.
	ListCouriers(ctx context.Context, path string) (*domain.Envelope, error)
}
