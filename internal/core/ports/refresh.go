package ports

import "context"

// RefreshRequest asks for one tracking number to be looked up in the background.
type RefreshRequest struct {
	JobID          string
	TrackingNumber string
	CourierCode    string
}

// RefreshService performs a single background refresh.
type RefreshService interface {
	Refresh(ctx context.Context, req RefreshRequest) error
}

// RefreshGuard hands out cooldown slots so the same tracking number is not
// refreshed repeatedly in a short window.
type RefreshGuard interface {
	// Acquire reports true when the caller may refresh trackingNumber now.
	Acquire(ctx context.Context, trackingNumber string) (bool, error)
}
