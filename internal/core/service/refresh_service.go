package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/99minutos/tracking-aggregator/internal/core/ports"
	"github.com/99minutos/tracking-aggregator/internal/pkg/metrics"
)

type refreshService struct {
	tracking ports.TrackingService
	guard    ports.RefreshGuard
	log      zerolog.Logger
}

// NewRefreshService returns a RefreshService. A nil guard lets every refresh
// through.
func NewRefreshService(tracking ports.TrackingService, guard ports.RefreshGuard, log zerolog.Logger) ports.RefreshService {
	return &refreshService{tracking: tracking, guard: guard, log: log}
}

// Refresh re-runs the lookup for one tracking number unless it was refreshed
// within the guard's cooldown.
func (s *refreshService) Refresh(ctx context.Context, req ports.RefreshRequest) error {
	trackingNumber := SanitizeTrackingNumber(req.TrackingNumber)

	if s.guard != nil && trackingNumber != "" {
		ok, err := s.guard.Acquire(ctx, trackingNumber)
		if err != nil {
			s.log.Warn().Err(err).Str("tracking_number", trackingNumber).Msg("refresh guard failed, refreshing anyway")
		} else if !ok {
			metrics.RefreshSkippedTotal.Inc()
			s.log.Debug().
				Str("job_id", req.JobID).
				Str("tracking_number", trackingNumber).
				Msg("refresh skipped, cooldown active")
			return nil
		}
	}

	result, err := s.tracking.TrackShipment(ctx, ports.TrackShipmentInput{
		TrackingNumber: trackingNumber,
		CourierCode:    req.CourierCode,
	})
	if err != nil {
		return fmt.Errorf("refresh %s: %w", trackingNumber, err)
	}

	s.log.Debug().
		Str("job_id", req.JobID).
		Str("tracking_number", result.TrackingNumber).
		Str("status", string(result.Status)).
		Msg("refresh completed")
	return nil
}
