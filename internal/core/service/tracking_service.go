package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/99minutos/tracking-aggregator/internal/core/domain"
	"github.com/99minutos/tracking-aggregator/internal/core/ports"
	"github.com/99minutos/tracking-aggregator/internal/pkg/metrics"
)

type trackingService struct {
	resolver *CarrierResolver
	acquirer *TrackingAcquirer
	lookups  ports.LookupRepository
	now      func() time.Time
	log      zerolog.Logger
}

// NewTrackingService returns a TrackingService backed by provider. lookups may
// be nil, in which case completed lookups are not persisted.
func NewTrackingService(provider ports.TrackingProvider, lookups ports.LookupRepository, log zerolog.Logger) ports.TrackingService {
	return &trackingService{
		resolver: NewCarrierResolver(provider, log),
		acquirer: NewTrackingAcquirer(provider, log),
		lookups:  lookups,
		now:      func() time.Time { return time.Now().UTC() },
		log:      log,
	}
}

// TrackShipment resolves the carrier, acquires the provider record, and folds
// both legs into one timeline with a clearance status.
func (s *trackingService) TrackShipment(ctx context.Context, input ports.TrackShipmentInput) (*ports.TrackShipmentResult, error) {
	trackingNumber := SanitizeTrackingNumber(input.TrackingNumber)
	if trackingNumber == "" {
		metrics.LookupFailuresTotal.WithLabelValues("input").Inc()
		return nil, domain.ErrMissingTrackingNumber
	}

	resolution, err := s.resolver.Resolve(ctx, trackingNumber, input.CourierCode)
	if err != nil {
		return nil, s.fail(trackingNumber, err)
	}

	acq, err := s.acquirer.Acquire(ctx, trackingNumber, resolution.CourierCode, resolution.DetectRaw)
	if err != nil {
		return nil, s.fail(trackingNumber, err)
	}

	rec := acq.Record
	timeline := domain.MergeTimelines(
		domain.NormalizeLeg(rec.OriginInfo, domain.OriginLegPrefix),
		domain.NormalizeLeg(rec.DestinationInfo, domain.DestinationLegPrefix),
	)
	status := domain.DeriveClearanceStatus(rec.DeliveryStatus.String(), rec.LatestEvent.String())

	metrics.FetchSourceTotal.WithLabelValues(string(acq.Source)).Inc()
	metrics.LookupsTotal.WithLabelValues(string(status)).Inc()

	s.log.Info().
		Str("tracking_number", trackingNumber).
		Str("courier_code", resolution.CourierCode).
		Str("status", string(status)).
		Str("source", string(acq.Source)).
		Int("events", len(timeline)).
		Msg("shipment tracked")

	s.record(ctx, &domain.LookupSnapshot{
		TrackingNumber: trackingNumber,
		CourierCode:    resolution.CourierCode,
		Status:         status,
		DeliveryStatus: rec.DeliveryStatus.String(),
		LatestEvent:    rec.LatestEvent.String(),
		EventCount:     len(timeline),
		WarningCount:   domain.WarningCount(timeline),
		Source:         acq.Source,
		LookedUpAt:     s.now(),
	})

	return &ports.TrackShipmentResult{
		TrackingNumber: trackingNumber,
		CourierCode:    resolution.CourierCode,
		Status:         status,
		Timeline:       timeline,
		Source:         acq.Source,
		DetectRaw:      resolution.DetectRaw,
		Raw:            acq.Raw,
	}, nil
}

func (s *trackingService) fail(trackingNumber string, err error) error {
	stage := "internal"
	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		stage = string(upstream.Stage)
	}
	metrics.LookupFailuresTotal.WithLabelValues(stage).Inc()
	metrics.LookupsTotal.WithLabelValues("error").Inc()

	s.log.Warn().Err(err).
		Str("tracking_number", trackingNumber).
		Str("stage", stage).
		Msg("shipment lookup failed")
	return err
}

func (s *trackingService) record(ctx context.Context, snapshot *domain.LookupSnapshot) {
	if s.lookups == nil {
		return
	}
	if err := s.lookups.Record(ctx, snapshot); err != nil {
		s.log.Error().Err(err).
			Str("tracking_number", snapshot.TrackingNumber).
			Msg("failed to persist lookup snapshot")
	}
}

// SanitizeTrackingNumber removes every whitespace character.
func SanitizeTrackingNumber(raw string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
}
