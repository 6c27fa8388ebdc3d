package service

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/99minutos/tracking-aggregator/internal/core/domain"
	"github.com/99minutos/tracking-aggregator/internal/core/ports"
)

// Acquisition is the provider record a lookup works from.
type Acquisition struct {
	Record *domain.ProviderRecord
	Source domain.DataSource
	// Raw is the body of the response the record came from.
	Raw       json.RawMessage
	CreateRaw json.RawMessage
}

// TrackingAcquirer registers a tracking number with the provider and returns
// its tracking data, fetching it explicitly only when registration did not
// embed any checkpoints.
type TrackingAcquirer struct {
	provider ports.TrackingProvider
	log      zerolog.Logger
}

func NewTrackingAcquirer(provider ports.TrackingProvider, log zerolog.Logger) *TrackingAcquirer {
	return &TrackingAcquirer{provider: provider, log: log}
}

// Acquire runs register, then extract-or-fetch. detectRaw is only attached to
// errors for diagnosis.
func (a *TrackingAcquirer) Acquire(ctx context.Context, trackingNumber, courierCode string, detectRaw json.RawMessage) (*Acquisition, error) {
	created, err := a.provider.CreateTracking(ctx, trackingNumber, courierCode)
	if err != nil {
		return nil, &domain.UpstreamError{
			Stage:       domain.StageCreate,
			Kind:        domain.ErrRegistrationFailed,
			Cause:       err,
			DetectRaw:   detectRaw,
			CourierCode: courierCode,
		}
	}
	if !created.Registered() {
		return nil, &domain.UpstreamError{
			Stage:       domain.StageCreate,
			Kind:        domain.ErrRegistrationFailed,
			Code:        created.Meta.Code,
			Message:     created.Reason(),
			Raw:         created.RawBody(),
			DetectRaw:   detectRaw,
			CourierCode: courierCode,
			Endpoint:    created.Endpoint,
		}
	}

	if rec := created.Record(); rec.HasCheckpoints() {
		a.log.Debug().
			Str("tracking_number", trackingNumber).
			Int("meta_code", created.Meta.Code).
			Msg("using tracking data embedded in registration")
		return &Acquisition{
			Record:    rec,
			Source:    domain.SourceCreate,
			Raw:       created.RawBody(),
			CreateRaw: created.RawBody(),
		}, nil
	}

	fetched, err := a.provider.GetTracking(ctx, trackingNumber, courierCode)
	if err != nil {
		return nil, &domain.UpstreamError{
			Stage:       domain.StageGet,
			Kind:        domain.ErrRetrievalFailed,
			Cause:       err,
			CreateRaw:   created.RawBody(),
			DetectRaw:   detectRaw,
			CourierCode: courierCode,
		}
	}
	if !fetched.OK() {
		return nil, &domain.UpstreamError{
			Stage:       domain.StageGet,
			Kind:        domain.ErrRetrievalFailed,
			Code:        fetched.Meta.Code,
			Message:     fetched.Reason(),
			Raw:         fetched.RawBody(),
			CreateRaw:   created.RawBody(),
			DetectRaw:   detectRaw,
			CourierCode: courierCode,
			Endpoint:    fetched.Endpoint,
		}
	}

	rec := fetched.Record()
	if rec == nil {
		// Not tracked yet on either leg.
		rec = &domain.ProviderRecord{}
	}
	return &Acquisition{
		Record:    rec,
		Source:    domain.SourceGet,
		Raw:       fetched.RawBody(),
		CreateRaw: created.RawBody(),
	}, nil
}
