package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"

	"github.com/99minutos/tracking-aggregator/internal/core/domain"
	"github.com/99minutos/tracking-aggregator/internal/core/ports"
)

// Resolution is the carrier chosen for a tracking number.
type Resolution struct {
	CourierCode string
	// Detected is false when the caller supplied the carrier.
	Detected  bool
	DetectRaw json.RawMessage
}

// CarrierResolver picks the carrier a tracking number belongs to.
type CarrierResolver struct {
	provider ports.TrackingProvider
	log      zerolog.Logger
}

func NewCarrierResolver(provider ports.TrackingProvider, log zerolog.Logger) *CarrierResolver {
	return &CarrierResolver{provider: provider, log: log}
}

// Resolve returns hint when it is non-empty after trimming. Otherwise it asks
// the provider and takes the first ranked candidate.
func (r *CarrierResolver) Resolve(ctx context.Context, trackingNumber, hint string) (*Resolution, error) {
	if hint = strings.TrimSpace(hint); hint != "" {
		return &Resolution{CourierCode: hint}, nil
	}

	trackingNumber = strings.TrimSpace(trackingNumber)
	env, err := r.provider.DetectCarrier(ctx, trackingNumber)
	if err != nil {
		return nil, &domain.UpstreamError{
			Stage: domain.StageDetect,
			Kind:  domain.ErrDetectionFailed,
			Cause: err,
		}
	}
	if !env.OK() {
		return nil, &domain.UpstreamError{
			Stage:    domain.StageDetect,
			Kind:     domain.ErrDetectionFailed,
			Code:     env.Meta.Code,
			Message:  env.Reason(),
			Raw:      env.RawBody(),
			Endpoint: env.Endpoint,
		}
	}

	candidates := env.Candidates()
	if len(candidates) == 0 || candidates[0].Code == "" {
		return nil, &domain.UpstreamError{
			Stage:    domain.StageDetect,
			Kind:     domain.ErrNoCarrierDetected,
			Code:     env.Meta.Code,
			Message:  "provider returned no candidates",
			Raw:      env.RawBody(),
			Endpoint: env.Endpoint,
		}
	}

	code := candidates[0].Code.String()
	r.log.Debug().
		Str("tracking_number", trackingNumber).
		Str("courier_code", code).
		Int("candidates", len(candidates)).
		Msg("carrier detected")

	return &Resolution{CourierCode: code, Detected: true, DetectRaw: env.RawBody()}, nil
}
