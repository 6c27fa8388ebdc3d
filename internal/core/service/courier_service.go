package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/tracking-aggregator/internal/core/domain"
	"github.com/99minutos/tracking-aggregator/internal/core/ports"
	"github.com/99minutos/tracking-aggregator/internal/pkg/metrics"
)

const (
	defaultCourierCacheTTL = 10 * time.Minute
	maxCourierResults      = 50
)

// courierDirectoryPaths are probed in order until one returns a listing.
var courierDirectoryPaths = []string{
	"/couriers/all",
	"/couriers/getall",
	"/couriers",
	"/couriers/list",
	"/couriers/get",
}

// NopCourierCache never stores anything, so every search hits the provider.
type NopCourierCache struct{}

func (NopCourierCache) Get(context.Context) (*domain.CourierDirectory, bool, error) {
	return nil, false, nil
}
func (NopCourierCache) Set(context.Context, *domain.CourierDirectory, time.Duration) error {
	return nil
}
func (NopCourierCache) Invalidate(context.Context) error { return nil }

type courierService struct {
	provider ports.TrackingProvider
	cache    ports.CourierCache
	ttl      time.Duration
	now      func() time.Time
	log      zerolog.Logger
}

// NewCourierService returns a CourierService. A nil cache disables caching;
// a non-positive ttl falls back to ten minutes.
func NewCourierService(provider ports.TrackingProvider, cache ports.CourierCache, ttl time.Duration, log zerolog.Logger) ports.CourierService {
	if cache == nil {
		cache = NopCourierCache{}
	}
	if ttl <= 0 {
		ttl = defaultCourierCacheTTL
	}
	return &courierService{
		provider: provider,
		cache:    cache,
		ttl:      ttl,
		now:      func() time.Time { return time.Now().UTC() },
		log:      log,
	}
}

// Search filters the courier directory by a case-insensitive substring of
// the courier name or code. An empty query matches everything.
func (s *courierService) Search(ctx context.Context, query string) (*ports.CourierSearchResult, error) {
	query = strings.TrimSpace(query)

	dir, fromCache, err := s.directory(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	matched := make([]domain.Courier, 0, min(len(dir.Couriers), maxCourierResults))
	for _, c := range dir.Couriers {
		if len(matched) == maxCourierResults {
			break
		}
		if needle == "" ||
			strings.Contains(strings.ToLower(c.Name.String()), needle) ||
			strings.Contains(strings.ToLower(c.Code.String()), needle) {
			matched = append(matched, c)
		}
	}

	return &ports.CourierSearchResult{
		Endpoint:  dir.Endpoint,
		FromCache: fromCache,
		Total:     len(dir.Couriers),
		Query:     query,
		Couriers:  matched,
	}, nil
}

func (s *courierService) directory(ctx context.Context) (*domain.CourierDirectory, bool, error) {
	cached, ok, err := s.cache.Get(ctx)
	switch {
	case err != nil:
		metrics.CourierCacheTotal.WithLabelValues("error").Inc()
		s.log.Warn().Err(err).Msg("courier cache read failed, fetching from provider")
	case ok && cached != nil && len(cached.Couriers) > 0:
		metrics.CourierCacheTotal.WithLabelValues("hit").Inc()
		return cached, true, nil
	default:
		metrics.CourierCacheTotal.WithLabelValues("miss").Inc()
	}

	dir, err := s.probe(ctx)
	if err != nil {
		return nil, false, err
	}
	if err := s.cache.Set(ctx, dir, s.ttl); err != nil {
		s.log.Warn().Err(err).Msg("failed to cache courier directory")
	}
	return dir, false, nil
}

func (s *courierService) probe(ctx context.Context) (*domain.CourierDirectory, error) {
	attempts := make([]domain.ProbeAttempt, 0, len(courierDirectoryPaths))
	for _, path := range courierDirectoryPaths {
		env, err := s.provider.ListCouriers(ctx, path)
		if err != nil {
			attempts = append(attempts, domain.ProbeAttempt{URL: path, Error: err.Error()})
			if ctx.Err() != nil {
				break
			}
			continue
		}

		meta := env.Meta
		attempts = append(attempts, domain.ProbeAttempt{URL: env.Endpoint, HTTPStatus: env.HTTPStatus, Meta: &meta})
		if !env.OK() {
			continue
		}
		couriers, ok := env.Couriers()
		if !ok {
			continue
		}

		s.log.Info().
			Str("endpoint", env.Endpoint).
			Int("couriers", len(couriers)).
			Int("attempts", len(attempts)).
			Msg("courier directory fetched")
		return &domain.CourierDirectory{
			Endpoint:  env.Endpoint,
			Couriers:  couriers,
			FetchedAt: s.now(),
		}, nil
	}

	s.log.Error().Int("attempts", len(attempts)).Msg("no courier directory endpoint answered")
	return nil, &domain.CourierDirectoryError{Attempts: attempts}
}

// Detect passes the provider's ranked carrier list through unchanged.
func (s *courierService) Detect(ctx context.Context, trackingNumber string) (*ports.CourierDetectResult, error) {
	trackingNumber = SanitizeTrackingNumber(trackingNumber)
	if trackingNumber == "" {
		return nil, domain.ErrMissingTrackingNumber
	}

	env, err := s.provider.DetectCarrier(ctx, trackingNumber)
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
	if candidates == nil {
		candidates = []domain.CarrierCandidate{}
	}
	return &ports.CourierDetectResult{
		TrackingNumber: trackingNumber,
		Candidates:     candidates,
		Raw:            env.RawBody(),
	}, nil
}

// Invalidate drops the cached directory so the next search probes again.
func (s *courierService) Invalidate(ctx context.Context) error {
	if err := s.cache.Invalidate(ctx); err != nil {
		return err
	}
	s.log.Info().Msg("courier directory cache invalidated")
	return nil
}
