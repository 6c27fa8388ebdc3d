package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/tracking-aggregator/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Stub provider
// ---------------------------------------------------------------------------

type stubProvider struct {
	detect   func(tn string) (*domain.Envelope, error)
	create   func(tn, cc string) (*domain.Envelope, error)
	get      func(tn, cc string) (*domain.Envelope, error)
	couriers func(path string) (*domain.Envelope, error)

	mu    sync.Mutex
	calls []string
}

func (p *stubProvider) record(call string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, call)
}

func (p *stubProvider) count(prefix string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, c := range p.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

func (p *stubProvider) DetectCarrier(_ context.Context, tn string) (*domain.Envelope, error) {
	p.record("detect:" + tn)
	if p.detect == nil {
		panic("unexpected DetectCarrier call")
	}
	return p.detect(tn)
}

func (p *stubProvider) CreateTracking(_ context.Context, tn, cc string) (*domain.Envelope, error) {
	p.record("create:" + tn + ":" + cc)
	if p.create == nil {
		panic("unexpected CreateTracking call")
	}
	return p.create(tn, cc)
}

func (p *stubProvider) GetTracking(_ context.Context, tn, cc string) (*domain.Envelope, error) {
	p.record("get:" + tn + ":" + cc)
	if p.get == nil {
		panic("unexpected GetTracking call")
	}
	return p.get(tn, cc)
}

func (p *stubProvider) ListCouriers(_ context.Context, path string) (*domain.Envelope, error) {
	p.record("couriers:" + path)
	if p.couriers == nil {
		panic("unexpected ListCouriers call")
	}
	return p.couriers(path)
}

// envelope builds a provider response the way the HTTP client would.
func envelope(code int, message, data string) *domain.Envelope {
	body := map[string]any{"meta": map[string]any{"code": code, "message": message}}
	if data != "" {
		body["data"] = json.RawMessage(data)
	}
	raw, _ := json.Marshal(body)
	env := &domain.Envelope{
		Meta:       domain.Meta{Code: code, Message: message},
		Raw:        raw,
		HTTPStatus: 200,
		Endpoint:   "https://provider.test",
	}
	if data != "" {
		env.Data = json.RawMessage(data)
	}
	return env
}

// ---------------------------------------------------------------------------
// Stub lookup repository
// ---------------------------------------------------------------------------

type stubLookupRepo struct {
	mu        sync.Mutex
	snapshots []*domain.LookupSnapshot
	recordErr error
}

func (r *stubLookupRepo) Record(_ context.Context, s *domain.LookupSnapshot) error {
	if r.recordErr != nil {
		return r.recordErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *s
	r.snapshots = append(r.snapshots, &clone)
	return nil
}

func (r *stubLookupRepo) Latest(_ context.Context, tn string) (*domain.LookupSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.snapshots) - 1; i >= 0; i-- {
		if r.snapshots[i].TrackingNumber == tn {
			clone := *r.snapshots[i]
			return &clone, nil
		}
	}
	return nil, domain.ErrLookupNotFound
}

// ---------------------------------------------------------------------------
// Stub courier cache
// ---------------------------------------------------------------------------

type stubCourierCache struct {
	dir         *domain.CourierDirectory
	ttl         time.Duration
	getErr      error
	invalidated int
}

func (c *stubCourierCache) Get(context.Context) (*domain.CourierDirectory, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	return c.dir, c.dir != nil, nil
}

func (c *stubCourierCache) Set(_ context.Context, dir *domain.CourierDirectory, ttl time.Duration) error {
	c.dir = dir
	c.ttl = ttl
	return nil
}

func (c *stubCourierCache) Invalidate(context.Context) error {
	c.dir = nil
	c.invalidated++
	return nil
}

var discardLogger = zerolog.Nop()
