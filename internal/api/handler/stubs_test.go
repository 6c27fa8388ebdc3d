package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/tracking-aggregator/internal/core/domain"
	"github.com/99minutos/tracking-aggregator/internal/core/ports"
)

type stubTrackingService struct {
	trackFn func(ctx context.Context, in ports.TrackShipmentInput) (*ports.TrackShipmentResult, error)
}

func (s *stubTrackingService) TrackShipment(ctx context.Context, in ports.TrackShipmentInput) (*ports.TrackShipmentResult, error) {
	return s.trackFn(ctx, in)
}

type stubCourierService struct {
	searchFn     func(ctx context.Context, q string) (*ports.CourierSearchResult, error)
	detectFn     func(ctx context.Context, tn string) (*ports.CourierDetectResult, error)
	invalidateFn func(ctx context.Context) error
}

func (s *stubCourierService) Search(ctx context.Context, q string) (*ports.CourierSearchResult, error) {
	return s.searchFn(ctx, q)
}

func (s *stubCourierService) Detect(ctx context.Context, tn string) (*ports.CourierDetectResult, error) {
	return s.detectFn(ctx, tn)
}

func (s *stubCourierService) Invalidate(ctx context.Context) error {
	return s.invalidateFn(ctx)
}

type stubLookupRepo struct {
	latest map[string]*domain.LookupSnapshot
}

func (r *stubLookupRepo) Record(context.Context, *domain.LookupSnapshot) error { return nil }

func (r *stubLookupRepo) Latest(_ context.Context, tn string) (*domain.LookupSnapshot, error) {
	s, ok := r.latest[tn]
	if !ok {
		return nil, domain.ErrLookupNotFound
	}
	return s, nil
}

// stubDispatcher accepts up to limit requests per batch (all when limit is
// negative) and returns err for the rest.
type stubDispatcher struct {
	reqs  []ports.RefreshRequest
	limit int
	err   error
}

func (d *stubDispatcher) EnqueueBatch(_ context.Context, reqs []ports.RefreshRequest) (int, error) {
	n := len(reqs)
	if d.err != nil && d.limit >= 0 && d.limit < n {
		n = d.limit
	}
	d.reqs = append(d.reqs, reqs[:n]...)
	if n < len(reqs) {
		return n, d.err
	}
	return n, nil
}


func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return out
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	return he.Code
}
