// Package trackingmore is a thin client for the TrackingMore v4 REST API.
// It deals with transport only: requests are authenticated and bounded by a
// timeout, and every response body is handed back as a domain.Envelope
// without judging the provider's meta code.
package trackingmore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/tracking-aggregator/internal/core/domain"
	"github.com/99minutos/tracking-aggregator/internal/core/ports"
	"github.com/99minutos/tracking-aggregator/internal/pkg/metrics"
)

const (
	DefaultBaseURL = "https://api.trackingmore.com/v4"

	defaultTimeout = 10 * time.Second
	apiKeyHeader   = "Tracking-Api-Key"
	maxBodyBytes   = 4 << 20
)

// Client issues authenticated requests against the provider.
type Client struct {
	apiKey     string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	log        zerolog.Logger
}

var _ ports.TrackingProvider = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout bounds every upstream call. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger used for per-call debug output.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// New creates a provider client. baseURL defaults to DefaultBaseURL.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("trackingmore api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    defaultTimeout,
		httpClient: &http.Client{},
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type detectRequest struct {
	TrackingNumber string `json:"tracking_number"`
}

type createRequest struct {
	TrackingNumber string `json:"tracking_number"`
	CourierCode    string `json:"courier_code"`
}

// DetectCarrier asks the provider which couriers may own trackingNumber.
func (c *Client) DetectCarrier(ctx context.Context, trackingNumber string) (*domain.Envelope, error) {
	return c.do(ctx, "detect", http.MethodPost, "/couriers/detect", nil, detectRequest{TrackingNumber: trackingNumber})
}

// CreateTracking registers trackingNumber under courierCode.
func (c *Client) CreateTracking(ctx context.Context, trackingNumber, courierCode string) (*domain.Envelope, error) {
	return c.do(ctx, "create", http.MethodPost, "/trackings/create", nil, createRequest{
		TrackingNumber: trackingNumber,
		CourierCode:    courierCode,
	})
}

// GetTracking fetches the tracking data for trackingNumber.
func (c *Client) GetTracking(ctx context.Context, trackingNumber, courierCode string) (*domain.Envelope, error) {
	params := url.Values{}
	params.Set("tracking_numbers", trackingNumber)
	if courierCode != "" {
		params.Set("courier_code", courierCode)
	}
	return c.do(ctx, "get", http.MethodGet, "/trackings/get", params, nil)
}

// ListCouriers fetches a courier directory listing from path.
func (c *Client) ListCouriers(ctx context.Context, path string) (*domain.Envelope, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.do(ctx, "couriers", http.MethodGet, path, nil, nil)
}

func (c *Client) do(ctx context.Context, operation, method, path string, query url.Values, body any) (*domain.Envelope, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", operation, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", operation, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(apiKeyHeader, c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	metrics.UpstreamCallDuration.WithLabelValues(operation).Observe(latency.Seconds())
	if err != nil {
		metrics.UpstreamCallsTotal.WithLabelValues(operation, "transport_error").Inc()
		return nil, fmt.Errorf("trackingmore %s (latency=%v): %w", operation, latency, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		metrics.UpstreamCallsTotal.WithLabelValues(operation, "transport_error").Inc()
		return nil, fmt.Errorf("read trackingmore %s response: %w", operation, err)
	}
	metrics.UpstreamCallsTotal.WithLabelValues(operation, "received").Inc()

	env := decodeEnvelope(raw)
	env.Endpoint = endpoint
	env.HTTPStatus = resp.StatusCode

	c.log.Debug().
		Str("operation", operation).
		Str("endpoint", endpoint).
		Int("http_status", resp.StatusCode).
		Int("meta_code", env.Meta.Code).
		Dur("latency", latency).
		Msg("trackingmore call")

	return env, nil
}

// decodeEnvelope never fails: a body that is not a JSON object leaves the
// meta block zeroed, and a body that is not JSON at all is kept as a JSON
// string so it can still be echoed back in diagnostics.
func decodeEnvelope(raw []byte) *domain.Envelope {
	env := &domain.Envelope{}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return env
	}
	if !json.Valid(trimmed) {
		quoted, _ := json.Marshal(string(trimmed))
		env.Raw = quoted
		return env
	}
	env.Raw = json.RawMessage(trimmed)
	if trimmed[0] == '{' {
		_ = json.Unmarshal(trimmed, env)
	}
	return env
}
