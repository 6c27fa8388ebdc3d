package handler

import (
	"encoding/json"
	"time"

	"github.com/99minutos/tracking-aggregator/internal/core/domain"
)

// --- Tracking ---

type trackRequest struct {
	TrackingNumber string `json:"trackingNumber" example:"160-12345678"`
	CourierCode    string `json:"courierCode,omitempty" example:"fedex"`
}

type trackResponse struct {
	TrackingNumber string                 `json:"trackingNumber"`
	CourierCode    string                 `json:"courierCode"`
	Status         domain.ClearanceStatus `json:"status" enums:"held,cleared"`
	Source         domain.DataSource      `json:"source" enums:"create,get"`
	Timeline       []domain.TimelineEvent `json:"timeline"`
	DetectRaw      json.RawMessage        `json:"detectRaw" swaggertype:"object"`
	Raw            json.RawMessage        `json:"raw" swaggertype:"object"`
}

// --- Couriers ---

type courierItem struct {
	Code    string  `json:"code"`
	Name    string  `json:"name"`
	Country *string `json:"country"`
	Type    *string `json:"type"`
	Logo    *string `json:"logo"`
}

type courierSearchResponse struct {
	Endpoint  string        `json:"endpoint"`
	FromCache bool          `json:"fromCache"`
	Total     int           `json:"total"`
	Query     string        `json:"q"`
	Couriers  []courierItem `json:"couriers"`
}

type courierDetectResponse struct {
	TrackingNumber string                    `json:"trackingNumber"`
	Couriers       []domain.CarrierCandidate `json:"couriers"`
	Raw            json.RawMessage           `json:"raw" swaggertype:"object"`
}

// --- Lookups ---

type lookupResponse struct {
	ID             string                 `json:"id,omitempty"`
	TrackingNumber string                 `json:"trackingNumber"`
	CourierCode    string                 `json:"courierCode"`
	Status         domain.ClearanceStatus `json:"status"`
	DeliveryStatus string                 `json:"deliveryStatus,omitempty"`
	LatestEvent    string                 `json:"latestEvent,omitempty"`
	EventCount     int                    `json:"eventCount"`
	WarningCount   int                    `json:"warningCount"`
	Source         domain.DataSource      `json:"source"`
	LookedUpAt     time.Time              `json:"lookedUpAt"`
}

// --- Refresh ---

type refreshRequest struct {
	TrackingNumbers []string `json:"trackingNumbers" validate:"required,min=1,max=100,dive,required"`
	CourierCode     string   `json:"courierCode,omitempty"`
}

type refreshAcceptedResponse struct {
	JobID    string `json:"jobId"`
	Count    int    `json:"count"`
	Rejected int    `json:"rejected,omitempty"`
}

// --- Errors ---

// ErrorResponse is the canonical error envelope for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// UpstreamErrorResponse is returned with 502 when a provider call fails.
type UpstreamErrorResponse struct {
	Error           string          `json:"error"`
	Stage           domain.Stage    `json:"stage" enums:"detect,create,get"`
	Raw             json.RawMessage `json:"raw,omitempty" swaggertype:"object"`
	DetectRaw       json.RawMessage `json:"detectRaw,omitempty" swaggertype:"object"`
	CreateRaw       json.RawMessage `json:"createRaw,omitempty" swaggertype:"object"`
	UsedCourierCode string          `json:"usedCourierCode,omitempty"`
	Endpoint        string          `json:"endpoint,omitempty"`
}

// CourierDirectoryErrorResponse is returned with 502 when no directory
// endpoint answered.
type CourierDirectoryErrorResponse struct {
	Error string                `json:"error"`
	Tries []domain.ProbeAttempt `json:"tries"`
}

func optional(t domain.Text) *string {
	if t == "" {
		return nil
	}
	s := t.String()
	return &s
}

func toCourierItems(couriers []domain.Courier) []courierItem {
	items := make([]courierItem, 0, len(couriers))
	for _, c := range couriers {
		items = append(items, courierItem{
			Code:    c.Code.String(),
			Name:    c.Name.String(),
			Country: optional(c.CountryISO2),
			Type:    optional(c.Type),
			Logo:    optional(c.Logo),
		})
	}
	return items
}

func toLookupResponse(s *domain.LookupSnapshot) lookupResponse {
	return lookupResponse{
		ID:             s.ID,
		TrackingNumber: s.TrackingNumber,
		CourierCode:    s.CourierCode,
		Status:         s.Status,
		DeliveryStatus: s.DeliveryStatus,
		LatestEvent:    s.LatestEvent,
		EventCount:     s.EventCount,
		WarningCount:   s.WarningCount,
		Source:         s.Source,
		LookedUpAt:     s.LookedUpAt,
	}
}

// rawOrNull maps an empty payload to nil so it encodes as null.
func rawOrNull(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	return raw
}
