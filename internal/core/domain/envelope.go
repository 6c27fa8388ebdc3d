package domain

import (
	"bytes"
	"encoding/json"
)

// Provider meta codes.
const (
	CodeOK            = 200
	CodeAlreadyExists = 4101
)

// Meta is the status block carried by every provider response.
type Meta struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Envelope is a single upstream response: the provider's meta block, its
// data payload (left undecoded), and the raw body kept for diagnostics.
type Envelope struct {
	Meta Meta            `json:"meta"`
	Data json.RawMessage `json:"data,omitempty"`

	Raw        json.RawMessage `json:"-"`
	Endpoint   string          `json:"-"`
	HTTPStatus int             `json:"-"`
}

// OK reports whether the provider signalled success.
func (e *Envelope) OK() bool {
	return e != nil && e.Meta.Code == CodeOK
}

// Registered reports whether a create-tracking response means the number is
// now known to the provider, either freshly created or already registered.
func (e *Envelope) Registered() bool {
	return e != nil && (e.Meta.Code == CodeOK || e.Meta.Code == CodeAlreadyExists)
}

// Reason returns the provider message, or "unknown" when there is none.
func (e *Envelope) Reason() string {
	if e == nil || e.Meta.Message == "" {
		return "unknown"
	}
	return e.Meta.Message
}

// RawBody returns the raw response body, or nil for a nil envelope.
func (e *Envelope) RawBody() json.RawMessage {
	if e == nil {
		return nil
	}
	return e.Raw
}

// Record projects the data payload onto a ProviderRecord. The payload may be
// a list (the first element is used) or a single object. It returns nil when
// there is nothing usable.
func (e *Envelope) Record() *ProviderRecord {
	if e == nil {
		return nil
	}
	raw := bytes.TrimSpace(e.Data)
	if items, ok := decodeArray(raw); ok {
		if len(items) == 0 {
			return nil
		}
		raw = bytes.TrimSpace(items[0])
	}
	if len(raw) == 0 || raw[0] != '{' {
		return nil
	}

	var rec ProviderRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil
	}
	return &rec
}

// Candidates decodes the ranked carrier list returned by detection.
// Entries that are not objects decode as empty candidates so ranking is kept.
func (e *Envelope) Candidates() []CarrierCandidate {
	if e == nil {
		return nil
	}
	items, ok := decodeArray(e.Data)
	if !ok {
		return nil
	}
	out := make([]CarrierCandidate, len(items))
	for i, item := range items {
		_ = json.Unmarshal(item, &out[i])
	}
	return out
}

// Couriers decodes a courier directory listing. ok is false when the data
// payload is not a list.
func (e *Envelope) Couriers() (couriers []Courier, ok bool) {
	if e == nil {
		return nil, false
	}
	items, ok := decodeArray(e.Data)
	if !ok {
		return nil, false
	}
	couriers = make([]Courier, 0, len(items))
	for _, item := range items {
		var c Courier
		if err := json.Unmarshal(item, &c); err != nil {
			continue
		}
		couriers = append(couriers, c)
	}
	return couriers, true
}
