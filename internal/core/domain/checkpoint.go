package domain

import (
	"bytes"
	"encoding/json"
)

// Checkpoint is one raw tracking event as reported by the provider.
// Every field is optional.
type Checkpoint struct {
	CheckpointDate    Text `json:"checkpoint_date"`
	TrackingDetail    Text `json:"tracking_detail"`
	Location          Text `json:"location"`
	City              Text `json:"city"`
	State             Text `json:"state"`
	CountryISO2       Text `json:"country_iso2"`
	Zip               Text `json:"zip"`
	RawStatus         Text `json:"raw_status"`
	DeliveryStatus    Text `json:"checkpoint_delivery_status"`
	DeliverySubstatus Text `json:"checkpoint_delivery_substatus"`
}

// Leg is one directional segment of a shipment (origin or destination).
// TrackInfo is kept raw because the provider sometimes sends an object or
// nothing at all instead of a list.
type Leg struct {
	CourierCode Text            `json:"courier_code"`
	TrackInfo   json.RawMessage `json:"trackinfo"`
}

// UnmarshalJSON accepts any JSON value; anything that is not an object
// yields an empty leg.
func (l *Leg) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '{' {
		*l = Leg{}
		return nil
	}
	type plain Leg
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		*l = Leg{}
		return nil
	}
	*l = Leg(p)
	return nil
}

// Checkpoints returns the leg's checkpoints in provider order. A missing or
// non-list trackinfo yields no checkpoints.
func (l Leg) Checkpoints() []Checkpoint {
	items, ok := decodeArray(l.TrackInfo)
	if !ok {
		return nil
	}
	out := make([]Checkpoint, len(items))
	for i, item := range items {
		var cp Checkpoint
		if err := json.Unmarshal(item, &cp); err == nil {
			out[i] = cp
		}
	}
	return out
}

// ProviderRecord is the provider's view of one tracking number.
type ProviderRecord struct {
	ID                   Text `json:"id"`
	TrackingNumber       Text `json:"tracking_number"`
	CourierCode          Text `json:"courier_code"`
	DeliveryStatus       Text `json:"delivery_status"`
	Substatus            Text `json:"substatus"`
	LatestEvent          Text `json:"latest_event"`
	LatestCheckpointTime Text `json:"latest_checkpoint_time"`
	OriginInfo           Leg  `json:"origin_info"`
	DestinationInfo      Leg  `json:"destination_info"`
}

// HasCheckpoints reports whether either leg carries at least one checkpoint.
// A nil record has none.
func (r *ProviderRecord) HasCheckpoints() bool {
	if r == nil {
		return false
	}
	return len(r.OriginInfo.Checkpoints()) > 0 || len(r.DestinationInfo.Checkpoints()) > 0
}

// CarrierCandidate is one entry of the ranked list returned by detection.
type CarrierCandidate struct {
	Code Text `json:"courier_code"`
	Name Text `json:"courier_name"`
}
