package domain

import "time"

// DataSource records which provider call produced the tracking data.
type DataSource string

const (
	SourceCreate DataSource = "create"
	SourceGet    DataSource = "get"
)

// LookupSnapshot is the persisted summary of one completed tracking lookup.
type LookupSnapshot struct {
	ID             string          `json:"id,omitempty" bson:"_id,omitempty"`
	TrackingNumber string          `json:"tracking_number" bson:"tracking_number"`
	CourierCode    string          `json:"courier_code" bson:"courier_code"`
	Status         ClearanceStatus `json:"status" bson:"status"`
	DeliveryStatus string          `json:"delivery_status,omitempty" bson:"delivery_status,omitempty"`
	LatestEvent    string          `json:"latest_event,omitempty" bson:"latest_event,omitempty"`
	EventCount     int             `json:"event_count" bson:"event_count"`
	WarningCount   int             `json:"warning_count" bson:"warning_count"`
	Source         DataSource      `json:"source" bson:"source"`
	LookedUpAt     time.Time       `json:"looked_up_at" bson:"looked_up_at"`
}
