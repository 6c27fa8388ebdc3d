package domain

import "strings"

// ClearanceStatus is the coarse customs state of a shipment.
type ClearanceStatus string

const (
	StatusHeld    ClearanceStatus = "held"
	StatusCleared ClearanceStatus = "cleared"
)

// DeriveClearanceStatus reports cleared when the provider says the shipment
// was delivered or the latest event mentions a completed clearance.
// Without such evidence the shipment is presumed held.
func DeriveClearanceStatus(deliveryStatus, latestEvent string) ClearanceStatus {
	if strings.ToLower(deliveryStatus) == "delivered" {
		return StatusCleared
	}

	le := strings.ToLower(latestEvent)
	if strings.Contains(le, "customs cleared") || strings.Contains(le, "clearance completed") {
		return StatusCleared
	}

	return StatusHeld
}
