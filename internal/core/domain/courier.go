package domain

import "time"

// Courier is one entry of the provider's courier directory.
type Courier struct {
	Code        Text `json:"courier_code"`
	Name        Text `json:"courier_name"`
	CountryISO2 Text `json:"courier_country_iso2"`
	Type        Text `json:"courier_type"`
	Logo        Text `json:"courier_logo"`
}

// CourierDirectory is a full directory listing and the endpoint it came from.
type CourierDirectory struct {
	Endpoint  string    `json:"endpoint"`
	Couriers  []Courier `json:"couriers"`
	FetchedAt time.Time `json:"fetched_at"`
}
