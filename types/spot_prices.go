package types

import "time"

// PricePoint is one settled price for a single delivery interval.
// Times marshal as RFC3339, UTC instants with a Z suffix and local
// instants with their zone offset.
type PricePoint struct {
	StartUTC       time.Time `json:"start_utc"`
	EndUTC         time.Time `json:"end_utc"`
	StartLocal     time.Time `json:"start_local"`
	EndLocal       time.Time `json:"end_local"`
	PricePerMWhEUR float64   `json:"price_per_mwh_eur"`
	PricePerKWhEUR float64   `json:"price_per_kwh_eur"`
	PricePerKWh    float64   `json:"price_per_kwh"`
	Currency       string    `json:"currency"`
}

// AreaResult holds the outcome for one bidding area. Prices and Error
// are mutually exclusive in practice: a failed fetch carries an empty
// (but non-nil) price slice and a populated error message.
type AreaResult struct {
	AreaCode string       `json:"area_code"`
	EicCode  string       `json:"eic_code"`
	Prices   []PricePoint `json:"prices"`
	Error    string       `json:"error,omitempty"`
}

type ExchangeRate struct {
	Base   string  `json:"base"`
	Quote  string  `json:"quote"`
	Rate   float64 `json:"rate"`
	Source string  `json:"source"`
}

// CountryPayload is the per-country output document. The default
// area's fields are duplicated at the top level so single-area
// consumers keep working.
type CountryPayload struct {
	Country         string       `json:"country"`
	CountryCode     string       `json:"country_code"`
	DisplayName     string       `json:"display_name"`
	Timezone        string       `json:"timezone"`
	TargetDateLocal string       `json:"target_date_local"`
	FetchedAtUTC    time.Time    `json:"fetched_at_utc"`
	Currency        string       `json:"currency"`
	ExchangeRate    ExchangeRate `json:"exchange_rate"`
	DefaultAreaCode string       `json:"default_area_code"`
	AreaCode        string       `json:"area_code"`
	EicCode         string       `json:"eic_code"`
	Prices          []PricePoint `json:"prices"`
	Areas           []AreaResult `json:"areas"`
}
