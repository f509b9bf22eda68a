// Package ecb fetches the ECB daily euro foreign exchange reference
// rates (eurofxref-daily.xml).
package ecb

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const DefaultURL = "https://www.ecb.europa.eu/stats/eurofxref/eurofxref-daily.xml"

// Rates maps an upper-cased currency code to its reference rate,
// expressed as target currency per 1 EUR. EUR is always present with
// rate 1.0. The table is built once per run and read-only afterwards.
type Rates map[string]float64

// Convert converts an EUR amount into the target currency. A missing
// or non-positive rate degrades to returning the EUR amount unchanged
// so a single stale rate never fails a whole country.
func (r Rates) Convert(amountEUR float64, currency string) float64 {
	code := strings.ToUpper(currency)
	if code == "EUR" {
		return amountEUR
	}
	rate, ok := r[code]
	if !ok || rate <= 0 {
		return amountEUR
	}
	return amountEUR * rate
}

// Rate returns the reference rate for a currency, defaulting to 1.0
// when the table has no entry. Used for payload bookkeeping only.
func (r Rates) Rate(currency string) float64 {
	if rate, ok := r[strings.ToUpper(currency)]; ok {
		return rate
	}
	return 1.0
}

type Client struct {
	url  string
	http *http.Client
}

func New(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		url:  url,
		http: &http.Client{Timeout: timeout},
	}
}

// FetchRates performs one GET against the reference-rate feed and
// returns the parsed table. Failure here is a run-wide precondition
// failure for the batch, so errors propagate instead of degrading.
func (c *Client) FetchRates(ctx context.Context) (Rates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch exchange rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	rates, err := ParseRates(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse exchange rates: %w", err)
	}
	return rates, nil
}

// ParseRates scans an XML document for elements carrying currency and
// rate attributes, at any nesting depth and regardless of namespace.
// Entries with a non-numeric rate are skipped.
func ParseRates(r io.Reader) (Rates, error) {
	rates := Rates{"EUR": 1.0}

	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding rate document: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		var currency, rate string
		for _, attr := range start.Attr {
			switch attr.Name.Local {
			case "currency":
				currency = attr.Value
			case "rate":
				rate = attr.Value
			}
		}
		if currency == "" || rate == "" {
			continue
		}

		value, err := strconv.ParseFloat(rate, 64)
		if err != nil {
			continue
		}
		rates[strings.ToUpper(currency)] = value
	}

	return rates, nil
}
