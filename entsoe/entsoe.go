// Package entsoe queries the ENTSO-E transparency platform for
// day-ahead prices and decodes its market-document XML.
package entsoe

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/SimonHalvdansson/ENTSOE-Mirror/dates"
	"github.com/SimonHalvdansson/ENTSOE-Mirror/types"
)

const (
	DefaultBaseURL = "https://web-api.tp.entsoe.eu/api"

	// A44 = day-ahead prices, A01 = day-ahead process.
	documentTypeDayAheadPrices = "A44"
	processTypeDayAhead        = "A01"

	periodFormat = "200601021504"
)

// ProviderError is a query the provider rejected or answered without
// any usable price points. Reason carries the provider-supplied text
// when an acknowledgement document was returned.
type ProviderError struct {
	Reason string
}

func (e *ProviderError) Error() string {
	return e.Reason
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(token string, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) buildURL(eicCode string, startUTC, endUTC time.Time) string {
	params := url.Values{}
	params.Set("securityToken", c.token)
	params.Set("documentType", documentTypeDayAheadPrices)
	params.Set("processType", processTypeDayAhead)
	params.Set("in_Domain", eicCode)
	params.Set("out_Domain", eicCode)
	params.Set("periodStart", startUTC.UTC().Format(periodFormat))
	params.Set("periodEnd", endUTC.UTC().Format(periodFormat))
	return c.baseURL + "?" + params.Encode()
}

// DayAheadPrices issues one query for a single bidding zone over the
// window's UTC bounds and returns the points on the window's local
// day, EUR-denominated. An empty parse result is promoted to a
// ProviderError, with the acknowledgement reason when one is present.
func (c *Client) DayAheadPrices(ctx context.Context, eicCode string, zone *time.Location, window dates.DayWindow) ([]types.PricePoint, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(eicCode, window.StartUTC, window.EndUTC), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prices: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// Rejections come back as acknowledgement documents, with or
	// without an error status.
	if resp.StatusCode != http.StatusOK {
		if reason, ok := ParseAcknowledgement(bytes.NewReader(body)); ok {
			return nil, &ProviderError{Reason: reason}
		}
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	prices, err := ParsePrices(bytes.NewReader(body), zone, window)
	if err != nil {
		return nil, err
	}
	if len(prices) == 0 {
		if reason, ok := ParseAcknowledgement(bytes.NewReader(body)); ok {
			return nil, &ProviderError{Reason: reason}
		}
		return nil, &ProviderError{Reason: "no price entries in market document"}
	}

	return prices, nil
}
