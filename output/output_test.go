package output

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/SimonHalvdansson/ENTSOE-Mirror/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "spotprice")
	w := NewWriter(slog.Default(), dir)

	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	payload := types.CountryPayload{
		Country:         "finland",
		CountryCode:     "FI",
		DisplayName:     "Finland",
		Timezone:        "Europe/Helsinki",
		TargetDateLocal: "2024-01-15",
		FetchedAtUTC:    time.Date(2024, 1, 14, 13, 0, 0, 0, time.UTC),
		Currency:        "EUR",
		ExchangeRate:    types.ExchangeRate{Base: "EUR", Quote: "EUR", Rate: 1.0, Source: "ECB eurofxref-daily"},
		DefaultAreaCode: "FI",
		AreaCode:        "FI",
		EicCode:         "10YFI-1--------U",
		Prices: []types.PricePoint{{
			StartUTC:       start,
			EndUTC:         start.Add(time.Hour),
			StartLocal:     start.In(time.FixedZone("EET", 2*3600)),
			EndLocal:       start.Add(time.Hour).In(time.FixedZone("EET", 2*3600)),
			PricePerMWhEUR: 50.0,
			PricePerKWhEUR: 0.05,
			PricePerKWh:    0.05,
			Currency:       "EUR",
		}},
		Areas: []types.AreaResult{
			{AreaCode: "FI", EicCode: "10YFI-1--------U", Prices: []types.PricePoint{}},
		},
	}

	require.NoError(t, w.Write(payload))

	data, err := os.ReadFile(filepath.Join(dir, "finland.json"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "\n"))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "FI", decoded["country_code"])
	assert.Equal(t, "2024-01-15", decoded["target_date_local"])
	assert.Equal(t, "2024-01-14T13:00:00Z", decoded["fetched_at_utc"])

	// An empty price list must serialize as [], never null.
	areas := decoded["areas"].([]any)
	require.Len(t, areas, 1)
	assert.NotNil(t, areas[0].(map[string]any)["prices"])

	prices := decoded["prices"].([]any)
	require.Len(t, prices, 1)
	entry := prices[0].(map[string]any)
	assert.Equal(t, "2024-01-15T00:00:00Z", entry["start_utc"])
	assert.Equal(t, "2024-01-15T02:00:00+02:00", entry["start_local"])
	assert.Equal(t, 0.05, entry["price_per_kwh_eur"])
}

func TestWriteOverwritesPrevious(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(slog.Default(), dir)

	payload := types.CountryPayload{Country: "sweden", CountryCode: "SE"}
	require.NoError(t, w.Write(payload))

	payload.DisplayName = "Sweden"
	require.NoError(t, w.Write(payload))

	data, err := os.ReadFile(filepath.Join(dir, "sweden.json"))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Sweden", decoded["display_name"])
}
