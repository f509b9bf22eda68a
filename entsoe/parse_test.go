package entsoe

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/SimonHalvdansson/ENTSOE-Mirror/dates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResolution(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{input: "PT60M", expected: 60 * time.Minute},
		{input: "PT15M", expected: 15 * time.Minute},
		{input: "PT1H", expected: time.Hour},
		{input: "PT1H30M", expected: 90 * time.Minute},
		{input: "PT", wantErr: true},
		{input: "P1D", wantErr: true},
		{input: "PT30S", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := parseResolution(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}
}

func utcWindow(t *testing.T, date string) dates.DayWindow {
	t.Helper()
	day, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	return dates.WindowFor(day.Add(12*time.Hour), time.UTC)
}

func marketDocument(periods ...string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<Publication_MarketDocument xmlns="urn:iec62325.351:tc57wg16:451-3:publicationdocument:7:3">
	<TimeSeries>
		<currency_Unit.name>EUR</currency_Unit.name>
		<price_Measure_Unit.name>MWH</price_Measure_Unit.name>
		` + strings.Join(periods, "\n") + `
	</TimeSeries>
</Publication_MarketDocument>`
}

func hourlyPeriod(start string, points ...string) string {
	return fmt.Sprintf(`<Period>
		<timeInterval><start>%s</start></timeInterval>
		<resolution>PT60M</resolution>
		%s
	</Period>`, start, strings.Join(points, "\n"))
}

func point(position int, price string) string {
	return fmt.Sprintf("<Point><position>%d</position><price.amount>%s</price.amount></Point>", position, price)
}

func TestParsePricesPositionReconstruction(t *testing.T) {
	doc := marketDocument(hourlyPeriod("2024-01-01T00:00Z", point(3, "42.5")))

	prices, err := ParsePrices(strings.NewReader(doc), time.UTC, utcWindow(t, "2024-01-01"))
	require.NoError(t, err)
	require.Len(t, prices, 1)

	assert.Equal(t, time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC), prices[0].StartUTC)
	assert.Equal(t, time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC), prices[0].EndUTC)
	assert.Equal(t, 42.5, prices[0].PricePerMWhEUR)
	assert.Equal(t, 0.0425, prices[0].PricePerKWhEUR)
}

func TestParsePricesFullDay(t *testing.T) {
	points := make([]string, 24)
	for i := range points {
		points[i] = point(i+1, "50.0")
	}
	doc := marketDocument(hourlyPeriod("2024-03-10T00:00Z", points...))

	prices, err := ParsePrices(strings.NewReader(doc), time.UTC, utcWindow(t, "2024-03-10"))
	require.NoError(t, err)
	require.Len(t, prices, 24)

	for i, p := range prices {
		assert.Equal(t, time.Date(2024, 3, 10, i, 0, 0, 0, time.UTC), p.StartUTC)
		assert.Equal(t, p.StartUTC.Add(time.Hour), p.EndUTC)
		assert.Equal(t, 50.0, p.PricePerMWhEUR)
		assert.Equal(t, 0.05, p.PricePerKWhEUR)
	}
}

func TestParsePricesDropsPointsOutsideLocalDay(t *testing.T) {
	zone, err := time.LoadLocation("Europe/Stockholm")
	require.NoError(t, err)
	window := dates.WindowFor(time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC), zone)

	// The raw response covers a UTC-aligned window, so it includes
	// the last hour of Jan 14 local as well as the first of Jan 16.
	points := make([]string, 26)
	for i := range points {
		points[i] = point(i+1, "10.0")
	}
	doc := marketDocument(hourlyPeriod("2024-01-14T22:00Z", points...))

	prices, err := ParsePrices(strings.NewReader(doc), zone, window)
	require.NoError(t, err)
	require.Len(t, prices, 24)

	for _, p := range prices {
		assert.True(t, window.SameDay(p.StartLocal),
			"point starting %v is outside %s", p.StartLocal, window.DateString())
	}
	assert.Equal(t, time.Date(2024, 1, 14, 23, 0, 0, 0, time.UTC), prices[0].StartUTC)
	assert.Equal(t, time.Date(2024, 1, 15, 22, 0, 0, 0, time.UTC), prices[23].StartUTC)
}

func TestParsePricesSortsOutOfOrderPeriods(t *testing.T) {
	doc := marketDocument(
		hourlyPeriod("2024-01-01T12:00Z", point(1, "20.0")),
		hourlyPeriod("2024-01-01T00:00Z", point(1, "10.0")),
		hourlyPeriod("2024-01-01T06:00Z", point(1, "15.0")),
	)

	prices, err := ParsePrices(strings.NewReader(doc), time.UTC, utcWindow(t, "2024-01-01"))
	require.NoError(t, err)
	require.Len(t, prices, 3)

	for i := 1; i < len(prices); i++ {
		assert.True(t, prices[i-1].StartUTC.Before(prices[i].StartUTC), "prices are not sorted by start_utc")
	}
	assert.Equal(t, 10.0, prices[0].PricePerMWhEUR)
	assert.Equal(t, 20.0, prices[2].PricePerMWhEUR)
}

func TestParsePricesSkipsMalformedPoints(t *testing.T) {
	doc := marketDocument(hourlyPeriod("2024-01-01T00:00Z",
		point(1, "10.0"),
		"<Point><position>x</position><price.amount>11.0</price.amount></Point>",
		"<Point><position>3</position><price.amount>oops</price.amount></Point>",
		"<Point><position>4</position></Point>",
		point(5, "14.0"),
	))

	prices, err := ParsePrices(strings.NewReader(doc), time.UTC, utcWindow(t, "2024-01-01"))
	require.NoError(t, err)
	require.Len(t, prices, 2)
	assert.Equal(t, 10.0, prices[0].PricePerMWhEUR)
	assert.Equal(t, 14.0, prices[1].PricePerMWhEUR)
}

func TestParsePricesSkipsMalformedPeriods(t *testing.T) {
	doc := marketDocument(
		`<Period><resolution>PT60M</resolution>`+point(1, "10.0")+`</Period>`,
		`<Period><timeInterval><start>2024-01-01T00:00Z</start></timeInterval><resolution>PT0S</resolution>`+point(1, "11.0")+`</Period>`,
		hourlyPeriod("2024-01-01T00:00Z", point(1, "12.0")),
	)

	prices, err := ParsePrices(strings.NewReader(doc), time.UTC, utcWindow(t, "2024-01-01"))
	require.NoError(t, err)
	require.Len(t, prices, 1)
	assert.Equal(t, 12.0, prices[0].PricePerMWhEUR)
}

func TestParsePricesNamespacePrefixes(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<md:Publication_MarketDocument xmlns:md="urn:example:prefixed">
	<md:TimeSeries>
		<md:Period>
			<md:timeInterval><md:start>2024-01-01T00:00Z</md:start></md:timeInterval>
			<md:resolution>PT60M</md:resolution>
			<md:Point><md:position>1</md:position><md:price.amount>33.0</md:price.amount></md:Point>
		</md:Period>
	</md:TimeSeries>
</md:Publication_MarketDocument>`

	prices, err := ParsePrices(strings.NewReader(doc), time.UTC, utcWindow(t, "2024-01-01"))
	require.NoError(t, err)
	require.Len(t, prices, 1)
	assert.Equal(t, 33.0, prices[0].PricePerMWhEUR)
}

func TestParsePricesQuarterHourResolution(t *testing.T) {
	doc := marketDocument(`<Period>
		<timeInterval><start>2024-01-01T00:00Z</start></timeInterval>
		<resolution>PT15M</resolution>
		` + point(2, "40.0") + `
	</Period>`)

	prices, err := ParsePrices(strings.NewReader(doc), time.UTC, utcWindow(t, "2024-01-01"))
	require.NoError(t, err)
	require.Len(t, prices, 1)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 15, 0, 0, time.UTC), prices[0].StartUTC)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 30, 0, 0, time.UTC), prices[0].EndUTC)
}

func TestParsePricesInvalidXML(t *testing.T) {
	_, err := ParsePrices(strings.NewReader("<Publication_Market"), time.UTC, utcWindow(t, "2024-01-01"))
	require.Error(t, err)
}

func TestParseAcknowledgement(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		expected string
		ok       bool
	}{
		{
			name: "reason with code",
			doc: `<Acknowledgement_MarketDocument xmlns="urn:example:ack">
				<Reason><code>999</code><text>No matching data found</text></Reason>
			</Acknowledgement_MarketDocument>`,
			expected: "999: No matching data found",
			ok:       true,
		},
		{
			name: "reason without code",
			doc: `<Acknowledgement_MarketDocument>
				<Reason><text>No matching data found</text></Reason>
			</Acknowledgement_MarketDocument>`,
			expected: "No matching data found",
			ok:       true,
		},
		{
			name:     "empty acknowledgement still yields a message",
			doc:      `<Acknowledgement_MarketDocument/>`,
			expected: "unknown acknowledgement error",
			ok:       true,
		},
		{
			name: "price document is not an acknowledgement",
			doc:  marketDocument(hourlyPeriod("2024-01-01T00:00Z", point(1, "10.0"))),
			ok:   false,
		},
		{
			name: "unparseable document",
			doc:  "<Acknowledgement",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason, ok := ParseAcknowledgement(strings.NewReader(tt.doc))
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, reason)
			}
		})
	}
}
