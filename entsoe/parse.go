package entsoe

import (
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/SimonHalvdansson/ENTSOE-Mirror/dates"
	"github.com/SimonHalvdansson/ENTSOE-Mirror/types"
)

// node is a generic element tree. encoding/xml resolves namespace
// prefixes into xml.Name.Space, so matching on Name.Local alone makes
// all traversal namespace-agnostic regardless of the prefix scheme
// the provider happens to use.
type node struct {
	XMLName  xml.Name
	Content  string `xml:",chardata"`
	Children []node `xml:",any"`
}

func decodeDocument(r io.Reader) (*node, error) {
	var root node
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("decoding market document: %w", err)
	}
	return &root, nil
}

// firstText returns the trimmed text of the first descendant (or the
// node itself) whose local name matches.
func firstText(n *node, local string) string {
	if n.XMLName.Local == local {
		if text := strings.TrimSpace(n.Content); text != "" {
			return text
		}
	}
	for i := range n.Children {
		if text := firstText(&n.Children[i], local); text != "" {
			return text
		}
	}
	return ""
}

func collect(n *node, local string, out *[]*node) {
	if n.XMLName.Local == local {
		*out = append(*out, n)
	}
	for i := range n.Children {
		collect(&n.Children[i], local, out)
	}
}

var resolutionRe = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?$`)

// parseResolution parses an ISO-8601 duration of the PT[nH][nM] form.
// A duration with neither component is rejected.
func parseResolution(value string) (time.Duration, error) {
	m := resolutionRe.FindStringSubmatch(value)
	if m == nil || (m[1] == "" && m[2] == "") {
		return 0, fmt.Errorf("unsupported resolution: %q", value)
	}
	var d time.Duration
	if m[1] != "" {
		hours, _ := strconv.Atoi(m[1])
		d += time.Duration(hours) * time.Hour
	}
	if m[2] != "" {
		minutes, _ := strconv.Atoi(m[2])
		d += time.Duration(minutes) * time.Minute
	}
	return d, nil
}

// Interval starts come as ISO-8601 UTC instants, usually without a
// seconds component ("2024-03-09T23:00Z").
var timestampLayouts = []string{
	"2006-01-02T15:04Z07:00",
	time.RFC3339,
}

func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp: %q", value)
}

// ParsePrices decodes a market document into price points for the
// window's local calendar day. Each Period carries a start instant
// and a resolution; a Point at 1-based position p covers
// start + (p-1)*resolution. Points whose local start falls outside
// the target day are dropped (the raw response spans a fixed UTC
// window, not a local-midnight-aligned one). Malformed periods and
// points are skipped; only an unparseable document is an error.
func ParsePrices(r io.Reader, zone *time.Location, window dates.DayWindow) ([]types.PricePoint, error) {
	root, err := decodeDocument(r)
	if err != nil {
		return nil, err
	}

	var periods []*node
	collect(root, "Period", &periods)

	prices := make([]types.PricePoint, 0, 24)
	for _, period := range periods {
		startStr := firstText(period, "start")
		resolutionStr := firstText(period, "resolution")
		if startStr == "" || resolutionStr == "" {
			continue
		}

		baseStart, err := parseTimestamp(startStr)
		if err != nil {
			continue
		}
		resolution, err := parseResolution(resolutionStr)
		if err != nil {
			continue
		}

		var points []*node
		collect(period, "Point", &points)

		for _, point := range points {
			positionStr := firstText(point, "position")
			priceStr := firstText(point, "price.amount")
			if positionStr == "" || priceStr == "" {
				continue
			}

			position, err := strconv.Atoi(positionStr)
			if err != nil {
				continue
			}
			pricePerMWhEUR, err := strconv.ParseFloat(priceStr, 64)
			if err != nil {
				continue
			}

			offset := position - 1
			if offset < 0 {
				offset = 0
			}
			startUTC := baseStart.Add(time.Duration(offset) * resolution)
			endUTC := startUTC.Add(resolution)
			startLocal := startUTC.In(zone)
			endLocal := endUTC.In(zone)

			if !window.SameDay(startLocal) {
				continue
			}

			prices = append(prices, types.PricePoint{
				StartUTC:       startUTC,
				EndUTC:         endUTC,
				StartLocal:     startLocal,
				EndLocal:       endLocal,
				PricePerMWhEUR: pricePerMWhEUR,
				PricePerKWhEUR: pricePerMWhEUR / 1000.0,
			})
		}
	}

	// Periods may arrive out of chronological order, and a DST
	// transition can make their local coverage overlap.
	sort.Slice(prices, func(i, j int) bool {
		return prices[i].StartUTC.Before(prices[j].StartUTC)
	})

	return prices, nil
}

// ParseAcknowledgement extracts the rejection reason from an
// Acknowledgement_MarketDocument, used to tell "provider rejected the
// query" apart from "zero data points". Returns false for any other
// document, including unparseable ones.
func ParseAcknowledgement(r io.Reader) (string, bool) {
	root, err := decodeDocument(r)
	if err != nil {
		return "", false
	}
	if root.XMLName.Local != "Acknowledgement_MarketDocument" {
		return "", false
	}

	reason := firstText(root, "text")
	if reason == "" {
		reason = "unknown acknowledgement error"
	}
	if code := firstText(root, "code"); code != "" {
		return code + ": " + reason, true
	}
	return reason, true
}
