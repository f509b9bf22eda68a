// Package batch drives one full fetch cycle: exchange rates once,
// then every catalog country in order, writing a payload file per
// country that yields data.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SimonHalvdansson/ENTSOE-Mirror/catalog"
	"github.com/SimonHalvdansson/ENTSOE-Mirror/database"
	"github.com/SimonHalvdansson/ENTSOE-Mirror/dates"
	"github.com/SimonHalvdansson/ENTSOE-Mirror/ecb"
	"github.com/SimonHalvdansson/ENTSOE-Mirror/entsoe"
	"github.com/SimonHalvdansson/ENTSOE-Mirror/output"
	"github.com/SimonHalvdansson/ENTSOE-Mirror/types"
)

const rateSource = "ECB eurofxref-daily"

// CountryError means every area of a country failed; the country
// produced no payload.
type CountryError struct {
	CountryCode string
}

func (e *CountryError) Error() string {
	return fmt.Sprintf("no areas fetched successfully for %s", e.CountryCode)
}

// BatchError aggregates per-country failures from one run. It is
// only constructed after the full catalog has been attempted, so a
// caller can tell "nothing ran" (a plain error from the rate fetch)
// from "most things ran, these failed".
type BatchError struct {
	Failures []string
}

func (e *BatchError) Error() string {
	return "failed countries: " + strings.Join(e.Failures, "; ")
}

type Runner struct {
	logger  *slog.Logger
	entsoe  *entsoe.Client
	ecb     *ecb.Client
	writer  *output.Writer
	db      *database.Database // optional run journal, may be nil
	catalog []catalog.Country
	now     func() time.Time
}

func NewRunner(
	logger *slog.Logger,
	entsoeClient *entsoe.Client,
	ecbClient *ecb.Client,
	writer *output.Writer,
	db *database.Database,
	countries []catalog.Country,
) *Runner {
	return &Runner{
		logger:  logger,
		entsoe:  entsoeClient,
		ecb:     ecbClient,
		writer:  writer,
		db:      db,
		catalog: countries,
		now:     time.Now,
	}
}

// Run executes one batch. The rate-table fetch is a precondition:
// when it fails nothing is attempted and its error propagates
// directly. Per-country failures are absorbed, counted and reported
// together as a BatchError after the whole catalog has run, with
// every successful country's file already on disk.
func (r *Runner) Run(ctx context.Context) error {
	startedAt := r.now().UTC()

	rates, err := r.ecb.FetchRates(ctx)
	if err != nil {
		return fmt.Errorf("fetching exchange rates: %w", err)
	}
	r.logger.Info("fetched exchange rates", slog.Int("currencies", len(rates)))

	var failures []string
	journal := make([]database.RunCountryRow, 0, len(r.catalog))

	for _, country := range r.catalog {
		payload, err := r.aggregateCountry(ctx, country, rates)
		if err != nil {
			r.logger.Error("country fetch failed",
				slog.String("country", country.CountryCode),
				slog.Any("error", err))
			failures = append(failures, fmt.Sprintf("%s: %v", country.CountryCode, err))
			journal = append(journal, database.RunCountryRow{
				CountryCode: country.CountryCode,
				Error:       err.Error(),
			})
			continue
		}

		if err := r.writer.Write(payload); err != nil {
			r.logger.Error("country write failed",
				slog.String("country", country.CountryCode),
				slog.Any("error", err))
			failures = append(failures, fmt.Sprintf("%s: %v", country.CountryCode, err))
			journal = append(journal, database.RunCountryRow{
				CountryCode: country.CountryCode,
				TargetDate:  payload.TargetDateLocal,
				Error:       err.Error(),
			})
			continue
		}

		journal = append(journal, database.RunCountryRow{
			CountryCode: country.CountryCode,
			TargetDate:  payload.TargetDateLocal,
			Points:      len(payload.Prices),
		})
	}

	r.saveJournal(ctx, database.RunRow{
		StartedAt:       startedAt,
		FinishedAt:      r.now().UTC(),
		CountriesOk:     len(r.catalog) - len(failures),
		CountriesFailed: len(failures),
		Countries:       journal,
	})

	if len(failures) > 0 {
		return &BatchError{Failures: failures}
	}

	r.logger.Info("batch done", slog.Int("countries", len(r.catalog)))
	return nil
}

// aggregateCountry fetches every area of a country for today's local
// calendar day. Area failures are isolated into their AreaResult and
// never abort sibling areas; only zero successes fails the country.
func (r *Runner) aggregateCountry(ctx context.Context, country catalog.Country, rates ecb.Rates) (types.CountryPayload, error) {
	zone, err := time.LoadLocation(country.Timezone)
	if err != nil {
		return types.CountryPayload{}, fmt.Errorf("loading timezone %s: %w", country.Timezone, err)
	}
	window := dates.WindowFor(r.now(), zone)

	areaResults := make([]types.AreaResult, 0, len(country.Areas))
	for _, area := range country.Areas {
		areaResults = append(areaResults, r.fetchArea(ctx, area, zone, window, country.Currency, rates))
	}

	defaultIdx := -1
	firstSuccessIdx := -1
	for i, result := range areaResults {
		if firstSuccessIdx < 0 && len(result.Prices) > 0 {
			firstSuccessIdx = i
		}
		if result.AreaCode == country.Areas[0].Code {
			defaultIdx = i
		}
	}

	if firstSuccessIdx < 0 {
		return types.CountryPayload{}, &CountryError{CountryCode: country.CountryCode}
	}
	if defaultIdx < 0 || len(areaResults[defaultIdx].Prices) == 0 {
		defaultIdx = firstSuccessIdx
	}
	defaultArea := areaResults[defaultIdx]

	return types.CountryPayload{
		Country:         country.Slug,
		CountryCode:     country.CountryCode,
		DisplayName:     country.DisplayName,
		Timezone:        country.Timezone,
		TargetDateLocal: window.DateString(),
		FetchedAtUTC:    r.now().UTC().Truncate(time.Second),
		Currency:        country.Currency,
		ExchangeRate: types.ExchangeRate{
			Base:   "EUR",
			Quote:  country.Currency,
			Rate:   rates.Rate(country.Currency),
			Source: rateSource,
		},
		DefaultAreaCode: country.Areas[0].Code,
		AreaCode:        defaultArea.AreaCode,
		EicCode:         defaultArea.EicCode,
		Prices:          defaultArea.Prices,
		Areas:           areaResults,
	}, nil
}

// fetchArea runs one market query and converts the EUR figures into
// the country currency. Every failure mode collapses into an
// AreaResult carrying the error message.
func (r *Runner) fetchArea(ctx context.Context, area catalog.Area, zone *time.Location, window dates.DayWindow, currency string, rates ecb.Rates) types.AreaResult {
	prices, err := r.entsoe.DayAheadPrices(ctx, area.EicCode, zone, window)
	if err != nil {
		r.logger.Warn("area fetch failed",
			slog.String("area", area.Code),
			slog.String("eic", area.EicCode),
			slog.Any("error", err))
		return types.AreaResult{
			AreaCode: area.Code,
			EicCode:  area.EicCode,
			Prices:   []types.PricePoint{},
			Error:    err.Error(),
		}
	}

	for i := range prices {
		prices[i].PricePerKWh = rates.Convert(prices[i].PricePerKWhEUR, currency)
		prices[i].Currency = currency
	}

	return types.AreaResult{
		AreaCode: area.Code,
		EicCode:  area.EicCode,
		Prices:   prices,
	}
}

func (r *Runner) saveJournal(ctx context.Context, run database.RunRow) {
	if r.db == nil {
		return
	}
	if _, err := r.db.SaveRun(ctx, run); err != nil {
		// The journal is bookkeeping, never a reason to fail a batch.
		r.logger.Warn("failed to save run history", slog.Any("error", err))
	}
}
