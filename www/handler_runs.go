package www

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/SimonHalvdansson/ENTSOE-Mirror/database"
)

type runCountryEntry struct {
	CountryCode string `json:"country_code"`
	TargetDate  string `json:"target_date,omitempty"`
	Points      int    `json:"points"`
	Error       string `json:"error,omitempty"`
}

type runEntry struct {
	Id              int64             `json:"id"`
	StartedAt       time.Time         `json:"started_at"`
	FinishedAt      time.Time         `json:"finished_at"`
	CountriesOk     int               `json:"countries_ok"`
	CountriesFailed int               `json:"countries_failed"`
	Countries       []runCountryEntry `json:"countries"`
}

func NewRunsHandler(logger *slog.Logger, db *database.Database) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := intOrDefault(r.URL, "limit", 10)

		runs, err := db.RecentRuns(r.Context(), limit)
		if err != nil {
			logger.Error("fetching run history", slog.Any("error", err))
			http.Error(w, "failed to fetch run history", http.StatusInternalServerError)
			return
		}

		entries := make([]runEntry, 0, len(runs))
		for _, run := range runs {
			entry := runEntry{
				Id:              run.Id,
				StartedAt:       run.StartedAt,
				FinishedAt:      run.FinishedAt,
				CountriesOk:     run.CountriesOk,
				CountriesFailed: run.CountriesFailed,
				Countries:       make([]runCountryEntry, 0, len(run.Countries)),
			}
			for _, c := range run.Countries {
				entry.Countries = append(entry.Countries, runCountryEntry{
					CountryCode: c.CountryCode,
					TargetDate:  c.TargetDate,
					Points:      c.Points,
					Error:       c.Error,
				})
			}
			entries = append(entries, entry)
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		if err := json.NewEncoder(w).Encode(map[string]any{"runs": entries}); err != nil {
			logger.Error("encoding run history", slog.Any("error", err))
		}
	}
}

func intOrDefault(u *url.URL, key string, defaultValue int) int {
	if v := u.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}
