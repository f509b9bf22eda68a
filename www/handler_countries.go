package www

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type countryIndexEntry struct {
	Slug        string `json:"slug"`
	DisplayName string `json:"display_name"`
	CountryCode string `json:"country_code"`
	Timezone    string `json:"timezone"`
}

type countryIndex struct {
	Countries []countryIndexEntry `json:"countries"`
}

// NewCountriesHandler derives the country index from the payload
// files already on disk, so the index always reflects exactly what a
// client can fetch. Unreadable or corrupt files are skipped.
func NewCountriesHandler(logger *slog.Logger, dataDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index := countryIndex{Countries: discoverCountries(logger, dataDir)}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		if err := json.NewEncoder(w).Encode(index); err != nil {
			logger.Error("encoding country index", slog.Any("error", err))
		}
	}
}

func discoverCountries(logger *slog.Logger, dataDir string) []countryIndexEntry {
	countries := make([]countryIndexEntry, 0)

	paths, err := filepath.Glob(filepath.Join(dataDir, "*.json"))
	if err != nil {
		logger.Error("listing payload files", slog.Any("error", err))
		return countries
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("skipping unreadable payload file",
				slog.String("file", path), slog.Any("error", err))
			continue
		}

		var payload struct {
			DisplayName string `json:"display_name"`
			CountryCode string `json:"country_code"`
			Timezone    string `json:"timezone"`
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			logger.Warn("skipping corrupt payload file",
				slog.String("file", path), slog.Any("error", err))
			continue
		}

		slug := strings.TrimSuffix(filepath.Base(path), ".json")
		entry := countryIndexEntry{
			Slug:        slug,
			DisplayName: payload.DisplayName,
			CountryCode: payload.CountryCode,
			Timezone:    payload.Timezone,
		}
		if entry.DisplayName == "" {
			entry.DisplayName = titleFromSlug(slug)
		}
		if entry.Timezone == "" {
			entry.Timezone = "UTC"
		}
		countries = append(countries, entry)
	}

	sort.Slice(countries, func(i, j int) bool {
		return strings.ToLower(countries[i].DisplayName) < strings.ToLower(countries[j].DisplayName)
	})

	return countries
}

func titleFromSlug(slug string) string {
	words := strings.Split(slug, "-")
	for i, word := range words {
		if word != "" {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}
