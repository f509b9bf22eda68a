// Package output writes the per-country payload files.
package output

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/SimonHalvdansson/ENTSOE-Mirror/types"
)

type Writer struct {
	logger *slog.Logger
	dir    string
}

func NewWriter(logger *slog.Logger, dir string) *Writer {
	return &Writer{logger: logger, dir: dir}
}

// Write serializes one country payload to <slug>.json in the output
// directory, replacing any previous file for that country.
func (w *Writer) Write(payload types.CountryPayload) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling payload for %s: %w", payload.Country, err)
	}
	data = append(data, '\n')

	destination := filepath.Join(w.dir, payload.Country+".json")
	if err := os.WriteFile(destination, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", destination, err)
	}

	w.logger.Info("wrote country payload",
		slog.String("file", destination),
		slog.Int("areas", len(payload.Areas)),
		slog.Int("prices", len(payload.Prices)))
	return nil
}
