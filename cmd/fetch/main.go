// One-shot batch fetch, meant for CI jobs that only need the JSON
// files. No database journal, console logging only.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/SimonHalvdansson/ENTSOE-Mirror/batch"
	"github.com/SimonHalvdansson/ENTSOE-Mirror/catalog"
	"github.com/SimonHalvdansson/ENTSOE-Mirror/config"
	"github.com/SimonHalvdansson/ENTSOE-Mirror/ecb"
	"github.com/SimonHalvdansson/ENTSOE-Mirror/entsoe"
	"github.com/SimonHalvdansson/ENTSOE-Mirror/output"
	"github.com/lmittmann/tint"
)

func main() {
	logger := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.RFC3339,
	}))
	slog.SetDefault(logger)

	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cnfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	if cnfg.Entsoe.ApiKey == "" {
		logger.Error("ENTSOE_API_KEY is not set")
		os.Exit(1)
	}

	runner := batch.NewRunner(
		logger,
		entsoe.New(cnfg.Entsoe.ApiKey, cnfg.Entsoe.GetBaseUrl(), cnfg.Entsoe.GetTimeout()),
		ecb.New(cnfg.Ecb.GetUrl(), cnfg.Ecb.GetTimeout()),
		output.NewWriter(logger, cnfg.Fetch.GetOutputDir()),
		nil,
		catalog.Countries)

	if err := runner.Run(context.Background()); err != nil {
		logger.Error("batch failed", slog.Any("error", err))
		os.Exit(1)
	}
}
