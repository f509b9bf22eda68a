package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SimonHalvdansson/ENTSOE-Mirror/batch"
	"github.com/SimonHalvdansson/ENTSOE-Mirror/catalog"
	"github.com/SimonHalvdansson/ENTSOE-Mirror/config"
	"github.com/SimonHalvdansson/ENTSOE-Mirror/database"
	"github.com/SimonHalvdansson/ENTSOE-Mirror/ecb"
	"github.com/SimonHalvdansson/ENTSOE-Mirror/entsoe"
	"github.com/SimonHalvdansson/ENTSOE-Mirror/logging"
	"github.com/SimonHalvdansson/ENTSOE-Mirror/output"
	"github.com/SimonHalvdansson/ENTSOE-Mirror/task"
	"github.com/SimonHalvdansson/ENTSOE-Mirror/www"
	"github.com/lmittmann/tint"
)

var Version = "?.?.?"

func main() {
	defer func() {
		if err := recover(); err != nil {
			exitWithError(slog.Default(), fmt.Errorf("application panicked: %v", err))
		} else {
			slog.Default().Info("application is shutting down...")
		}
	}()

	configPath := flag.String("config", "", "path to config file")
	once := flag.Bool("once", false, "run a single fetch batch and exit")
	flag.Parse()

	cnfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consoleHandler := tint.NewHandler(os.Stdout, &tint.Options{
		Level:      cnfg.Logging.GetConsoleLevel(),
		TimeFormat: time.RFC3339,
	})
	slog.New(consoleHandler).Debug("entsoe-mirror is starting...", slog.String("version", Version))

	// The security token is a precondition for everything else, so
	// fail before touching the network or the database.
	if cnfg.Entsoe.ApiKey == "" {
		slog.New(consoleHandler).Error("ENTSOE_API_KEY is not set")
		os.Exit(1)
	}

	db, err := database.New(ctx, cnfg.Database.Path)
	if err != nil {
		panic(fmt.Sprintf("failed to connect to database: %v", err))
	}
	defer db.Close()

	logger := slog.New(logging.NewMultiHandler(
		consoleHandler,
		logging.NewSQLiteHandler(db, cnfg.Logging.GetDbLevel(), cnfg.Logging.GetDbAttrsFormat())))
	slog.SetDefault(logger)

	// Now we can use the logger to log database operations into the database itself
	db.SetLogger(logger.With("module", "database"))

	runner := batch.NewRunner(
		logger.With("module", "batch"),
		entsoe.New(cnfg.Entsoe.ApiKey, cnfg.Entsoe.GetBaseUrl(), cnfg.Entsoe.GetTimeout()),
		ecb.New(cnfg.Ecb.GetUrl(), cnfg.Ecb.GetTimeout()),
		output.NewWriter(logger.With("module", "output"), cnfg.Fetch.GetOutputDir()),
		db,
		catalog.Countries)

	if *once {
		if err := runner.Run(ctx); err != nil {
			var batchErr *batch.BatchError
			if errors.As(err, &batchErr) {
				logger.Warn("batch finished with failed countries",
					slog.Int("failed", len(batchErr.Failures)))
			}
			exitWithError(logger, err)
		}
		return
	}

	tasks := task.NewTasks(runner, db, cnfg)
	tasks.Run()
	defer tasks.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-ctx.Done():
			logger.Info("main context done")
		case sig := <-sigCh:
			logger.Info("received signal", slog.Any("signal", sig))
			cancel()
		}
	}()

	server := www.StartServer(db, cnfg)
	server.Run(ctx)
}

func exitWithError(logger *slog.Logger, err error) {
	if err != nil {
		logger.Error("application shutting down with error", slog.Any("error", err))
	}
	if syncer, ok := logger.Handler().(interface{ Sync() error }); ok {
		if syncErr := syncer.Sync(); syncErr != nil {
			logger.Error("failed to flush logger", slog.Any("error", syncErr))
		}
	}

	os.Exit(1)
}
