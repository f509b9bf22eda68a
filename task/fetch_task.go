package task

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SimonHalvdansson/ENTSOE-Mirror/batch"
)

// NewFetchTask wraps a batch run for the scheduler. A scheduled run
// must never crash the process, so every outcome is logged and
// swallowed. The timeout covers the rate fetch plus one sequential
// query per catalog area.
func NewFetchTask(logger *slog.Logger, runner *batch.Runner) func() {
	return func() {
		logger.Debug("running fetch task...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		err := runner.Run(ctx)
		if err == nil {
			logger.Info("fetch task done")
			return
		}

		var batchErr *batch.BatchError
		if errors.As(err, &batchErr) {
			logger.Warn("fetch task finished with failed countries",
				slog.Int("failed", len(batchErr.Failures)),
				slog.Any("error", err))
			return
		}

		logger.Error("fetch task error", slog.Any("error", err))
	}
}
