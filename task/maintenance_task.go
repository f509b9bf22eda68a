package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/SimonHalvdansson/ENTSOE-Mirror/config"
	"github.com/SimonHalvdansson/ENTSOE-Mirror/database"
)

// NewMaintenanceTask trims the run journal and the persisted log so
// the database stays small on long-lived installs.
func NewMaintenanceTask(logger *slog.Logger, db *database.Database, cnfg *config.AppConfig) func() {
	return func() {
		logger.Debug("running maintenance task...")

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if err := db.PurgeRuns(ctx, cnfg.Database.GetRunRetentionDays()); err != nil {
			logger.Error("maintenance task error, purging runs", slog.Any("error", err))
		}
		if err := db.PurgeLog(ctx, cnfg.Logging.GetDbMaxEntries()); err != nil {
			logger.Error("maintenance task error, purging log", slog.Any("error", err))
		}

		logger.Info("maintenance task done")
	}
}
