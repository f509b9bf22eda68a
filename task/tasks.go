package task

import (
	"context"
	"log/slog"

	"github.com/SimonHalvdansson/ENTSOE-Mirror/batch"
	"github.com/SimonHalvdansson/ENTSOE-Mirror/config"
	"github.com/SimonHalvdansson/ENTSOE-Mirror/database"
	"github.com/robfig/cron/v3"
)

type Tasks struct {
	cron            *cron.Cron
	cnfg            *config.AppConfig
	FetchTask       func()
	MaintenanceTask func()
}

func NewTasks(runner *batch.Runner, db *database.Database, cnfg *config.AppConfig) *Tasks {
	logger := slog.Default().With("module", "tasks")
	return &Tasks{
		cron:            cron.New(),
		cnfg:            cnfg,
		FetchTask:       NewFetchTask(logger.With(slog.String("task", "fetch")), runner),
		MaintenanceTask: NewMaintenanceTask(logger.With(slog.String("task", "maintenance")), db, cnfg),
	}
}

func (t *Tasks) Run() {
	_, err := t.cron.AddFunc(t.cnfg.Fetch.GetRunAt(), t.FetchTask)
	if err != nil {
		panic(err)
	}
	_, err = t.cron.AddFunc("30 2 * * *", t.MaintenanceTask)
	if err != nil {
		panic(err)
	}
	t.cron.Start()
}

func (t *Tasks) Stop() context.Context {
	return t.cron.Stop()
}
