package database

import (
	"context"
	"fmt"
	"time"
)

type RunRow struct {
	Id              int64
	StartedAt       time.Time
	FinishedAt      time.Time
	CountriesOk     int
	CountriesFailed int
	Countries       []RunCountryRow
}

type RunCountryRow struct {
	CountryCode string
	TargetDate  string
	Points      int
	Error       string
}

// SaveRun records one batch run and its per-country outcomes in a
// single transaction.
func (d *Database) SaveRun(ctx context.Context, run RunRow) (int64, error) {
	tx, err := d.write.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("start run transaction: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO fetch_run (started_at, finished_at, countries_ok, countries_failed)
		VALUES (?, ?, ?, ?)`,
		run.StartedAt.UTC().Format(time.RFC3339),
		run.FinishedAt.UTC().Format(time.RFC3339),
		run.CountriesOk,
		run.CountriesFailed)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("saving run: %w", err)
	}

	runId, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("run id: %w", err)
	}

	for _, c := range run.Countries {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO fetch_run_country (run_id, country_code, target_date, points, error)
			VALUES (?, ?, ?, ?, ?)`,
			runId, c.CountryCode, c.TargetDate, c.Points, c.Error)
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("saving run country %s: %w", c.CountryCode, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit run: %w", err)
	}
	return runId, nil
}

// RecentRuns returns the latest runs, newest first, each with its
// country outcomes in insertion order.
func (d *Database) RecentRuns(ctx context.Context, limit int) ([]RunRow, error) {
	if limit < 1 {
		limit = 10
	}

	rows, err := d.read.QueryContext(ctx, `
		SELECT id, started_at, finished_at, countries_ok, countries_failed
		FROM fetch_run
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("fetching runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRow
	for rows.Next() {
		var r RunRow
		var started, finished string
		if err := rows.Scan(&r.Id, &started, &finished, &r.CountriesOk, &r.CountriesFailed); err != nil {
			return nil, err
		}
		if r.StartedAt, err = time.Parse(time.RFC3339, started); err != nil {
			return nil, fmt.Errorf("parsing started_at: %w", err)
		}
		if r.FinishedAt, err = time.Parse(time.RFC3339, finished); err != nil {
			return nil, fmt.Errorf("parsing finished_at: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading run rows: %w", err)
	}

	for i := range runs {
		countries, err := d.runCountries(ctx, runs[i].Id)
		if err != nil {
			return nil, err
		}
		runs[i].Countries = countries
	}

	return runs, nil
}

func (d *Database) runCountries(ctx context.Context, runId int64) ([]RunCountryRow, error) {
	rows, err := d.read.QueryContext(ctx, `
		SELECT country_code, target_date, points, error
		FROM fetch_run_country
		WHERE run_id = ?
		ORDER BY rowid ASC`, runId)
	if err != nil {
		return nil, fmt.Errorf("fetching run countries: %w", err)
	}
	defer rows.Close()

	var countries []RunCountryRow
	for rows.Next() {
		var c RunCountryRow
		if err := rows.Scan(&c.CountryCode, &c.TargetDate, &c.Points, &c.Error); err != nil {
			return nil, err
		}
		countries = append(countries, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading run country rows: %w", err)
	}
	return countries, nil
}

// PurgeRuns drops run history older than the retention window.
func (d *Database) PurgeRuns(ctx context.Context, retentionDays int) error {
	d.logger.Debug("purging run history")
	before := time.Now().UTC().AddDate(0, 0, -retentionDays).Format(time.RFC3339)
	_, err := d.write.ExecContext(ctx, `DELETE FROM fetch_run WHERE started_at < ?`, before)
	if err != nil {
		return fmt.Errorf("purging run history: %w", err)
	}
	return nil
}
