package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"marketcycle/internal/domain/models"
	drepo "marketcycle/internal/domain/repository"
)

// ClickHouseHistoryArchive persists month-end observations. The table uses
// ReplacingMergeTree keyed by month_end, so re-running a refresh inside the
// same month updates that month's row instead of duplicating it.
type ClickHouseHistoryArchive struct {
	db    *sql.DB
	table string
}

// NewClickHouseHistoryArchive creates the archive over an open pool.
func NewClickHouseHistoryArchive(db *sql.DB, table string) drepo.HistoryArchive {
	return &ClickHouseHistoryArchive{db: db, table: table}
}

func (a *ClickHouseHistoryArchive) Init(ctx context.Context) error {
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		month_end Date,
		ratio Float64,
		zone String,
		updated_at DateTime DEFAULT now()
	) ENGINE=ReplacingMergeTree(updated_at) ORDER BY month_end`, a.table)
	if _, err := a.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("init archive schema: %w", err)
	}
	return nil
}

func (a *ClickHouseHistoryArchive) Append(ctx context.Context, obs models.Observation) error {
	q := fmt.Sprintf("INSERT INTO %s (month_end, ratio, zone, updated_at) VALUES (?, ?, ?, ?)", a.table)
	if _, err := a.db.ExecContext(ctx, q, obs.MonthEnd, obs.Ratio, obs.Zone, time.Now()); err != nil {
		return fmt.Errorf("append observation: %w", err)
	}
	return nil
}

func (a *ClickHouseHistoryArchive) Recent(ctx context.Context, limit int) ([]models.Observation, error) {
	q := fmt.Sprintf("SELECT month_end, ratio, zone FROM %s FINAL ORDER BY month_end DESC LIMIT ?", a.table)
	rows, err := a.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("query archive: %w", err)
	}
	defer rows.Close()

	var out []models.Observation
	for rows.Next() {
		var obs models.Observation
		if err := rows.Scan(&obs.MonthEnd, &obs.Ratio, &obs.Zone); err != nil {
			return nil, err
		}
		out = append(out, obs)
	}
	return out, rows.Err()
}

func (a *ClickHouseHistoryArchive) Health(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

func (a *ClickHouseHistoryArchive) Close() error {
	return nil // pool is managed by pkg/clickhouse
}
