// internal/repository/postgres/schema.go
package postgres

import "context"

const schema = `
CREATE TABLE IF NOT EXISTS staff (
    id               BIGSERIAL PRIMARY KEY,
    employee_code    TEXT NOT NULL UNIQUE,
    name             TEXT NOT NULL,
    designation      TEXT NOT NULL,
    branch           TEXT NOT NULL DEFAULT '',
    district         TEXT NOT NULL DEFAULT '',
    region           TEXT NOT NULL DEFAULT '',
    zone             TEXT NOT NULL DEFAULT '',
    reports_to       TEXT NOT NULL DEFAULT '',
    managed_zones    TEXT[] NOT NULL DEFAULT '{}',
    managed_branches TEXT[] NOT NULL DEFAULT '{}',
    created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS branches (
    id           BIGSERIAL PRIMARY KEY,
    name         TEXT NOT NULL UNIQUE,
    zone         TEXT NOT NULL DEFAULT '',
    region       TEXT NOT NULL DEFAULT '',
    district     TEXT NOT NULL DEFAULT '',
    manager_code TEXT NOT NULL DEFAULT '',
    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS product_metrics (
    id                     BIGSERIAL PRIMARY KEY,
    name                   TEXT NOT NULL UNIQUE,
    category               TEXT NOT NULL DEFAULT '',
    kind                   TEXT NOT NULL,
    unit                   TEXT NOT NULL DEFAULT '',
    contributes_to_overall BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS staff_targets (
    id            BIGSERIAL PRIMARY KEY,
    employee_code TEXT NOT NULL,
    metric        TEXT NOT NULL,
    value         DOUBLE PRECISION NOT NULL,
    period_type   TEXT NOT NULL,
    period        TEXT NOT NULL,
    due_date      DATE,
    UNIQUE (employee_code, metric, period, period_type)
);

CREATE TABLE IF NOT EXISTS branch_targets (
    id          BIGSERIAL PRIMARY KEY,
    branch_name TEXT NOT NULL,
    metric      TEXT NOT NULL,
    value       DOUBLE PRECISION NOT NULL,
    period      TEXT NOT NULL,
    UNIQUE (branch_name, metric, period)
);

CREATE TABLE IF NOT EXISTS achievement_rows (
    row_date    DATE NOT NULL,
    staff_name  TEXT NOT NULL,
    branch_name TEXT NOT NULL DEFAULT '',
    metric_values JSONB NOT NULL DEFAULT '{}',
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (row_date, staff_name)
);

CREATE INDEX IF NOT EXISTS idx_staff_targets_period ON staff_targets (period, period_type);
CREATE INDEX IF NOT EXISTS idx_branch_targets_period ON branch_targets (period);
CREATE INDEX IF NOT EXISTS idx_achievement_rows_date ON achievement_rows (row_date);

CREATE TABLE IF NOT EXISTS import_runs (
    id              BIGSERIAL PRIMARY KEY,
    run_key         TEXT NOT NULL,
    snapshot_date   DATE NOT NULL,
    status          TEXT NOT NULL,
    total_files     INT NOT NULL DEFAULT 0,
    processed_files INT NOT NULL DEFAULT 0,
    total_rows      INT NOT NULL DEFAULT 0,
    started_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    completed_at    TIMESTAMPTZ,
    error_message   TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS import_file_jobs (
    id            BIGSERIAL PRIMARY KEY,
    run_id        BIGINT NOT NULL REFERENCES import_runs (id),
    file_path     TEXT NOT NULL,
    status        TEXT NOT NULL,
    error_message TEXT NOT NULL DEFAULT '',
    processed_at  TIMESTAMPTZ,
    retry_count   INT NOT NULL DEFAULT 0
);
`

// InitSchema creates the tables the dashboard needs if they do not exist.
func (db *DB) InitSchema(ctx context.Context) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
