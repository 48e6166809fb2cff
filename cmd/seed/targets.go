package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/bankperf/salesdash/internal/repository/postgres"
)

// seedTargets loads KRA targets and branch targets from CSV files. Target
// values with thousands separators ("1,000,000") are accepted.
func seedTargets(c *cli.Context) error {
	db, err := dbFromContext(c)
	if err != nil {
		return err
	}

	dataDir := c.String("targets-dir")
	if dataDir == "" {
		dataDir = c.String("data-dir")
	}

	ctx := c.Context

	if err := postgres.NewDBFromConn(db, "pgx").InitSchema(ctx); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	log.Println("Seeding targets...")

	if err := seedStaffTargets(ctx, tx, filepath.Join(dataDir, "staff_targets.csv")); err != nil {
		return fmt.Errorf("failed to seed staff targets: %w", err)
	}
	if err := seedBranchTargets(ctx, tx, filepath.Join(dataDir, "branch_targets.csv")); err != nil {
		return fmt.Errorf("failed to seed branch targets: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Println("Target seeding completed successfully!")
	return nil
}

func seedStaffTargets(ctx context.Context, tx *sql.Tx, filePath string) error {
	const query = `
		INSERT INTO staff_targets (employee_code, metric, value, period_type, period, due_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (employee_code, metric, period, period_type) DO UPDATE SET
			value = EXCLUDED.value,
			due_date = EXCLUDED.due_date
	`

	return seedFromCSV(ctx, tx, filePath, "staff_targets", func(get func(string) string) []interface{} {
		periodType := strings.ToLower(get("period_type"))
		if periodType == "" {
			periodType = "monthly"
		}
		return []interface{}{
			get("employee_code"),
			strings.ToUpper(get("metric")),
			parseSeedFloat(get("value")),
			periodType,
			get("period"),
			nullIfEmpty(get("due_date")),
		}
	}, query)
}

func seedBranchTargets(ctx context.Context, tx *sql.Tx, filePath string) error {
	const query = `
		INSERT INTO branch_targets (branch_name, metric, value, period)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (branch_name, metric, period) DO UPDATE SET
			value = EXCLUDED.value
	`

	return seedFromCSV(ctx, tx, filePath, "branch_targets", func(get func(string) string) []interface{} {
		return []interface{}{
			get("branch_name"),
			strings.ToUpper(get("metric")),
			parseSeedFloat(get("value")),
			get("period"),
		}
	}, query)
}

// nullIfEmpty returns NULL if the string is empty, otherwise the string
func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func parseSeedFloat(value string) float64 {
	cleaned := strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if cleaned == "" {
		return 0
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return f
}
