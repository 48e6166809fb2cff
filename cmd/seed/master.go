package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/lib/pq"
	"github.com/urfave/cli/v2"

	"github.com/bankperf/salesdash/internal/repository/postgres"
)

// seedMaster loads the staff roster, branch list, and metric catalog from
// CSV files into the database inside one transaction.
func seedMaster(c *cli.Context) error {
	db, err := dbFromContext(c)
	if err != nil {
		return err
	}
	dataDir := c.String("data-dir")

	ctx := c.Context

	if err := postgres.NewDBFromConn(db, "pgx").InitSchema(ctx); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	log.Println("Seeding master data...")

	if err := seedStaff(ctx, tx, filepath.Join(dataDir, "staff.csv")); err != nil {
		return fmt.Errorf("failed to seed staff: %w", err)
	}
	if err := seedBranches(ctx, tx, filepath.Join(dataDir, "branches.csv")); err != nil {
		return fmt.Errorf("failed to seed branches: %w", err)
	}
	if err := seedMetrics(ctx, tx, filepath.Join(dataDir, "metrics.csv")); err != nil {
		return fmt.Errorf("failed to seed metrics: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Println("Master data seeding completed successfully!")
	return nil
}

func seedStaff(ctx context.Context, tx *sql.Tx, filePath string) error {
	const query = `
		INSERT INTO staff (
			employee_code, name, designation, branch, district, region, zone,
			reports_to, managed_zones, managed_branches
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (employee_code) DO UPDATE SET
			name = EXCLUDED.name,
			designation = EXCLUDED.designation,
			branch = EXCLUDED.branch,
			district = EXCLUDED.district,
			region = EXCLUDED.region,
			zone = EXCLUDED.zone,
			reports_to = EXCLUDED.reports_to,
			managed_zones = EXCLUDED.managed_zones,
			managed_branches = EXCLUDED.managed_branches,
			updated_at = NOW()
	`

	return seedFromCSV(ctx, tx, filePath, "staff", func(get func(string) string) []interface{} {
		return []interface{}{
			get("employee_code"),
			get("name"),
			strings.ToUpper(get("designation")),
			get("branch"),
			get("district"),
			get("region"),
			get("zone"),
			get("reports_to"),
			pq.Array(splitList(get("managed_zones"))),
			pq.Array(splitList(get("managed_branches"))),
		}
	}, query)
}

func seedBranches(ctx context.Context, tx *sql.Tx, filePath string) error {
	const query = `
		INSERT INTO branches (name, zone, region, district, manager_code)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name) DO UPDATE SET
			zone = EXCLUDED.zone,
			region = EXCLUDED.region,
			district = EXCLUDED.district,
			manager_code = EXCLUDED.manager_code,
			updated_at = NOW()
	`

	return seedFromCSV(ctx, tx, filePath, "branches", func(get func(string) string) []interface{} {
		return []interface{}{
			get("name"),
			get("zone"),
			get("region"),
			get("district"),
			get("manager_code"),
		}
	}, query)
}

func seedMetrics(ctx context.Context, tx *sql.Tx, filePath string) error {
	const query = `
		INSERT INTO product_metrics (name, category, kind, unit, contributes_to_overall)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name) DO UPDATE SET
			category = EXCLUDED.category,
			kind = EXCLUDED.kind,
			unit = EXCLUDED.unit,
			contributes_to_overall = EXCLUDED.contributes_to_overall
	`

	return seedFromCSV(ctx, tx, filePath, "product_metrics", func(get func(string) string) []interface{} {
		contributes := true
		switch strings.ToLower(get("contributes_to_overall")) {
		case "0", "false", "no":
			contributes = false
		}
		return []interface{}{
			strings.ToUpper(get("name")),
			get("category"),
			strings.ToUpper(get("kind")),
			get("unit"),
			contributes,
		}
	}, query)
}

// seedFromCSV reads filePath and executes query once per record, with args
// built by the toArgs callback from named columns.
func seedFromCSV(ctx context.Context, tx *sql.Tx, filePath, tableName string, toArgs func(get func(string) string) []interface{}, query string) error {
	log.Printf("Seeding %s from %s\n", tableName, filePath)

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}

	colMap := make(map[string]int, len(header))
	for i, col := range header {
		colMap[strings.ToLower(strings.TrimSpace(col))] = i
	}

	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read CSV record: %w", err)
		}

		get := func(col string) string {
			if idx, ok := colMap[col]; ok && idx < len(record) {
				return strings.TrimSpace(record[idx])
			}
			return ""
		}

		if _, err := tx.ExecContext(ctx, query, toArgs(get)...); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", tableName, err)
		}
		count++
	}

	log.Printf("Successfully seeded %s (%d records)\n", tableName, count)
	return nil
}

// splitList parses a pipe-separated list cell ("EAST|WEST") into a slice.
func splitList(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
