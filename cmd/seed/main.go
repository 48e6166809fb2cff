package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

type contextKey string

// dbKey is the context key the CLI hooks stash the DB connection under.
const dbKey contextKey = "seed-db"

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func initDB(c *cli.Context) error {
	// Initialize database connection
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	// Store the database connection in the context
	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	// Close the database connection when done
	if db, ok := c.Context.Value(dbKey).(*sql.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func dbFromContext(c *cli.Context) (*sql.DB, error) {
	db, ok := c.Context.Value(dbKey).(*sql.DB)
	if !ok || db == nil {
		return nil, fmt.Errorf("database connection not found in context")
	}
	return db, nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Seed the dashboard database",
		Flags: []cli.Flag{
			newDBURLFlag(),
		},
		Commands: []*cli.Command{
			{
				Name:  "master",
				Usage: "Seed master data (staff roster, branches, metric catalog)",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "data-dir",
						Usage:   "Directory containing master seed data",
						Value:   "./data/seeds/master_data",
						EnvVars: []string{"SEED_DATA_DIR"},
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: seedMaster,
			},
			{
				Name:  "targets",
				Usage: "Seed KRA and branch targets",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "data-dir",
						Usage:   "Directory containing target seed data",
						Value:   "./data/seeds/targets",
						EnvVars: []string{"SEED_TARGETS_DIR"},
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: seedTargets,
			},
			{
				Name:  "achievements",
				Usage: "Import achievement sheets from a local directory",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "data-dir",
						Usage:   "Directory containing achievement CSV files",
						Value:   "./data/seeds/achievements",
						EnvVars: []string{"SEED_ACHIEVEMENTS_DIR"},
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent import workers",
						Value: 4,
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: seedAchievements,
			},
			{
				Name:   "download",
				Usage:  "Download seed data from the archive bucket",
				Flags:  append([]cli.Flag{newDBURLFlag()}, archiveFlags()...),
				Action: downloadSeeds,
			},
			{
				Name:  "all",
				Usage: "Seed master data, targets, and achievements",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "data-dir",
						Usage:   "Directory containing master seed data",
						Value:   "./data/seeds/master_data",
						EnvVars: []string{"SEED_DATA_DIR"},
					},
					&cli.StringFlag{
						Name:    "targets-dir",
						Usage:   "Directory containing target seed data",
						Value:   "./data/seeds/targets",
						EnvVars: []string{"SEED_TARGETS_DIR"},
					},
					&cli.StringFlag{
						Name:    "achievements-dir",
						Usage:   "Directory containing achievement CSV files",
						Value:   "./data/seeds/achievements",
						EnvVars: []string{"SEED_ACHIEVEMENTS_DIR"},
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent import workers",
						Value: 4,
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: func(c *cli.Context) error {
					if err := seedMaster(c); err != nil {
						return fmt.Errorf("error seeding master data: %w", err)
					}
					if err := seedTargets(c); err != nil {
						return fmt.Errorf("error seeding targets: %w", err)
					}
					if err := seedAchievements(c); err != nil {
						return fmt.Errorf("error importing achievements: %w", err)
					}
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
