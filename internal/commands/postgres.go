package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/John-Boik/ibis/internal/envlist"
	"github.com/John-Boik/ibis/internal/fixtures"
	"github.com/John-Boik/ibis/internal/logging"
	"github.com/John-Boik/ibis/internal/storage/postgresdb"
)

// Postgres recreates the postgres test database and loads fixture tables.
var Postgres = &cli.Command{
	Name:      "postgres",
	Usage:     "Recreate the postgres test database and load fixture tables into it",
	ArgsUsage: "[TABLES...]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "script",
			Aliases:  []string{"S"},
			Usage:    "DDL script to run before loading",
			Required: true,
		},
		&cli.StringFlag{
			Name:    "database",
			Aliases: []string{"d"},
			Usage:   "target database name",
			Value:   "ibis_testing",
			Sources: cli.EnvVars("IBIS_TEST_POSTGRES_DB", "PGDATABASE"),
		},
		&cli.StringFlag{
			Name:    "data-directory",
			Aliases: []string{"D"},
			Usage:   "directory holding <table>.csv fixtures",
			Value:   os.TempDir(),
		},
	},
	Action: runPostgres,
}

func runPostgres(ctx context.Context, cmd *cli.Command) error {
	script, err := os.ReadFile(cmd.String("script"))
	if err != nil {
		return fmt.Errorf("read schema script: %w", err)
	}

	cfg := postgresdb.Config{
		Host:     firstEnv("localhost", "PGHOST"),
		User:     firstEnv(envlist.CurrentUser(), "IBIS_POSTGRES_USER", "PGUSER"),
		Password: firstEnv("", "IBIS_POSTGRES_PASS", "PGPASS"),
		Database: cmd.String("database"),
	}

	if err := postgresdb.Recreate(ctx, cfg, cfg.Database); err != nil {
		return err
	}

	store, err := postgresdb.Connect(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.RunScript(ctx, string(script)); err != nil {
		return err
	}

	dataDir := cmd.String("data-directory")
	for _, table := range cmd.Args().Slice() {
		t, err := fixtures.ReadTable(dataDir, table)
		if err != nil {
			return err
		}
		if err := store.LoadTable(ctx, t); err != nil {
			return err
		}
		logging.Infof("loaded %d rows into %s", len(t.Rows), table)
	}

	return store.VacuumAnalyze(ctx)
}
