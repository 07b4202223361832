package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/John-Boik/ibis/internal/fixtures"
	"github.com/John-Boik/ibis/internal/logging"
	"github.com/John-Boik/ibis/internal/storage/sqlitedb"
)

// Sqlite rebuilds the SQLite test database file and loads fixture tables.
var Sqlite = &cli.Command{
	Name:      "sqlite",
	Usage:     "Rebuild the SQLite test database file and load fixture tables into it",
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
			Usage:   "database file path",
			Value:   "ibis_testing.db",
			Sources: cli.EnvVars("IBIS_TEST_SQLITE_DB_PATH"),
		},
		&cli.StringFlag{
			Name:    "data-directory",
			Aliases: []string{"D"},
			Usage:   "directory holding <table>.csv fixtures",
			Value:   os.TempDir(),
		},
	},
	Action: runSqlite,
}

func runSqlite(ctx context.Context, cmd *cli.Command) error {
	script, err := os.ReadFile(cmd.String("script"))
	if err != nil {
		return fmt.Errorf("read schema script: %w", err)
	}

	store, err := sqlitedb.Open(cmd.String("database"))
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

	return store.Vacuum(ctx)
}
