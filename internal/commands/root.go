// Package commands defines the datamgr command group.
package commands

import (
	"os"

	"github.com/urfave/cli/v3"
)

// New builds the datamgr command group.
func New() *cli.Command {
	return &cli.Command{
		Name:  "datamgr",
		Usage: "Provision test fixture data for CI runs",
		Commands: []*cli.Command{
			Postgres,
			Sqlite,
			Download,
			Env,
		},
	}
}

// firstEnv returns the first set, non-empty environment variable from names,
// or fallback when none is set.
func firstEnv(fallback string, names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return fallback
}
