package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/John-Boik/ibis/internal/envlist"
)

// Env prints the fixture environment variable listing.
var Env = &cli.Command{
	Name:      "env",
	Usage:     "Print fixture environment variable assignments for a data directory",
	ArgsUsage: "DATA_DIRECTORY",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "environment",
			Aliases: []string{"e"},
			Usage:   "NAME=VALUE override (repeatable)",
		},
	},
	Action: runEnv,
}

func runEnv(ctx context.Context, cmd *cli.Command) error {
	dataDir := cmd.Args().First()
	if dataDir == "" {
		return cli.Exit("missing DATA_DIRECTORY argument", 2)
	}
	if _, err := os.Stat(dataDir); err != nil {
		return cli.Exit(fmt.Sprintf("data directory %s does not exist", dataDir), 2)
	}

	overrides, err := envlist.Parse(cmd.StringSlice("environment"))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	vars := envlist.Defaults(dataDir)
	for name, value := range overrides {
		vars[name] = value
	}

	fmt.Fprintln(cmd.Root().Writer, envlist.Render(vars))
	return nil
}
