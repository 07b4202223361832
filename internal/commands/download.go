package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/John-Boik/ibis/internal/download"
)

// Download fetches fixture archives and extracts tarballs.
var Download = &cli.Command{
	Name:      "download",
	Usage:     "Download fixture archives and extract tarballs",
	ArgsUsage: "[BASE_URL]",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "data",
			Aliases: []string{"d"},
			Usage:   "archive name to fetch (repeatable)",
		},
		&cli.StringFlag{
			Name:    "directory",
			Aliases: []string{"D"},
			Usage:   "destination directory, created if missing",
			Value:   ".",
		},
	},
	Action: runDownload,
}

func runDownload(ctx context.Context, cmd *cli.Command) error {
	base := cmd.Args().First()
	if base == "" {
		base = download.DefaultBaseURL
	}
	pieces := cmd.StringSlice("data")
	if len(pieces) == 0 {
		pieces = []string{download.DefaultArchive}
	}
	dir := cmd.String("directory")

	client := download.NewClient(0)
	for _, piece := range pieces {
		path, err := client.Fetch(ctx, base, piece, dir)
		if err != nil {
			return err
		}
		if download.IsArchive(piece) {
			if err := download.Extract(path, dir); err != nil {
				return err
			}
		}
	}
	return nil
}
