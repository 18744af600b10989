package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/chorus-audio/chorus/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	app := &cli.Command{
		Name:    "chorus",
		Usage:   "Browse, search and curate a Spotify library from the terminal",
		Version: "0.3.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "chorus.toml",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Commands: newRunner(logger).register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
