package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:  "runner",
		Usage: "single-shot program judge: read a command file, execute it, answer on stdout",
		Flags: append(commonFlags(),
			&cli.StringFlag{
				Name:  "command-file",
				Usage: "override the command file `PATH`",
			},
		),
		Action: serveAction,
		Commands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "run a scenario suite against the host toolchains",
				ArgsUsage: "<suite.toml>",
				Flags:     commonFlags(),
				Action:    checkAction,
			},
			{
				Name:   "versions",
				Usage:  "print toolchain version reports",
				Flags:  commonFlags(),
				Action: versionsAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("runner failed", "error", err)
		os.Exit(1)
	}
}

// Flags are not inherited by subcommands, every command carries its own
// copy.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "load configuration from `FILE` instead of searching for runner.toml",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "override the configured log `LEVEL` (debug, info, warn, error)",
		},
	}
}
