package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/programme-lv/runner/api"
	"github.com/programme-lv/runner/internal/behave"
	"github.com/programme-lv/runner/internal/tester"
	"github.com/programme-lv/runner/internal/toolchain"
)

func checkAction(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return fmt.Errorf("usage: runner check <suite.toml>")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	setupLogging(cfg.LogLevel)

	suite, err := behave.LoadSuite(path)
	if err != nil {
		return err
	}

	opts := tester.Options{
		BaselineArgv:  cfg.BaselineArgv,
		BaselineRuns:  cfg.BaselineRuns,
		EnforceRlimit: cfg.EnforceRlimit,
	}
	return suite.Run(ctx, toolchain.NewRegistry(binaries(cfg)), opts)
}

func versionsAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	setupLogging(cfg.LogLevel)

	versions, err := toolchain.NewRegistry(binaries(cfg)).Versions(ctx)
	if err != nil {
		return err
	}

	header := color.New(color.FgCyan, color.Bold)
	for i, lang := range api.Languages() {
		header.Printf("--- %s ---\n", lang)
		fmt.Println(versions[i])
	}
	return nil
}
