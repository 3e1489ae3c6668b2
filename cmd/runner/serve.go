package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/lmittmann/tint"
	"github.com/urfave/cli/v3"

	"github.com/programme-lv/runner/api"
	"github.com/programme-lv/runner/internal/environment"
	"github.com/programme-lv/runner/internal/gatherer/loggath"
	"github.com/programme-lv/runner/internal/judger"
	"github.com/programme-lv/runner/internal/tester"
	"github.com/programme-lv/runner/internal/toolchain"
)

func loadConfig(cmd *cli.Command) (environment.Config, error) {
	cfg, err := environment.Load(cmd.String("config"))
	if err != nil {
		return cfg, err
	}
	if path := cmd.String("command-file"); path != "" {
		cfg.CommandPath = path
	}
	if level := cmd.String("log-level"); level != "" {
		cfg.LogLevel = level
	}
	return cfg, nil
}

func setupLogging(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	// Stdout carries the response, logs go to stderr.
	log := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      lvl,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(log)
	return log
}

func binaries(cfg environment.Config) toolchain.Binaries {
	return toolchain.Binaries{
		Python: cfg.Toolchain.Python,
		CC:     cfg.Toolchain.CC,
		CXX:    cfg.Toolchain.CXX,
		Java:   cfg.Toolchain.Java,
		Javac:  cfg.Toolchain.Javac,
		Jar:    cfg.Toolchain.Jar,
		Rustc:  cfg.Toolchain.Rustc,
	}
}

// serveAction runs the single-shot protocol: read the command file,
// delete it, execute the command, write one CBOR response to stdout.
func serveAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := setupLogging(cfg.LogLevel)

	data, err := os.ReadFile(cfg.CommandPath)
	if err != nil {
		return fmt.Errorf("failed to read command file %s: %w", cfg.CommandPath, err)
	}

	// The file is consumed the moment it is read, decodable or not. A
	// stale command file must never be served twice.
	if err := os.Remove(cfg.CommandPath); err != nil {
		return fmt.Errorf("failed to remove command file %s: %w", cfg.CommandPath, err)
	}

	c, err := api.DecodeCommand(data)
	if err != nil {
		return err
	}

	log = log.With("run_id", uuid.NewString())
	log.Info("command received", "command", c.Name)

	var resp any
	switch c.Name {
	case api.CmdTest:
		resp = handleTest(ctx, cfg, log, c)
	case api.CmdVersions:
		resp, err = handleVersions(ctx, cfg)
		if err != nil {
			return err
		}
	case api.CmdValidateJudger:
		resp, err = handleValidateJudger(ctx, cfg, c)
		if err != nil {
			return err
		}
	}

	return api.EncodeResponse(os.Stdout, resp)
}

// handleTest always produces a response: request-fatal failures become
// InvalidProgram rather than a nonzero exit.
func handleTest(ctx context.Context, cfg environment.Config, log *slog.Logger, c *api.Command) any {
	dir := toolchain.NewWorkDir(cfg.WorkDir)

	req := tester.Request{
		Language:      c.Language,
		Code:          c.Code,
		Tests:         c.Tests,
		TimeLimitMs:   c.TimeLimitMs,
		MemoryLimitMB: c.MemoryLimitMB,
		CustomJudger:  c.CustomJudger,
	}
	opts := tester.Options{
		BaselineArgv:  cfg.BaselineArgv,
		BaselineRuns:  cfg.BaselineRuns,
		EnforceRlimit: cfg.EnforceRlimit,
	}

	records, err := tester.New(toolchain.NewRegistry(binaries(cfg)), opts).
		Run(ctx, dir, req, loggath.New(log))
	if err != nil {
		return api.TestInvalidProgram{InvalidProgram: invalidProgramMessage(err)}
	}
	return api.NewTestOK(records)
}

// invalidProgramMessage keeps compiler output verbatim; everything else
// reports through the error chain.
func invalidProgramMessage(err error) string {
	var cerr *toolchain.CompileError
	if errors.As(err, &cerr) {
		return cerr.Message
	}
	return err.Error()
}

func handleVersions(ctx context.Context, cfg environment.Config) (any, error) {
	return toolchain.NewRegistry(binaries(cfg)).Versions(ctx)
}

func handleValidateJudger(ctx context.Context, cfg environment.Config, c *api.Command) (any, error) {
	dir, err := toolchain.TempWorkDir()
	if err != nil {
		return nil, err
	}
	defer dir.Close()

	reg := toolchain.NewRegistry(binaries(cfg))
	if err := judger.Validate(ctx, reg.Python(), dir, c.Judger); err != nil {
		return api.ValidateErr{Err: err.Error()}, nil
	}
	return api.ValidateOK{}, nil
}
