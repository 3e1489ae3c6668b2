package tester

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/programme-lv/runner/api"
	"github.com/programme-lv/runner/internal"
	"github.com/programme-lv/runner/internal/execute"
	"github.com/programme-lv/runner/internal/judger"
	"github.com/programme-lv/runner/internal/toolchain"
)

const baselineTimeout = 5 * time.Second

// Request is one full Test command.
type Request struct {
	Language      api.LanguageID
	Code          string
	Tests         string
	TimeLimitMs   uint64
	MemoryLimitMB uint64
	CustomJudger  string
}

// ExecFunc is the execution seam, satisfied by execute.Run.
type ExecFunc func(ctx context.Context, spec execute.Spec) (*internal.RuntimeData, error)

// Options configure a Tester beyond its defaults.
type Options struct {
	// BaselineArgv is the no-op command used for memory-baseline
	// calibration.
	BaselineArgv []string
	BaselineRuns int

	// EnforceRlimit additionally applies the declared memory limit to
	// each test child as an address-space rlimit. The measured-usage
	// verdict stays authoritative either way.
	EnforceRlimit bool
}

// Tester drives one Test request end to end: parse, compile, calibrate,
// then execute and classify every test case in order.
type Tester struct {
	opts Options

	exec         ExecFunc
	toolchainFor func(api.LanguageID) (toolchain.Toolchain, error)
	loadJudger   func(ctx context.Context, dir *toolchain.WorkDir, source string) (judger.Judger, error)
}

// New builds a Tester running the real toolchains of registry.
func New(registry *toolchain.Registry, opts Options) *Tester {
	if len(opts.BaselineArgv) == 0 {
		opts.BaselineArgv = []string{"true"}
	}
	if opts.BaselineRuns <= 0 {
		opts.BaselineRuns = 3
	}
	return &Tester{
		opts:         opts,
		exec:         execute.Run,
		toolchainFor: registry.For,
		loadJudger: func(ctx context.Context, dir *toolchain.WorkDir, source string) (judger.Judger, error) {
			return judger.Load(ctx, registry.Python(), dir, source)
		},
	}
}

// Run executes one Test request inside dir, returning one PassRecord per
// test case in input order. Any returned error invalidates the whole
// request; no partial records are returned.
func (t *Tester) Run(ctx context.Context, dir *toolchain.WorkDir, req Request, gath internal.ResultGatherer) ([]api.PassRecord, error) {
	cases, err := ParseTests(req.Tests)
	if err != nil {
		err = fmt.Errorf("failed to parse tests: %w", err)
		gath.InternalError(err.Error())
		return nil, err
	}
	gath.StartRun(len(cases))

	tc, err := t.toolchainFor(req.Language)
	if err != nil {
		gath.InternalError(err.Error())
		return nil, err
	}

	gath.StartCompile()
	artifact, compileData, err := tc.Compile(ctx, dir, req.Code)
	if err != nil {
		var cerr *toolchain.CompileError
		if errors.As(err, &cerr) {
			gath.CompileError(cerr.Message)
			return nil, cerr
		}
		err = fmt.Errorf("failed to compile submission: %w", err)
		gath.InternalError(err.Error())
		return nil, err
	}
	gath.FinishCompile(compileData)

	judge := judger.Judger(judger.ExactMatch{})
	if req.CustomJudger != "" {
		judge, err = t.loadJudger(ctx, dir, req.CustomJudger)
		if err != nil {
			err = fmt.Errorf("failed to load judger: %w", err)
			gath.InternalError(err.Error())
			return nil, err
		}
	}

	baseline := t.measureBaseline(ctx)

	runArgs := tc.RunArgs(artifact)
	timeLimit := time.Duration(req.TimeLimitMs) * time.Millisecond
	limitKiB := int64(req.MemoryLimitMB) * 1024

	records := make([]api.PassRecord, 0, len(cases))
	for i, c := range cases {
		gath.ReachTest(i)

		spec := execute.Spec{
			Args:      runArgs,
			Dir:       dir.Root(),
			Stdin:     c.Input + "\n",
			TimeLimit: timeLimit,
		}
		if t.opts.EnforceRlimit && limitKiB > 0 {
			spec.MemoryCeilingKiB = limitKiB
		}
		data, err := t.exec(ctx, spec)
		if err != nil {
			err = fmt.Errorf("failed to execute test %d: %w", i+1, err)
			gath.InternalError(err.Error())
			return nil, err
		}

		adjustedKiB := execute.AdjustedKiB(data.MemoryKiB, baseline)
		rec := api.PassRecord{
			Time:        uint64(data.WallMillis),
			MemoryUsage: uint64(adjustedKiB) * 1024,
		}
		switch {
		case data.TimedOut:
			rec.Kind = api.VerdictTimeLimitExceeded
		case limitKiB > 0 && adjustedKiB > limitKiB:
			rec.Kind = api.VerdictMemoryLimitExceeded
		case data.ExitCode != 0:
			rec.Kind = api.VerdictRuntimeError
		default:
			ok, jerr := judge.Judge(ctx, i, c.Input+"\n", c.Expected, strings.TrimSpace(data.Stdout))
			if jerr != nil {
				gath.InternalError(jerr.Error())
				return nil, jerr
			}
			if ok {
				rec.Kind = api.VerdictCorrect
			} else {
				rec.Kind = api.VerdictWrong
			}
		}

		records = append(records, rec)
		gath.FinishTest(i, rec, data)
	}

	gath.FinishNoError()
	return records, nil
}

// measureBaseline averages the peak RSS of a few no-op runs so limits are
// evaluated against the program's memory use, not spawn overhead. It is
// computed once per request and read-only afterwards.
func (t *Tester) measureBaseline(ctx context.Context) int64 {
	var total int64
	for range t.opts.BaselineRuns {
		data, err := t.exec(ctx, execute.Spec{
			Args:      t.opts.BaselineArgv,
			TimeLimit: baselineTimeout,
		})
		if err != nil {
			slog.Warn("baseline calibration failed, assuming zero overhead", "err", err)
			return 0
		}
		total += data.MemoryKiB
	}
	return total / int64(t.opts.BaselineRuns)
}
