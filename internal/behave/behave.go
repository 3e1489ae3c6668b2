// Package behave runs scenario suites against the live toolchains. The
// check subcommand uses it to verify that a host has every compiler and
// interpreter the runner needs, with the execution pipeline it will
// actually use.
package behave

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"

	"github.com/programme-lv/runner/api"
	"github.com/programme-lv/runner/internal/gatherer/termgath"
	"github.com/programme-lv/runner/internal/tester"
	"github.com/programme-lv/runner/internal/toolchain"
)

// Scenario is one end-to-end check: a submission, its test blob and the
// verdict every test is expected to receive.
type Scenario struct {
	Name               string   `toml:"name"`
	Language           string   `toml:"language"`
	TimeLimitMs        uint64   `toml:"time_limit_ms"`
	MemoryLimitMB      uint64   `toml:"memory_limit_mb"`
	Code               string   `toml:"code"`
	Tests              string   `toml:"tests"`
	Judger             string   `toml:"judger"`
	Expect             []string `toml:"expect"`
	ExpectCompileError bool     `toml:"expect_compile_error"`
}

type Suite struct {
	Scenarios []Scenario `toml:"scenario"`
}

func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	var suite Suite
	if err := toml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file: %w", err)
	}
	if len(suite.Scenarios) == 0 {
		return nil, fmt.Errorf("scenario file %s defines no scenarios", path)
	}
	return &suite, nil
}

var languageIDs = map[string]api.LanguageID{
	"python3": api.LangPython3,
	"c":       api.LangC,
	"c++":     api.LangCpp,
	"cpp":     api.LangCpp,
	"java":    api.LangJava,
	"rust":    api.LangRust,
}

// Run executes every scenario in order and reports pass/fail to the
// terminal. A non-nil error means at least one scenario failed.
func (s *Suite) Run(ctx context.Context, reg *toolchain.Registry, opts tester.Options) error {
	failed := 0
	for i, sc := range s.Scenarios {
		name := sc.Name
		if name == "" {
			name = fmt.Sprintf("scenario %d", i+1)
		}
		fmt.Printf("=== %s ===\n", name)
		if err := runScenario(ctx, reg, opts, sc); err != nil {
			color.New(color.FgRed, color.Bold).Printf("FAIL: %v\n", err)
			failed++
			continue
		}
		color.New(color.FgGreen).Println("PASS")
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(s.Scenarios))
	}
	return nil
}

func runScenario(ctx context.Context, reg *toolchain.Registry, opts tester.Options, sc Scenario) error {
	lang, ok := languageIDs[strings.ToLower(sc.Language)]
	if !ok {
		return fmt.Errorf("unknown language %q", sc.Language)
	}

	dir, err := toolchain.TempWorkDir()
	if err != nil {
		return err
	}
	defer dir.Close()

	req := tester.Request{
		Language:      lang,
		Code:          sc.Code,
		Tests:         sc.Tests,
		TimeLimitMs:   sc.TimeLimitMs,
		MemoryLimitMB: sc.MemoryLimitMB,
		CustomJudger:  sc.Judger,
	}

	runID := uuid.NewString()
	fmt.Printf("run %s\n", runID)

	records, err := tester.New(reg, opts).Run(ctx, dir, req, termgath.New())
	if err != nil {
		var cerr *toolchain.CompileError
		if errors.As(err, &cerr) && sc.ExpectCompileError {
			return nil
		}
		return err
	}
	if sc.ExpectCompileError {
		return fmt.Errorf("expected a compile error, submission compiled")
	}

	if len(records) != len(sc.Expect) {
		return fmt.Errorf("got %d verdicts, scenario expects %d", len(records), len(sc.Expect))
	}
	for i, rec := range records {
		if string(rec.Kind) != sc.Expect[i] {
			return fmt.Errorf("test %d: got verdict %s, expected %s", i+1, rec.Kind, sc.Expect[i])
		}
	}
	return nil
}
