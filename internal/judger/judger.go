// Package judger decides output comparisons. The default is exact
// equality of the trimmed texts; caller-supplied logic runs as a child
// process through the same resource-accounted execution path as
// submissions, never inside this process.
package judger

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/programme-lv/runner/internal"
	"github.com/programme-lv/runner/internal/execute"
	"github.com/programme-lv/runner/internal/toolchain"
)

const (
	sourceFile  = "judger.py"
	adapterFile = "judger_entry.py"

	invokeTimeout = 10 * time.Second
)

// Adapter exit codes. Everything else is a judger fault.
const (
	exitAccept = 0
	exitReject = 1
	exitRaised = 2
	exitShape  = 3
)

// Judger decides one test case's comparison.
type Judger interface {
	Judge(ctx context.Context, index int, input, expected, actual string) (bool, error)
}

// ExactMatch is the default comparator: equality of the already-trimmed
// expected and actual texts.
type ExactMatch struct{}

func (ExactMatch) Judge(_ context.Context, _ int, _ string, expected, actual string) (bool, error) {
	return expected == actual, nil
}

// Python invokes a caller-supplied judge callable through the adapter
// program. Loaded fresh per request, never cached.
type Python struct {
	interpreter string
	dir         *toolchain.WorkDir
}

// Load writes the judger source and the adapter into dir and verifies
// that the source executes and defines a judge callable accepting four
// positional arguments. The callable itself is not invoked. Any failure
// here is request-fatal.
func Load(ctx context.Context, interpreter string, dir *toolchain.WorkDir, source string) (*Python, error) {
	p := &Python{interpreter: interpreter, dir: dir}
	if err := p.write(source); err != nil {
		return nil, err
	}
	data, err := p.run(ctx, "check", "")
	if err != nil {
		return nil, err
	}
	if data.ExitCode != exitAccept {
		return nil, fmt.Errorf("%s", failureText(data))
	}
	return p, nil
}

// Validate checks judger shape without executing real test data: the
// load/arity/bool checks of Load against a throwaway directory. It
// reports mismatches as errors, never panics or crashes.
func Validate(ctx context.Context, interpreter string, dir *toolchain.WorkDir, source string) error {
	_, err := Load(ctx, interpreter, dir, source)
	return err
}

type judgeArgs struct {
	Index    int    `json:"index"`
	Input    string `json:"input"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

// Judge runs the callable for one test case. The verdict travels in the
// exit code, so nothing the judger prints can corrupt it.
func (p *Python) Judge(ctx context.Context, index int, input, expected, actual string) (bool, error) {
	payload, err := json.Marshal(judgeArgs{Index: index, Input: input, Expected: expected, Actual: actual})
	if err != nil {
		return false, fmt.Errorf("failed to encode judger arguments: %w", err)
	}
	data, err := p.run(ctx, "judge", string(payload))
	if err != nil {
		return false, err
	}
	switch data.ExitCode {
	case exitAccept:
		return true, nil
	case exitReject:
		return false, nil
	case exitRaised:
		return false, fmt.Errorf("judger raised an exception: %s", failureText(data))
	case exitShape:
		return false, fmt.Errorf("judger shape violation: %s", failureText(data))
	}
	if data.TimedOut {
		return false, fmt.Errorf("judger timed out after %v", invokeTimeout)
	}
	return false, fmt.Errorf("judger exited with unexpected status %d: %s", data.ExitCode, failureText(data))
}

func (p *Python) write(source string) error {
	if err := p.dir.WriteFile(sourceFile, []byte(source)); err != nil {
		return err
	}
	return p.dir.WriteFile(adapterFile, []byte(adapterSource))
}

func (p *Python) run(ctx context.Context, mode, stdin string) (*internal.RuntimeData, error) {
	data, err := execute.Run(ctx, execute.Spec{
		Args:      []string{p.interpreter, adapterFile, mode},
		Dir:       p.dir.Root(),
		Stdin:     stdin,
		TimeLimit: invokeTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to run judger: %w", err)
	}
	return data, nil
}

func failureText(data *internal.RuntimeData) string {
	if s := strings.TrimSpace(data.Stderr); s != "" {
		return s
	}
	if data.TimedOut {
		return fmt.Sprintf("timed out after %v", invokeTimeout)
	}
	return fmt.Sprintf("exit status %d", data.ExitCode)
}
