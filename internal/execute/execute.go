// Package execute runs one child process under a wall-clock limit and
// reports the exact resource accounting the kernel kept for the reaped
// child. Timeouts, nonzero exits and kills are data, not errors; the only
// error path is failing to spawn at all.
package execute

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"sync/atomic"
	"time"

	"github.com/programme-lv/runner/internal"
)

// Spec describes one child-process run.
type Spec struct {
	Args  []string
	Dir   string
	Stdin string

	// TimeLimit bounds the whole spawn-communicate-wait cycle. A
	// non-positive limit fires the watchdog immediately.
	TimeLimit time.Duration

	// MemoryCeilingKiB, when positive, is applied to the child as an
	// address-space rlimit. It is a best-effort hard stop only; the
	// measured-usage comparison stays authoritative.
	MemoryCeilingKiB int64

	// CombinedOutput merges the child's stderr into Stdout, the way
	// compiler output is captured.
	CombinedOutput bool
}

// Run spawns the child in its own process group, feeds it Stdin, enforces
// the wall-clock limit, and always reaps it before returning.
func Run(ctx context.Context, spec Spec) (*internal.RuntimeData, error) {
	if len(spec.Args) == 0 {
		return nil, errors.New("empty argument vector")
	}

	cmd := exec.Command(spec.Args[0], spec.Args[1:]...)
	cmd.Dir = spec.Dir
	cmd.SysProcAttr = sysProcAttr()

	var stdout, stderr bytes.Buffer
	cmd.Stdin = strings.NewReader(spec.Stdin)
	cmd.Stdout = &stdout
	if spec.CombinedOutput {
		cmd.Stderr = &stdout
	} else {
		cmd.Stderr = &stderr
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to spawn %q: %w", spec.Args[0], err)
	}
	pid := cmd.Process.Pid

	if spec.MemoryCeilingKiB > 0 {
		if err := applyMemoryCeiling(pid, spec.MemoryCeilingKiB); err != nil {
			slog.Warn("failed to apply memory ceiling", "pid", pid, "err", err)
		}
	}

	var timedOut atomic.Bool
	done := make(chan struct{})
	go func() {
		select {
		case <-done:
		case <-ctx.Done():
			killGroup(pid)
		case <-time.After(spec.TimeLimit):
			timedOut.Store(true)
			killGroup(pid)
		}
	}()

	waitErr := cmd.Wait()
	close(done)
	wall := time.Since(start)

	state := cmd.ProcessState
	if state == nil {
		return nil, fmt.Errorf("failed to wait for %q: %w", spec.Args[0], waitErr)
	}
	if ctx.Err() != nil && !timedOut.Load() {
		return nil, fmt.Errorf("execution cancelled: %w", ctx.Err())
	}

	return &internal.RuntimeData{
		Stdout:     stdout.String(),
		Stderr:     stderr.String(),
		ExitCode:   int64(state.ExitCode()),
		TimedOut:   timedOut.Load(),
		WallMillis: wall.Milliseconds(),
		CpuMillis:  cpuMillis(state),
		MemoryKiB:  peakRSSKiB(state),
	}, nil
}

// AdjustedKiB subtracts the calibration baseline from a raw peak-RSS
// reading, flooring at zero.
func AdjustedKiB(rawKiB, baselineKiB int64) int64 {
	if adj := rawKiB - baselineKiB; adj > 0 {
		return adj
	}
	return 0
}
