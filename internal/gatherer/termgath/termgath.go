// Package termgath renders run progress for a terminal, used by the
// check harness.
package termgath

import (
	"fmt"
	"time"

	"github.com/fatih/color"

	"github.com/programme-lv/runner/api"
	"github.com/programme-lv/runner/internal"
)

type Gatherer struct {
	total   int
	started time.Time
}

var _ internal.ResultGatherer = (*Gatherer)(nil)

func New() *Gatherer {
	return &Gatherer{started: time.Now()}
}

func (g *Gatherer) StartRun(numTests int) {
	g.total = numTests
	fmt.Printf("running %d tests\n", numTests)
}

func (g *Gatherer) StartCompile() {
	fmt.Println("compiling submission...")
}

func (g *Gatherer) FinishCompile(data *internal.RuntimeData) {
	if data == nil {
		return
	}
	fmt.Printf("compiled in %d ms\n", data.WallMillis)
}

func (g *Gatherer) ReachTest(id int) {
	fmt.Printf("test %d/%d... ", id+1, g.total)
}

func (g *Gatherer) FinishTest(id int, record api.PassRecord, data *internal.RuntimeData) {
	verdict := verdictColor(record.Kind).Sprint(string(record.Kind))
	fmt.Printf("%s  %d ms, %d KiB\n", verdict, record.Time, record.MemoryUsage/1024)
}

func (g *Gatherer) CompileError(msg string) {
	color.New(color.FgRed, color.Bold).Println("compile error")
	fmt.Println(msg)
}

func (g *Gatherer) InternalError(msg string) {
	color.New(color.FgRed, color.Bold).Println("internal error")
	fmt.Println(msg)
}

func (g *Gatherer) FinishNoError() {
	fmt.Printf("done in %s\n", time.Since(g.started).Round(time.Millisecond))
}

func verdictColor(v api.Verdict) *color.Color {
	switch v {
	case api.VerdictCorrect:
		return color.New(color.FgGreen)
	case api.VerdictWrong:
		return color.New(color.FgRed)
	case api.VerdictRuntimeError:
		return color.New(color.FgMagenta)
	case api.VerdictTimeLimitExceeded:
		return color.New(color.FgYellow)
	case api.VerdictMemoryLimitExceeded:
		return color.New(color.FgCyan)
	}
	return color.New(color.FgWhite)
}
