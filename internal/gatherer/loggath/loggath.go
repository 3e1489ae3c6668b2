// Package loggath reports run progress through slog, keeping stdout
// clean for the protocol response.
package loggath

import (
	"log/slog"

	"github.com/programme-lv/runner/api"
	"github.com/programme-lv/runner/internal"
)

type Gatherer struct {
	log *slog.Logger
}

var _ internal.ResultGatherer = (*Gatherer)(nil)

func New(log *slog.Logger) *Gatherer {
	if log == nil {
		log = slog.Default()
	}
	return &Gatherer{log: log}
}

func (g *Gatherer) StartRun(numTests int) {
	g.log.Info("starting tests", "count", numTests)
}

func (g *Gatherer) StartCompile() {
	g.log.Debug("compiling submission")
}

func (g *Gatherer) FinishCompile(data *internal.RuntimeData) {
	if data == nil {
		return
	}
	g.log.Debug("compilation finished", "wall_ms", data.WallMillis)
}

func (g *Gatherer) ReachTest(id int) {
	g.log.Debug("running test", "test", id+1)
}

func (g *Gatherer) FinishTest(id int, record api.PassRecord, data *internal.RuntimeData) {
	g.log.Info("test finished",
		"test", id+1,
		"verdict", string(record.Kind),
		"wall_ms", record.Time,
		"memory_bytes", record.MemoryUsage,
		"cpu_ms", data.CpuMillis,
	)
}

func (g *Gatherer) CompileError(msg string) {
	g.log.Warn("compile error", "msg", msg)
}

func (g *Gatherer) InternalError(msg string) {
	g.log.Error("internal error", "msg", msg)
}

func (g *Gatherer) FinishNoError() {
	g.log.Info("all tests finished")
}
