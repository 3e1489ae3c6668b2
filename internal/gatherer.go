package internal

import "github.com/programme-lv/runner/api"

// ResultGatherer receives progress callbacks while a Test request runs.
// Callbacks arrive sequentially from the harness loop.
type ResultGatherer interface {
	StartRun(numTests int)

	StartCompile()
	FinishCompile(data *RuntimeData)

	ReachTest(id int)
	FinishTest(id int, record api.PassRecord, data *RuntimeData)

	CompileError(msg string)
	InternalError(msg string)
	FinishNoError()
}

// NopGatherer discards every callback.
type NopGatherer struct{}

var _ ResultGatherer = NopGatherer{}

func (NopGatherer) StartRun(int)                                {}
func (NopGatherer) StartCompile()                               {}
func (NopGatherer) FinishCompile(*RuntimeData)                  {}
func (NopGatherer) ReachTest(int)                               {}
func (NopGatherer) FinishTest(int, api.PassRecord, *RuntimeData) {}
func (NopGatherer) CompileError(string)                         {}
func (NopGatherer) InternalError(string)                        {}
func (NopGatherer) FinishNoError()                              {}
