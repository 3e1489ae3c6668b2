package api

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// Verdict classifies one test-case run.
type Verdict string

const (
	VerdictCorrect             Verdict = "Correct"
	VerdictWrong               Verdict = "Wrong"
	VerdictRuntimeError        Verdict = "RuntimeError"
	VerdictTimeLimitExceeded   Verdict = "TimeLimitExceeded"
	VerdictMemoryLimitExceeded Verdict = "MemoryLimitExceeded"
)

// PassRecord is the wire result for one test case.
type PassRecord struct {
	Kind        Verdict `cbor:"kind"`
	Time        uint64  `cbor:"time"`         // wall-clock milliseconds
	MemoryUsage uint64  `cbor:"memory_usage"` // baseline-adjusted bytes
}

// TestOK is the Test response carrying one record per test case in input
// order.
type TestOK struct {
	Ok []PassRecord `cbor:"Ok"`
}

// NewTestOK wraps the records, guaranteeing an array (never null) on the
// wire.
func NewTestOK(records []PassRecord) TestOK {
	if records == nil {
		records = []PassRecord{}
	}
	return TestOK{Ok: records}
}

// TestInvalidProgram is the Test response for any request-fatal failure:
// compile rejection, toolchain fault, or judger fault.
type TestInvalidProgram struct {
	InvalidProgram string `cbor:"InvalidProgram"`
}

// ValidateOK encodes as {"Ok": null}.
type ValidateOK struct {
	Ok *struct{} `cbor:"Ok"`
}

// ValidateErr reports a judger shape mismatch from ValidateJudger.
type ValidateErr struct {
	Err string `cbor:"Err"`
}

// EncodeResponse writes one CBOR response. The process writes exactly one
// response per lifetime.
func EncodeResponse(w io.Writer, resp any) error {
	if err := cbor.NewEncoder(w).Encode(resp); err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	return nil
}
