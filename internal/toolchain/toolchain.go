// Package toolchain maps each wire language to its compile/run/version
// capability triple. Toolchains are stateless; all working-directory
// access goes through the WorkDir handle they are given.
package toolchain

import (
	"context"
	"fmt"
	"time"

	"github.com/programme-lv/runner/api"
	"github.com/programme-lv/runner/internal"
	"github.com/programme-lv/runner/internal/execute"
)

const (
	CompileTimeout = 5 * time.Second
	VersionTimeout = 10 * time.Second
)

// Toolchain is the capability triple for one language.
type Toolchain interface {
	Name() string

	// Compile writes the source into dir and produces a runnable
	// artifact. A *CompileError means the compiler rejected the code;
	// any other error is a toolchain fault.
	Compile(ctx context.Context, dir *WorkDir, code string) (*Artifact, *internal.RuntimeData, error)

	// RunArgs returns the argv that executes the artifact.
	RunArgs(artifact *Artifact) []string

	// Version reports the tool's own version, including the fixed flags
	// when they shape the produced binary.
	Version(ctx context.Context) (string, error)
}

// Artifact is whatever Compile produced that RunArgs needs: a script
// path, a binary path, or an archive path.
type Artifact struct {
	Path string
}

// CompileError carries the formatted rejection message surfaced to the
// caller: the invoked command line, the combined compiler output, and any
// language hint.
type CompileError struct {
	Message string
}

func (e *CompileError) Error() string {
	return e.Message
}

// Binaries overrides the external tool paths. Zero fields fall back to
// the judge image defaults.
type Binaries struct {
	Python string
	CC     string
	CXX    string
	Java   string
	Javac  string
	Jar    string
	Rustc  string
}

func (b Binaries) withDefaults() Binaries {
	def := func(v *string, d string) {
		if *v == "" {
			*v = d
		}
	}
	def(&b.Python, "/usr/bin/python3")
	def(&b.CC, "gcc")
	def(&b.CXX, "g++")
	def(&b.Java, "java")
	def(&b.Javac, "javac")
	def(&b.Jar, "jar")
	def(&b.Rustc, "rustc")
	return b
}

// Registry resolves wire language ids to toolchains.
type Registry struct {
	bins Binaries
}

func NewRegistry(bins Binaries) *Registry {
	return &Registry{bins: bins.withDefaults()}
}

// Python returns the interpreter path, shared with the judger adapter.
func (r *Registry) Python() string {
	return r.bins.Python
}

// For dispatches a wire language id to its toolchain.
func (r *Registry) For(lang api.LanguageID) (Toolchain, error) {
	switch lang {
	case api.LangPython3:
		return pythonToolchain{bin: r.bins.Python}, nil
	case api.LangC:
		return ccToolchain{name: "c", bin: r.bins.CC, std: cFlags, source: "source.c"}, nil
	case api.LangCpp:
		return ccToolchain{name: "c++", bin: r.bins.CXX, std: cxxFlags, source: "source.cpp"}, nil
	case api.LangJava:
		return javaToolchain{java: r.bins.Java, javac: r.bins.Javac, jar: r.bins.Jar}, nil
	case api.LangRust:
		return rustToolchain{bin: r.bins.Rustc}, nil
	}
	return nil, fmt.Errorf("unknown language id %d", lang)
}

// runCompileStep runs one bounded compiler invocation inside dir with
// stdout and stderr combined. Rejection and timeout both become a
// *CompileError carrying the command line and captured output.
func runCompileStep(ctx context.Context, dir *WorkDir, args []string, extra string) (*internal.RuntimeData, error) {
	data, err := execute.Run(ctx, execute.Spec{
		Args:           args,
		Dir:            dir.Root(),
		TimeLimit:      CompileTimeout,
		CombinedOutput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to run compiler: %w", err)
	}
	if data.TimedOut || data.ExitCode != 0 {
		msg := fmt.Sprintf("While running %q:\n\n%s", args, data.Stdout)
		if data.TimedOut {
			msg += fmt.Sprintf("\ncompiler timed out after %v\n", CompileTimeout)
		}
		msg += extra
		return data, &CompileError{Message: msg}
	}
	return data, nil
}

// versionOutput captures stdout of one bounded version query.
func versionOutput(ctx context.Context, args []string) (string, error) {
	data, err := execute.Run(ctx, execute.Spec{
		Args:      args,
		TimeLimit: VersionTimeout,
	})
	if err != nil {
		return "", err
	}
	if data.TimedOut {
		return "", fmt.Errorf("version query %q timed out after %v", args, VersionTimeout)
	}
	if data.ExitCode != 0 {
		return "", fmt.Errorf("version query %q exited with status %d: %s", args, data.ExitCode, data.Stderr)
	}
	return data.Stdout, nil
}
