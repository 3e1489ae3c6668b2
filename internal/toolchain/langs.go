package toolchain

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/programme-lv/runner/internal"
)

// Fixed, optimized, native-target flags. They are part of each
// toolchain's identity: changing them changes Version output.
var (
	ccFlags      = []string{"-O2", "-march=native", "-pipe", "-w", "-fmax-errors=3"}
	ccFlagsAfter = []string{"-lm"}
	cFlags       = []string{"-std=gnu2x"}
	cxxFlags     = []string{"-std=gnu++23"}
	rustcFlags   = []string{"--crate-name=program", "--crate-type=bin", "--edition=2021", "-Copt-level=3", "-Ctarget-cpu=native"}
)

const javaHint = "\nNote that the program's class should be named Main.\n"

type pythonToolchain struct {
	bin string
}

func (t pythonToolchain) Name() string { return "python3" }

func (t pythonToolchain) Compile(ctx context.Context, dir *WorkDir, code string) (*Artifact, *internal.RuntimeData, error) {
	const path = "source.py"
	if err := dir.WriteFile(path, []byte(code)); err != nil {
		return nil, nil, err
	}
	data, err := runCompileStep(ctx, dir, []string{t.bin, "-m", "py_compile", path}, "")
	if err != nil {
		return nil, data, err
	}
	return &Artifact{Path: path}, data, nil
}

func (t pythonToolchain) RunArgs(a *Artifact) []string {
	return []string{t.bin, a.Path}
}

func (t pythonToolchain) Version(ctx context.Context) (string, error) {
	return versionOutput(ctx, []string{t.bin, "--version"})
}

// ccToolchain covers both C and C++; they differ only in the compiler
// driver, the standard flag and the source filename.
type ccToolchain struct {
	name   string
	bin    string
	std    []string
	source string
}

func (t ccToolchain) Name() string { return t.name }

func (t ccToolchain) Compile(ctx context.Context, dir *WorkDir, code string) (*Artifact, *internal.RuntimeData, error) {
	const out = "./source"
	if err := dir.WriteFile(t.source, []byte(code)); err != nil {
		return nil, nil, err
	}
	args := []string{t.bin}
	args = append(args, ccFlags...)
	args = append(args, t.std...)
	args = append(args, t.source)
	args = append(args, ccFlagsAfter...)
	args = append(args, "-o", out)
	data, err := runCompileStep(ctx, dir, args, "")
	if err != nil {
		return nil, data, err
	}
	return &Artifact{Path: out}, data, nil
}

func (t ccToolchain) RunArgs(a *Artifact) []string {
	return []string{a.Path}
}

func (t ccToolchain) Version(ctx context.Context) (string, error) {
	out, err := versionOutput(ctx, []string{t.bin, "--version"})
	if err != nil {
		return "", err
	}
	flags := strings.Join(slices.Concat(ccFlags, ccFlagsAfter, t.std), " ")
	return out + fmt.Sprintf("Cmdline: %s %s\n", t.bin, flags), nil
}

type javaToolchain struct {
	java  string
	javac string
	jar   string
}

func (t javaToolchain) Name() string { return "java" }

func (t javaToolchain) Compile(ctx context.Context, dir *WorkDir, code string) (*Artifact, *internal.RuntimeData, error) {
	const (
		mainClass = "Main"
		srcPath   = "Main.java"
		classDir  = "classes"
		jarPath   = "jar.jar"
	)
	if err := dir.WriteFile(srcPath, []byte(code)); err != nil {
		return nil, nil, err
	}
	data, err := runCompileStep(ctx, dir, []string{t.javac, "-d", classDir, "-encoding", "UTF8", srcPath}, javaHint)
	if err != nil {
		return nil, data, err
	}
	data, err = runCompileStep(ctx, dir, []string{t.jar, "cfe", jarPath, mainClass, "-C", classDir, "."}, javaHint)
	if err != nil {
		return nil, data, err
	}
	return &Artifact{Path: jarPath}, data, nil
}

func (t javaToolchain) RunArgs(a *Artifact) []string {
	return []string{t.java, "-jar", a.Path}
}

func (t javaToolchain) Version(ctx context.Context) (string, error) {
	javaOut, err := versionOutput(ctx, []string{t.java, "--version"})
	if err != nil {
		return "", err
	}
	javacOut, err := versionOutput(ctx, []string{t.javac, "--version"})
	if err != nil {
		return "", err
	}
	return javaOut + "\n" + javacOut + javaHint, nil
}

type rustToolchain struct {
	bin string
}

func (t rustToolchain) Name() string { return "rust" }

func (t rustToolchain) Compile(ctx context.Context, dir *WorkDir, code string) (*Artifact, *internal.RuntimeData, error) {
	const (
		path = "source.rs"
		out  = "./source"
	)
	if err := dir.WriteFile(path, []byte(code)); err != nil {
		return nil, nil, err
	}
	args := []string{t.bin}
	args = append(args, rustcFlags...)
	args = append(args, path, "-o", out)
	data, err := runCompileStep(ctx, dir, args, "")
	if err != nil {
		return nil, data, err
	}
	return &Artifact{Path: out}, data, nil
}

func (t rustToolchain) RunArgs(a *Artifact) []string {
	return []string{a.Path}
}

func (t rustToolchain) Version(ctx context.Context) (string, error) {
	out, err := versionOutput(ctx, []string{t.bin, "--version"})
	if err != nil {
		return "", err
	}
	return out + "\nCmdline: " + t.bin + " " + strings.Join(rustcFlags, " "), nil
}
