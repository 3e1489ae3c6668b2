package toolchain_test

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/programme-lv/runner/api"
	"github.com/programme-lv/runner/internal/toolchain"
)

const helloC = `
#include <stdio.h>
int main(void) {
    puts("hello");
    return 0;
}
`

const brokenC = `
int main(void) { return 0
`

func requireTool(t *testing.T, name string) string {
	t.Helper()
	path, err := exec.LookPath(name)
	if err != nil {
		t.Skipf("%s not installed", name)
	}
	return path
}

func forLang(t *testing.T, reg *toolchain.Registry, lang api.LanguageID) toolchain.Toolchain {
	t.Helper()
	tc, err := reg.For(lang)
	require.NoError(t, err)
	return tc
}

func TestPythonCompile(t *testing.T) {
	reg := toolchain.NewRegistry(toolchain.Binaries{Python: requireTool(t, "python3")})
	dir := toolchain.NewWorkDir(t.TempDir())

	artifact, data, err := forLang(t, reg, api.LangPython3).Compile(context.Background(), dir, "print('hi')")
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Equal(t, "source.py", artifact.Path)

	body, err := os.ReadFile(dir.Path("source.py"))
	require.NoError(t, err)
	assert.Equal(t, "print('hi')", string(body))
}

func TestPythonCompileRejectsSyntaxError(t *testing.T) {
	reg := toolchain.NewRegistry(toolchain.Binaries{Python: requireTool(t, "python3")})
	dir := toolchain.NewWorkDir(t.TempDir())

	_, _, err := forLang(t, reg, api.LangPython3).Compile(context.Background(), dir, "def f(:")
	require.Error(t, err)

	var cerr *toolchain.CompileError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Message, "While running")
	assert.Contains(t, cerr.Message, "SyntaxError")
}

func TestCCompile(t *testing.T) {
	reg := toolchain.NewRegistry(toolchain.Binaries{CC: requireTool(t, "gcc")})
	dir := toolchain.NewWorkDir(t.TempDir())

	artifact, _, err := forLang(t, reg, api.LangC).Compile(context.Background(), dir, helloC)
	require.NoError(t, err)
	assert.Equal(t, "./source", artifact.Path)

	info, err := os.Stat(dir.Path("source"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0111, "compiler output must be executable")
}

func TestCCompileRejection(t *testing.T) {
	reg := toolchain.NewRegistry(toolchain.Binaries{CC: requireTool(t, "gcc")})
	dir := toolchain.NewWorkDir(t.TempDir())

	_, _, err := forLang(t, reg, api.LangC).Compile(context.Background(), dir, brokenC)
	var cerr *toolchain.CompileError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Message, "While running")
	assert.Contains(t, cerr.Message, "error")
}

func TestMissingCompilerIsToolchainFault(t *testing.T) {
	reg := toolchain.NewRegistry(toolchain.Binaries{CC: "/nonexistent/gcc"})
	dir := toolchain.NewWorkDir(t.TempDir())

	_, _, err := forLang(t, reg, api.LangC).Compile(context.Background(), dir, helloC)
	require.Error(t, err)

	var cerr *toolchain.CompileError
	assert.False(t, errors.As(err, &cerr), "a missing tool is not the submission's fault")
}

func TestPythonVersion(t *testing.T) {
	reg := toolchain.NewRegistry(toolchain.Binaries{Python: requireTool(t, "python3")})

	out, err := forLang(t, reg, api.LangPython3).Version(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out, "Python")
}

func TestCVersionReportsCmdline(t *testing.T) {
	gcc := requireTool(t, "gcc")
	reg := toolchain.NewRegistry(toolchain.Binaries{CC: gcc})

	out, err := forLang(t, reg, api.LangC).Version(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out, "Cmdline: "+gcc+" -O2 -march=native -pipe -w -fmax-errors=3 -lm -std=gnu2x")
}

func TestCppVersionReportsCmdline(t *testing.T) {
	gpp := requireTool(t, "g++")
	reg := toolchain.NewRegistry(toolchain.Binaries{CXX: gpp})

	out, err := forLang(t, reg, api.LangCpp).Version(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out, "-std=gnu++23")
}

func TestJavaVersionCarriesMainHint(t *testing.T) {
	reg := toolchain.NewRegistry(toolchain.Binaries{
		Java:  requireTool(t, "java"),
		Javac: requireTool(t, "javac"),
	})

	out, err := forLang(t, reg, api.LangJava).Version(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out, "Note that the program's class should be named Main.")
}

func TestVersionFailsOnMissingTool(t *testing.T) {
	reg := toolchain.NewRegistry(toolchain.Binaries{Rustc: "/nonexistent/rustc"})

	_, err := forLang(t, reg, api.LangRust).Version(context.Background())
	require.Error(t, err)
}

func TestVersionIsIdempotent(t *testing.T) {
	reg := toolchain.NewRegistry(toolchain.Binaries{Python: requireTool(t, "python3")})
	tc := forLang(t, reg, api.LangPython3)

	first, err := tc.Version(context.Background())
	require.NoError(t, err)
	second, err := tc.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
