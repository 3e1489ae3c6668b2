package toolchain

import (
	"fmt"
	"os"
	"path/filepath"
)

// WorkDir is the request-exclusive directory every fixed artifact
// filename resolves against. Children run with it as their working
// directory. The protocol path wraps the process working directory; the
// check harness owns a temp dir per scenario.
type WorkDir struct {
	root  string
	owned bool
}

// NewWorkDir wraps an existing directory without taking ownership.
func NewWorkDir(root string) *WorkDir {
	return &WorkDir{root: root}
}

// TempWorkDir creates an owned directory that Close removes.
func TempWorkDir() (*WorkDir, error) {
	root, err := os.MkdirTemp("", "runner-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create work dir: %w", err)
	}
	return &WorkDir{root: root, owned: true}, nil
}

func (w *WorkDir) Root() string {
	return w.root
}

func (w *WorkDir) Path(name string) string {
	return filepath.Join(w.root, name)
}

func (w *WorkDir) WriteFile(name string, data []byte) error {
	if err := os.WriteFile(w.Path(name), data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// Close removes the directory tree when owned; wrapping handles are a
// no-op.
func (w *WorkDir) Close() error {
	if !w.owned {
		return nil
	}
	return os.RemoveAll(w.root)
}
