package internal

// RuntimeData captures everything observed about one finished child
// process: its streams, how it exited, and the resource accounting the
// kernel kept for it.
type RuntimeData struct {
	Stdout string
	Stderr string

	ExitCode int64
	TimedOut bool

	WallMillis int64
	CpuMillis  int64

	// MemoryKiB is the raw peak resident set of the child, before
	// baseline adjustment.
	MemoryKiB int64
}
