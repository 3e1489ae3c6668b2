package execute

import (
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		// Own process group so a timeout kill reaches everything the
		// child forked.
		Setpgid: true,
		// The kernel reaps the child if this process dies first.
		Pdeathsig: syscall.SIGKILL,
	}
}

func killGroup(pid int) {
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}

func applyMemoryCeiling(pid int, ceilingKiB int64) error {
	limit := uint64(ceilingKiB) * 1024
	rlim := unix.Rlimit{Cur: limit, Max: limit}
	return unix.Prlimit(pid, unix.RLIMIT_AS, &rlim, nil)
}

// peakRSSKiB reads the maximum resident set from the rusage the kernel
// kept for the reaped child. Linux reports Maxrss in KiB.
func peakRSSKiB(state *os.ProcessState) int64 {
	ru, ok := state.SysUsage().(*syscall.Rusage)
	if !ok || ru == nil {
		return 0
	}
	return int64(ru.Maxrss)
}

func cpuMillis(state *os.ProcessState) int64 {
	ru, ok := state.SysUsage().(*syscall.Rusage)
	if !ok || ru == nil {
		return 0
	}
	user := int64(ru.Utime.Sec)*1000 + int64(ru.Utime.Usec)/1000
	sys := int64(ru.Stime.Sec)*1000 + int64(ru.Stime.Usec)/1000
	return user + sys
}
