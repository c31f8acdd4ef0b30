//go:build linux

package executor

import (
	"log/slog"
	"unsafe"

	"golang.org/x/sys/unix"
)

// workerNiceness is the lowest scheduling priority available to an
// unprivileged process.
const workerNiceness = 19

// Linux truncates thread names to 15 bytes plus the terminating NUL.
const maxThreadNameLen = 15

// setupWorkerThread runs on a freshly locked OS thread before it executes
// any task. It names the thread after the pool and demotes it to the
// lowest niceness. A failed demotion is logged and the worker proceeds at
// default priority.
func setupWorkerThread(name string) {
	setThreadName(name)

	tid := unix.Gettid()
	if err := unix.Setpriority(unix.PRIO_PROCESS, tid, workerNiceness); err != nil {
		slog.Error("failed to lower worker thread priority",
			slog.String("pool", name),
			slog.Int("tid", tid),
			slog.String("error", err.Error()))
		return
	}
	slog.Info("lowered worker thread priority",
		slog.String("pool", name),
		slog.Int("tid", tid),
		slog.Int("niceness", workerNiceness))
}

func setThreadName(name string) {
	if len(name) > maxThreadNameLen {
		name = name[:maxThreadNameLen]
	}
	p, err := unix.BytePtrFromString(name)
	if err != nil {
		return
	}
	_ = unix.Prctl(unix.PR_SET_NAME, uintptr(unsafe.Pointer(p)), 0, 0, 0)
}
