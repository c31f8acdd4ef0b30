//go:build !linux

package executor

// Thread priority demotion needs POSIX setpriority with per-thread scope,
// which only Linux exposes. Elsewhere workers run at default priority.
func setupWorkerThread(name string) {}
