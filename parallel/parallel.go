// Package parallel is the data-parallel loop mechanism whose thread budget
// vexpool keeps in sync with the build pool. The budget is a single
// process-wide setting consumed by every For loop; it is independent of
// the pools' own worker counts.
package parallel

import (
	"log/slog"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

var maxThreads atomic.Int32

func init() {
	maxThreads.Store(int32(runtime.NumCPU()))
}

// MaxThreads returns the ambient thread budget for data-parallel loops.
func MaxThreads() int {
	return int(maxThreads.Load())
}

// SetMaxThreads sets the ambient thread budget. A non-positive n is a
// usage error: it is logged and the budget is left unchanged.
func SetMaxThreads(n int) {
	if n <= 0 {
		slog.Error("parallel thread budget must be positive",
			slog.Int("requested", n))
		return
	}
	maxThreads.Store(int32(n))
}

// For runs body(0) through body(n-1) with at most MaxThreads() iterations
// in flight at once. It waits for every iteration to finish and returns
// the first error encountered; later iterations are not cancelled.
func For(n int, body func(i int) error) error {
	var g errgroup.Group
	g.SetLimit(MaxThreads())
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			return body(i)
		})
	}
	return g.Wait()
}
