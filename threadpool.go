package vexpool

import (
	"log/slog"
	"runtime"

	"github.com/Aman-CERP/vexpool/internal/executor"
)

// queueFactor fixes the bounded task-queue capacity relative to the worker
// count at pool creation time. Submission blocks once the queue holds
// queueFactor tasks per configured worker.
const queueFactor = 16

// ThreadPool owns one executor instance and exposes task submission, live
// resizing, and size introspection. A ThreadPool is identity-bound to its
// executor: use it only by pointer, never copy it.
type ThreadPool struct {
	name string
	exec *executor.Executor
}

// NewThreadPool creates a pool with numThreads worker threads and a bounded
// task queue of capacity numThreads * queueFactor. A non-positive
// numThreads falls back to the number of hardware execution contexts, so a
// pool always has at least one worker.
func NewThreadPool(numThreads int, name string) *ThreadPool {
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}
	return &ThreadPool{
		name: name,
		exec: executor.New(numThreads, numThreads*queueFactor, name),
	}
}

// Name returns the pool's diagnostic name.
func (p *ThreadPool) Name() string { return p.name }

// Size returns the most recently configured worker count. It is lock-free
// and may be read while a resize is still ramping up or down.
func (p *ThreadPool) Size() int { return p.exec.NumWorkers() }

// SetNumThreads adjusts the pool's target worker count. A non-positive n
// is a recoverable usage error: it is logged and the pool is left
// unchanged. Shrinking lets excess workers finish their current task and
// exit; growing spawns new priority-demoted workers.
func (p *ThreadPool) SetNumThreads(n int) {
	if n <= 0 {
		slog.Error("thread pool size must be positive",
			slog.String("pool", p.name),
			slog.Int("requested", n))
		return
	}
	p.exec.SetNumWorkers(n)
	slog.Info("thread pool resized",
		slog.String("pool", p.name),
		slog.Int("threads", n))
}

// Submit schedules a success-only task for asynchronous execution and
// returns immediately with its result handle, unless the pool's bounded
// queue is full, in which case it blocks until capacity frees up.
func (p *ThreadPool) Submit(task func() error) *Future[Unit] {
	return SubmitResult(p, func() (Unit, error) {
		return Unit{}, task()
	})
}

// Close stops the pool's workers after their in-flight tasks complete and
// drains any still-queued tasks, so every future returned by Submit
// completes. The global build and search pools are never closed; Close
// exists for locally owned pools and tests.
func (p *ThreadPool) Close() {
	p.exec.Close()
}
