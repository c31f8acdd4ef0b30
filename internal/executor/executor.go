// Package executor implements the bounded-queue worker-thread executor
// that vexpool's ThreadPool wraps. Producers block when the task queue is
// full; the queue never drops work and never grows past its capacity.
package executor

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Task is a unit of work to execute on a worker thread.
type Task func()

// Executor runs tasks on a resizable set of worker goroutines, each locked
// to its own OS thread so per-thread priority demotion takes effect.
type Executor struct {
	name  string
	tasks chan Task

	// target is the configured worker count. It may briefly differ from the
	// number of live workers while ramp-up/down is in progress.
	target atomic.Int32

	mu      sync.Mutex
	workers []*worker
	closed  bool
	wg      sync.WaitGroup
	drained chan struct{}
}

type worker struct {
	stop chan struct{}
}

// New creates an executor with numWorkers worker threads and a task queue
// of capacity queueCap.
func New(numWorkers, queueCap int, name string) *Executor {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if queueCap < 1 {
		queueCap = 1
	}
	e := &Executor{
		name:    name,
		tasks:   make(chan Task, queueCap),
		drained: make(chan struct{}),
	}
	e.target.Store(int32(numWorkers))
	for i := 0; i < numWorkers; i++ {
		e.spawn()
	}
	return e
}

// Submit enqueues a task in FIFO order. It blocks while the queue is full
// and returns once the task has been admitted. Must not be called after
// Close.
func (e *Executor) Submit(task Task) {
	e.tasks <- task
}

// NumWorkers returns the configured worker count without locking.
func (e *Executor) NumWorkers() int {
	return int(e.target.Load())
}

// SetNumWorkers adjusts the worker count to n, which the caller has already
// validated as positive. Excess workers finish their current task and then
// exit; they are never interrupted mid-task. Growth spawns fresh workers
// through the same priority-demoting setup as New.
func (e *Executor) SetNumWorkers(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.target.Store(int32(n))
	for len(e.workers) < n {
		e.spawn()
	}
	for len(e.workers) > n {
		last := len(e.workers) - 1
		close(e.workers[last].stop)
		e.workers[last] = nil
		e.workers = e.workers[:last]
	}
}

// Close signals all workers to stop and waits for them to exit. In-flight
// tasks run to completion, and tasks still queued when the workers exit
// are executed on the closing goroutine, so every submitted task runs and
// every result handle completes. Close is idempotent.
func (e *Executor) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		<-e.drained
		return
	}
	e.closed = true
	e.target.Store(0)
	for _, w := range e.workers {
		close(w.stop)
	}
	e.workers = nil
	e.mu.Unlock()

	e.wg.Wait()

	for {
		select {
		case task := <-e.tasks:
			task()
		default:
			close(e.drained)
			return
		}
	}
}

// spawn starts one worker. Callers other than the constructor hold e.mu.
func (e *Executor) spawn() {
	w := &worker{stop: make(chan struct{})}
	e.workers = append(e.workers, w)
	e.wg.Add(1)
	go e.run(w)
}

// run is the worker loop. The goroutine stays locked to its OS thread for
// its whole lifetime; exiting while locked destroys the thread, so a
// demoted thread is never returned to the runtime's thread pool.
func (e *Executor) run(w *worker) {
	defer e.wg.Done()
	runtime.LockOSThread()
	setupWorkerThread(e.name)

	for {
		// A retiring worker exits here before taking new work.
		select {
		case <-w.stop:
			return
		default:
		}

		select {
		case <-w.stop:
			return
		case task := <-e.tasks:
			task()
		}
	}
}
