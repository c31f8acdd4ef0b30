package vexpool

import (
	"fmt"
	"runtime/debug"
)

// Unit is the result type of tasks that report nothing beyond completion.
type Unit = struct{}

// PanicError is a task fault: a panic raised inside submitted work,
// captured together with the goroutine stack at the panic site. Faults are
// never swallowed; they surface as the error of the task's Future and of
// any aggregation over it.
type PanicError struct {
	Value any
	Stack string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task panicked: %v", e.Value)
}

// Future is the asynchronous result handle of one submitted task. It is
// completed exactly once; any number of goroutines may Wait on it.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

func (f *Future[T]) complete(val T, err error) {
	f.val = val
	f.err = err
	close(f.done)
}

// Wait blocks until the task has completed and returns its result. A task
// fault is returned as a *PanicError.
func (f *Future[T]) Wait() (T, error) {
	<-f.done
	return f.val, f.err
}

// Done returns a channel that is closed when the task completes.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// SubmitResult schedules a task with a typed result on p and returns its
// handle. Like ThreadPool.Submit, it blocks only when the pool's bounded
// queue is saturated. Panics inside the task are recovered into a
// *PanicError on the returned future.
func SubmitResult[T any](p *ThreadPool, task func() (T, error)) *Future[T] {
	f := newFuture[T]()
	p.exec.Submit(func() {
		defer func() {
			if r := recover(); r != nil {
				var zero T
				f.complete(zero, &PanicError{Value: r, Stack: string(debug.Stack())})
			}
		}()
		f.complete(task())
	})
	return f
}

// TaskResult constrains aggregation to the two result shapes tasks use:
// success-only (Unit) or an explicit status code.
type TaskResult interface {
	Unit | Status
}

// WaitAllSuccess blocks until every future in the collection has completed
// and reduces them to a single outcome. It deliberately waits for all
// siblings before reporting, rather than cancelling on first failure.
//
// Completed results are then scanned in collection order: a task fault or
// task error is returned as the error (with StatusInternalError); an
// explicit non-success status is returned as the status with a nil error.
// If every task succeeded the result is StatusSuccess.
func WaitAllSuccess[T TaskResult](futures []*Future[T]) (Status, error) {
	for _, f := range futures {
		<-f.done
	}
	for _, f := range futures {
		if f.err != nil {
			return StatusInternalError, f.err
		}
		if s, ok := any(f.val).(Status); ok && s != StatusSuccess {
			return s, nil
		}
	}
	return StatusSuccess, nil
}
