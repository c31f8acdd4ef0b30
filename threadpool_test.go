package vexpool

import (
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewThreadPool(t *testing.T) {
	tests := []struct {
		name    string
		threads int
		want    int
	}{
		{"explicit size", 4, 4},
		{"zero falls back to hardware width", 0, runtime.NumCPU()},
		{"negative falls back to hardware width", -3, runtime.NumCPU()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewThreadPool(tt.threads, "test_pool")
			defer p.Close()

			assert.Equal(t, tt.want, p.Size())
			assert.Equal(t, "test_pool", p.Name())
		})
	}
}

func TestThreadPool_SetNumThreads(t *testing.T) {
	p := NewThreadPool(4, "test_pool")
	defer p.Close()

	// Zero and negative counts are usage errors that leave the pool
	// unchanged
	p.SetNumThreads(0)
	assert.Equal(t, 4, p.Size())
	p.SetNumThreads(-1)
	assert.Equal(t, 4, p.Size())

	p.SetNumThreads(8)
	assert.Equal(t, 8, p.Size())
	p.SetNumThreads(2)
	assert.Equal(t, 2, p.Size())
}

func TestThreadPool_Submit(t *testing.T) {
	p := NewThreadPool(2, "test_pool")
	defer p.Close()

	f := p.Submit(func() error { return nil })
	_, err := f.Wait()
	require.NoError(t, err)

	wantErr := errors.New("index corrupt")
	f = p.Submit(func() error { return wantErr })
	_, err = f.Wait()
	assert.ErrorIs(t, err, wantErr)
}

func TestSubmitResult_TypedValue(t *testing.T) {
	p := NewThreadPool(2, "test_pool")
	defer p.Close()

	f := SubmitResult(p, func() (int, error) { return 42, nil })
	v, err := f.Wait()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestSubmitResult_PanicBecomesFault(t *testing.T) {
	p := NewThreadPool(1, "test_pool")
	defer p.Close()

	f := SubmitResult(p, func() (Unit, error) { panic("kaboom") })
	_, err := f.Wait()

	var pe *PanicError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "kaboom", pe.Value)
	assert.NotEmpty(t, pe.Stack)
}

func TestThreadPool_CloseCompletesQueuedFutures(t *testing.T) {
	// Given: a single-worker pool with a task queued behind a busy worker
	p := NewThreadPool(1, "test_pool")

	gate := make(chan struct{})
	started := make(chan struct{})
	first := p.Submit(func() error {
		close(started)
		<-gate
		return nil
	})
	<-started

	queued := p.Submit(func() error { return nil })

	// When: closing the pool while the second task is still queued
	go func() {
		time.Sleep(50 * time.Millisecond)
		close(gate)
	}()
	p.Close()

	// Then: both futures complete; nobody holding a handle hangs
	_, err := first.Wait()
	require.NoError(t, err)

	select {
	case <-queued.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("queued task's future never completed after Close")
	}
	_, err = queued.Wait()
	assert.NoError(t, err)
}

func TestThreadPool_WorkerSurvivesTaskPanic(t *testing.T) {
	// Given: a single-worker pool whose first task panics
	p := NewThreadPool(1, "test_pool")
	defer p.Close()

	first := p.Submit(func() error { panic("boom") })
	_, err := first.Wait()
	require.Error(t, err)

	// Then: the worker keeps serving subsequent tasks
	second := p.Submit(func() error { return nil })
	_, err = second.Wait()
	assert.NoError(t, err)
}
