package vexpool

import (
	"github.com/Aman-CERP/vexpool/parallel"
)

// ScopedParallelism overrides the ambient data-parallel thread budget
// (parallel.MaxThreads) for the duration of a scope and restores the
// captured baseline on Restore, regardless of how the scope exits:
//
//	s := vexpool.NewScopedParallelism(0)
//	defer s.Restore()
//
// The baseline is the build pool's configured size when that pool exists,
// otherwise the ambient value itself. Instances nest correctly because
// each one snapshots and restores only its own before-value, but the
// ambient budget is a single process-wide setting: concurrent scopes on
// different goroutines will fight over it, so treat it as a
// single-writer-at-a-time resource, typically held for one build
// operation.
type ScopedParallelism struct {
	before int
}

// ScopedParallelism captures the baseline from this registry's build pool
// and sets the ambient budget to numThreads, or back to the baseline when
// numThreads is non-positive.
func (r *Registry) ScopedParallelism(numThreads int) *ScopedParallelism {
	before := parallel.MaxThreads()
	if p := r.Lookup(RoleBuild); p != nil {
		before = p.Size()
	}
	if numThreads <= 0 {
		numThreads = before
	}
	parallel.SetMaxThreads(numThreads)
	return &ScopedParallelism{before: before}
}

// NewScopedParallelism is ScopedParallelism on the default registry.
func NewScopedParallelism(numThreads int) *ScopedParallelism {
	return defaultRegistry.ScopedParallelism(numThreads)
}

// Restore unconditionally resets the ambient budget to the value captured
// at construction.
func (s *ScopedParallelism) Restore() {
	parallel.SetMaxThreads(s.before)
}
