// Package vexpool manages the process-wide worker thread pools of a
// vector-index engine: one pool for index builds and one for searches,
// each independently sized and resizable while work is in flight.
//
// Build and search pools are created lazily on first use and live for the
// lifetime of the process. On Linux, every worker thread is demoted to the
// lowest scheduling priority so background index construction yields CPU
// to latency-sensitive work on the same machine; elsewhere workers run at
// default priority.
//
// ScopedParallelism keeps the data-parallel loop budget in package
// parallel consistent with the build pool's width for the duration of a
// scope, and WaitAllSuccess reduces many submitted tasks to a single
// success/failure verdict.
package vexpool
