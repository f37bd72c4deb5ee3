// Package api
// Author: momentics
//
// Executor contract for parallel task dispatch over the fiber scheduler.

package api

// Executor abstracts parallel task execution.
//
// Worker concurrency is fixed at construction time; there is no resize.
type Executor interface {
	// Submit schedules task for execution.
	Submit(task func()) error

	// NumWorkers returns the number of worker threads.
	NumWorkers() int
}
