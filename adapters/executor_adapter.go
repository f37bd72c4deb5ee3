// File: adapters/executor_adapter.go
// Package adapters provides glue between the fiber scheduler and api.Executor.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// ExecutorAdapter implements the api.Executor interface by delegating to a
// fiber.Scheduler. Each submitted task becomes an anonymous fiber on the
// scheduler's lock-free run queue, so plain func() workloads and fiber
// workloads share the same worker pool.

package adapters

import (
	"github.com/momentics/hioload-fiber/api"
	"github.com/momentics/hioload-fiber/fiber"
)

// ExecutorAdapter wraps a fiber.Scheduler to satisfy the api.Executor contract.
type ExecutorAdapter struct {
	sched *fiber.Scheduler
}

// NewExecutorAdapter constructs an api.Executor over an existing scheduler.
// The adapter does not own the scheduler's lifecycle unless Close is used.
func NewExecutorAdapter(sched *fiber.Scheduler) api.Executor {
	return &ExecutorAdapter{sched: sched}
}

// Submit dispatches a task function to be executed asynchronously on one of
// the scheduler's workers. Returns an error if the scheduler has been shut
// down or the task is nil.
func (ea *ExecutorAdapter) Submit(task func()) error {
	if task == nil {
		return api.ErrInvalidArgument
	}
	_, err := ea.sched.Spawn(func(*fiber.Context) { task() }, nil)
	return err
}

// NumWorkers returns the number of worker threads backing the scheduler.
// The pool size is fixed at scheduler construction.
func (ea *ExecutorAdapter) NumWorkers() int {
	return ea.sched.NumWorkers()
}

// Close shuts down the underlying scheduler, waiting for workers to exit.
// Use only when the adapter is the sole owner of the scheduler.
func (ea *ExecutorAdapter) Close() error {
	return ea.sched.Shutdown()
}
