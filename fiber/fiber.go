// File: fiber/fiber.go
// Package fiber defines the fiber unit of work and its state machine.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package fiber

import (
	"sync/atomic"

	"github.com/momentics/hioload-fiber/api"
)

// Context is passed to every fiber worker. ID is assigned by the
// scheduler and unique within its lifetime; Data is the opaque user
// payload supplied at spawn, never interpreted by the runtime.
type Context struct {
	ID   uint64
	Data any
}

// Worker is the entry point of a fiber. A worker runs at most once per
// enqueue, on exactly one worker thread, to completion.
type Worker func(ctx *Context)

// Fiber is a unit of deferred work. Its lifecycle is driven by an
// atomic state word: Pending (not enqueued), Queued (in the run
// queue), Running (owned by one worker), Finished (terminal).
//
// The Queued state is what keeps the lock-free queue sound: a fiber
// can occupy at most one live queue node, and the Queued-to-Running
// transition at pop hands sole execution ownership to one worker.
type Fiber struct {
	ctx    Context
	worker Worker
	prio   atomic.Int32
	state  atomic.Int32
	done   chan struct{} // closed after the state turns Finished
}

// ID returns the scheduler-assigned fiber identity.
func (f *Fiber) ID() uint64 { return f.ctx.ID }

// State returns the fiber's current lifecycle state.
func (f *Fiber) State() api.FiberState {
	return api.FiberState(f.state.Load())
}

// Finished reports whether the fiber's worker has completed.
func (f *Fiber) Finished() bool {
	return f.State() == api.FiberFinished
}

// Priority returns the recorded priority. Dispatch does not consult
// it; see Scheduler.SetPriority.
func (f *Fiber) Priority() api.Priority {
	return api.Priority(f.prio.Load())
}

// Done exposes the completion channel; it is closed once the fiber
// finishes. Useful for select-based waits.
func (f *Fiber) Done() <-chan struct{} { return f.done }
