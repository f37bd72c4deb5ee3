// File: api/thread.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Kernel-thread contracts: worker signature, execution context, thread
// handle and the factory both scheduler backends implement.

package api

import "time"

// ThreadContext is passed to every thread worker. It carries the
// runtime-assigned thread identity and the opaque user payload supplied
// at creation. The runtime never interprets Data.
type ThreadContext struct {
	ID   uint64
	Data any
}

// ThreadWorker is the entry point of a kernel thread. It runs exactly
// once per thread; returning terminates the thread.
type ThreadWorker func(ctx *ThreadContext)

// Thread is a handle to a created kernel thread.
//
// A thread is created suspended and does not execute its worker until
// Start. Handles are not safe for concurrent use by multiple goroutines.
type Thread interface {
	// Start releases the thread to run its worker. Calling Start twice
	// returns ErrAlreadyStarted.
	Start() error

	// Join blocks until the worker returns and yields the exit code.
	// Joining an unstarted thread returns ErrNotStarted.
	Join() (int, error)

	// SetPriority records the desired scheduling priority. Before Start
	// it is merely stored; a started thread applies it best effort.
	SetPriority(p Priority) error

	// Destroy releases the handle. An unstarted thread is aborted and
	// never runs; a started one is joined first on preemptive backends
	// and withdrawn from dispatch on cooperative ones.
	Destroy() error
}

// ThreadFactory creates threads on a particular backend and exposes the
// calling-thread operations tied to that backend.
type ThreadFactory interface {
	// New creates a suspended thread that will run worker with data.
	New(worker ThreadWorker, data any) (Thread, error)

	// Yield relinquishes the calling thread's remaining timeslice.
	Yield()

	// Sleep suspends the calling thread for at least d.
	Sleep(d time.Duration)

	// Cooperative reports whether threads on this backend must yield
	// explicitly to let siblings run. Dispatch loops use it to pick a
	// batch-and-yield strategy instead of blocking forever.
	Cooperative() bool
}

// TickDriver is implemented by cooperative factories whose threads run
// only while the owner pumps the backing scheduler. Blocking waits on
// such a backend must drive ticks instead of parking.
type TickDriver interface {
	// Drive runs one scheduling round and reports whether any thread
	// was dispatched.
	Drive() bool
}
