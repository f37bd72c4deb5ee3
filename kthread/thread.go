// File: kthread/thread.go
// Package kthread implements the native api.Thread over OS threads.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// A Thread is a goroutine parked on a start gate. Start releases it; the
// goroutine then locks itself to an OS thread, applies the recorded
// priority and CPU pin, and runs the worker to completion.

package kthread

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/momentics/hioload-fiber/api"
)

// Thread is the native implementation of api.Thread.
type Thread struct {
	ctx    api.ThreadContext
	worker api.ThreadWorker

	startCh chan struct{} // closed by Start, releases the gate
	abortCh chan struct{} // closed by Destroy before Start
	doneCh  chan struct{} // closed when the worker returns or aborts

	started atomic.Bool
	prio    atomic.Int32

	lockOS bool
	cpu    int // -1 means no pinning

	destroyMu sync.Mutex
	destroyed bool
}

var _ api.Thread = (*Thread)(nil)

func newThread(worker api.ThreadWorker, data any, id uint64, lockOS bool, cpu int) *Thread {
	t := &Thread{
		ctx:     api.ThreadContext{ID: id, Data: data},
		worker:  worker,
		startCh: make(chan struct{}),
		abortCh: make(chan struct{}),
		doneCh:  make(chan struct{}),
		lockOS:  lockOS,
		cpu:     cpu,
	}
	t.prio.Store(int32(api.PriorityDefault))
	go t.run()
	return t
}

// run is the thread body. It waits on the start gate, binds to an OS
// thread, applies priority and affinity, and executes the worker.
func (t *Thread) run() {
	select {
	case <-t.startCh:
	case <-t.abortCh:
		close(t.doneCh)
		return
	}
	if t.lockOS {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
	}
	// Priority and pinning must happen on the target thread itself;
	// both are best effort and failures are not fatal.
	_ = applyPriority(api.Priority(t.prio.Load()))
	if t.cpu >= 0 {
		_ = pinThread(t.cpu)
	}
	defer close(t.doneCh)
	t.worker(&t.ctx)
}

// ID returns the runtime-assigned thread identity.
func (t *Thread) ID() uint64 { return t.ctx.ID }

// Start releases the start gate. The worker does not execute before
// Start returns.
func (t *Thread) Start() error {
	if !t.started.CompareAndSwap(false, true) {
		return api.ErrAlreadyStarted
	}
	close(t.startCh)
	return nil
}

// Join blocks until the worker returns. Native workers have no return
// value, so the exit code is always zero; only emulated threads carry
// codes, via their Exit operation.
func (t *Thread) Join() (int, error) {
	if !t.started.Load() {
		return -1, api.ErrNotStarted
	}
	<-t.doneCh
	return 0, nil
}

// SetPriority records the desired priority. Before Start the value is
// applied when the gate opens; afterwards it is recorded only, since Go
// offers no portable cross-thread priority mutation.
func (t *Thread) SetPriority(p api.Priority) error {
	t.prio.Store(int32(p))
	return nil
}

// Priority returns the recorded priority.
func (t *Thread) Priority() api.Priority {
	return api.Priority(t.prio.Load())
}

// Destroy releases the handle. An unstarted thread is aborted without
// ever running its worker; a started one is joined first. Destroy is
// idempotent.
func (t *Thread) Destroy() error {
	t.destroyMu.Lock()
	defer t.destroyMu.Unlock()
	if t.destroyed {
		return nil
	}
	t.destroyed = true
	if !t.started.Load() {
		close(t.abortCh)
	}
	<-t.doneCh
	t.worker = nil
	t.ctx.Data = nil
	return nil
}
