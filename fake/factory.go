// Package fake
// Author: momentics <momentics@gmail.com>
//
// Fake implementations for testing and development.
// Provides predictable, controllable behavior for the thread contracts.

package fake

import (
	"sync"
	"time"

	"github.com/momentics/hioload-fiber/api"
)

// Factory is a fake api.ThreadFactory whose threads execute their worker
// inline, on demand, so tests control exactly when work happens.
type Factory struct {
	mu          sync.Mutex
	threads     []*Thread
	newError    error
	cooperative bool
	yields      int
	sleeps      []time.Duration
	nextID      uint64
}

// NewFactory creates a fake factory with default settings.
func NewFactory() *Factory {
	return &Factory{}
}

var _ api.ThreadFactory = (*Factory)(nil)

// New implements api.ThreadFactory.New.
func (f *Factory) New(worker api.ThreadWorker, data any) (api.Thread, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.newError != nil {
		return nil, f.newError
	}
	if worker == nil {
		return nil, api.ErrInvalidArgument
	}

	f.nextID++
	t := &Thread{
		ctx:    api.ThreadContext{ID: f.nextID, Data: data},
		worker: worker,
	}
	f.threads = append(f.threads, t)
	return t, nil
}

// Yield implements api.ThreadFactory.Yield by counting the call.
func (f *Factory) Yield() {
	f.mu.Lock()
	f.yields++
	f.mu.Unlock()
}

// Sleep implements api.ThreadFactory.Sleep by recording the duration
// without actually sleeping.
func (f *Factory) Sleep(d time.Duration) {
	f.mu.Lock()
	f.sleeps = append(f.sleeps, d)
	f.mu.Unlock()
}

// Cooperative implements api.ThreadFactory.Cooperative.
func (f *Factory) Cooperative() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cooperative
}

// SetCooperative flips the reported scheduling discipline.
func (f *Factory) SetCooperative(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cooperative = v
}

// SetNewError configures the factory to fail thread creation.
func (f *Factory) SetNewError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.newError = err
}

// Threads returns every thread the factory has created.
func (f *Factory) Threads() []*Thread {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*Thread, len(f.threads))
	copy(out, f.threads)
	return out
}

// Yields reports how many times workers yielded through the factory.
func (f *Factory) Yields() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.yields
}

// Sleeps returns the recorded sleep durations.
func (f *Factory) Sleeps() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]time.Duration, len(f.sleeps))
	copy(out, f.sleeps)
	return out
}

// Thread is a fake api.Thread. The worker runs inline in Run (or lazily in
// Join), never on a separate thread of execution.
type Thread struct {
	mu        sync.Mutex
	ctx       api.ThreadContext
	worker    api.ThreadWorker
	prio      api.Priority
	started   bool
	ran       bool
	destroyed bool
	exitCode  int
}

var _ api.Thread = (*Thread)(nil)

// Start implements api.Thread.Start.
func (t *Thread) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started {
		return api.ErrAlreadyStarted
	}
	t.started = true
	return nil
}

// Run executes the worker inline once. Unstarted or destroyed threads do
// not run; subsequent calls are no-ops.
func (t *Thread) Run() {
	t.mu.Lock()
	if !t.started || t.ran || t.destroyed {
		t.mu.Unlock()
		return
	}
	t.ran = true
	worker, ctx := t.worker, &t.ctx
	t.mu.Unlock()
	if worker != nil {
		worker(ctx)
	}
}

// Join implements api.Thread.Join, lazily running the worker first.
func (t *Thread) Join() (int, error) {
	t.mu.Lock()
	if !t.started {
		t.mu.Unlock()
		return -1, api.ErrNotStarted
	}
	t.mu.Unlock()
	t.Run()

	t.mu.Lock()
	defer t.mu.Unlock()
	return t.exitCode, nil
}

// SetPriority implements api.Thread.SetPriority by recording the value.
func (t *Thread) SetPriority(p api.Priority) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.prio = p
	return nil
}

// Destroy implements api.Thread.Destroy.
func (t *Thread) Destroy() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.destroyed = true
	t.worker = nil
	t.ctx.Data = nil
	return nil
}

// Priority returns the last recorded priority.
func (t *Thread) Priority() api.Priority {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.prio
}

// Ran reports whether the worker has executed.
func (t *Thread) Ran() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ran
}

// SetExitCode sets the code returned by Join.
func (t *Thread) SetExitCode(code int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.exitCode = code
}
