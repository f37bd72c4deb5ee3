// File: fiber/scheduler.go
// Package fiber implements the worker-pool scheduler.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Workers loop forever: pop a fiber, run its worker once, mark it
// finished; sleep briefly when the queue is empty. On a cooperative
// backend each worker invocation instead drains a bounded batch and
// yields, so sibling emulated threads keep getting ticks.

package fiber

import (
	"fmt"
	"time"

	"sync/atomic"

	"github.com/momentics/hioload-fiber/api"
	"github.com/momentics/hioload-fiber/kthread"
)

// DefaultWorkers is the worker-thread count used when the config does
// not specify one.
const DefaultWorkers = 4

const (
	defaultIdleSleep = time.Millisecond
	defaultBatch     = 32
)

// Config tunes a Scheduler. The zero value gets DefaultWorkers native
// threads at default priority.
type Config struct {
	// Workers is the worker-thread count; values <= 0 select
	// DefaultWorkers. Fixed for the scheduler's lifetime.
	Workers int
	// Factory supplies worker threads. Nil selects the native backend.
	Factory api.ThreadFactory
	// WorkerPriority is applied to every worker thread.
	WorkerPriority api.Priority
	// IdleSleep is how long an idle worker sleeps between polls.
	// Zero selects one millisecond.
	IdleSleep time.Duration
	// Batch caps fibers executed per cooperative invocation. Zero
	// selects 32. Ignored on preemptive backends.
	Batch int
}

// Scheduler multiplexes fibers over a fixed pool of worker threads.
// All methods are safe for concurrent use unless the backing thread
// factory is cooperative, in which case the scheduler inherits its
// single-logical-thread constraint.
type Scheduler struct {
	queue     runQueue
	factory   api.ThreadFactory
	driver    api.TickDriver // non-nil only on cooperative backends
	workers   []api.Thread
	running   atomic.Bool
	idleSleep time.Duration
	batch     int
	nextID    atomic.Uint64

	spawned   atomic.Uint64
	completed atomic.Uint64
	panicked  atomic.Uint64
}

// Stats is a point-in-time snapshot of scheduler counters.
type Stats struct {
	Workers   int
	Spawned   uint64
	Completed uint64
	Panicked  uint64
	Queued    int
}

var _ api.GracefulShutdown = (*Scheduler)(nil)

// NewScheduler creates the worker pool and starts every worker. On a
// cooperative backend the workers become schedulable but run only when
// the owner drives ticks.
func NewScheduler(cfg Config) (*Scheduler, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	factory := cfg.Factory
	if factory == nil {
		factory = kthread.NewFactory()
	}
	s := &Scheduler{
		factory:   factory,
		idleSleep: cfg.IdleSleep,
		batch:     cfg.Batch,
	}
	if s.idleSleep <= 0 {
		s.idleSleep = defaultIdleSleep
	}
	if s.batch <= 0 {
		s.batch = defaultBatch
	}
	if d, ok := factory.(api.TickDriver); ok && factory.Cooperative() {
		s.driver = d
	}
	s.running.Store(true)

	for i := 0; i < workers; i++ {
		th, err := factory.New(s.dispatch, nil)
		if err == nil {
			if perr := th.SetPriority(cfg.WorkerPriority); perr == nil {
				err = th.Start()
			} else {
				err = perr
			}
		}
		if err != nil {
			s.teardownWorkers()
			return nil, fmt.Errorf("fiber: worker %d: %w", i, err)
		}
		s.workers = append(s.workers, th)
	}
	return s, nil
}

// teardownWorkers stops the workers already started after a partial
// construction failure.
func (s *Scheduler) teardownWorkers() {
	s.running.Store(false)
	for _, th := range s.workers {
		_, _ = th.Join()
		_ = th.Destroy()
	}
	s.workers = nil
}

// dispatch is the worker-thread body.
func (s *Scheduler) dispatch(ctx *api.ThreadContext) {
	if s.driver != nil {
		s.dispatchCooperative()
		return
	}
	for s.running.Load() {
		f := s.queue.pop()
		if f == nil {
			s.factory.Sleep(s.idleSleep)
			continue
		}
		s.execute(f)
	}
}

// dispatchCooperative is one cooperative worker invocation: drain a
// bounded batch, then yield to stay schedulable. During shutdown it
// returns without yielding, completing the emulated thread so joins
// succeed.
func (s *Scheduler) dispatchCooperative() {
	if !s.running.Load() {
		return
	}
	for i := 0; i < s.batch; i++ {
		f := s.queue.pop()
		if f == nil {
			break
		}
		s.execute(f)
	}
	if s.running.Load() {
		s.factory.Yield()
	}
}

// execute runs one fiber to completion. The pop already transferred
// sole ownership; the Queued-to-Running swap makes that transfer
// visible on the fiber itself. A panicking worker is contained so the
// worker thread survives.
func (s *Scheduler) execute(f *Fiber) {
	if !f.state.CompareAndSwap(int32(api.FiberQueued), int32(api.FiberRunning)) {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.panicked.Add(1)
		}
		f.state.Store(int32(api.FiberFinished))
		close(f.done)
		s.completed.Add(1)
	}()
	f.worker(&f.ctx)
}

// Spawn creates a fiber and enqueues it immediately. Execution is
// asynchronous: the fiber may run, and even finish, before Spawn
// returns.
func (s *Scheduler) Spawn(worker Worker, data any) (*Fiber, error) {
	if worker == nil {
		return nil, api.ErrInvalidArgument
	}
	if !s.running.Load() {
		return nil, api.ErrSchedulerClosed
	}
	f := &Fiber{
		ctx:    Context{ID: s.nextID.Add(1), Data: data},
		worker: worker,
		done:   make(chan struct{}),
	}
	s.spawned.Add(1)
	f.state.Store(int32(api.FiberQueued))
	s.queue.push(f)
	return f, nil
}

// Run re-enqueues a fiber that is neither finished nor already in
// flight, typically one abandoned by another scheduler's Shutdown. It
// reports whether the fiber was enqueued: false for nil, finished,
// queued or currently running fibers. The state gate is what makes a
// double Run harmless instead of corrupting the queue.
func (s *Scheduler) Run(f *Fiber) bool {
	if f == nil || !s.running.Load() {
		return false
	}
	if !f.state.CompareAndSwap(int32(api.FiberPending), int32(api.FiberQueued)) {
		return false
	}
	s.queue.push(f)
	return true
}

// Yield gives up the calling worker thread's timeslice. The suspension
// is thread-wide: every fiber multiplexed on this worker waits with
// it. Fibers wanting finer scheduling must return instead.
func (s *Scheduler) Yield() { s.factory.Yield() }

// Sleep suspends the calling worker thread for at least d. As with
// Yield, the whole thread sleeps, not just the calling fiber.
func (s *Scheduler) Sleep(d time.Duration) { s.factory.Sleep(d) }

// Join blocks until f has finished. On a cooperative backend it drives
// ticks while waiting and must not be called from inside a fiber.
// Joining nil returns immediately. There is no timeout and no
// cancellation; a fiber abandoned by Shutdown never finishes.
func (s *Scheduler) Join(f *Fiber) {
	if f == nil {
		return
	}
	if s.driver != nil {
		for !f.Finished() {
			s.driver.Drive()
		}
		return
	}
	<-f.done
}

// JoinAll joins every fiber in order.
func (s *Scheduler) JoinAll(fs ...*Fiber) {
	for _, f := range fs {
		s.Join(f)
	}
}

// SetPriority records p on the fiber. The run queue is priority-blind:
// the value is kept for callers to read back but never consulted by
// dispatch.
func (s *Scheduler) SetPriority(f *Fiber, p api.Priority) {
	if f == nil {
		return
	}
	f.prio.Store(int32(p))
}

// Destroy drops the fiber's references to its worker function and user
// data so they can be collected. Returns false on nil. Callers must
// not destroy a fiber before it finished; destroying a queued or
// running fiber leaves the scheduler free to misbehave, exactly like
// freeing an in-flight fiber would.
func (s *Scheduler) Destroy(f *Fiber) bool {
	if f == nil {
		return false
	}
	f.worker = nil
	f.ctx.Data = nil
	return true
}

// Shutdown stops the pool: workers finish their current fiber, exit
// and are joined. Fibers still queued are abandoned: never executed,
// never marked finished, and reset to Pending so their owners can
// resubmit them to another scheduler with Run. Spawn and Run fail
// afterwards. Shutdown is idempotent and satisfies api.GracefulShutdown.
func (s *Scheduler) Shutdown() error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}
	for _, th := range s.workers {
		_, _ = th.Join()
		_ = th.Destroy()
	}
	s.workers = nil
	// All workers are gone; nothing races the drain.
	for f := s.queue.pop(); f != nil; f = s.queue.pop() {
		f.state.CompareAndSwap(int32(api.FiberQueued), int32(api.FiberPending))
	}
	return nil
}

// NumWorkers returns the fixed worker-thread count.
func (s *Scheduler) NumWorkers() int { return len(s.workers) }

// QueueLen returns the approximate number of queued fibers.
func (s *Scheduler) QueueLen() int { return s.queue.len() }

// Stats snapshots the scheduler counters.
func (s *Scheduler) Stats() Stats {
	return Stats{
		Workers:   len(s.workers),
		Spawned:   s.spawned.Load(),
		Completed: s.completed.Load(),
		Panicked:  s.panicked.Load(),
		Queued:    s.queue.len(),
	}
}
