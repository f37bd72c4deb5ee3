// File: emulated/scheduler.go
// Package emulated implements the cooperative tick-driven scheduler.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// One Tick dispatches at most one worker invocation: wake expiring
// sleepers, pick the Ready thread with the highest priority (creation
// order breaks ties), run its worker to return, then compact finished
// unjoined entries out of the table.

package emulated

import (
	"fmt"
	"time"

	"github.com/momentics/hioload-fiber/api"
)

// DefaultTickDuration converts Sleep durations to ticks when the config
// does not override it.
const DefaultTickDuration = time.Millisecond

// Config tunes a Scheduler.
type Config struct {
	// TickDuration is the nominal wall-clock length of one tick, used
	// only to convert Sleep durations into tick counts.
	TickDuration time.Duration
	// MaxThreads caps the thread table. Zero means unlimited.
	MaxThreads int
}

// Scheduler owns the thread table and drives dispatch. It is a single
// logical thread of control and is not safe for concurrent use.
type Scheduler struct {
	cfg     Config
	threads []*Thread
	nextID  uint64
	current int // table index of the thread being invoked, -1 outside an invocation
}

// New creates a Scheduler with default configuration.
func New() *Scheduler {
	return NewWithConfig(Config{})
}

// NewWithConfig creates a Scheduler with the given configuration.
func NewWithConfig(cfg Config) *Scheduler {
	if cfg.TickDuration <= 0 {
		cfg.TickDuration = DefaultTickDuration
	}
	return &Scheduler{cfg: cfg, current: -1}
}

// Create appends a new Ready thread with default priority to the table.
// The thread does not run until a Tick selects it.
func (s *Scheduler) Create(worker api.ThreadWorker, data any) (*Thread, error) {
	if worker == nil {
		return nil, api.ErrInvalidArgument
	}
	if s.cfg.MaxThreads > 0 && len(s.threads) >= s.cfg.MaxThreads {
		return nil, fmt.Errorf("%w: thread table at capacity %d",
			api.ErrResourceExhausted, s.cfg.MaxThreads)
	}
	s.nextID++
	t := &Thread{
		ctx:    api.ThreadContext{ID: s.nextID, Data: data},
		worker: worker,
		state:  api.ThreadReady,
		prio:   api.PriorityDefault,
	}
	s.threads = append(s.threads, t)
	return t, nil
}

// SetPriority records the thread's scheduling priority.
func (s *Scheduler) SetPriority(t *Thread, p api.Priority) bool {
	if t == nil {
		return false
	}
	t.prio = p
	return true
}

// Start marks a Ready thread as started, rejecting double starts and
// finished threads. Created threads are dispatchable from the moment
// Create returns; execution happens only inside Tick either way.
func (s *Scheduler) Start(t *Thread) bool {
	if t == nil || t.state != api.ThreadReady || t.started {
		return false
	}
	t.started = true
	return true
}

// Tick runs one scheduling round and reports whether a worker was
// dispatched. Workers must not call Tick reentrantly.
func (s *Scheduler) Tick() bool {
	if len(s.threads) == 0 {
		return false
	}

	// One scan both wakes expiring sleepers and tracks the best Ready
	// candidate, so a thread waking this tick is eligible this tick.
	// Strict greater-than keeps the earliest index on priority ties.
	best := -1
	bestPrio := api.PriorityLow - 1
	for i, t := range s.threads {
		if t.state == api.ThreadSleeping {
			t.sleepTicks--
			if t.sleepTicks <= 0 {
				t.state = api.ThreadReady
			}
		}
		if t.state == api.ThreadReady && t.prio > bestPrio {
			best = i
			bestPrio = t.prio
		}
	}

	dispatched := best >= 0
	if dispatched {
		t := s.threads[best]
		t.state = api.ThreadRunning
		s.current = best
		t.worker(&t.ctx)
		s.current = -1
		// Returned while still Running means the worker completed.
		// A yielded thread stays Ready, a sleeper stays Sleeping.
		if t.state == api.ThreadRunning {
			t.state = api.ThreadDone
		}
	}

	s.compact()
	return dispatched
}

// compact removes Done threads nobody joined. Done threads with a
// pending join stay addressable until the joiner reads the exit code;
// a join after completion therefore pins the table slot for the
// scheduler's remaining lifetime.
func (s *Scheduler) compact() {
	dst := s.threads[:0]
	for _, t := range s.threads {
		if t.state == api.ThreadDone && !t.joined {
			t.release()
			continue
		}
		dst = append(dst, t)
	}
	for i := len(dst); i < len(s.threads); i++ {
		s.threads[i] = nil
	}
	s.threads = dst
}

// Yield demotes the thread being invoked back to Ready. Outside a
// worker invocation it is a no-op.
func (s *Scheduler) Yield() {
	if s.current < 0 || s.current >= len(s.threads) {
		return
	}
	t := s.threads[s.current]
	if t.state == api.ThreadRunning {
		t.state = api.ThreadReady
	}
}

// SleepTicks puts the thread being invoked to sleep for at least n
// ticks (minimum one). Outside a worker invocation it is a no-op.
func (s *Scheduler) SleepTicks(n int) {
	if s.current < 0 || s.current >= len(s.threads) {
		return
	}
	if n < 1 {
		n = 1
	}
	t := s.threads[s.current]
	t.sleepTicks = n
	t.state = api.ThreadSleeping
}

// Sleep converts d to ticks via the configured TickDuration and sleeps
// the thread being invoked.
func (s *Scheduler) Sleep(d time.Duration) {
	ticks := int(d / s.cfg.TickDuration)
	if ticks < 1 {
		ticks = 1
	}
	s.SleepTicks(ticks)
}

// Exit records code as the invoked thread's exit code and marks it
// Done. The worker should return promptly afterwards.
func (s *Scheduler) Exit(code int) {
	if s.current < 0 || s.current >= len(s.threads) {
		return
	}
	t := s.threads[s.current]
	t.exitCode = code
	t.state = api.ThreadDone
}

// Join claims the thread's exit code and pumps Tick until it is Done.
// Joining a thread that never completes does not return.
func (s *Scheduler) Join(t *Thread) (int, error) {
	if t == nil {
		return -1, api.ErrInvalidHandle
	}
	t.joined = true
	for t.state != api.ThreadDone {
		s.Tick()
	}
	return t.exitCode, nil
}

// Destroy force-marks the thread Done. The table slot is reclaimed by
// a later Tick's compaction, and only when the thread was not joined.
func (s *Scheduler) Destroy(t *Thread) bool {
	if t == nil {
		return false
	}
	t.state = api.ThreadDone
	return true
}

// Len returns the number of table entries, including Done joined
// threads that compaction keeps addressable.
func (s *Scheduler) Len() int { return len(s.threads) }

// Current returns the thread being invoked, or nil outside a worker
// invocation.
func (s *Scheduler) Current() *Thread {
	if s.current < 0 || s.current >= len(s.threads) {
		return nil
	}
	return s.threads[s.current]
}

// TickDuration returns the configured tick length.
func (s *Scheduler) TickDuration() time.Duration { return s.cfg.TickDuration }
