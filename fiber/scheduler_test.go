// File: fiber/scheduler_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Scheduler behavior tests over both backends: exactly-once execution,
// join semantics, resubmission after shutdown, panic isolation.

package fiber

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/momentics/hioload-fiber/api"
	"github.com/momentics/hioload-fiber/emulated"
)

func TestSchedulerDefaults(t *testing.T) {
	s, err := NewScheduler(Config{})
	if err != nil {
		t.Fatalf("NewScheduler failed: %v", err)
	}
	if s.NumWorkers() != DefaultWorkers {
		t.Errorf("NumWorkers = %d, want %d", s.NumWorkers(), DefaultWorkers)
	}
	if err := s.Shutdown(); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}
	if err := s.Shutdown(); err != nil {
		t.Errorf("second Shutdown failed: %v", err)
	}
}

func TestEveryFiberExecutesExactlyOnce(t *testing.T) {
	s, err := NewScheduler(Config{Workers: 4})
	if err != nil {
		t.Fatalf("NewScheduler failed: %v", err)
	}
	defer s.Shutdown()

	const n = 64
	var counter int64
	slots := make([]int64, n)
	fibers := make([]*Fiber, 0, n)
	for i := 0; i < n; i++ {
		idx := i
		f, err := s.Spawn(func(ctx *Context) {
			atomic.AddInt64(&slots[idx], 1)
			atomic.AddInt64(&counter, 1)
		}, nil)
		if err != nil {
			t.Fatalf("Spawn %d failed: %v", i, err)
		}
		fibers = append(fibers, f)
	}
	s.JoinAll(fibers...)

	if got := atomic.LoadInt64(&counter); got != n {
		t.Errorf("counter = %d, want %d", got, n)
	}
	for i, c := range slots {
		if c != 1 {
			t.Errorf("fiber %d executed %d times, want exactly 1", i, c)
		}
	}
}

func TestJoinWaitsForCompletion(t *testing.T) {
	s, err := NewScheduler(Config{Workers: 1})
	if err != nil {
		t.Fatalf("NewScheduler failed: %v", err)
	}
	defer s.Shutdown()

	var flag int32
	f, err := s.Spawn(func(ctx *Context) {
		time.Sleep(20 * time.Millisecond)
		atomic.StoreInt32(&flag, 1)
	}, nil)
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	s.Join(f)
	if atomic.LoadInt32(&flag) != 1 {
		t.Error("Join returned before the fiber body completed")
	}
	if !f.Finished() {
		t.Errorf("state after Join = %v, want %v", f.State(), api.FiberFinished)
	}
}

func TestJoinNilFiber(t *testing.T) {
	s, err := NewScheduler(Config{Workers: 1})
	if err != nil {
		t.Fatalf("NewScheduler failed: %v", err)
	}
	defer s.Shutdown()
	s.Join(nil) // must not block or panic
}

func TestSpawnValidation(t *testing.T) {
	s, err := NewScheduler(Config{Workers: 1})
	if err != nil {
		t.Fatalf("NewScheduler failed: %v", err)
	}
	if _, err := s.Spawn(nil, nil); !errors.Is(err, api.ErrInvalidArgument) {
		t.Errorf("Spawn(nil) error = %v, want %v", err, api.ErrInvalidArgument)
	}
	if err := s.Shutdown(); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	if _, err := s.Spawn(func(ctx *Context) {}, nil); !errors.Is(err, api.ErrSchedulerClosed) {
		t.Errorf("Spawn after Shutdown error = %v, want %v", err, api.ErrSchedulerClosed)
	}
}

func TestRunRejectsFinishedFiber(t *testing.T) {
	s, err := NewScheduler(Config{Workers: 1})
	if err != nil {
		t.Fatalf("NewScheduler failed: %v", err)
	}
	defer s.Shutdown()

	f, err := s.Spawn(func(ctx *Context) {}, nil)
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	s.Join(f)
	if s.Run(f) {
		t.Error("Run accepted a finished fiber")
	}
	if s.Run(nil) {
		t.Error("Run accepted nil")
	}
}

// A fiber abandoned by a shutdown scheduler is reset to pending and can
// be resubmitted to another scheduler with Run.
func TestRunResubmitsAfterShutdown(t *testing.T) {
	sched := emulated.New()
	abandoning, err := NewScheduler(Config{Workers: 2, Factory: emulated.NewFactory(sched)})
	if err != nil {
		t.Fatalf("NewScheduler (cooperative) failed: %v", err)
	}

	var counter int64
	f, err := abandoning.Spawn(func(ctx *Context) {
		atomic.AddInt64(&counter, 1)
	}, nil)
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}

	// No ticks are driven before Shutdown, so the fiber never ran.
	if err := abandoning.Shutdown(); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	if got := atomic.LoadInt64(&counter); got != 0 {
		t.Fatalf("fiber ran %d times before resubmission, want 0", got)
	}
	if f.State() != api.FiberPending {
		t.Fatalf("state after abandoning Shutdown = %v, want %v", f.State(), api.FiberPending)
	}

	adopting, err := NewScheduler(Config{Workers: 2})
	if err != nil {
		t.Fatalf("NewScheduler (native) failed: %v", err)
	}
	defer adopting.Shutdown()

	if !adopting.Run(f) {
		t.Fatal("Run rejected a pending fiber")
	}
	adopting.Join(f)
	if got := atomic.LoadInt64(&counter); got != 1 {
		t.Errorf("counter = %d, want 1", got)
	}
}

func TestPanicDoesNotKillWorker(t *testing.T) {
	s, err := NewScheduler(Config{Workers: 1})
	if err != nil {
		t.Fatalf("NewScheduler failed: %v", err)
	}
	defer s.Shutdown()

	var counter int64
	bad, err := s.Spawn(func(ctx *Context) {
		panic("fiber body failure")
	}, nil)
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	good, err := s.Spawn(func(ctx *Context) {
		atomic.AddInt64(&counter, 1)
	}, nil)
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	s.JoinAll(bad, good)

	if !bad.Finished() {
		t.Error("panicking fiber not marked finished")
	}
	if got := atomic.LoadInt64(&counter); got != 1 {
		t.Errorf("counter = %d, want 1 (worker died with the panic)", got)
	}
	st := s.Stats()
	if st.Panicked != 1 {
		t.Errorf("Stats.Panicked = %d, want 1", st.Panicked)
	}
	if st.Completed != 2 {
		t.Errorf("Stats.Completed = %d, want 2", st.Completed)
	}
}

func TestPriorityStoredNotScheduled(t *testing.T) {
	s, err := NewScheduler(Config{Workers: 1})
	if err != nil {
		t.Fatalf("NewScheduler failed: %v", err)
	}
	defer s.Shutdown()

	var counter int64
	low, err := s.Spawn(func(ctx *Context) { atomic.AddInt64(&counter, 1) }, nil)
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	high, err := s.Spawn(func(ctx *Context) { atomic.AddInt64(&counter, 1) }, nil)
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	s.SetPriority(low, api.PriorityLow)
	s.SetPriority(high, api.PriorityHigh)
	s.SetPriority(nil, api.PriorityHigh) // must not panic

	if low.Priority() != api.PriorityLow {
		t.Errorf("low fiber priority = %v, want %v", low.Priority(), api.PriorityLow)
	}
	if high.Priority() != api.PriorityHigh {
		t.Errorf("high fiber priority = %v, want %v", high.Priority(), api.PriorityHigh)
	}

	// Dispatch order ignores the stored value; both still complete.
	s.JoinAll(low, high)
	if got := atomic.LoadInt64(&counter); got != 2 {
		t.Errorf("counter = %d, want 2", got)
	}
}

func TestDestroyFiber(t *testing.T) {
	s, err := NewScheduler(Config{Workers: 1})
	if err != nil {
		t.Fatalf("NewScheduler failed: %v", err)
	}
	defer s.Shutdown()

	if s.Destroy(nil) {
		t.Error("Destroy(nil) = true, want false")
	}
	payload := make([]byte, 16)
	f, err := s.Spawn(func(ctx *Context) {}, payload)
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	s.Join(f)
	if !s.Destroy(f) {
		t.Error("Destroy on a finished fiber = false, want true")
	}
	if f.ctx.Data != nil {
		t.Error("Destroy kept the user payload alive")
	}
}

func TestYieldAndSleepInsideFiber(t *testing.T) {
	s, err := NewScheduler(Config{Workers: 2})
	if err != nil {
		t.Fatalf("NewScheduler failed: %v", err)
	}
	defer s.Shutdown()

	var counter int64
	f, err := s.Spawn(func(ctx *Context) {
		s.Yield()
		s.Sleep(time.Millisecond)
		atomic.AddInt64(&counter, 1)
	}, nil)
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	s.Join(f)
	if got := atomic.LoadInt64(&counter); got != 1 {
		t.Errorf("counter = %d, want 1", got)
	}
}

func TestFiberContextDelivery(t *testing.T) {
	s, err := NewScheduler(Config{Workers: 1})
	if err != nil {
		t.Fatalf("NewScheduler failed: %v", err)
	}
	defer s.Shutdown()

	type payload struct{ value int }
	var gotID uint64
	var gotData *payload
	want := &payload{value: 42}
	f, err := s.Spawn(func(ctx *Context) {
		gotID = ctx.ID
		gotData, _ = ctx.Data.(*payload)
	}, want)
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	s.Join(f)
	if gotID != f.ID() {
		t.Errorf("ctx.ID = %d, want %d", gotID, f.ID())
	}
	if gotData != want {
		t.Errorf("ctx.Data = %v, want %v", gotData, want)
	}
}

func TestStatsCounts(t *testing.T) {
	s, err := NewScheduler(Config{Workers: 2})
	if err != nil {
		t.Fatalf("NewScheduler failed: %v", err)
	}
	defer s.Shutdown()

	fibers := make([]*Fiber, 0, 5)
	for i := 0; i < 5; i++ {
		f, err := s.Spawn(func(ctx *Context) {}, nil)
		if err != nil {
			t.Fatalf("Spawn failed: %v", err)
		}
		fibers = append(fibers, f)
	}
	s.JoinAll(fibers...)

	st := s.Stats()
	if st.Workers != 2 {
		t.Errorf("Stats.Workers = %d, want 2", st.Workers)
	}
	if st.Spawned != 5 {
		t.Errorf("Stats.Spawned = %d, want 5", st.Spawned)
	}
	if st.Completed != 5 {
		t.Errorf("Stats.Completed = %d, want 5", st.Completed)
	}
	if st.Panicked != 0 {
		t.Errorf("Stats.Panicked = %d, want 0", st.Panicked)
	}
	if st.Queued != 0 {
		t.Errorf("Stats.Queued = %d, want 0", st.Queued)
	}
}

// End-to-end over the cooperative backend: worker threads are emulated
// threads and every join drives ticks instead of parking.
func TestCooperativeEndToEnd(t *testing.T) {
	sched := emulated.NewWithConfig(emulated.Config{TickDuration: time.Millisecond})
	s, err := NewScheduler(Config{Workers: 2, Factory: emulated.NewFactory(sched)})
	if err != nil {
		t.Fatalf("NewScheduler failed: %v", err)
	}

	const n = 5
	var counter int64
	fibers := make([]*Fiber, 0, n)
	for i := 0; i < n; i++ {
		f, err := s.Spawn(func(ctx *Context) {
			atomic.AddInt64(&counter, 1)
		}, nil)
		if err != nil {
			t.Fatalf("Spawn %d failed: %v", i, err)
		}
		fibers = append(fibers, f)
	}
	s.JoinAll(fibers...)

	if got := atomic.LoadInt64(&counter); got != n {
		t.Errorf("counter = %d, want %d", got, n)
	}
	if err := s.Shutdown(); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}
}
