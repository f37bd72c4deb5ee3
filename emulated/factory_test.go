// File: emulated/factory_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package emulated

import (
	"errors"
	"testing"

	"github.com/momentics/hioload-fiber/api"
)

func TestFactoryThreadLifecycle(t *testing.T) {
	s := New()
	f := NewFactory(s)
	if !f.Cooperative() {
		t.Fatal("emulated factory must report cooperative")
	}

	ran := false
	th, err := f.New(func(ctx *api.ThreadContext) {
		ran = true
		s.Exit(7)
	}, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := th.Join(); !errors.Is(err, api.ErrNotStarted) {
		t.Errorf("Join before Start = %v, want ErrNotStarted", err)
	}
	if err := th.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := th.Start(); !errors.Is(err, api.ErrAlreadyStarted) {
		t.Errorf("second Start = %v, want ErrAlreadyStarted", err)
	}
	code, err := th.Join()
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if code != 7 {
		t.Errorf("exit code = %d, want 7", code)
	}
	if !ran {
		t.Error("worker did not run")
	}
}

func TestFactoryDriveDispatches(t *testing.T) {
	s := New()
	f := NewFactory(s)
	runs := 0
	th, err := f.New(func(ctx *api.ThreadContext) {
		runs++
		f.Yield()
	}, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := th.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !f.Drive() {
		t.Fatal("Drive dispatched nothing")
	}
	if runs != 1 {
		t.Errorf("runs = %d, want 1", runs)
	}
	if err := th.Destroy(); err != nil {
		t.Fatalf("Destroy failed: %v", err)
	}
	f.Drive()
	if s.Len() != 0 {
		t.Errorf("table length = %d, want 0 after destroy and tick", s.Len())
	}
}

func TestFactoryUnstartedThreadInvisibleToTicks(t *testing.T) {
	s := New()
	f := NewFactory(s)
	ran := false
	th, err := f.New(func(ctx *api.ThreadContext) { ran = true }, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("table length = %d, want 0 before Start", s.Len())
	}
	if f.Drive() {
		t.Error("tick dispatched an unstarted thread")
	}
	if ran {
		t.Fatal("worker ran before Start")
	}
	if err := th.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !f.Drive() || !ran {
		t.Error("started thread was not dispatched")
	}
}

func TestFactoryDestroyBeforeStart(t *testing.T) {
	s := New()
	f := NewFactory(s)
	th, err := f.New(func(ctx *api.ThreadContext) {}, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := th.Destroy(); err != nil {
		t.Fatalf("Destroy failed: %v", err)
	}
	if err := th.Destroy(); err != nil {
		t.Errorf("second Destroy = %v, want nil", err)
	}
	if err := th.Start(); !errors.Is(err, api.ErrInvalidHandle) {
		t.Errorf("Start after Destroy = %v, want ErrInvalidHandle", err)
	}
	if s.Len() != 0 {
		t.Errorf("table length = %d, want 0", s.Len())
	}
}

func TestFactoryNilWorker(t *testing.T) {
	f := NewFactory(New())
	if _, err := f.New(nil, nil); !errors.Is(err, api.ErrInvalidArgument) {
		t.Errorf("New(nil) = %v, want ErrInvalidArgument", err)
	}
}

func TestFactoryCapacitySurfacesAtStart(t *testing.T) {
	s := NewWithConfig(Config{MaxThreads: 1})
	f := NewFactory(s)
	a, err := f.New(func(ctx *api.ThreadContext) {}, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	b, err := f.New(func(ctx *api.ThreadContext) {}, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := a.Start(); err != nil {
		t.Fatalf("first Start failed: %v", err)
	}
	if err := b.Start(); !errors.Is(err, api.ErrResourceExhausted) {
		t.Errorf("Start over capacity = %v, want ErrResourceExhausted", err)
	}
}

func TestFactorySleepInsideWorker(t *testing.T) {
	s := New()
	f := NewFactory(s)
	runs := 0
	th, err := f.New(func(ctx *api.ThreadContext) {
		runs++
		if runs == 1 {
			f.Sleep(DefaultTickDuration * 2)
		}
	}, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := th.SetPriority(api.PriorityHigh); err != nil {
		t.Fatalf("SetPriority failed: %v", err)
	}
	if err := th.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	f.Drive() // runs, sleeps two ticks
	if f.Drive() {
		t.Error("sleeping thread was dispatched")
	}
	f.Drive() // wakes and completes
	if runs != 2 {
		t.Errorf("runs = %d, want 2", runs)
	}
}
