package fake_test

import (
	"errors"
	"testing"
	"time"

	"github.com/momentics/hioload-fiber/api"
	"github.com/momentics/hioload-fiber/fake"
)

func TestFakeThreadLifecycle(t *testing.T) {
	f := fake.NewFactory()
	ran := false
	th, err := f.New(func(ctx *api.ThreadContext) {
		ran = true
		if ctx.Data != "payload" {
			t.Errorf("ctx.Data = %v, want payload", ctx.Data)
		}
	}, "payload")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := th.Join(); !errors.Is(err, api.ErrNotStarted) {
		t.Errorf("Join before Start error = %v, want %v", err, api.ErrNotStarted)
	}
	if err := th.Start(); err != nil {
		t.Fatal(err)
	}
	if err := th.Start(); !errors.Is(err, api.ErrAlreadyStarted) {
		t.Errorf("second Start error = %v, want %v", err, api.ErrAlreadyStarted)
	}

	fakeTh := th.(*fake.Thread)
	fakeTh.SetExitCode(7)
	code, err := th.Join()
	if err != nil {
		t.Fatal(err)
	}
	if code != 7 {
		t.Errorf("exit code = %d, want 7", code)
	}
	if !ran {
		t.Error("worker did not run on Join")
	}

	fakeTh.Run() // second run is a no-op
	if err := th.SetPriority(api.PriorityHigh); err != nil {
		t.Fatal(err)
	}
	if fakeTh.Priority() != api.PriorityHigh {
		t.Errorf("priority = %v, want %v", fakeTh.Priority(), api.PriorityHigh)
	}
	if err := th.Destroy(); err != nil {
		t.Fatal(err)
	}
}

func TestFakeFactoryKnobs(t *testing.T) {
	f := fake.NewFactory()
	if f.Cooperative() {
		t.Error("default factory reports cooperative")
	}
	f.SetCooperative(true)
	if !f.Cooperative() {
		t.Error("SetCooperative(true) not reflected")
	}

	if _, err := f.New(nil, nil); !errors.Is(err, api.ErrInvalidArgument) {
		t.Errorf("New(nil) error = %v, want %v", err, api.ErrInvalidArgument)
	}

	boom := errors.New("boom")
	f.SetNewError(boom)
	if _, err := f.New(func(*api.ThreadContext) {}, nil); !errors.Is(err, boom) {
		t.Errorf("New with injected error = %v, want %v", err, boom)
	}
	f.SetNewError(nil)

	if _, err := f.New(func(*api.ThreadContext) {}, nil); err != nil {
		t.Fatal(err)
	}
	if len(f.Threads()) != 1 {
		t.Errorf("Threads() length = %d, want 1", len(f.Threads()))
	}

	f.Yield()
	f.Sleep(5 * time.Millisecond)
	if f.Yields() != 1 {
		t.Errorf("Yields() = %d, want 1", f.Yields())
	}
	if sleeps := f.Sleeps(); len(sleeps) != 1 || sleeps[0] != 5*time.Millisecond {
		t.Errorf("Sleeps() = %v, want [5ms]", sleeps)
	}
}

func TestFakeThreadNeverRunsAfterDestroy(t *testing.T) {
	f := fake.NewFactory()
	ran := false
	th, err := f.New(func(*api.ThreadContext) { ran = true }, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := th.Start(); err != nil {
		t.Fatal(err)
	}
	if err := th.Destroy(); err != nil {
		t.Fatal(err)
	}
	th.(*fake.Thread).Run()
	if ran {
		t.Error("destroyed thread executed its worker")
	}
}

func TestFakeMutexCounters(t *testing.T) {
	var m fake.Mutex
	m.Lock()
	if m.TryLock() {
		t.Error("TryLock succeeded on held fake mutex")
	}
	m.Unlock()
	if !m.TryLock() {
		t.Error("TryLock failed on free fake mutex")
	}
	m.Unlock()

	if m.Locks() != 1 || m.Unlocks() != 2 || m.Tries() != 2 {
		t.Errorf("counters = %d/%d/%d, want 1/2/2", m.Locks(), m.Unlocks(), m.Tries())
	}
	if !m.Destroy() {
		t.Error("Destroy() = false")
	}
}
