// File: facade/runtime.go
// Unified facade layer for the hioload-fiber library.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// This file defines the Runtime struct, which aggregates the core components
// of the hioload-fiber library behind a single facade. It initializes the
// thread backend, fiber scheduler, executor, and control interfaces based on
// immutable configuration. The facade exposes methods to start/stop the
// system, spawn and join fibers, submit tasks, construct mutexes of the
// configured flavor, and retrieve runtime services.

package facade

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/momentics/hioload-fiber/adapters"
	"github.com/momentics/hioload-fiber/api"
	"github.com/momentics/hioload-fiber/emulated"
	"github.com/momentics/hioload-fiber/fiber"
	"github.com/momentics/hioload-fiber/ksync"
	"github.com/momentics/hioload-fiber/kthread"
)

const runtimeName = "hioload-fiber"

// Runtime is the main facade type.
// It implements api.GracefulShutdown to allow unified shutdown logic.
type Runtime struct {
	config    *Config
	backend   api.Backend
	mutexKind string
	sched     *fiber.Scheduler
	exec      api.Executor
	control   *adapters.ControlAdapter
	logger    *zap.Logger

	mu        sync.RWMutex // Protects started/stopped flags and startedAt
	started   bool
	stopped   bool
	startedAt time.Time
}

// Ensure compliance with api.GracefulShutdown.
var _ api.GracefulShutdown = (*Runtime)(nil)

// New constructs a Runtime with the given configuration.
// It initializes all internal subsystems: control adapter, thread backend,
// fiber scheduler, and executor, and exposes configuration values via the
// Control interface for observability and hot-reload. On the native
// backend worker threads start draining the run queue as soon as New
// returns; on the emulated backend they run only while Join or JoinAll
// drives ticks.
func New(cfg *Config) (*Runtime, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	backend, err := api.ParseBackend(cfg.Backend)
	if err != nil {
		return nil, err
	}
	mutexKind := cfg.Mutex
	switch mutexKind {
	case "":
		mutexKind = "futex"
	case "futex", "native", "noop":
	default:
		return nil, fmt.Errorf("facade: mutex flavor %q: %w", cfg.Mutex, api.ErrInvalidArgument)
	}

	r := &Runtime{
		config:    cfg,
		backend:   backend,
		mutexKind: mutexKind,
		control:   adapters.NewControlAdapter(),
		logger:    zap.NewNop(),
	}

	var factory api.ThreadFactory
	switch backend {
	case api.BackendEmulated:
		factory = emulated.NewFactory(emulated.NewWithConfig(emulated.Config{
			TickDuration: time.Duration(cfg.TickInterval),
			MaxThreads:   cfg.MaxThreads,
		}))
	default:
		opts := []kthread.Option{kthread.WithLockOSThread(cfg.LockThreads)}
		if cfg.PinCPUs {
			cpus := make([]int, runtime.NumCPU())
			for i := range cpus {
				cpus[i] = i
			}
			opts = append(opts, kthread.WithPinCPUs(cpus...))
		}
		factory = kthread.NewFactory(opts...)
	}

	sched, err := fiber.NewScheduler(fiber.Config{
		Workers:        cfg.Workers,
		Factory:        factory,
		WorkerPriority: api.ParsePriority(cfg.WorkerPriority),
		IdleSleep:      time.Duration(cfg.IdleSleep),
		Batch:          cfg.Batch,
	})
	if err != nil {
		return nil, fmt.Errorf("facade: scheduler init failure: %w", err)
	}
	r.sched = sched
	r.exec = adapters.NewExecutorAdapter(sched)

	r.control.SetConfig(map[string]any{
		"backend":         backend.String(),
		"workers":         sched.NumWorkers(),
		"mutex":           mutexKind,
		"worker_priority": api.ParsePriority(cfg.WorkerPriority).String(),
	})
	if cfg.EnableDebug {
		r.registerProbes()
	}
	return r, nil
}

// registerProbes exposes live scheduler state through the debug interface.
func (r *Runtime) registerProbes() {
	r.control.RegisterDebugProbe("fiber.spawned", func() any {
		return r.sched.Stats().Spawned
	})
	r.control.RegisterDebugProbe("fiber.completed", func() any {
		return r.sched.Stats().Completed
	})
	r.control.RegisterDebugProbe("fiber.panicked", func() any {
		return r.sched.Stats().Panicked
	})
	r.control.RegisterDebugProbe("fiber.queued", func() any {
		return r.sched.QueueLen()
	})
	r.control.RegisterDebugProbe("runtime.uptime_ns", func() any {
		r.mu.RLock()
		defer r.mu.RUnlock()
		if r.startedAt.IsZero() {
			return int64(0)
		}
		return time.Since(r.startedAt).Nanoseconds()
	})
}

// Start marks the runtime live and publishes metrics if configured.
// Subsequent calls to Start() have no effect.
func (r *Runtime) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return nil
	}
	r.started = true
	r.startedAt = time.Now()
	if r.config.EnableMetrics {
		r.control.SetMetric("runtime.backend", r.backend.String())
		r.control.SetMetric("runtime.workers", r.sched.NumWorkers())
	}
	r.logger.Info("runtime started",
		zap.String("backend", r.backend.String()),
		zap.Int("workers", r.sched.NumWorkers()),
	)
	return nil
}

// Stop shuts the scheduler down, waiting for worker threads to exit.
// Fibers still queued are reset to pending and abandoned. Calling Stop()
// repeatedly is a no-op.
//
// The shutdown join runs outside the runtime lock, so fibers that read
// runtime state (Info, Logger) while stopping cannot wedge it.
func (r *Runtime) Stop() error {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return nil
	}
	r.stopped = true
	logger := r.logger
	r.mu.Unlock()

	err := r.sched.Shutdown()
	logger.Info("runtime stopped",
		zap.Uint64("completed", r.sched.Stats().Completed),
	)
	return err
}

// Shutdown implements api.GracefulShutdown by delegating to Stop().
func (r *Runtime) Shutdown() error {
	return r.Stop()
}

// Spawn creates a fiber running worker with the given user data.
func (r *Runtime) Spawn(worker fiber.Worker, data any) (*fiber.Fiber, error) {
	return r.sched.Spawn(worker, data)
}

// Run resubmits a pending fiber to the scheduler. See fiber.Scheduler.Run.
func (r *Runtime) Run(f *fiber.Fiber) bool {
	return r.sched.Run(f)
}

// Join blocks until the fiber finishes.
func (r *Runtime) Join(f *fiber.Fiber) {
	r.sched.Join(f)
}

// JoinAll joins every given fiber in order.
func (r *Runtime) JoinAll(fibers ...*fiber.Fiber) {
	r.sched.JoinAll(fibers...)
}

// Submit dispatches a task to the worker pool for asynchronous execution.
func (r *Runtime) Submit(task func()) error {
	return r.exec.Submit(task)
}

// NewMutex constructs a mutex of the configured flavor.
func (r *Runtime) NewMutex() api.Mutex {
	switch r.mutexKind {
	case "native":
		return ksync.NewNativeMutex()
	case "noop":
		return ksync.NewNoopMutex()
	default:
		return ksync.NewFutexMutex()
	}
}

// GetControl returns the Control interface for dynamic config and metrics.
func (r *Runtime) GetControl() api.Control {
	return r.control
}

// GetScheduler exposes the underlying fiber scheduler.
func (r *Runtime) GetScheduler() *fiber.Scheduler {
	return r.sched
}

// GetExecutor returns the api.Executor view of the worker pool.
func (r *Runtime) GetExecutor() api.Executor {
	return r.exec
}

// GetDebugAPI returns the debug probe registry for live introspection.
func (r *Runtime) GetDebugAPI() api.Debug {
	return r.control.GetDebugAPI()
}

// Logger returns the runtime's logger instance.
// It uses a no-op logger by default.
func (r *Runtime) Logger() *zap.Logger {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.logger
}

// SetLogger configures the runtime's logger. A nil logger restores the
// no-op default.
func (r *Runtime) SetLogger(l *zap.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l == nil {
		l = zap.NewNop()
	}
	r.logger = l
}

// Info reports the runtime identity and live dimensions.
func (r *Runtime) Info() api.RuntimeInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return api.RuntimeInfo{
		Name:      runtimeName,
		Version:   Version,
		Backend:   r.backend,
		Workers:   r.sched.NumWorkers(),
		StartedAt: r.startedAt,
	}
}
