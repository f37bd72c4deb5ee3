// File: kthread/factory.go
// Package kthread provides the native api.ThreadFactory.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package kthread

import (
	"runtime"
	"sync/atomic"
	"time"

	"github.com/momentics/hioload-fiber/api"
)

// Factory creates native threads. The zero value is not usable; call
// NewFactory.
type Factory struct {
	lockOS  bool
	pinCPUs []int
	nextCPU atomic.Uint32
	nextID  atomic.Uint64
}

var _ api.ThreadFactory = (*Factory)(nil)

// Option customizes a Factory.
type Option func(*Factory)

// WithLockOSThread controls whether workers lock their goroutine to an
// OS thread. Enabled by default; priority and pinning require it.
func WithLockOSThread(v bool) Option {
	return func(f *Factory) { f.lockOS = v }
}

// WithPinCPUs assigns worker threads to the given CPU list round-robin.
func WithPinCPUs(cpus ...int) Option {
	return func(f *Factory) { f.pinCPUs = cpus }
}

// NewFactory creates a native thread factory.
func NewFactory(opts ...Option) *Factory {
	f := &Factory{lockOS: true}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// New creates a suspended thread that will run worker with data.
func (f *Factory) New(worker api.ThreadWorker, data any) (api.Thread, error) {
	if worker == nil {
		return nil, api.ErrInvalidArgument
	}
	cpu := -1
	if len(f.pinCPUs) > 0 {
		n := f.nextCPU.Add(1) - 1
		cpu = f.pinCPUs[int(n)%len(f.pinCPUs)]
	}
	id := f.nextID.Add(1)
	return newThread(worker, data, id, f.lockOS, cpu), nil
}

// Yield relinquishes the calling thread's timeslice.
func (f *Factory) Yield() { runtime.Gosched() }

// Sleep suspends the calling thread for at least d.
func (f *Factory) Sleep(d time.Duration) { time.Sleep(d) }

// Cooperative reports false: native threads are preemptively scheduled
// by the OS and need not yield explicitly.
func (f *Factory) Cooperative() bool { return false }
