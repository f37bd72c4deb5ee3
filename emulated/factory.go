// File: emulated/factory.go
// Package emulated adapts the Scheduler to api.ThreadFactory.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The factory hands out api.Thread handles over scheduler-owned
// threads. Handles enforce the portable thread contract: the table
// entry is created lazily at Start, so an unstarted handle is invisible
// to tick dispatch. The raw Scheduler keeps the looser semantics where
// Create alone makes a thread dispatchable.

package emulated

import (
	"time"

	"github.com/momentics/hioload-fiber/api"
)

// Factory is the cooperative api.ThreadFactory over a Scheduler.
type Factory struct {
	sched *Scheduler
}

var (
	_ api.ThreadFactory = (*Factory)(nil)
	_ api.TickDriver    = (*Factory)(nil)
)

// NewFactory creates a factory over s.
func NewFactory(s *Scheduler) *Factory {
	return &Factory{sched: s}
}

// Scheduler returns the backing scheduler, for callers that drive
// ticks directly.
func (f *Factory) Scheduler() *Scheduler { return f.sched }

// New creates a suspended emulated thread. The scheduler table entry is
// allocated by Start, so table-capacity errors surface there, not here.
func (f *Factory) New(worker api.ThreadWorker, data any) (api.Thread, error) {
	if worker == nil {
		return nil, api.ErrInvalidArgument
	}
	return &threadHandle{sched: f.sched, worker: worker, data: data}, nil
}

// Yield demotes the thread being invoked back to Ready.
func (f *Factory) Yield() { f.sched.Yield() }

// Sleep puts the thread being invoked to sleep for d worth of ticks.
func (f *Factory) Sleep(d time.Duration) { f.sched.Sleep(d) }

// Cooperative reports true: emulated threads run only inside ticks.
func (f *Factory) Cooperative() bool { return true }

// Drive runs one tick.
func (f *Factory) Drive() bool { return f.sched.Tick() }

// threadHandle enforces the api.Thread contract over a scheduler
// thread. Until Start the worker lives only on the handle and no table
// entry exists, which is what keeps the thread out of dispatch.
type threadHandle struct {
	sched     *Scheduler
	worker    api.ThreadWorker
	data      any
	prio      api.Priority
	t         *Thread // nil until Start
	destroyed bool
}

var _ api.Thread = (*threadHandle)(nil)

func (h *threadHandle) Start() error {
	if h.destroyed {
		return api.ErrInvalidHandle
	}
	if h.t != nil {
		return api.ErrAlreadyStarted
	}
	t, err := h.sched.Create(h.worker, h.data)
	if err != nil {
		return err
	}
	h.sched.SetPriority(t, h.prio)
	h.sched.Start(t)
	h.t = t
	h.worker = nil
	h.data = nil
	return nil
}

func (h *threadHandle) Join() (int, error) {
	if h.t == nil {
		return -1, api.ErrNotStarted
	}
	return h.sched.Join(h.t)
}

func (h *threadHandle) SetPriority(p api.Priority) error {
	h.prio = p
	if h.t != nil {
		h.sched.SetPriority(h.t, p)
	}
	return nil
}

func (h *threadHandle) Destroy() error {
	if h.destroyed {
		return nil
	}
	h.destroyed = true
	if h.t != nil {
		h.sched.Destroy(h.t)
		return nil
	}
	h.worker = nil
	h.data = nil
	return nil
}
