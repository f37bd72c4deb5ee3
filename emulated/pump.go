// File: emulated/pump.go
// Package emulated implements the tick pump with adaptive backoff.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package emulated

import (
	"runtime"
	"sync/atomic"
	"time"
)

// Pump drives a Scheduler's Tick in a loop, backing off adaptively
// while no thread is dispatchable.
//
// Run executes on the caller's goroutine, which becomes the scheduler's
// single logical thread. Stop may be called from any other goroutine,
// but never from inside a worker invocation: it waits for the loop to
// exit, and the loop is blocked inside that very invocation. Every
// other scheduler call must happen before Run or from inside a worker
// invocation.
type Pump struct {
	sched     *Scheduler
	stopCh    chan struct{}
	running   int32
	stopReq   int32
	stopped   int32
	backoffNs int64
}

// NewPump creates a pump over s.
func NewPump(s *Scheduler) *Pump {
	return &Pump{
		sched:     s,
		stopCh:    make(chan struct{}),
		backoffNs: 1,
	}
}

// Run ticks the scheduler until Stop. A pump cannot be reused after it
// returns.
func (p *Pump) Run() {
	if !atomic.CompareAndSwapInt32(&p.running, 0, 1) {
		return
	}
	defer atomic.StoreInt32(&p.stopped, 1)
	for {
		select {
		case <-p.stopCh:
			return
		default:
			if p.sched.Tick() {
				atomic.StoreInt64(&p.backoffNs, 1)
			} else {
				p.adaptiveBackoff()
			}
		}
	}
}

// Stop terminates Run and waits for the loop to exit. Stop is
// idempotent.
func (p *Pump) Stop() {
	if atomic.LoadInt32(&p.running) != 1 {
		return
	}
	if atomic.CompareAndSwapInt32(&p.stopReq, 0, 1) {
		close(p.stopCh)
	}
	for atomic.LoadInt32(&p.stopped) == 0 {
		time.Sleep(time.Microsecond)
	}
}

func (p *Pump) adaptiveBackoff() {
	select {
	case <-p.stopCh:
		return
	default:
	}
	backoff := atomic.LoadInt64(&p.backoffNs)
	if backoff < 1000 {
		time.Sleep(time.Microsecond)
	} else {
		runtime.Gosched()
	}
	next := backoff * 2
	if next > 1_000_000 {
		next = 1_000_000
	}
	atomic.StoreInt64(&p.backoffNs, next)
}
