// File: ksync/waittable.go
// Package ksync implements the portable futex wait table.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Process-local wait/wake keyed by state-word address, mirroring the
// kernel futex hash: fixed bucket array, per-bucket lock and a FIFO
// queue of parked waiters. The expected-value re-check happens under
// the bucket lock, so an unlocker that stores before waking can never
// lose a waiter that parked after its store.

package ksync

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/eapache/queue"
)

const waitTableBuckets = 64 // power of two

type waiter struct {
	addr *int32
	ch   chan struct{}
}

type waitBucket struct {
	mu      sync.Mutex
	waiters *queue.Queue // *waiter, FIFO
}

// waitTable provides futex semantics for addresses within one process.
type waitTable struct {
	buckets [waitTableBuckets]waitBucket
}

func newWaitTable() *waitTable {
	t := &waitTable{}
	for i := range t.buckets {
		t.buckets[i].waiters = queue.New()
	}
	return t
}

func (t *waitTable) bucket(addr *int32) *waitBucket {
	// The word is 4-byte aligned; drop the dead low bits before
	// folding into the bucket index.
	h := uintptr(unsafe.Pointer(addr)) >> 2
	return &t.buckets[h&(waitTableBuckets-1)]
}

// wait parks the caller until a wake on addr, unless *addr no longer
// reads expected at park time.
func (t *waitTable) wait(addr *int32, expected int32) {
	b := t.bucket(addr)
	b.mu.Lock()
	if atomic.LoadInt32(addr) != expected {
		b.mu.Unlock()
		return
	}
	w := &waiter{addr: addr, ch: make(chan struct{})}
	b.waiters.Add(w)
	b.mu.Unlock()
	<-w.ch
}

// parked counts waiters currently parked on addr.
func (t *waitTable) parked(addr *int32) int {
	b := t.bucket(addr)
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for i := 0; i < b.waiters.Length(); i++ {
		if b.waiters.Get(i).(*waiter).addr == addr {
			n++
		}
	}
	return n
}

// wake releases up to n waiters parked on addr in FIFO order and
// returns how many it woke. Waiters of other addresses sharing the
// bucket are cycled back preserving their order.
func (t *waitTable) wake(addr *int32, n int32) int {
	if n <= 0 {
		return 0
	}
	b := t.bucket(addr)
	b.mu.Lock()
	woken := int32(0)
	for i, sz := 0, b.waiters.Length(); i < sz; i++ {
		w := b.waiters.Remove().(*waiter)
		if woken < n && w.addr == addr {
			close(w.ch)
			woken++
			continue
		}
		b.waiters.Add(w)
	}
	b.mu.Unlock()
	return int(woken)
}
