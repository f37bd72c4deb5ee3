// File: fiber/runqueue.go
// Package fiber implements the lock-free LIFO run queue.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Treiber stack over single-use nodes. Every push allocates a fresh
// node, and a popped node is never pushed again, so a given node can
// be the head CAS target at most once in its lifetime; the classic ABA
// reuse hazard cannot arise. A slow popper holding a stale node keeps
// it alive through the garbage collector and its CAS simply fails.
// Double-enqueue of one fiber is excluded one level up by the fiber's
// Queued state, so no fiber ever spans two live nodes.

package fiber

import "sync/atomic"

type node struct {
	fiber *Fiber
	next  *node // written only before the publishing CAS
}

// runQueue is an unbounded LIFO stack safe for concurrent push and pop
// from any number of threads.
type runQueue struct {
	head   atomic.Pointer[node]
	length atomic.Int64 // observational, updated after the fact
}

// push enqueues f. The new node is published by the head CAS, which
// also orders the node field writes before any reader.
func (q *runQueue) push(f *Fiber) {
	n := &node{fiber: f}
	for {
		old := q.head.Load()
		n.next = old
		if q.head.CompareAndSwap(old, n) {
			q.length.Add(1)
			return
		}
	}
}

// pop removes and returns the most recently pushed fiber, or nil when
// the queue is empty. A successful CAS transfers node ownership to the
// caller.
func (q *runQueue) pop() *Fiber {
	for {
		old := q.head.Load()
		if old == nil {
			return nil
		}
		if q.head.CompareAndSwap(old, old.next) {
			q.length.Add(-1)
			return old.fiber
		}
	}
}

// len returns the approximate queue depth.
func (q *runQueue) len() int {
	n := q.length.Load()
	if n < 0 {
		return 0
	}
	return int(n)
}
