// File: ksync/mutex.go
// Package ksync implements the user-mode futex mutex.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// State is a single int32: 0 unlocked, 1 locked. The uncontended path
// is one CAS with no syscall. Contended lockers wait on the state word
// while it reads locked and retry the CAS after every wake; unlock is a
// release store followed by waking at most one waiter, issued whether
// or not anyone waits.

package ksync

import (
	"sync/atomic"

	"github.com/momentics/hioload-fiber/api"
)

const (
	mutexUnlocked = 0
	mutexLocked   = 1
)

// FutexMutex is a non-recursive user-mode mutex. It must not be copied
// after first use. The zero value is an unlocked mutex.
type FutexMutex struct {
	_     noCopy
	state int32
}

var _ api.Mutex = (*FutexMutex)(nil)

// NewFutexMutex allocates an unlocked mutex.
func NewFutexMutex() *FutexMutex {
	return &FutexMutex{}
}

// Lock acquires the mutex, blocking until it is available. Locking a
// mutex already held by the caller deadlocks.
func (m *FutexMutex) Lock() {
	// Fast path.
	if atomic.CompareAndSwapInt32(&m.state, mutexUnlocked, mutexLocked) {
		return
	}
	m.lockSlow()
}

func (m *FutexMutex) lockSlow() {
	for {
		// Park while the word reads locked. Spurious wakeups and
		// EAGAIN (value changed before sleeping) just loop back to
		// the re-check.
		for atomic.LoadInt32(&m.state) != mutexUnlocked {
			futexWait(&m.state, mutexLocked)
		}
		if atomic.CompareAndSwapInt32(&m.state, mutexUnlocked, mutexLocked) {
			return
		}
	}
}

// Unlock releases the mutex and wakes at most one waiter. Unlocking a
// mutex not held by the caller is undefined.
func (m *FutexMutex) Unlock() {
	atomic.StoreInt32(&m.state, mutexUnlocked)
	futexWake(&m.state, 1)
}

// TryLock attempts the acquisition fast path without blocking.
func (m *FutexMutex) TryLock() bool {
	return atomic.CompareAndSwapInt32(&m.state, mutexUnlocked, mutexLocked)
}

// Destroy invalidates the mutex. Returns false on a nil handle. The
// mutex must not be used afterwards; waiters still parked on it at
// Destroy time are undefined behavior, as with the native primitive.
func (m *FutexMutex) Destroy() bool {
	return m != nil
}

// noCopy triggers go vet's copylocks check on value copies.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
