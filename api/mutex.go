// Package api
// Author: momentics
//
// Mutual-exclusion contract satisfied by the futex, native and no-op locks.

package api

// Mutex is a non-recursive mutual-exclusion lock.
//
// Implementations guarantee mutual exclusion and a happens-before edge
// from Unlock to the subsequent Lock. They do not guarantee fairness,
// bounded waiting, or recursion; locking a mutex already held by the
// caller deadlocks.
type Mutex interface {
	// Lock acquires the mutex, blocking until it is available.
	Lock()

	// Unlock releases the mutex. Unlocking a mutex not held by the
	// caller is undefined.
	Unlock()

	// TryLock attempts the acquisition fast path without blocking.
	TryLock() bool

	// Destroy releases any backing resources. Returns false on a nil
	// handle. The mutex must not be used afterwards.
	Destroy() bool
}
