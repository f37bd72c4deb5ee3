// File: ksync/noop.go
// Package ksync provides the no-op mutex for the emulated backend.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package ksync

import "github.com/momentics/hioload-fiber/api"

// NoopMutex satisfies api.Mutex without synchronizing anything. On the
// emulated backend all threads share one logical thread of control, so
// no two critical sections can ever overlap.
type NoopMutex struct{}

var _ api.Mutex = (*NoopMutex)(nil)

// NewNoopMutex allocates a no-op mutex.
func NewNoopMutex() *NoopMutex {
	return &NoopMutex{}
}

func (m *NoopMutex) Lock() {}

func (m *NoopMutex) Unlock() {}

func (m *NoopMutex) TryLock() bool { return true }

func (m *NoopMutex) Destroy() bool { return m != nil }
