// File: ksync/native.go
// Package ksync provides the OS-backed mutex shim.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package ksync

import (
	"sync"

	"github.com/momentics/hioload-fiber/api"
)

// NativeMutex adapts sync.Mutex to the api.Mutex contract for callers
// that want the runtime's own lock instead of the user-mode futex path.
type NativeMutex struct {
	mu sync.Mutex
}

var _ api.Mutex = (*NativeMutex)(nil)

// NewNativeMutex allocates an unlocked native mutex.
func NewNativeMutex() *NativeMutex {
	return &NativeMutex{}
}

func (m *NativeMutex) Lock() { m.mu.Lock() }

func (m *NativeMutex) Unlock() { m.mu.Unlock() }

func (m *NativeMutex) TryLock() bool { return m.mu.TryLock() }

// Destroy returns false on a nil handle; sync.Mutex itself needs no
// teardown.
func (m *NativeMutex) Destroy() bool { return m != nil }
