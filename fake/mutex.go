// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package fake

import (
	"sync"
	"sync/atomic"

	"github.com/momentics/hioload-fiber/api"
)

// Mutex is an api.Mutex double with real exclusion and call counters.
type Mutex struct {
	mu      sync.Mutex
	locks   atomic.Int64
	unlocks atomic.Int64
	tries   atomic.Int64
}

var _ api.Mutex = (*Mutex)(nil)

func (m *Mutex) Lock() {
	m.locks.Add(1)
	m.mu.Lock()
}

func (m *Mutex) Unlock() {
	m.unlocks.Add(1)
	m.mu.Unlock()
}

func (m *Mutex) TryLock() bool {
	m.tries.Add(1)
	return m.mu.TryLock()
}

func (m *Mutex) Destroy() bool { return m != nil }

// Locks reports how many times Lock was called.
func (m *Mutex) Locks() int64 { return m.locks.Load() }

// Unlocks reports how many times Unlock was called.
func (m *Mutex) Unlocks() int64 { return m.unlocks.Load() }

// Tries reports how many times TryLock was called.
func (m *Mutex) Tries() int64 { return m.tries.Load() }
