// control/hotreload.go
// Instance-scoped hot-reload hook bus for config changes.
// Adds a TriggerSync for deterministic test notification.

package control

import "sync"

// ReloadBus fans out reload notifications to registered listeners.
// Each runtime owns its own bus; there is no process-wide hook list.
type ReloadBus struct {
	mu    sync.Mutex
	hooks []func()
}

// NewReloadBus creates an empty bus.
func NewReloadBus() *ReloadBus {
	return &ReloadBus{}
}

// Register adds a new component reload listener.
func (rb *ReloadBus) Register(fn func()) {
	rb.mu.Lock()
	rb.hooks = append(rb.hooks, fn)
	rb.mu.Unlock()
}

// Trigger dispatches all reload hooks asynchronously.
func (rb *ReloadBus) Trigger() {
	rb.mu.Lock()
	hooks := append([]func(){}, rb.hooks...)
	rb.mu.Unlock()
	for _, fn := range hooks {
		go fn()
	}
}

// TriggerSync invokes all reload hooks synchronously (for test determinism).
func (rb *ReloadBus) TriggerSync() {
	rb.mu.Lock()
	hooks := append([]func(){}, rb.hooks...)
	rb.mu.Unlock()
	for _, fn := range hooks {
		fn()
	}
}
