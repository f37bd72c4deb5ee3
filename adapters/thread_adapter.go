// File: adapters/thread_adapter.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Backend selection for thread factories. Maps the api.Backend enum onto the
// concrete kthread (OS threads) or emulated (tick-driven) implementations so
// callers configure the backend by name without importing either package.

package adapters

import (
	"fmt"

	"github.com/momentics/hioload-fiber/api"
	"github.com/momentics/hioload-fiber/emulated"
	"github.com/momentics/hioload-fiber/kthread"
)

// NewThreadFactory returns a thread factory for the requested backend.
//
// BackendNative yields OS worker threads with default pinning and priority
// behavior; construct kthread.Factory directly when those need tuning.
// BackendEmulated yields a factory over a fresh single-owner tick scheduler,
// reachable via the returned factory's Scheduler accessor.
func NewThreadFactory(backend api.Backend) (api.ThreadFactory, error) {
	switch backend {
	case api.BackendNative:
		return kthread.NewFactory(), nil
	case api.BackendEmulated:
		return emulated.NewFactory(emulated.New()), nil
	default:
		return nil, fmt.Errorf("adapters: backend %d: %w", int(backend), api.ErrInvalidArgument)
	}
}
