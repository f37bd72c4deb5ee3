// File: emulated/thread.go
// Package emulated defines the simulated kernel thread.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package emulated

import (
	"github.com/momentics/hioload-fiber/api"
)

// Thread is a simulated kernel thread owned by a Scheduler. Handles
// handed to callers are borrowed; the scheduler table keeps ownership
// until compaction reclaims the entry.
type Thread struct {
	ctx        api.ThreadContext
	worker     api.ThreadWorker
	state      api.ThreadState
	sleepTicks int
	exitCode   int
	joined     bool
	started    bool
	prio       api.Priority
}

// ID returns the scheduler-assigned thread identity.
func (t *Thread) ID() uint64 { return t.ctx.ID }

// State returns the current lifecycle state.
func (t *Thread) State() api.ThreadState { return t.state }

// Priority returns the recorded scheduling priority.
func (t *Thread) Priority() api.Priority { return t.prio }

// Joined reports whether some caller has claimed this thread's exit code.
func (t *Thread) Joined() bool { return t.joined }

// release drops the references that keep user objects alive once the
// table slot is compacted away.
func (t *Thread) release() {
	t.worker = nil
	t.ctx.Data = nil
}
