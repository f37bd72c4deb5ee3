// File: api/types.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Shared API-level type declarations and constants for the concurrency runtime.

package api

import (
	"fmt"
	"time"
)

// Priority is the scheduling priority of a kernel thread or fiber.
// The ordering Low < Default < High is relied upon by schedulers that
// compare priorities numerically. The zero value is PriorityDefault.
type Priority int

const (
	PriorityLow     Priority = iota - 1
	PriorityDefault          // zero value
	PriorityHigh
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityHigh:
		return "high"
	default:
		return "default"
	}
}

// ParsePriority maps a config string to a Priority. Unknown values fall
// back to PriorityDefault so config files stay forward compatible.
func ParsePriority(s string) Priority {
	switch s {
	case "low":
		return PriorityLow
	case "high":
		return PriorityHigh
	default:
		return PriorityDefault
	}
}

// ThreadState enumerates the lifecycle of a cooperatively scheduled thread.
type ThreadState int32

const (
	ThreadReady ThreadState = iota
	ThreadRunning
	ThreadSleeping
	ThreadDone
)

func (s ThreadState) String() string {
	switch s {
	case ThreadReady:
		return "ready"
	case ThreadRunning:
		return "running"
	case ThreadSleeping:
		return "sleeping"
	case ThreadDone:
		return "done"
	default:
		return "unknown"
	}
}

// FiberState enumerates the lifecycle of a fiber inside the run queue.
type FiberState int32

const (
	FiberPending FiberState = iota
	FiberQueued
	FiberRunning
	FiberFinished
)

func (s FiberState) String() string {
	switch s {
	case FiberPending:
		return "pending"
	case FiberQueued:
		return "queued"
	case FiberRunning:
		return "running"
	case FiberFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Backend selects the threading implementation behind a runtime instance.
type Backend int

const (
	// BackendNative runs workers on real OS threads.
	BackendNative Backend = iota
	// BackendEmulated multiplexes workers over a cooperative tick-driven
	// scheduler on a single logical thread.
	BackendEmulated
)

func (b Backend) String() string {
	switch b {
	case BackendEmulated:
		return "emulated"
	default:
		return "native"
	}
}

// ParseBackend maps a config string to a Backend.
func ParseBackend(s string) (Backend, error) {
	switch s {
	case "", "native":
		return BackendNative, nil
	case "emulated":
		return BackendEmulated, nil
	default:
		return BackendNative, fmt.Errorf("%w: backend %q", ErrInvalidArgument, s)
	}
}

// RuntimeInfo exposes descriptive build- and runtime info for external tools.
type RuntimeInfo struct {
	Name      string
	Version   string
	Backend   Backend
	Workers   int
	StartedAt time.Time
}
