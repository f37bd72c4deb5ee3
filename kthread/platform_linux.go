// File: kthread/platform_linux.go
//go:build linux
// +build linux

//
// Linux priority and affinity application via golang.org/x/sys/unix.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package kthread

import (
	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-fiber/api"
)

// niceFor maps the portable priority levels onto nice values.
func niceFor(p api.Priority) int {
	switch p {
	case api.PriorityLow:
		return 10
	case api.PriorityHigh:
		return -10
	default:
		return 0
	}
}

// applyPriority sets the calling thread's nice value. Raising priority
// needs CAP_SYS_NICE; EPERM and EACCES are swallowed since priority is
// best effort.
func applyPriority(p api.Priority) error {
	if p == api.PriorityDefault {
		return nil
	}
	tid := unix.Gettid()
	err := unix.Setpriority(unix.PRIO_PROCESS, tid, niceFor(p))
	if err == unix.EPERM || err == unix.EACCES {
		return nil
	}
	return err
}

// pinThread binds the calling thread to a single CPU.
func pinThread(cpu int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	return unix.SchedSetaffinity(0, &set)
}
