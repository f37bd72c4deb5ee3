// File: kthread/platform_windows.go
//go:build windows
// +build windows

//
// Windows priority and affinity application via kernel32.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package kthread

import (
	"golang.org/x/sys/windows"

	"github.com/momentics/hioload-fiber/api"
)

var (
	kernel32                  = windows.NewLazySystemDLL("kernel32.dll")
	procSetThreadPriority     = kernel32.NewProc("SetThreadPriority")
	procSetThreadAffinityMask = kernel32.NewProc("SetThreadAffinityMask")
)

const (
	threadPriorityBelowNormal = ^uintptr(0) // -1
	threadPriorityNormal      = 0
	threadPriorityAboveNormal = 1
)

func priorityClass(p api.Priority) uintptr {
	switch p {
	case api.PriorityLow:
		return threadPriorityBelowNormal
	case api.PriorityHigh:
		return threadPriorityAboveNormal
	default:
		return threadPriorityNormal
	}
}

// applyPriority sets the calling thread's priority class.
func applyPriority(p api.Priority) error {
	if p == api.PriorityDefault {
		return nil
	}
	h := windows.CurrentThread()
	r, _, err := procSetThreadPriority.Call(uintptr(h), priorityClass(p))
	if r == 0 {
		return err
	}
	return nil
}

// pinThread binds the calling thread to a single CPU.
func pinThread(cpu int) error {
	if cpu < 0 || cpu > 63 {
		return api.ErrInvalidArgument
	}
	h := windows.CurrentThread()
	mask := uintptr(1) << uint(cpu)
	r, _, err := procSetThreadAffinityMask.Call(uintptr(h), mask)
	if r == 0 {
		return err
	}
	return nil
}
