// File: kthread/platform_other.go
//go:build !linux && !windows
// +build !linux,!windows

// Package kthread
// Author: momentics <momentics@gmail.com>
//
// Generic stub for platforms without priority or affinity syscalls.
// Priority stays recorded on the handle; pinning is a no-op.

package kthread

import "github.com/momentics/hioload-fiber/api"

func applyPriority(p api.Priority) error { return nil }

func pinThread(cpu int) error { return nil }
