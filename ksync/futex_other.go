// File: ksync/futex_other.go
//go:build !linux && !windows
// +build !linux,!windows

// Package ksync
// Author: momentics <momentics@gmail.com>
//
// Portable futex backend over the process-local wait table. The table
// is package level because futex identity is the word's address, which
// is process-global, exactly as in the kernel's own hash.

package ksync

var portableWaiters = newWaitTable()

func futexWait(addr *int32, expected int32) {
	portableWaiters.wait(addr, expected)
}

func futexWake(addr *int32, n int32) {
	portableWaiters.wake(addr, n)
}
