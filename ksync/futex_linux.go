// File: ksync/futex_linux.go
//go:build linux
// +build linux

//
// Kernel futex wait/wake via golang.org/x/sys/unix.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package ksync

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// golang.org/x/sys/unix exposes SYS_FUTEX but not the futex op
// constants; these are the fixed Linux ABI values (FUTEX_WAIT=0,
// FUTEX_WAKE=1, FUTEX_PRIVATE_FLAG=0x80).
const (
	futexOpWait  = 0
	futexOpWake  = 1
	futexPrivate = 0x80

	futexWaitPrivate = futexOpWait | futexPrivate
	futexWakePrivate = futexOpWake | futexPrivate
)

// futexWait parks the calling thread while *addr == expected. Returns
// on wake, on EAGAIN when the value changed before sleeping, and on
// EINTR; the caller re-checks and loops.
func futexWait(addr *int32, expected int32) {
	_, _, _ = unix.Syscall6(unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		uintptr(futexWaitPrivate),
		uintptr(expected),
		0, 0, 0)
}

// futexWake wakes up to n threads parked on addr.
func futexWake(addr *int32, n int32) {
	_, _, _ = unix.Syscall6(unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		uintptr(futexWakePrivate),
		uintptr(n),
		0, 0, 0)
}
