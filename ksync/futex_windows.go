// File: ksync/futex_windows.go
//go:build windows
// +build windows

//
// Futex analog via WaitOnAddress / WakeByAddressSingle.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package ksync

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modSynch                = windows.NewLazySystemDLL("api-ms-win-core-synch-l1-2-0.dll")
	procWaitOnAddress       = modSynch.NewProc("WaitOnAddress")
	procWakeByAddressSingle = modSynch.NewProc("WakeByAddressSingle")
)

// futexWait parks the calling thread while *addr == expected. Spurious
// returns are allowed; the caller re-checks and loops.
func futexWait(addr *int32, expected int32) {
	cmp := expected
	_, _, _ = procWaitOnAddress.Call(
		uintptr(unsafe.Pointer(addr)),
		uintptr(unsafe.Pointer(&cmp)),
		unsafe.Sizeof(*addr),
		uintptr(windows.INFINITE),
	)
}

// futexWake wakes up to n threads parked on addr.
func futexWake(addr *int32, n int32) {
	for i := int32(0); i < n; i++ {
		_, _, _ = procWakeByAddressSingle.Call(uintptr(unsafe.Pointer(addr)))
	}
}
