//go:build windows
// +build windows

// control/platform_windows.go
// Author: momentics <momentics@gmail.com>
//
// Windows-specific metrics/debug introspection points.

package control

import (
	"runtime"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	procGetNumaHighestNodeNumber = windows.NewLazySystemDLL("kernel32.dll").NewProc("GetNumaHighestNodeNumber")
)

// RegisterPlatformProbes sets Windows-specific debug probes.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
	dp.RegisterProbe("platform.gomaxprocs", func() any {
		return runtime.GOMAXPROCS(0)
	})
	dp.RegisterProbe("platform.numa_nodes", func() any {
		return numaNodeCount()
	})
}

// numaNodeCount queries the highest NUMA node number. Returns 1 when the
// call fails or the machine is not NUMA.
func numaNodeCount() int {
	var highest uint32
	ret, _, _ := procGetNumaHighestNodeNumber.Call(uintptr(unsafe.Pointer(&highest)))
	if ret == 0 {
		return 1
	}
	return int(highest) + 1
}
