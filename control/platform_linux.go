//go:build linux
// +build linux

// control/platform_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux-specific platform metrics and debug probe integrations.

package control

import (
	"os"
	"runtime"
	"strings"
)

// RegisterPlatformProbes sets Linux-specific debug probes.
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

// numaNodeCount reads the node topology from sysfs. Returns 1 when the
// hierarchy is absent (non-NUMA kernels, containers without /sys).
func numaNodeCount() int {
	entries, err := os.ReadDir("/sys/devices/system/node")
	if err != nil {
		return 1
	}
	count := 0
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, "node") && len(name) > 4 {
			count++
		}
	}
	if count == 0 {
		return 1
	}
	return count
}
