// File: facade/config.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Immutable runtime configuration with TOML file loading. All fields
// influence the initialization of internal components and cannot be changed
// at runtime except via the Control interface which triggers hot-reload.

package facade

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds parameters immutable per run.
type Config struct {
	Backend        string `toml:"backend"`         // Thread backend: "native" (OS threads) or "emulated"
	Workers        int    `toml:"workers"`         // Number of scheduler worker threads
	Mutex          string `toml:"mutex"`           // Mutex flavor: "futex", "native", or "noop"
	WorkerPriority string `toml:"worker_priority"` // OS priority hint for workers: "low", "default", "high"
	TickInterval   int64  `toml:"tick_interval"`   // Emulated scheduler tick period, in nanoseconds
	MaxThreads     int    `toml:"max_threads"`     // Emulated thread table cap, 0 = unbounded
	IdleSleep      int64  `toml:"idle_sleep"`      // Native worker sleep on an empty run queue, in nanoseconds
	Batch          int    `toml:"batch"`           // Fibers drained per cooperative worker invocation
	PinCPUs        bool   `toml:"pin_cpus"`        // Whether to pin native workers round-robin over all CPUs
	LockThreads    bool   `toml:"lock_threads"`    // Whether workers dedicate an OS thread
	EnableMetrics  bool   `toml:"enable_metrics"`  // Whether to publish runtime metrics
	EnableDebug    bool   `toml:"enable_debug"`    // Whether to register debug probes
}

// DefaultConfig returns default configuration values.
// These sane defaults support typical use cases without extensive tuning.
func DefaultConfig() *Config {
	return &Config{
		Backend:        "native",                // OS worker threads
		Workers:        4,                       // Four scheduler workers
		Mutex:          "futex",                 // User-mode futex mutex
		WorkerPriority: "default",               // No priority adjustment
		TickInterval:   int64(time.Millisecond), // 1 ms emulated tick
		MaxThreads:     0,                       // Unbounded emulated thread table
		IdleSleep:      int64(time.Millisecond), // 1 ms idle backoff
		Batch:          32,                      // 32 fibers per cooperative drain
		PinCPUs:        false,                   // No CPU pinning by default
		LockThreads:    true,                    // Dedicate an OS thread per worker
		EnableMetrics:  true,                    // Enable built-in metrics
		EnableDebug:    true,                    // Enable debug probes
	}
}

// FromFile loads a TOML configuration file over the defaults, so absent
// keys keep their DefaultConfig values.
func FromFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("facade: load config %s: %w", path, err)
	}
	return cfg, nil
}
