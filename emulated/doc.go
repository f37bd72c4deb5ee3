// File: emulated/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Cooperative tick-driven thread scheduler for environments without a
// native threading facility, and for deterministic tests and simulations.
// All threads share one logical thread of control: a tick dispatches at
// most one worker invocation, chosen by priority then creation order.
//
// The scheduler is NOT safe for concurrent use. Tick, Join and every
// thread operation must run on the same goroutine.
package emulated
