// File: fiber/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Lock-free fiber scheduler: lightweight units of deferred work
// multiplexed over a fixed pool of worker threads. The run queue is an
// unbounded LIFO stack updated with compare-and-swap; workers pop
// fibers and run each worker function once to completion, with no
// preemption and no fairness promise.
//
// Worker threads come from an api.ThreadFactory, so the same scheduler
// runs on real OS threads or on the cooperative emulated backend.
package fiber
