// File: ksync/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Mutual-exclusion primitives: a user-mode futex mutex with a one-CAS
// uncontended path, a native mutex shim over sync.Mutex, and a no-op
// mutex for the single-threaded emulated backend.
//
// The futex mutex parks waiters in the kernel on Linux and Windows; on
// other platforms a process-local wait table keyed by state address
// provides the same wait/wake semantics.
package ksync
