// File: kthread/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Native kernel-thread abstraction: each thread is a goroutine locked to
// an OS thread, created suspended behind a start gate. Supports join with
// exit code, best-effort scheduling priority, and optional CPU pinning.
//
// All implementations are cross-platform (Linux/Windows, generic stub
// elsewhere) and pure Go via golang.org/x/sys; no CGO is required.
package kthread
