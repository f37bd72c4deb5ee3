// Package api
// Author: momentics
//
// Live introspection contract for running schedulers.

package api

// Debug exposes named probes over live runtime state.
type Debug interface {
	// DumpState evaluates every registered probe and returns the
	// results keyed by probe name.
	DumpState() map[string]any

	// RegisterProbe adds a named probe; fn runs on every DumpState.
	RegisterProbe(name string, fn func() any)
}
