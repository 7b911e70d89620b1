// Package engine provides the low-level script engine glue for realms.
//
// This package wraps goja VM construction and hardening, and exposes the
// value-inspection helpers the transfer classifier and the codecs rely on.
//
// # VM Construction
//
// NewVM builds a hardened goja runtime:
//
//   - node-flavored globals (require, process, module, exports) are removed
//   - call stack depth is capped
//   - console output, when enabled, is routed to the package logger
//
// The returned runtime is owned by exactly one realm loop; nothing in this
// package synchronizes access to it.
//
// # Value Inspection
//
// AsPromise, IsPrimitive, IsError and TypeOf classify script values without
// touching realm state. They are safe to call from whichever goroutine
// currently owns the value's runtime.
//
// Most users should use the realm package for a complete realm.
// This package is for advanced use cases requiring direct control.
package engine
