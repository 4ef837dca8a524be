// Package session provides the active-session slot used by the mock login engine,
// the [Session] model, and a compact binary encoding for Redis-backed slots.
//
// # Holders
//
// A [Holder] owns exactly one slot. [MemoryHolder] keeps it in process memory behind a
// mutex; [Store] keeps it in Redis under a single key so separate processes can share
// the same slot. Both make "take and clear" a single atomic step.
//
// # Architecture boundaries
//
// This package owns the slot and its encoding. Credential rules, latency and
// diagnostics belong to the Engine.
//
// # What this package must NOT do
//
//   - Import goMockAuth (no upward imports).
//   - Hold more than one session per holder.
package session
