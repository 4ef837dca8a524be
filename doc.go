// Package goMockAuth provides a mock login service for teaching state management:
// it simulates network latency, validates credentials with a handful of in-memory
// rules, and keeps a single active session made of two random identifiers.
//
// Nothing here authenticates anyone. The service exists so that UI code has a
// realistic asynchronous login/logout surface to manage state around.
//
// # Architecture boundaries
//
// goMockAuth is the public surface. It exposes [Engine], [Builder], [Config], the
// [ValidationError] type and the metrics and audit value types. The active-session
// slot lives in package session and is injected through the Builder, so there is no
// hidden process-wide state.
//
// # What this package must NOT do
//
//   - Persist credentials or hash passwords.
//   - Hold more than one active session per Engine.
//   - Swallow errors: every failure is logged (when debug is on) and returned.
package goMockAuth
