// Package middleware exposes HTTP middleware that gates routes on the mock session
// engine's active session.
//
// [RequireSession] reads the Authorization header, compares the bearer token with
// the token of the active session and injects that session into the request
// context, where [SessionFromContext] finds it.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It does NOT create or
// clear sessions; only Engine.Login and Engine.Logout do that.
//
// # What this package must NOT do
//
//   - Access the session holder directly.
//   - Apply the simulated network delay.
package middleware
