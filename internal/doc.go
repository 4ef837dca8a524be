// Package internal contains helper utilities that are intentionally private to
// goMockAuth, such as identifier generation.
//
// # Sub-packages
//
//   - cliconfig: TOML and .env loading for cmd/mockauth
//   - httpapi: demo HTTP host over the Engine
//   - latency: simulated network latency sources and a context-aware wait
//   - logging: logrus setup shared by the CLI
//
// # What this package must NOT do
//
//   - Export types that appear in the public goMockAuth API.
//   - Be imported by any package outside the goMockAuth module.
package internal
