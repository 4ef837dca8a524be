// Package httpapi is the demo UI host for the mock session engine.
//
// Routes, all JSON:
//
//	POST /api/login    {"username","password"} -> {"userId","token"}
//	POST /api/logout   -> {"session": {...} | null}
//	GET  /api/session  -> {"session": {...} | null}
//	GET  /api/whoami   bearer token of the active session -> {"userId"}
//	GET  /metrics      Prometheus exposition, when mounted
//
// Validation failures answer 400 with {"error": message}, or 409 for a reserved
// username.
package httpapi
