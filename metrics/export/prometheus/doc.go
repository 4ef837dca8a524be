// Package prometheus exposes mock session engine metrics through client_golang.
//
// [Collector] implements prometheus.Collector and turns every engine counter into a
// mockauth_*_total counter and the latency histogram into
// mockauth_simulated_latency_seconds. [Handler] serves a collector from its own
// registry.
//
// # What this package must NOT do
//
//   - Register metrics in the global Prometheus registry. Callers mount the Handler
//     or register the Collector themselves.
//   - Mutate engine state.
package prometheus
