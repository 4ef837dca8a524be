// Package otel binds mock session engine metrics to OpenTelemetry instruments.
//
// [NewOTelExporter] registers an Int64ObservableCounter per engine counter and an
// Int64ObservableGauge per latency histogram bucket. A single callback reads
// [goMockAuth.Engine.MetricsSnapshot] on each collection cycle.
//
// # What this package must NOT do
//
//   - Own the OTel MeterProvider. Callers supply the Meter.
//   - Mutate engine state.
package otel
