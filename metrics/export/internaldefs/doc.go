// Package internaldefs holds the metric names, help strings and bucket bounds shared
// by the exporter packages.
//
// Both the Prometheus and OTel exporters read from here so that they publish
// identical names and buckets.
//
// # What this package must NOT do
//
//   - Import any exporter package.
//   - Perform I/O.
package internaldefs
