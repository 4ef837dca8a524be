// Package logging builds the logrus logger used by the mockauth command: level
// parsing, optional JSON formatting, and a size-rotated log file next to or
// instead of stdout.
package logging
