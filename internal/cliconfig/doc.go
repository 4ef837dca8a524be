// Package cliconfig loads the mockauth command configuration from an optional TOML
// file, an optional .env file and the process environment, in increasing order of
// precedence.
package cliconfig
