// Package cli implements the command-line interface for fosdem-speakers.
//
// The cli package provides the Cobra-based CLI. A bare invocation walks a
// descending range of years and prints one summary line per year; the
// --tracks flag (or the tracks subcommand) breaks one year down by track,
// and the status subcommand reports what is already in the page cache.
// Settings are resolved through the config package so flags, environment
// variables and a config file all apply.
package cli
