// Package cli is responsible for parsing command-line arguments, reading
// settings from the environment and an optional settings file, and handling
// process-level concerns like exit codes. It translates flags into the
// application's internal configuration.
package cli
