// Package app contains the core application logic. It wires the manifest
// loader, resolver, state store, task runner and progress sinks together
// and exposes the three things the command line can ask for: run a
// selection, validate it, or print its dependency graph. It is decoupled
// from any specific entrypoint like a CLI or server.
package app
