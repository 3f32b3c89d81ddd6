// Package inmemorystore provides an ephemeral, thread-safe, in-memory
// implementation of the state.Store interface. It backs dry runs, where no
// state may be persisted, and tests.
package inmemorystore
