package state

import (
	"errors"
	"fmt"
)

// Store records completed component ids for one run.
type Store interface {
	// IsDone reports whether id completed in the current run.
	IsDone(id string) bool
	// MarkDone records id as completed. The record is durable when it returns.
	MarkDone(id string) error
	// Reset clears all records and starts a new run.
	Reset() error
	// Close releases resources held by the store.
	Close() error
}

var (
	// ErrStateIO matches any StateStoreIOError.
	ErrStateIO = errors.New("state store I/O error")
	// ErrLocked is wrapped by a StateStoreIOError when another process holds
	// the state file.
	ErrLocked = errors.New("state file is locked by another process")
)

// StateStoreIOError reports a failure to read or persist run state.
type StateStoreIOError struct {
	Op   string
	Path string
	Err  error
}

func (e *StateStoreIOError) Error() string {
	return fmt.Sprintf("state store %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StateStoreIOError) Is(target error) bool { return target == ErrStateIO }

func (e *StateStoreIOError) Unwrap() error { return e.Err }
