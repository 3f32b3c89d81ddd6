package executor

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrTaskTimeout matches any TaskTimeoutError.
	ErrTaskTimeout = errors.New("task timed out")
	// ErrTaskExecution matches any TaskExecutionError.
	ErrTaskExecution = errors.New("task failed")
	// ErrInterrupted is returned by Run when its context is cancelled before
	// the plan is finished.
	ErrInterrupted = errors.New("run interrupted")
)

// TaskTimeoutError reports an attempt that hit its timeout.
type TaskTimeoutError struct {
	ID      string
	Attempt int
	Timeout time.Duration
}

func (e *TaskTimeoutError) Error() string {
	return fmt.Sprintf("component %q attempt %d timed out after %s", e.ID, e.Attempt, e.Timeout)
}

func (e *TaskTimeoutError) Is(target error) bool { return target == ErrTaskTimeout }

// TaskExecutionError reports an attempt whose task returned an error.
type TaskExecutionError struct {
	ID      string
	Attempt int
	Err     error
}

func (e *TaskExecutionError) Error() string {
	return fmt.Sprintf("component %q attempt %d failed: %v", e.ID, e.Attempt, e.Err)
}

func (e *TaskExecutionError) Is(target error) bool { return target == ErrTaskExecution }

func (e *TaskExecutionError) Unwrap() error { return e.Err }
