package cli

import (
	"errors"

	"github.com/specialistvlad/rigup/internal/executor"
	"github.com/specialistvlad/rigup/internal/graph"
	"github.com/specialistvlad/rigup/internal/state"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitIncomplete  = 1 // some component FAILED or SKIPPED
	ExitUsage       = 2
	ExitConfigParse = 3
	ExitUnknown     = 4
	ExitCycle       = 5
	ExitStateIO     = 6
	ExitInterrupted = 130
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// exitCode maps a fatal application error to its exit code.
func exitCode(err error) int {
	switch {
	case errors.Is(err, executor.ErrInterrupted):
		return ExitInterrupted
	case errors.Is(err, graph.ErrConfigParse):
		return ExitConfigParse
	case errors.Is(err, graph.ErrUnknownComponent):
		return ExitUnknown
	case errors.Is(err, graph.ErrCycle):
		return ExitCycle
	case errors.Is(err, state.ErrStateIO):
		return ExitStateIO
	default:
		return ExitIncomplete
	}
}
