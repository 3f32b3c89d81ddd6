package task

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/specialistvlad/rigup/internal/ctxlog"
)

// ExitCodeError reports a command that ran and exited non-zero.
type ExitCodeError struct {
	Command string
	Code    int
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("command %q exited with status %d", e.Command, e.Code)
}

// ExecRunner runs command references as child processes. On unix each
// command gets its own process group, which is killed as a whole when the
// attempt's context ends.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
	// Env is appended to the parent environment.
	Env []string
	// WaitDelay bounds how long to wait for output pipes, and for the rest of
	// the process group to exit, after the command is killed on timeout.
	WaitDelay time.Duration
}

// NewExecRunner returns a runner wired to the given output streams.
func NewExecRunner(stdout, stderr io.Writer) *ExecRunner {
	return &ExecRunner{Stdout: stdout, Stderr: stderr, WaitDelay: 5 * time.Second}
}

// Run implements Runner. Handler references are rejected.
func (r *ExecRunner) Run(ctx context.Context, id string, ref Ref) error {
	if ref.IsHandler() {
		return fmt.Errorf("%w: exec runner cannot run handler %q", ErrInvalidRef, ref.Handler)
	}
	logger := ctxlog.FromContext(ctx).With("component", id)

	cmd := exec.CommandContext(ctx, ref.Command, ref.Args...)
	cmd.Dir = ref.Dir
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	cmd.WaitDelay = r.WaitDelay
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}

	setProcessGroup(cmd)

	logger.Debug("Starting command.", "command", ref.Command, "args", ref.Args, "dir", ref.Dir)
	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		if cmd.Process != nil && !waitProcessGroup(cmd.Process.Pid, r.WaitDelay) {
			logger.Warn("Processes started by the command outlived the kill.", "command", ref.Command, "pgid", cmd.Process.Pid)
		}
		return fmt.Errorf("command %q interrupted: %w", ref.Command, ctxErr)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitCodeError{Command: ref.Command, Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("failed to run command %q: %w", ref.Command, err)
	}
	logger.Debug("Command finished.", "command", ref.Command)
	return nil
}
