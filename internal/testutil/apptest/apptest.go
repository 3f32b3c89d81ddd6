// Package apptest runs the whole command line in-process for integration
// tests.
package apptest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/rigup/internal/app"
	"github.com/specialistvlad/rigup/internal/cli"
	"github.com/specialistvlad/rigup/internal/task"
	"github.com/specialistvlad/rigup/internal/testutil"
)

// Result holds the outcomes of one command line run.
type Result struct {
	Out      string
	Logs     string
	Err      error
	ExitCode int
	// StateFile is the state file the run used.
	StateFile string
}

// Env is a working directory with manifests and a state file location.
type Env struct {
	t         *testing.T
	Dir       string
	StateFile string
}

// New writes files into a temporary directory.
func New(t *testing.T, files map[string]string) *Env {
	t.Helper()
	dir := testutil.WriteFiles(t, files)
	return &Env{t: t, Dir: dir, StateFile: filepath.Join(dir, ".rigup-state.json")}
}

// Path returns name resolved inside the environment.
func (e *Env) Path(name string) string {
	return filepath.Join(e.Dir, filepath.FromSlash(name))
}

// Run executes the command line with the environment's directory as the
// manifest path and state file location, unless args override them. A nil
// runner executes real commands.
func (e *Env) Run(runner task.Runner, args ...string) *Result {
	e.t.Helper()
	return e.RunWithContext(context.Background(), runner, args...)
}

// RunWithContext is Run with a caller supplied context.
func (e *Env) RunWithContext(ctx context.Context, runner task.Runner, args ...string) *Result {
	e.t.Helper()

	full := []string{"-f", e.Dir, "--state-file", e.StateFile, "--no-color", "--log-level", "debug"}
	full = append(full, args...)

	var opts []app.Option
	if runner != nil {
		opts = append(opts, app.WithRunner(runner))
	}

	out, logs := &testutil.SafeBuffer{}, &testutil.SafeBuffer{}
	err := cli.Execute(ctx, full, out, logs, opts...)

	if os.Getenv("RIGUP_TEST_LOGS") == "true" {
		e.t.Logf("--- Output for %s ---\n%s", e.t.Name(), out.String())
		e.t.Logf("--- Full Log Output for %s ---\n%s", e.t.Name(), logs.String())
	}

	res := &Result{Out: out.String(), Logs: logs.String(), Err: err, StateFile: e.StateFile}
	var exitErr *cli.ExitError
	switch {
	case err == nil:
		res.ExitCode = cli.ExitOK
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.Code
	default:
		res.ExitCode = -1
	}
	return res
}
