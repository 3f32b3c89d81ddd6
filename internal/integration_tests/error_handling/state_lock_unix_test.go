//go:build unix

package integration_tests

import (
	"testing"

	"github.com/specialistvlad/rigup/internal/cli"
	"github.com/specialistvlad/rigup/internal/state"
	"github.com/specialistvlad/rigup/internal/testutil"
	"github.com/specialistvlad/rigup/internal/testutil/apptest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestErrorHandling_ConcurrentRunIsRejected checks that a second process
// cannot use a state file that is already open.
func TestErrorHandling_ConcurrentRunIsRejected(t *testing.T) {
	env := apptest.New(t, map[string]string{"components.yaml": workstation})
	held, err := state.OpenFile(env.StateFile, "")
	require.NoError(t, err)
	defer held.Close()
	runner := testutil.NewFakeRunner()

	res := env.Run(runner, "--all")

	assert.Equal(t, cli.ExitStateIO, res.ExitCode, res.Err)
	assert.ErrorContains(t, res.Err, "locked")
	assert.Empty(t, runner.Calls())
}
