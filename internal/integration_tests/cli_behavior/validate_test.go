package integration_tests

import (
	"testing"

	"github.com/specialistvlad/rigup/internal/testutil"
	"github.com/specialistvlad/rigup/internal/testutil/apptest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCLI_ValidatePrintsPlan resolves a selection and prints the plan.
func TestCLI_ValidatePrintsPlan(t *testing.T) {
	env := apptest.New(t, map[string]string{"components.yaml": workstation})
	runner := testutil.NewFakeRunner()

	res := env.Run(runner, "--validate", "desktop", "fonts")

	require.NoError(t, res.Err)
	assert.Equal(t, "Configuration OK: 4 components, 3 in plan.\n1. devtools\n2. desktop\n3. fonts\n", res.Out)
	assert.Empty(t, runner.Calls())
}

// TestCLI_DryRun walks the plan without running tasks or writing state.
func TestCLI_DryRun(t *testing.T) {
	env := apptest.New(t, map[string]string{"components.yaml": workstation})
	runner := testutil.NewFakeRunner()

	res := env.Run(runner, "--dry-run", "terminal")

	require.NoError(t, res.Err)
	assert.Empty(t, runner.Calls())
	assert.Contains(t, res.Out, "devtools SUCCEEDED (dry run)")
	assert.Contains(t, res.Out, "terminal SUCCEEDED (dry run)")
	assert.NoFileExists(t, res.StateFile)
}

// TestCLI_NothingSelected is an invocation error.
func TestCLI_NothingSelected(t *testing.T) {
	env := apptest.New(t, map[string]string{"components.yaml": workstation})

	res := env.Run(testutil.NewFakeRunner())

	assert.Equal(t, 2, res.ExitCode)
	assert.Contains(t, res.Err.Error(), "no components selected")
}
