package integration_tests

import (
	"testing"

	"github.com/specialistvlad/rigup/internal/testutil"
	"github.com/specialistvlad/rigup/internal/testutil/apptest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCoreExecution_SharedDependencyRunsFirst checks that a component
// required by several selected components runs once, before all of them.
func TestCoreExecution_SharedDependencyRunsFirst(t *testing.T) {
	// --- Arrange ---
	env := apptest.New(t, map[string]string{
		"components.yaml": `
components:
  devtools:
    script: ./devtools.sh
  terminal:
    requires: ["devtools"]
    script: ./terminal.sh
  desktop:
    requires: ["devtools"]
    script: ./desktop.sh
`,
	})
	runner := testutil.NewFakeRunner()

	// --- Act ---
	res := env.Run(runner, "terminal", "desktop")

	// --- Assert ---
	require.NoError(t, res.Err)
	assert.Equal(t, []string{"devtools", "terminal", "desktop"}, runner.Calls())
	assert.Contains(t, res.Out, "[1/3] ▶ devtools")
	assert.Contains(t, res.Out, "Summary: 3 succeeded, 0 failed, 0 skipped")
}

// TestCoreExecution_RequiresOrderIsHonoured checks the tie-break rule: with
// no other constraint, requirements run in the order they are declared.
func TestCoreExecution_RequiresOrderIsHonoured(t *testing.T) {
	env := apptest.New(t, map[string]string{
		"components.yaml": `
components:
  git:
    script: ./git.sh
  zsh:
    script: ./zsh.sh
  fonts:
    script: ./fonts.sh
  terminal:
    requires: zsh, fonts git
    script: ./terminal.sh
`,
	})

	first := testutil.NewFakeRunner()
	second := testutil.NewFakeRunner()
	require.NoError(t, env.Run(first, "terminal").Err)
	require.NoError(t, env.Run(second, "terminal").Err)

	assert.Equal(t, []string{"zsh", "fonts", "git", "terminal"}, first.Calls())
	assert.Equal(t, first.Calls(), second.Calls(), "plans must be identical across runs")
}

// TestCoreExecution_AllSelectsEveryComponent checks --all in declaration
// order.
func TestCoreExecution_AllSelectsEveryComponent(t *testing.T) {
	env := apptest.New(t, map[string]string{
		"a.yaml": "components:\n  editor:\n    requires: runtime\n    script: ./editor.sh\n  runtime:\n    script: ./runtime.sh\n",
		"b.hcl":  "component \"browser\" {\n  script = \"./browser.sh\"\n}\n",
	})
	runner := testutil.NewFakeRunner()

	res := env.Run(runner, "--all")

	require.NoError(t, res.Err)
	assert.Equal(t, []string{"runtime", "editor", "browser"}, runner.Calls())
}
