package integration_tests

import (
	"testing"

	"github.com/specialistvlad/rigup/internal/cli"
	"github.com/specialistvlad/rigup/internal/testutil"
	"github.com/specialistvlad/rigup/internal/testutil/apptest"
	"github.com/stretchr/testify/assert"
)

// TestErrorHandling_FatalErrorsRunNothing checks that every pre-execution
// error has its own exit code and that no task is invoked.
func TestErrorHandling_FatalErrorsRunNothing(t *testing.T) {
	testCases := []struct {
		name     string
		files    map[string]string
		args     []string
		wantCode int
		wantMsg  string
	}{
		{
			name: "validate with unknown dependency",
			files: map[string]string{"components.yaml": `
components:
  terminal:
    requires: devtools
    script: ./terminal.sh
`},
			args:     []string{"--validate", "--all"},
			wantCode: cli.ExitUnknown,
			wantMsg:  `"devtools"`,
		},
		{
			name: "run with unknown dependency",
			files: map[string]string{"components.yaml": `
components:
  terminal:
    requires: devtools
    script: ./terminal.sh
`},
			args:     []string{"terminal"},
			wantCode: cli.ExitUnknown,
		},
		{
			name:     "unknown selected component",
			files:    map[string]string{"components.yaml": "components:\n  devtools:\n    script: ./d.sh\n"},
			args:     []string{"browser"},
			wantCode: cli.ExitUnknown,
			wantMsg:  `"browser"`,
		},
		{
			name: "cycle",
			files: map[string]string{"components.yaml": `
components:
  shell:
    requires: terminal
    script: ./shell.sh
  terminal:
    requires: shell
    script: ./terminal.sh
`},
			args:     []string{"shell"},
			wantCode: cli.ExitCycle,
			wantMsg:  "cycle",
		},
		{
			name: "duplicate id",
			files: map[string]string{
				"a.yaml": "components:\n  devtools:\n    script: ./a.sh\n",
				"b.hcl":  "component \"devtools\" {\n  script = \"./b.sh\"\n}\n",
			},
			args:     []string{"--all"},
			wantCode: cli.ExitConfigParse,
			wantMsg:  "devtools",
		},
		{
			name:     "bad indentation",
			files:    map[string]string{"components.yaml": "components:\n  devtools:\n  script: ./d.sh\n"},
			args:     []string{"--all"},
			wantCode: cli.ExitConfigParse,
			wantMsg:  "line",
		},
		{
			name:     "unregistered handler",
			files:    map[string]string{"components.yaml": "components:\n  devtools:\n    script: handler:apt-get git\n"},
			args:     []string{"--all"},
			wantCode: cli.ExitConfigParse,
			wantMsg:  "unknown handler",
		},
		{
			name:     "no manifests",
			files:    map[string]string{"README.md": "nothing here"},
			args:     []string{"--all"},
			wantCode: cli.ExitConfigParse,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Arrange ---
			env := apptest.New(t, tc.files)
			runner := testutil.NewFakeRunner()

			// --- Act ---
			res := env.Run(runner, tc.args...)

			// --- Assert ---
			assert.Equal(t, tc.wantCode, res.ExitCode, res.Err)
			assert.Contains(t, res.Err.Error(), tc.wantMsg)
			assert.Empty(t, runner.Calls())
			assert.NoFileExists(t, res.StateFile, "fatal errors must not touch the state file")
		})
	}
}
