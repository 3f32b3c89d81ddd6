package manifest

import (
	"testing"
	"time"

	"github.com/specialistvlad/rigup/internal/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_FullExample(t *testing.T) {
	// --- Arrange ---
	src := `
# Machine setup
components:
  devtools:
    requires: []
    script: "./install-devtools.sh --with-compilers"
    description: "Compilers and build tools"

  # terminal setup depends on devtools
  terminal:
    requires: ["devtools"]      # flow list
    script: "handler:print terminal ready"
    description: "Terminal tooling"
  desktop:
    requires: devtools, terminal
    script: ./desktop.sh
    timeout: 90s
`

	// --- Act ---
	components, err := Decode("components.yaml", []byte(src))

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, components, 3)

	assert.Equal(t, "devtools", components[0].ID)
	assert.Empty(t, components[0].Requires)
	assert.Equal(t, "./install-devtools.sh --with-compilers", components[0].Script)
	assert.Equal(t, "Compilers and build tools", components[0].Description)
	assert.Equal(t, graph.Position{File: "components.yaml", Line: 4}, components[0].Source)

	assert.Equal(t, []string{"devtools"}, components[1].Requires)
	assert.Equal(t, 10, components[1].Source.Line)

	assert.Equal(t, []string{"devtools", "terminal"}, components[2].Requires)
	assert.Equal(t, 90*time.Second, components[2].Timeout)
	assert.Empty(t, components[2].Description)
}

func TestDecode_RequiresForms(t *testing.T) {
	testCases := []struct {
		name string
		line string
		want []string
	}{
		{name: "quoted flow list", line: `requires: ["a", "b"]`, want: []string{"a", "b"}},
		{name: "bare flow list", line: `requires: [a, b]`, want: []string{"a", "b"}},
		{name: "comma separated", line: `requires: a, b`, want: []string{"a", "b"}},
		{name: "space separated", line: `requires: a b`, want: []string{"a", "b"}},
		{name: "mixed separators", line: `requires: a,b  c`, want: []string{"a", "b", "c"}},
		{name: "empty", line: `requires:`, want: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			src := "components:\n  x:\n    " + tc.line + "\n    script: run\n"

			components, err := Decode("m.yaml", []byte(src))

			require.NoError(t, err)
			require.Len(t, components, 1)
			assert.Equal(t, tc.want, components[0].Requires)
		})
	}
}

func TestDecode_EmptySection(t *testing.T) {
	components, err := Decode("m.yaml", []byte("components:\n"))
	require.NoError(t, err)
	assert.Empty(t, components)
}

func TestDecode_Rejects(t *testing.T) {
	testCases := []struct {
		name   string
		src    string
		line   int
		id     string
		substr string
	}{
		{
			name:   "empty file",
			src:    "",
			line:   1,
			substr: "missing top-level",
		},
		{
			name:   "no components marker",
			src:    "stuff:\n  a:\n    script: x\n",
			line:   1,
			substr: `unexpected top-level key "stuff"`,
		},
		{
			name:   "component without script",
			src:    "components:\n  a:\n    description: nothing\n",
			line:   2,
			id:     "a",
			substr: `no "script"`,
		},
		{
			name:   "component with no body",
			src:    "components:\n  a:\n  b:\n    script: x\n",
			line:   2,
			id:     "a",
			substr: `no "script"`,
		},
		{
			name:   "nested key at component indentation",
			src:    "components:\n  a:\n    script: x\n  requires: a\n",
			line:   4,
			id:     "requires",
			substr: "deeper indentation",
		},
		{
			name:   "unknown key",
			src:    "components:\n  a:\n    script: x\n    scirpt: y\n",
			line:   4,
			id:     "a",
			substr: `unknown key "scirpt"`,
		},
		{
			name:   "duplicate key inside component",
			src:    "components:\n  a:\n    script: x\n    script: y\n",
			line:   4,
			id:     "a",
			substr: "duplicate key",
		},
		{
			name:   "nested list in requires",
			src:    "components:\n  a:\n    requires: [[b]]\n    script: x\n",
			line:   3,
			id:     "a",
			substr: "component names",
		},
		{
			name:   "bad timeout",
			src:    "components:\n  a:\n    script: x\n    timeout: soon\n",
			line:   4,
			id:     "a",
			substr: "invalid timeout",
		},
		{
			name:   "malformed indentation",
			src:    "components:\n  a:\n    script: x\n   requires: b\n",
			line:   -1,
			substr: "malformed manifest",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode("m.yaml", []byte(tc.src))

			require.Error(t, err)
			require.ErrorIs(t, err, graph.ErrConfigParse)
			var parseErr *graph.ConfigParseError
			require.ErrorAs(t, err, &parseErr)
			if tc.line < 0 {
				// yaml.v3 reports the enclosing block, not always the offending line.
				assert.Positive(t, parseErr.Line, "line: %v", err)
			} else {
				assert.Equal(t, tc.line, parseErr.Line, "line: %v", err)
			}
			assert.Equal(t, tc.id, parseErr.ID)
			assert.Contains(t, err.Error(), tc.substr)
		})
	}
}

func TestDecode_DuplicateIDsSurfaceThroughGraph(t *testing.T) {
	src := "components:\n  a:\n    script: x\n  a:\n    script: y\n"

	components, err := Decode("m.yaml", []byte(src))
	require.NoError(t, err)

	_, err = graph.New(components)

	var parseErr *graph.ConfigParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 4, parseErr.Line)
	assert.Equal(t, "a", parseErr.ID)
}
