package graph

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteEdgeList(t *testing.T) {
	g := mustGraph(t,
		comp("devtools"),
		comp("terminal", "devtools"),
		comp("desktop", "devtools"),
	)
	var buf bytes.Buffer

	err := WriteEdgeList(&buf, g, g.IDs())

	require.NoError(t, err)
	assert.Equal(t, "devtools\nterminal -> devtools\ndesktop -> devtools\n", buf.String())
}

func TestWriteEdgeList_UnknownID(t *testing.T) {
	g := mustGraph(t, comp("a"))
	err := WriteEdgeList(&bytes.Buffer{}, g, []string{"nope"})
	require.ErrorIs(t, err, ErrUnknownComponent)
}

func TestWriteDOT(t *testing.T) {
	devtools := comp("devtools")
	devtools.Description = "Developer tools"
	g := mustGraph(t, devtools, comp("terminal", "devtools"), comp("unused"))
	var buf bytes.Buffer

	err := WriteDOT(&buf, g, []string{"devtools", "terminal"})

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "digraph")
	assert.Contains(t, out, `"terminal" -> "devtools"`)
	assert.Contains(t, out, "Developer tools")
	assert.NotContains(t, out, "unused")
}
