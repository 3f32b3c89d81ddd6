package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/rigup/internal/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFileLoader_SingleFile(t *testing.T) {
	// --- Arrange ---
	dir := t.TempDir()
	path := writeFile(t, dir, "machine.conf", `
components:
  devtools:
    script: "./devtools.sh"
  terminal:
    requires: devtools
    script: "./terminal.sh"
`)

	// --- Act ---
	g, err := NewFileLoader().Load(context.Background(), path)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{"devtools", "terminal"}, g.IDs())
	c, ok := g.Component("terminal")
	require.True(t, ok)
	assert.Equal(t, path, c.Source.File)
}

func TestFileLoader_DirectoryMergesFormats(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a-base.yaml", "components:\n  devtools:\n    script: ./devtools.sh\n")
	writeFile(t, dir, "b-extra.hcl", "component \"terminal\" {\n  requires = [\"devtools\"]\n  script = \"./terminal.sh\"\n}\n")
	writeFile(t, dir, "README.md", "not a manifest")

	g, err := NewFileLoader().Load(context.Background(), dir)

	require.NoError(t, err)
	assert.Equal(t, []string{"devtools", "terminal"}, g.IDs())
}

func TestFileLoader_DuplicateAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "components:\n  devtools:\n    script: x\n")
	writeFile(t, dir, "b.yaml", "components:\n  devtools:\n    script: y\n")

	_, err := NewFileLoader().Load(context.Background(), dir)

	var parseErr *graph.ConfigParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "devtools", parseErr.ID)
	assert.Equal(t, filepath.Join(dir, "b.yaml"), parseErr.File)
}

func TestFileLoader_UnknownRequirement(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "c.yaml", "components:\n  terminal:\n    requires: [devtools]\n    script: x\n")

	_, err := NewFileLoader().Load(context.Background(), path)

	require.ErrorIs(t, err, graph.ErrUnknownComponent)
}

func TestFileLoader_MissingPath(t *testing.T) {
	_, err := NewFileLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, graph.ErrConfigParse)
}

func TestFileLoader_EmptyDirectory(t *testing.T) {
	_, err := NewFileLoader().Load(context.Background(), t.TempDir())

	require.ErrorIs(t, err, graph.ErrConfigParse)
	assert.Contains(t, err.Error(), "no manifest files")
}

func TestFileLoader_Extensions(t *testing.T) {
	assert.Equal(t, []string{".conf", ".hcl", ".yaml", ".yml"}, NewFileLoader().Extensions())
}
