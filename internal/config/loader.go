package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/specialistvlad/rigup/internal/ctxlog"
	"github.com/specialistvlad/rigup/internal/fsutil"
	"github.com/specialistvlad/rigup/internal/graph"
	"github.com/specialistvlad/rigup/internal/hcl"
	"github.com/specialistvlad/rigup/internal/manifest"
)

// FileLoader loads manifests from files and directories.
type FileLoader struct {
	decoders map[string]DecodeFunc
}

// NewFileLoader returns a loader that understands .yaml, .yml and .conf
// manifests as well as .hcl manifests.
func NewFileLoader() *FileLoader {
	return &FileLoader{
		decoders: map[string]DecodeFunc{
			".yaml": manifest.Decode,
			".yml":  manifest.Decode,
			".conf": manifest.Decode,
			".hcl":  hcl.Decode,
		},
	}
}

// Extensions returns the file extensions the loader can decode, sorted.
func (l *FileLoader) Extensions() []string {
	exts := make([]string, 0, len(l.decoders))
	for ext := range l.decoders {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// Load implements Loader. Directories are searched recursively; files found
// in a directory are read in lexical order. A file given explicitly is decoded
// as a YAML-style manifest unless its extension says otherwise.
func (l *FileLoader) Load(ctx context.Context, paths ...string) (*graph.Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Manifest loader started.", "path_count", len(paths))

	files, err := l.discover(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, &graph.ConfigParseError{Msg: fmt.Sprintf("no manifest files found in %v", paths)}
	}
	logger.Debug("Discovered manifest files.", "count", len(files))

	var components []graph.Component
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			return nil, &graph.ConfigParseError{File: file, Msg: "cannot read manifest", Err: err}
		}

		decode, ok := l.decoders[filepath.Ext(file)]
		if !ok {
			decode = manifest.Decode
		}
		decoded, err := decode(file, src)
		if err != nil {
			return nil, err
		}
		logger.Debug("Manifest decoded.", "file", file, "components", len(decoded))
		components = append(components, decoded...)
	}

	g, err := graph.New(components)
	if err != nil {
		return nil, err
	}
	logger.Debug("Component graph built.", "components", g.Len())
	return g, nil
}

func (l *FileLoader) discover(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, dup := seen[p]; !dup {
			seen[p] = struct{}{}
			files = append(files, p)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, &graph.ConfigParseError{File: path, Msg: "cannot access manifest", Err: err}
		}
		if !info.IsDir() {
			add(path)
			continue
		}

		found, err := fsutil.FindFilesByExtension(path, l.Extensions()...)
		if err != nil {
			return nil, &graph.ConfigParseError{File: path, Msg: "cannot scan manifest directory", Err: err}
		}
		for _, f := range found {
			add(f)
		}
	}
	return files, nil
}
