package config

import (
	"context"

	"github.com/specialistvlad/rigup/internal/graph"
)

// Loader is the interface for anything that can produce a component graph.
type Loader interface {
	// Load reads every manifest reachable from paths and returns the merged,
	// validated graph. Errors are graph.ConfigParseError or
	// graph.UnknownComponentError.
	Load(ctx context.Context, paths ...string) (*graph.Graph, error)
}

// DecodeFunc decodes one manifest file into components.
type DecodeFunc func(filename string, src []byte) ([]graph.Component, error)
