package graph

import (
	"fmt"
	"time"
)

// Component is a single installable unit declared in a manifest.
type Component struct {
	ID       string
	Requires []string
	// Script is the raw task reference as written in the manifest. The graph
	// never interprets it.
	Script      string
	Description string
	// Timeout overrides the run-wide per-attempt timeout when non-zero.
	Timeout time.Duration

	// Source locates the declaration, used for error messages.
	Source Position
}

// Position is a file and 1-based line.
type Position struct {
	File string
	Line int
}

func (p Position) String() string {
	if p.File == "" {
		return ""
	}
	if p.Line <= 0 {
		return p.File
	}
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}
