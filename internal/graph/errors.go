package graph

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfigParse matches any ConfigParseError.
	ErrConfigParse = errors.New("config parse error")
	// ErrUnknownComponent matches any UnknownComponentError.
	ErrUnknownComponent = errors.New("unknown component")
	// ErrCycle matches any CycleError.
	ErrCycle = errors.New("dependency cycle")
)

// ConfigParseError reports a manifest that cannot be turned into a graph.
// Line and ID are filled in whenever the offending location is known.
type ConfigParseError struct {
	File string
	Line int
	ID   string
	Msg  string
	Err  error
}

func (e *ConfigParseError) Error() string {
	var b strings.Builder
	b.WriteString("config parse error")
	if e.File != "" {
		b.WriteString(" in ")
		b.WriteString(e.File)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
	}
	if e.ID != "" {
		fmt.Fprintf(&b, " (component %q)", e.ID)
	}
	b.WriteString(": ")
	b.WriteString(e.Msg)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ConfigParseError) Is(target error) bool { return target == ErrConfigParse }

func (e *ConfigParseError) Unwrap() error { return e.Err }

// UnknownComponentError names an id that is not defined in the graph.
// RequiredBy is empty when the id came from the selection rather than from
// another component's requires list.
type UnknownComponentError struct {
	ID         string
	RequiredBy string
}

func (e *UnknownComponentError) Error() string {
	if e.RequiredBy != "" {
		return fmt.Sprintf("unknown component %q required by %q", e.ID, e.RequiredBy)
	}
	return fmt.Sprintf("unknown component %q", e.ID)
}

func (e *UnknownComponentError) Is(target error) bool { return target == ErrUnknownComponent }

// CycleError names a component on a dependency cycle. Path lists the cycle
// starting and ending at ID.
type CycleError struct {
	ID   string
	Path []string
}

func (e *CycleError) Error() string {
	if len(e.Path) > 1 {
		return fmt.Sprintf("dependency cycle detected at %q: %s", e.ID, strings.Join(e.Path, " -> "))
	}
	return fmt.Sprintf("dependency cycle detected at %q", e.ID)
}

func (e *CycleError) Is(target error) bool { return target == ErrCycle }
