package graph

import (
	"fmt"
	"slices"
)

// Graph is an immutable set of components keyed by id, with a derived reverse
// map of dependents. The zero value is an empty graph.
type Graph struct {
	order      []string
	components map[string]*Component
	dependents map[string][]string
}

// New builds a Graph from components in declaration order. It rejects empty
// and duplicate ids with a ConfigParseError and requires entries that name an
// undefined component with an UnknownComponentError.
func New(components []Component) (*Graph, error) {
	g := &Graph{
		order:      make([]string, 0, len(components)),
		components: make(map[string]*Component, len(components)),
		dependents: make(map[string][]string, len(components)),
	}

	for i := range components {
		c := components[i]
		if c.ID == "" {
			return nil, &ConfigParseError{File: c.Source.File, Line: c.Source.Line, Msg: "component id must not be empty"}
		}
		if prev, exists := g.components[c.ID]; exists {
			return nil, &ConfigParseError{
				File: c.Source.File,
				Line: c.Source.Line,
				ID:   c.ID,
				Msg:  fmt.Sprintf("duplicate component id, first declared at %s", prev.Source),
			}
		}
		c.Requires = slices.Clone(c.Requires)
		g.components[c.ID] = &c
		g.order = append(g.order, c.ID)
	}

	for _, id := range g.order {
		c := g.components[id]
		for _, req := range c.Requires {
			if _, ok := g.components[req]; !ok {
				return nil, &UnknownComponentError{ID: req, RequiredBy: id}
			}
			if !slices.Contains(g.dependents[req], id) {
				g.dependents[req] = append(g.dependents[req], id)
			}
		}
	}

	return g, nil
}

// Len returns the number of components.
func (g *Graph) Len() int { return len(g.order) }

// IDs returns every component id in declaration order.
func (g *Graph) IDs() []string { return slices.Clone(g.order) }

// Has reports whether id is defined.
func (g *Graph) Has(id string) bool {
	_, ok := g.components[id]
	return ok
}

// Component returns a copy of the component with the given id.
func (g *Graph) Component(id string) (Component, bool) {
	c, ok := g.components[id]
	if !ok {
		return Component{}, false
	}
	out := *c
	out.Requires = slices.Clone(c.Requires)
	return out, true
}

// Requires returns the declared requires of id in manifest order.
func (g *Graph) Requires(id string) []string {
	c, ok := g.components[id]
	if !ok {
		return nil
	}
	return slices.Clone(c.Requires)
}

// Dependents returns the ids that directly require id, in declaration order.
func (g *Graph) Dependents(id string) []string {
	return slices.Clone(g.dependents[id])
}

// Resolve is shorthand for the package-level Resolve.
func (g *Graph) Resolve(requested []string) (Plan, error) {
	return Resolve(g, requested)
}
