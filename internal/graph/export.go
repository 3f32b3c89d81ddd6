package graph

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	dgraph "github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"
)

// WriteEdgeList writes one line per requires edge as "<id> -> <requirement>",
// in the order of ids and then of each component's requires. Components with
// no requirements get a line of their own so every id appears in the output.
func WriteEdgeList(w io.Writer, g *Graph, ids []string) error {
	bw := bufio.NewWriter(w)
	for _, id := range ids {
		c, ok := g.components[id]
		if !ok {
			return &UnknownComponentError{ID: id}
		}
		if len(c.Requires) == 0 {
			fmt.Fprintln(bw, id)
			continue
		}
		for _, req := range c.Requires {
			fmt.Fprintf(bw, "%s -> %s\n", id, req)
		}
	}
	return bw.Flush()
}

// WriteDOT renders the subgraph spanned by ids in Graphviz DOT form. Edges
// point from a component to the components it requires.
func WriteDOT(w io.Writer, g *Graph, ids []string) error {
	dg := dgraph.New(dgraph.StringHash, dgraph.Directed())

	for _, id := range ids {
		c, ok := g.components[id]
		if !ok {
			return &UnknownComponentError{ID: id}
		}
		opts := []func(*dgraph.VertexProperties){dgraph.VertexAttribute("shape", "box")}
		if c.Description != "" {
			opts = append(opts, dgraph.VertexAttribute("tooltip", c.Description))
		}
		if err := dg.AddVertex(id, opts...); err != nil {
			return fmt.Errorf("failed to add vertex %q: %w", id, err)
		}
	}

	for _, id := range ids {
		for _, req := range g.components[id].Requires {
			if _, err := dg.Vertex(req); err != nil {
				// Requirement outside the selection; edge list is closed over ids.
				continue
			}
			if err := dg.AddEdge(id, req); err != nil {
				if errors.Is(err, dgraph.ErrEdgeAlreadyExists) {
					continue
				}
				return fmt.Errorf("failed to add edge %s -> %s: %w", id, req, err)
			}
		}
	}

	return draw.DOT(dg, w)
}
