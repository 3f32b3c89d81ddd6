package graph

import (
	"slices"
	"strings"
)

// Plan is an ordered list of component ids in which every id appears after
// everything it requires.
type Plan []string

// Index returns the position of id in the plan, or -1.
func (p Plan) Index(id string) int { return slices.Index(p, id) }

func (p Plan) String() string { return strings.Join(p, " ") }

type mark uint8

const (
	unvisited mark = iota
	inProgress
	done
)

type frame struct {
	id   string
	next int // index of the next requires entry to visit
}

// Resolve returns the requested ids plus everything they transitively
// require, each exactly once and after all of its requirements.
//
// Requested ids are walked in the given order and each component's requires
// in declaration order, so the result depends only on the graph and the
// selection.
func Resolve(g *Graph, requested []string) (Plan, error) {
	marks := make(map[string]mark, g.Len())
	plan := make(Plan, 0, g.Len())

	for _, root := range requested {
		if !g.Has(root) {
			return nil, &UnknownComponentError{ID: root}
		}
		if marks[root] == done {
			continue
		}

		marks[root] = inProgress
		stack := []frame{{id: root}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			requires := g.components[top.id].Requires

			if top.next < len(requires) {
				dep := requires[top.next]
				top.next++

				if !g.Has(dep) {
					return nil, &UnknownComponentError{ID: dep, RequiredBy: top.id}
				}
				switch marks[dep] {
				case done:
					continue
				case inProgress:
					return nil, &CycleError{ID: dep, Path: cyclePath(stack, dep)}
				}

				marks[dep] = inProgress
				stack = append(stack, frame{id: dep})
				continue
			}

			marks[top.id] = done
			plan = append(plan, top.id)
			stack = stack[:len(stack)-1]
		}
	}

	return plan, nil
}

// cyclePath returns the ids on the stack from the first occurrence of id to
// the top, closed with id again.
func cyclePath(stack []frame, id string) []string {
	start := 0
	for i, f := range stack {
		if f.id == id {
			start = i
			break
		}
	}
	path := make([]string, 0, len(stack)-start+1)
	for _, f := range stack[start:] {
		path = append(path, f.id)
	}
	return append(path, id)
}
