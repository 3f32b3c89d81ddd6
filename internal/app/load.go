package app

import (
	"context"

	"github.com/specialistvlad/rigup/internal/ctxlog"
	"github.com/specialistvlad/rigup/internal/graph"
	"github.com/specialistvlad/rigup/internal/task"
)

// load reads the manifests, resolves the selection and checks that every
// planned script is a usable task reference. Nothing is executed.
func (a *App) load(ctx context.Context) (*graph.Graph, graph.Plan, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading manifests...", "paths", a.config.ConfigPaths)

	g, err := a.loader.Load(ctx, a.config.ConfigPaths...)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("Manifests loaded.", "components", g.Len())

	selection := a.selection(g)
	plan, err := graph.Resolve(g, selection)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("Resolve: plan computed.", "requested", selection, "plan", plan.String())

	for _, id := range plan {
		if err := a.checkScript(g, id); err != nil {
			return nil, nil, err
		}
	}
	return g, plan, nil
}

// selection is the requested ids, or every id when --all is set or nothing
// was named for a graph or validate request.
func (a *App) selection(g *graph.Graph) []string {
	if a.config.All || len(a.config.Components) == 0 {
		return g.IDs()
	}
	return a.config.Components
}

func (a *App) checkScript(g *graph.Graph, id string) error {
	c, _ := g.Component(id)
	ref, err := task.ParseRef(c.Script)
	if err == nil {
		err = a.dispatcher.Check(ref)
	}
	if err != nil {
		return &graph.ConfigParseError{
			File: c.Source.File,
			Line: c.Source.Line,
			ID:   id,
			Msg:  "invalid script",
			Err:  err,
		}
	}
	return nil
}
