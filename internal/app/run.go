package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/rigup/internal/ctxlog"
	"github.com/specialistvlad/rigup/internal/executor"
	"github.com/specialistvlad/rigup/internal/graph"
	"github.com/specialistvlad/rigup/internal/inmemorystore"
	"github.com/specialistvlad/rigup/internal/progress"
	"github.com/specialistvlad/rigup/internal/state"
)

// Execute does what the configuration asks for: print the graph, validate,
// or run. The summary is nil unless components were run.
func (a *App) Execute(ctx context.Context) (*executor.Summary, error) {
	switch {
	case a.config.GraphFormat != "":
		return nil, a.Graph(ctx)
	case a.config.Validate:
		_, err := a.Validate(ctx)
		return nil, err
	default:
		return a.Run(ctx)
	}
}

// Validate loads and resolves the selection and prints the plan.
func (a *App) Validate(ctx context.Context) (graph.Plan, error) {
	g, plan, err := a.load(a.context(ctx))
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.outW, "Configuration OK: %d components, %d in plan.\n", g.Len(), len(plan))
	width := len(fmt.Sprint(len(plan)))
	for i, id := range plan {
		fmt.Fprintf(a.outW, "%*d. %s\n", width, i+1, id)
	}
	return plan, nil
}

// Graph prints the dependency graph of the planned components.
func (a *App) Graph(ctx context.Context) error {
	g, plan, err := a.load(a.context(ctx))
	if err != nil {
		return err
	}
	if a.config.GraphFormat == GraphDOT {
		return graph.WriteDOT(a.outW, g, plan)
	}
	return graph.WriteEdgeList(a.outW, g, plan)
}

// Run executes the selection. Task failures are reported in the summary; the
// error is non-nil only for fatal conditions and interrupts, in which case
// the summary may still be non-nil.
func (a *App) Run(ctx context.Context) (*executor.Summary, error) {
	ctx = a.context(ctx)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("App.Run method started.")

	g, plan, err := a.load(ctx)
	if err != nil {
		return nil, err
	}

	store, err := a.prepareStore(ctx, g)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("Could not close state store.", "error", err)
		}
	}()

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(ctx, a.config.HealthcheckPort)
		defer a.closeHealthcheckServer(ctx)
	}

	logger.Info("🚀 Starting installation...",
		"components", len(plan),
		"resume", a.config.Resume,
		"dry_run", a.config.DryRun,
	)
	exec := executor.New(g, store, a.runner, a.sinks(), a.config.executorConfig())
	summary, runErr := exec.Run(ctx, plan)

	a.finish(ctx, summary)
	logger.Debug("App.Run method finished.")
	return summary, runErr
}

// prepareStore opens the state store and resets it unless resuming. An
// unreadable record is only fatal when resuming from it. Dry runs get a
// throwaway in-memory store so the state file is never touched.
func (a *App) prepareStore(ctx context.Context, g *graph.Graph) (state.Store, error) {
	logger := ctxlog.FromContext(ctx)
	if a.config.DryRun {
		logger.Debug("Dry run, state file not opened.")
		return inmemorystore.New(), nil
	}

	store, err := a.openStore(a.config.StateFile, graph.Fingerprint(g))
	if err != nil {
		return nil, err
	}

	if fs, ok := store.(*state.FileStore); ok && fs.ReadErr() != nil {
		if a.config.Resume {
			_ = store.Close()
			return nil, fs.ReadErr()
		}
		logger.Warn("⚠️ Previous state file is unreadable, starting fresh.", "state_file", fs.Path(), "error", fs.ReadErr())
	}

	if a.config.Resume {
		fs, ok := store.(*state.FileStore)
		switch {
		case !ok:
			return store, nil
		case fs.RunID() == "":
			logger.Info("No previous run found, starting fresh.", "state_file", fs.Path())
		case !fs.FingerprintMatches():
			logger.Warn("⚠️ Components changed since the previous run, resuming anyway.", "run_id", fs.RunID())
			return store, nil
		default:
			logger.Info("⏯️ Resuming previous run", "run_id", fs.RunID(), "completed", len(fs.Completed()))
			return store, nil
		}
	}

	if err := store.Reset(); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

func (a *App) sinks() executor.ProgressSink {
	sinks := progress.Multi{a.metrics}
	switch a.config.Progress {
	case ProgressText:
		sinks = append(sinks, progress.NewTerminal(a.outW, a.config.NoColor))
	case ProgressLog:
		sinks = append(sinks, progress.NewLog(a.logger))
	}
	return sinks
}

// finish writes the summary and the metrics textfile.
func (a *App) finish(ctx context.Context, summary *executor.Summary) {
	logger := ctxlog.FromContext(ctx)
	logger.Info("🏁 Execution finished.",
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"skipped", summary.Skipped,
		"interrupted", summary.Interrupted,
	)
	if a.config.Progress != ProgressNone {
		progress.WriteSummary(a.outW, summary, a.config.NoColor)
	}

	a.metrics.FinishRun(summary)
	if a.config.MetricsFile != "" {
		if err := a.metrics.WriteTextfile(a.config.MetricsFile); err != nil {
			logger.Warn("Could not write metrics file.", "path", a.config.MetricsFile, "error", err)
		} else {
			logger.Debug("Metrics written.", "path", a.config.MetricsFile)
		}
	}
}
