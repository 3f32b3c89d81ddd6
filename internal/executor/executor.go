package executor

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/specialistvlad/rigup/internal/ctxlog"
	"github.com/specialistvlad/rigup/internal/graph"
	"github.com/specialistvlad/rigup/internal/state"
	"github.com/specialistvlad/rigup/internal/task"
)

// Executor runs plans against one graph, store and runner.
type Executor struct {
	graph  *graph.Graph
	store  state.Store
	runner task.Runner
	sink   ProgressSink
	cfg    Config
}

// New creates an Executor. A nil sink discards progress.
func New(g *graph.Graph, store state.Store, runner task.Runner, sink ProgressSink, cfg Config) *Executor {
	if sink == nil {
		sink = nopSink{}
	}
	return &Executor{
		graph:  g,
		store:  store,
		runner: runner,
		sink:   sink,
		cfg:    cfg,
	}
}

// Run executes plan in order and returns the summary. Task failures are
// recorded in the summary, not returned. The returned error is non-nil only
// when the run had to stop early: ErrInterrupted when ctx was cancelled, or
// a state.StateStoreIOError when a completion could not be persisted. The
// summary is returned in both cases.
func (e *Executor) Run(ctx context.Context, plan graph.Plan) (*Summary, error) {
	logger := ctxlog.FromContext(ctx)
	total := len(plan)
	summary := &Summary{Total: total}
	// blocked holds every id that ended FAILED or SKIPPED in this run.
	blocked := make(map[string]struct{})

	logger.Debug("Executor: run started.", "components", total, "resume", e.cfg.Resume, "dry_run", e.cfg.DryRun)

	for i, id := range plan {
		index := i + 1
		if ctx.Err() != nil {
			summary.Interrupted = true
			logger.Warn("⏹️ Run interrupted, stopping before next component.", "next", id, "completed", len(summary.Results))
			return summary, fmt.Errorf("%w: stopped before %q", ErrInterrupted, id)
		}

		c, ok := e.graph.Component(id)
		if !ok {
			return summary, &graph.UnknownComponentError{ID: id}
		}
		clog := logger.With("component", id, "index", index, "total", total)

		if e.cfg.Resume && e.store.IsDone(id) {
			clog.Info("⏩ Component already done")
			e.finish(summary, index, TaskResult{ID: id, State: Succeeded, AlreadyDone: true})
			continue
		}

		if dep := firstBlocked(c.Requires, blocked); dep != "" {
			blocked[id] = struct{}{}
			clog.Info("⏭️ Component skipped", "blocked_by", dep)
			e.finish(summary, index, TaskResult{ID: id, State: Skipped, BlockedBy: dep})
			continue
		}

		e.sink.Report(index, total, id, Running)
		clog.Info("▶️ Starting component", "description", c.Description)
		result := e.execute(ctxlog.WithLogger(ctx, clog), c)

		if result.State == Succeeded && !result.DryRun {
			if err := e.store.MarkDone(id); err != nil {
				result.State = Failed
				result.Err = err
				clog.Error("❌ Could not record completion, stopping run", "error", err)
				e.finish(summary, index, result)
				return summary, err
			}
		}

		switch result.State {
		case Succeeded:
			clog.Info("✅ Component succeeded", "attempts", result.Attempts, "duration", result.Duration, "dry_run", result.DryRun)
		case Failed:
			blocked[id] = struct{}{}
			clog.Error("❌ Component failed", "attempts", result.Attempts, "error", result.Err)
		}
		e.finish(summary, index, result)
	}

	logger.Debug("Executor: run finished.",
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"skipped", summary.Skipped,
	)
	return summary, nil
}

func (e *Executor) finish(summary *Summary, index int, result TaskResult) {
	summary.add(result)
	e.sink.Report(index, summary.Total, result.ID, result.State)
	if rs, ok := e.sink.(ResultSink); ok {
		rs.ReportResult(index, summary.Total, result)
	}
}

// execute runs one component's task with timeout and retries.
func (e *Executor) execute(ctx context.Context, c graph.Component) TaskResult {
	start := time.Now()
	result := TaskResult{ID: c.ID}

	ref, err := task.ParseRef(c.Script)
	switch {
	case err != nil:
		result.State = Failed
		result.Err = &TaskExecutionError{ID: c.ID, Err: err}
	case e.cfg.DryRun:
		ctxlog.FromContext(ctx).Debug("Dry run, task not invoked.", "task", ref.String())
		result.State = Succeeded
		result.DryRun = true
	default:
		if c.Source.File != "" {
			ref.Dir = filepath.Dir(c.Source.File)
		}
		timeout := e.cfg.Timeout
		if c.Timeout > 0 {
			timeout = c.Timeout
		}

		attempts, err := e.retry(ctx, c.ID, ref, timeout)
		result.Attempts = attempts
		if err != nil {
			result.State = Failed
			result.Err = err
		} else {
			result.State = Succeeded
		}
	}

	result.Duration = time.Since(start)
	return result
}

func firstBlocked(requires []string, blocked map[string]struct{}) string {
	for _, req := range requires {
		if _, ok := blocked[req]; ok {
			return req
		}
	}
	return ""
}
