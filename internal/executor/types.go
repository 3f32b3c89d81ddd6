package executor

import "time"

// State is the lifecycle state of one component within a run.
type State int32

const (
	// Pending components have not been looked at yet.
	Pending State = iota
	// Running components have a task attempt in flight.
	Running
	// Succeeded components finished, ran earlier in a resumed run, or were
	// walked in a dry run.
	Succeeded
	// Failed components exhausted their attempts.
	Failed
	// Skipped components were not run because a requirement failed or was
	// itself skipped.
	Skipped
)

func (s State) String() string {
	switch s {
	case Pending:
		return "PENDING"
	case Running:
		return "RUNNING"
	case Succeeded:
		return "SUCCEEDED"
	case Failed:
		return "FAILED"
	case Skipped:
		return "SKIPPED"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether s is a final state.
func (s State) Terminal() bool {
	return s == Succeeded || s == Failed || s == Skipped
}

// TaskResult is the outcome of one component in one run.
type TaskResult struct {
	ID       string
	State    State
	Attempts int
	Duration time.Duration
	// Err is the last attempt's error for FAILED components.
	Err error
	// AlreadyDone is set when a resumed run found the id in the state store.
	AlreadyDone bool
	// DryRun is set when the task was not invoked because of a dry run.
	DryRun bool
	// BlockedBy names the requirement that caused a skip.
	BlockedBy string
}

// Summary collects the results of a run in plan order.
type Summary struct {
	Total       int
	Results     []TaskResult
	Succeeded   int
	Failed      int
	Skipped     int
	AlreadyDone int
	// Interrupted is set when the run stopped before reaching the end of
	// the plan.
	Interrupted bool
}

func (s *Summary) add(r TaskResult) {
	s.Results = append(s.Results, r)
	switch r.State {
	case Succeeded:
		s.Succeeded++
		if r.AlreadyDone {
			s.AlreadyDone++
		}
	case Failed:
		s.Failed++
	case Skipped:
		s.Skipped++
	}
}

// OK reports whether every planned component succeeded.
func (s *Summary) OK() bool {
	return !s.Interrupted && s.Failed == 0 && s.Skipped == 0 && s.Succeeded == s.Total
}

// Result returns the result recorded for id.
func (s *Summary) Result(id string) (TaskResult, bool) {
	for _, r := range s.Results {
		if r.ID == id {
			return r, true
		}
	}
	return TaskResult{}, false
}

// IDs returns the ids that ended in state, in plan order.
func (s *Summary) IDs(state State) []string {
	var ids []string
	for _, r := range s.Results {
		if r.State == state {
			ids = append(ids, r.ID)
		}
	}
	return ids
}
