package testutil

import (
	"slices"
	"sync"

	"github.com/specialistvlad/rigup/internal/executor"
)

// Event is one progress report.
type Event struct {
	Index int
	Total int
	ID    string
	State executor.State
}

// RecordingSink keeps every progress report and result it receives.
type RecordingSink struct {
	mu      sync.Mutex
	events  []Event
	results []executor.TaskResult
}

var (
	_ executor.ProgressSink = (*RecordingSink)(nil)
	_ executor.ResultSink   = (*RecordingSink)(nil)
)

// Report implements executor.ProgressSink.
func (s *RecordingSink) Report(index, total int, id string, state executor.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, Event{Index: index, Total: total, ID: id, State: state})
}

// ReportResult implements executor.ResultSink.
func (s *RecordingSink) ReportResult(_, _ int, r executor.TaskResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, r)
}

// Events returns every report in arrival order.
func (s *RecordingSink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.events)
}

// States returns the states reported for id in arrival order.
func (s *RecordingSink) States(id string) []executor.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	var states []executor.State
	for _, e := range s.events {
		if e.ID == id {
			states = append(states, e.State)
		}
	}
	return states
}

// Results returns every terminal result in arrival order.
func (s *RecordingSink) Results() []executor.TaskResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.results)
}
