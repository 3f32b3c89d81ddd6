package executor

// ProgressSink receives every state transition. index is 1-based within the
// plan and total is the plan length.
type ProgressSink interface {
	Report(index, total int, id string, state State)
}

// ResultSink is optionally implemented by a ProgressSink that also wants the
// full result of each component once it reaches a terminal state.
type ResultSink interface {
	ReportResult(index, total int, result TaskResult)
}

// SinkFunc adapts a function to ProgressSink.
type SinkFunc func(index, total int, id string, state State)

// Report implements ProgressSink.
func (f SinkFunc) Report(index, total int, id string, state State) { f(index, total, id, state) }

type nopSink struct{}

func (nopSink) Report(int, int, string, State) {}
