package progress

import "github.com/specialistvlad/rigup/internal/executor"

// Multi fans every report out to each sink in order. Nil sinks are ignored.
type Multi []executor.ProgressSink

// Report implements executor.ProgressSink.
func (m Multi) Report(index, total int, id string, state executor.State) {
	for _, s := range m {
		if s != nil {
			s.Report(index, total, id, state)
		}
	}
}

// ReportResult implements executor.ResultSink for the members that do.
func (m Multi) ReportResult(index, total int, r executor.TaskResult) {
	for _, s := range m {
		if rs, ok := s.(executor.ResultSink); ok {
			rs.ReportResult(index, total, r)
		}
	}
}
