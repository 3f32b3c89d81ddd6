package progress

import (
	"log/slog"

	"github.com/specialistvlad/rigup/internal/executor"
)

// Log reports transitions as structured log records.
type Log struct {
	logger *slog.Logger
}

// NewLog returns a sink writing to logger.
func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

// Report implements executor.ProgressSink.
func (l *Log) Report(index, total int, id string, state executor.State) {
	l.logger.Info("Progress", "index", index, "total", total, "component", id, "state", state.String())
}
