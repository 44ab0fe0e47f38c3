// Package battlelog provides the append-only, human-readable narrative of a
// battle: every roll, trigger, upkeep event, exchange outcome, and state
// transition.
package battlelog

import (
	"fmt"

	"go.uber.org/zap"
)

// Log is an ordered, append-only sequence of narrative lines. Each line is
// mirrored to a structured logger at debug level.
//
// It is not safe for concurrent use; the owning battle serialises access.
type Log struct {
	lines  []string
	logger *zap.Logger
}

// New creates an empty Log. A nil logger is replaced with a no-op logger.
func New(logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{logger: logger}
}

// Add appends line.
func (l *Log) Add(line string) {
	l.lines = append(l.lines, line)
	l.logger.Debug("battle log", zap.Int("seq", len(l.lines)), zap.String("line", line))
}

// Addf appends a formatted line.
func (l *Log) Addf(format string, args ...any) {
	l.Add(fmt.Sprintf(format, args...))
}

// Len returns the number of lines appended so far.
func (l *Log) Len() int { return len(l.lines) }

// Lines returns a copy of every line.
func (l *Log) Lines() []string {
	return l.Since(0)
}

// Since returns a copy of the lines appended at or after offset n.
//
// Postcondition: Returns an empty slice if n >= Len().
func (l *Log) Since(n int) []string {
	if n < 0 {
		n = 0
	}
	if n >= len(l.lines) {
		return []string{}
	}
	out := make([]string, len(l.lines)-n)
	copy(out, l.lines[n:])
	return out
}
