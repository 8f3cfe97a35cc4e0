package sim

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Sink receives the human-readable simulation trace, one line per call.
// *logrus.Logger and *logrus.Entry both satisfy it.
type Sink interface {
	Infof(format string, args ...interface{})
}

// lineFormatter renders only the message, so the trace carries no wall-clock
// timestamps and two runs with the same seed are byte-identical.
type lineFormatter struct{}

func (lineFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return append([]byte(entry.Message), '\n'), nil
}

// NewTraceLogger returns a logger that writes plain trace lines to w.
// It is independent of the package-level logrus logger used for diagnostics.
func NewTraceLogger(w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(lineFormatter{})
	logger.SetLevel(logrus.InfoLevel)
	return logger
}

// discardSink drops every line.
type discardSink struct{}

func (discardSink) Infof(string, ...interface{}) {}

// DiscardSink is a Sink that drops all output.
var DiscardSink Sink = discardSink{}
