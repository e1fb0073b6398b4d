// Package logging provides qtest.Logger implementations.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// LogrusLogger writes qtest log records through a logrus logger.
type LogrusLogger struct {
	logger *logrus.Logger
}

// NewLogrusLogger wraps logger. A nil logger uses logrus.StandardLogger.
func NewLogrusLogger(logger *logrus.Logger) *LogrusLogger {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &LogrusLogger{logger: logger}
}

// New builds a text logger writing to out, at debug level when verbose is set
// and warn level otherwise.
func New(out io.Writer, verbose bool) *LogrusLogger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: !verbose})
	logger.SetLevel(logrus.WarnLevel)

	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	return &LogrusLogger{logger: logger}
}

// Logger returns the underlying logrus logger.
func (l *LogrusLogger) Logger() *logrus.Logger {
	return l.logger
}

func (l *LogrusLogger) Debug(msg string, fields map[string]interface{}) {
	l.logger.WithFields(fields).Debug(msg)
}

func (l *LogrusLogger) Info(msg string, fields map[string]interface{}) {
	l.logger.WithFields(fields).Info(msg)
}

func (l *LogrusLogger) Warn(msg string, fields map[string]interface{}) {
	l.logger.WithFields(fields).Warn(msg)
}

func (l *LogrusLogger) Error(msg string, fields map[string]interface{}) {
	l.logger.WithFields(fields).Error(msg)
}
