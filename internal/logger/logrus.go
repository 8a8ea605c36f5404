package logger

import (
	"os"
	"sync"

	"github.com/leandrodaf/midiwire/sdk/contracts"
	"github.com/sirupsen/logrus"
)

// LogrusLogger implements contracts.Logger on top of logrus, producing
// human-readable text output.
type LogrusLogger struct {
	mu     sync.Mutex
	logger *logrus.Logger
	file   *os.File // open log file, nil when writing to stderr
}

// NewStandardLogger creates a logrus-backed logger writing text to stderr.
func NewStandardLogger() contracts.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.InfoLevel)
	return &LogrusLogger{logger: l}
}

func newLogrusLogger(l *logrus.Logger) *LogrusLogger {
	return &LogrusLogger{logger: l}
}

func (l *LogrusLogger) entry(fields []contracts.Field) *logrus.Entry {
	return l.logger.WithFields(logrus.Fields(collect(fields)))
}

func (l *LogrusLogger) Info(msg string, fields ...contracts.Field) {
	l.entry(fields).Info(msg)
}

func (l *LogrusLogger) Error(msg string, fields ...contracts.Field) {
	l.entry(fields).Error(msg)
}

func (l *LogrusLogger) Debug(msg string, fields ...contracts.Field) {
	l.entry(fields).Debug(msg)
}

func (l *LogrusLogger) Warn(msg string, fields ...contracts.Field) {
	l.entry(fields).Warn(msg)
}

func (l *LogrusLogger) Fatal(msg string, fields ...contracts.Field) {
	l.entry(fields).Fatal(msg)
}

func (l *LogrusLogger) Field() contracts.Field {
	return &field{}
}

func (l *LogrusLogger) SetLevel(level contracts.LogLevel) {
	l.logger.SetLevel(toLogrusLevel(level))
}

// SetDestination switches output to stderr or, for FileLog, appends to the
// first path given.
// The previously opened file, if any, is closed after the switch.
func (l *LogrusLogger) SetDestination(dest contracts.LogDestination, filePath ...string) {
	if dest != contracts.FileLog || len(filePath) == 0 || filePath[0] == "" {
		l.swapOutput(nil)
		return
	}
	f, err := os.OpenFile(filePath[0], os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		l.Error("failed to open log file", l.Field().String("path", filePath[0]), l.Field().Error("error", err))
		return
	}
	l.swapOutput(f)
}

// swapOutput points the logger at f, or stderr when f is nil, and closes
// the file it replaces.
func (l *LogrusLogger) swapOutput(f *os.File) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if f == nil {
		l.logger.SetOutput(os.Stderr)
	} else {
		l.logger.SetOutput(f)
	}
	if l.file != nil {
		_ = l.file.Close()
	}
	l.file = f
}

func toLogrusLevel(level contracts.LogLevel) logrus.Level {
	switch level {
	case contracts.DebugLevel:
		return logrus.DebugLevel
	case contracts.WarnLevel:
		return logrus.WarnLevel
	case contracts.ErrorLevel:
		return logrus.ErrorLevel
	case contracts.FatalLevel:
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}
