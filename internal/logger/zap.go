package logger

import (
	"sync"

	"github.com/leandrodaf/midiwire/sdk/contracts"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger implements contracts.Logger on top of Uber's zap.
type ZapLogger struct {
	mu     sync.RWMutex
	logger *zap.Logger
	level  zap.AtomicLevel
	config zap.Config
}

// NewZapLogger creates a production zap logger writing JSON to stderr.
func NewZapLogger() contracts.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

	l, err := cfg.Build(zap.AddCallerSkip(2))
	if err != nil {
		l = zap.NewNop()
	}
	return &ZapLogger{logger: l, level: cfg.Level, config: cfg}
}

// NewZapLoggerWithCore wraps an existing zap core, such as a tee or an
// observer. SetDestination replaces the core with a production one.
func NewZapLoggerWithCore(core zapcore.Core) *ZapLogger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	return &ZapLogger{logger: zap.New(core), level: level, config: zap.NewProductionConfig()}
}

// Info logs a message at the INFO level
func (z *ZapLogger) Info(msg string, fields ...contracts.Field) {
	z.log(zapcore.InfoLevel, msg, fields...)
}

// Error logs a message at the ERROR level
func (z *ZapLogger) Error(msg string, fields ...contracts.Field) {
	z.log(zapcore.ErrorLevel, msg, fields...)
}

// Debug logs a message at the DEBUG level
func (z *ZapLogger) Debug(msg string, fields ...contracts.Field) {
	z.log(zapcore.DebugLevel, msg, fields...)
}

// Warn logs a message at the WARN level
func (z *ZapLogger) Warn(msg string, fields ...contracts.Field) {
	z.log(zapcore.WarnLevel, msg, fields...)
}

// Fatal logs a message at the FATAL level and terminates the application
func (z *ZapLogger) Fatal(msg string, fields ...contracts.Field) {
	z.log(zapcore.FatalLevel, msg, fields...)
}

// Field returns a new instance of Field
func (z *ZapLogger) Field() contracts.Field {
	return &field{}
}

// SetLevel sets the logging level
func (z *ZapLogger) SetLevel(level contracts.LogLevel) {
	z.level.SetLevel(toZapLevel(level))
}

// SetDestination rebuilds the logger so that it writes to stderr or, for
// FileLog, to the first path given.
func (z *ZapLogger) SetDestination(dest contracts.LogDestination, filePath ...string) {
	cfg := z.config
	cfg.Level = z.level
	switch {
	case dest == contracts.FileLog && len(filePath) > 0 && filePath[0] != "":
		cfg.OutputPaths = []string{filePath[0]}
	default:
		cfg.OutputPaths = []string{"stderr"}
	}

	l, err := cfg.Build(zap.AddCallerSkip(2))
	if err != nil {
		z.Error("failed to change log destination", z.Field().Error("error", err))
		return
	}

	z.mu.Lock()
	old := z.logger
	z.logger = l
	z.config = cfg
	z.mu.Unlock()
	_ = old.Sync()
}

func (z *ZapLogger) log(level zapcore.Level, msg string, fields ...contracts.Field) {
	if !z.level.Enabled(level) {
		return
	}

	z.mu.RLock()
	l := z.logger
	z.mu.RUnlock()

	kv := collect(fields)
	zf := make([]zap.Field, 0, len(kv))
	for k, v := range kv {
		zf = append(zf, zap.Any(k, v))
	}

	if ce := l.Check(level, msg); ce != nil {
		ce.Write(zf...)
	}
}

func toZapLevel(level contracts.LogLevel) zapcore.Level {
	switch level {
	case contracts.DebugLevel:
		return zapcore.DebugLevel
	case contracts.WarnLevel:
		return zapcore.WarnLevel
	case contracts.ErrorLevel:
		return zapcore.ErrorLevel
	case contracts.FatalLevel:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}
