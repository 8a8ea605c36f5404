package contracts

import "time"

// LogLevel represents the severity level for logging. The zero value means
// "not set" and is replaced by InfoLevel when options are applied.
type LogLevel int

const (
	// DebugLevel logs every decoded message and is meant for troubleshooting streams.
	DebugLevel LogLevel = iota + 1
	// InfoLevel logs lifecycle events such as device selection and capture start.
	InfoLevel
	// WarnLevel logs recoverable problems such as dropped events.
	WarnLevel
	// ErrorLevel logs decode and device failures.
	ErrorLevel
	// FatalLevel logs unrecoverable failures and exits.
	FatalLevel
)

var levelNames = map[LogLevel]string{
	DebugLevel: "debug",
	InfoLevel:  "info",
	WarnLevel:  "warn",
	ErrorLevel: "error",
	FatalLevel: "fatal",
}

func (l LogLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "unset"
}

// ParseLogLevel maps a level name ("debug", "info", ...) to a LogLevel.
func ParseLogLevel(name string) (LogLevel, bool) {
	for level, n := range levelNames {
		if n == name {
			return level, true
		}
	}
	return 0, false
}

// LogDestination specifies where the log messages should be directed.
type LogDestination string

const (
	// ConsoleLog directs log messages to the console output.
	ConsoleLog LogDestination = "console"
	// FileLog directs log messages to a file.
	FileLog LogDestination = "file"
)

// Field is a typed key/value pair attached to a log entry.
type Field interface {
	Bool(key string, val bool) Field
	Int(key string, val int) Field
	Float64(key string, val float64) Field
	String(key string, val string) Field
	Time(key string, val time.Time) Field
	Int64(key string, val int64) Field
	Error(key string, val error) Field
	Uint64(key string, val uint64) Field
	Uint8(key string, val uint8) Field
}

// Logger records messages at different levels.
type Logger interface {
	Info(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Debug(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Fatal(msg string, fields ...Field)

	Field() Field

	SetLevel(level LogLevel)
	SetDestination(dest LogDestination, filePath ...string)
}
