package contracts

import "github.com/leandrodaf/midiwire/sdk/message"

// MIDIEventFilter allows users to specify which message kinds to capture.
// An empty Kinds list lets every message through.
type MIDIEventFilter struct {
	Kinds []message.Kind // List of message kinds to keep.
}

// Allows reports whether a message of kind k passes the filter.
func (f *MIDIEventFilter) Allows(k message.Kind) bool {
	if f == nil || len(f.Kinds) == 0 {
		return true
	}
	for _, allowed := range f.Kinds {
		if allowed == k {
			return true
		}
	}
	return false
}

// CoreMIDIConfig holds configuration for CoreMIDI.
type CoreMIDIConfig struct {
	ClientName string // Name of the MIDI client.
}

// ClientOptions defines the configuration options for the MIDI client.
type ClientOptions struct {
	Logger          Logger           // Logger for logging events and errors.
	LogLevel        LogLevel         // Level of logging to use.
	LogFilePath     string           // File path for logging if file logging is enabled.
	MIDIEventFilter *MIDIEventFilter // Optional filter for MIDI events to capture.
	CoreMIDIConfig  *CoreMIDIConfig  // Configuration specific to CoreMIDI.
}

// Option is a function that modifies ClientOptions.
type Option func(*ClientOptions)

// WithLogger sets the logger for the MIDI client.
func WithLogger(l Logger) Option {
	return func(opts *ClientOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the MIDI client.
func WithLogLevel(level LogLevel) Option {
	return func(opts *ClientOptions) {
		opts.LogLevel = level
	}
}

// WithLogFile sends the client's log output to path.
func WithLogFile(path string) Option {
	return func(opts *ClientOptions) {
		opts.LogFilePath = path
	}
}

// WithMIDIEventFilter sets the MIDI event filter for the MIDI client.
func WithMIDIEventFilter(filter MIDIEventFilter) Option {
	return func(opts *ClientOptions) {
		opts.MIDIEventFilter = &filter
	}
}

// WithCoreMIDIConfig sets the CoreMIDI configuration for the MIDI client.
func WithCoreMIDIConfig(config CoreMIDIConfig) Option {
	return func(opts *ClientOptions) {
		opts.CoreMIDIConfig = &config
	}
}

// StreamOptions configures a stream Reader or Writer.
type StreamOptions struct {
	Logger          Logger           // Logger for decoded messages and failures.
	LogLevel        LogLevel         // Level of logging to use.
	RunningStatus   *bool            // Running status on decode; nil means enabled.
	MIDIEventFilter *MIDIEventFilter // Optional filter applied by the Reader.
}

// StreamOption is a function that modifies StreamOptions.
type StreamOption func(*StreamOptions)

// WithStreamLogger sets the logger for a Reader or Writer.
func WithStreamLogger(l Logger) StreamOption {
	return func(opts *StreamOptions) {
		opts.Logger = l
	}
}

// WithStreamLogLevel sets the logging level for a Reader or Writer.
func WithStreamLogLevel(level LogLevel) StreamOption {
	return func(opts *StreamOptions) {
		opts.LogLevel = level
	}
}

// WithRunningStatus enables or disables running status on decode.
func WithRunningStatus(enabled bool) StreamOption {
	return func(opts *StreamOptions) {
		opts.RunningStatus = &enabled
	}
}

// WithStreamFilter makes the Reader skip messages the filter rejects.
func WithStreamFilter(filter MIDIEventFilter) StreamOption {
	return func(opts *StreamOptions) {
		opts.MIDIEventFilter = &filter
	}
}
