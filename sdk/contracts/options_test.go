package contracts

import (
	"testing"

	"github.com/leandrodaf/midiwire/sdk/message"
	"github.com/stretchr/testify/assert"
)

func TestMIDIEventFilterAllows(t *testing.T) {
	var nilFilter *MIDIEventFilter
	assert.True(t, nilFilter.Allows(message.KindSysEx))
	assert.True(t, (&MIDIEventFilter{}).Allows(message.KindNoteOn))

	f := &MIDIEventFilter{Kinds: []message.Kind{message.KindNoteOn, message.KindNoteOff}}
	assert.True(t, f.Allows(message.KindNoteOn))
	assert.True(t, f.Allows(message.KindNoteOff))
	assert.False(t, f.Allows(message.KindController))
}

func TestParseLogLevel(t *testing.T) {
	level, ok := ParseLogLevel("warn")
	assert.True(t, ok)
	assert.Equal(t, WarnLevel, level)
	assert.Equal(t, "warn", level.String())

	_, ok = ParseLogLevel("verbose")
	assert.False(t, ok)
	assert.Equal(t, "unset", LogLevel(0).String())
}

func TestStreamOptions(t *testing.T) {
	opts := &StreamOptions{}
	for _, opt := range []StreamOption{
		WithRunningStatus(false),
		WithStreamLogLevel(DebugLevel),
		WithStreamFilter(MIDIEventFilter{Kinds: []message.Kind{message.KindSystem}}),
	} {
		opt(opts)
	}

	if assert.NotNil(t, opts.RunningStatus) {
		assert.False(t, *opts.RunningStatus)
	}
	assert.Equal(t, DebugLevel, opts.LogLevel)
	assert.False(t, opts.MIDIEventFilter.Allows(message.KindNoteOn))
}
