package midi

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/leandrodaf/midiwire/internal/logger"
	"github.com/leandrodaf/midiwire/sdk/contracts"
	"github.com/leandrodaf/midiwire/sdk/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (contracts.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return logger.NewZapLoggerWithCore(core), logs
}

func TestReaderReadAll(t *testing.T) {
	log, logs := newObservedLogger()
	stream := []byte{
		0x90, 0x3C, 0x40,
		0x3E, 0x40,
		0xF2, 0x10, 0x20,
		0xF0, 0x41, 0x10, 0x42, 0xF7,
	}

	r := NewReader(bytes.NewBuffer(stream), contracts.WithStreamLogger(log), contracts.WithStreamLogLevel(contracts.DebugLevel))
	msgs, err := r.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []message.Message{
		&message.NoteOn{Channel: 0, Note: 0x3C, Velocity: 0x40},
		&message.NoteOn{Channel: 0, Note: 0x3E, Velocity: 0x40},
		&message.System{Type: message.SongPosition, Value: 2080},
		&message.SysEx{Data: []byte{0x41, 0x10, 0x42}},
	}, msgs)
	assert.Equal(t, uint64(4), r.Count())
	assert.Equal(t, 4, logs.FilterMessage("MIDI message decoded").Len())
}

func TestReaderWrapsPlainReader(t *testing.T) {
	log, _ := newObservedLogger()
	r := NewReader(io.MultiReader(bytes.NewReader([]byte{0xC0}), bytes.NewReader([]byte{0x05})),
		contracts.WithStreamLogger(log))

	m, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, &message.PatchChange{Channel: 0, Patch: 5}, m)

	_, err = r.Read()
	assert.Equal(t, io.EOF, err)
}

func TestReaderFilter(t *testing.T) {
	log, logs := newObservedLogger()
	stream := []byte{0xF8, 0x90, 0x3C, 0x40, 0xF8, 0x80, 0x3C, 0x00}

	r := NewReader(bytes.NewReader(stream),
		contracts.WithStreamLogger(log),
		contracts.WithStreamLogLevel(contracts.DebugLevel),
		contracts.WithStreamFilter(contracts.MIDIEventFilter{Kinds: []message.Kind{message.KindNoteOn, message.KindNoteOff}}))

	msgs, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, message.KindNoteOn, msgs[0].Kind())
	assert.Equal(t, message.KindNoteOff, msgs[1].Kind())
	assert.Equal(t, uint64(4), r.Count())
	assert.Equal(t, 2, logs.FilterMessage("MIDI message filtered out").Len())
}

func TestReaderRunningStatusDisabled(t *testing.T) {
	log, logs := newObservedLogger()
	r := NewReader(bytes.NewReader([]byte{0x90, 0x3C, 0x40, 0x3E, 0x40}),
		contracts.WithStreamLogger(log), contracts.WithRunningStatus(false))

	_, err := r.ReadAll()
	assert.ErrorIs(t, err, message.ErrInvalidStatus)
	assert.Equal(t, 1, logs.FilterMessage("Failed to decode MIDI message").Len())
}

func TestReaderTruncatedStream(t *testing.T) {
	log, logs := newObservedLogger()
	r := NewReader(bytes.NewReader([]byte{0xE0, 0x40}), contracts.WithStreamLogger(log))

	_, err := r.Read()
	assert.ErrorIs(t, err, message.ErrStreamExhausted)
	assert.NotErrorIs(t, err, io.EOF)
	assert.Equal(t, 1, logs.FilterMessage("Failed to decode MIDI message").Len())
}

func TestReaderReadAllTruncatedStream(t *testing.T) {
	log, logs := newObservedLogger()
	r := NewReader(bytes.NewReader([]byte{0xC0, 0x01, 0x90, 0x3C}), contracts.WithStreamLogger(log))

	msgs, err := r.ReadAll()
	require.ErrorIs(t, err, message.ErrStreamExhausted)
	assert.Equal(t, []message.Message{&message.PatchChange{Channel: 0, Patch: 1}}, msgs)
	assert.Equal(t, 1, logs.FilterMessage("Failed to decode MIDI message").Len())
}

func TestWriterRoundTrip(t *testing.T) {
	log, _ := newObservedLogger()
	msgs := []message.Message{
		&message.NoteOn{Channel: 2, Note: 60, Velocity: 100},
		&message.SysEx{Data: []byte{0x7E, 0x7F, 0x09, 0x01}},
		&message.PitchWheel{Channel: 2, Wheel: 16383},
		&message.System{Type: message.MIDIStart},
		&message.System{Type: message.QuarterFrame, Value: 0x21},
	}

	var buf bytes.Buffer
	w := NewWriter(&buf, contracts.WithStreamLogger(log))
	for _, m := range msgs {
		require.NoError(t, w.Write(m))
	}

	assert.Equal(t, []byte{
		0x92, 60, 100,
		0xF0, 0x7E, 0x7F, 0x09, 0x01, 0xF7,
		0xE2, 0x7F, 0x7F,
		0xFA,
		0xF1, 0x21,
	}, buf.Bytes())

	got, err := NewReader(&buf, contracts.WithStreamLogger(log)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, msgs, got)
}

func TestWriterEncodeError(t *testing.T) {
	log, logs := newObservedLogger()
	var buf bytes.Buffer
	w := NewWriter(&buf, contracts.WithStreamLogger(log))

	err := w.Write(&message.System{Type: message.Undefined3})
	assert.ErrorIs(t, err, message.ErrUnknownSystemCode)
	assert.Zero(t, buf.Len())
	assert.Equal(t, 1, logs.FilterMessage("Failed to encode MIDI message").Len())
}

func TestWriterRejectsUnreadableSysEx(t *testing.T) {
	log, _ := newObservedLogger()
	var buf bytes.Buffer
	w := NewWriter(&buf, contracts.WithStreamLogger(log))

	err := w.Write(&message.SysEx{Data: []byte{0x41, 0xF7, 0x42}})
	assert.ErrorIs(t, err, message.ErrRangeOverflow)
	assert.Zero(t, buf.Len())
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("port closed") }

func TestWriterPropagatesIOError(t *testing.T) {
	log, _ := newObservedLogger()
	err := NewWriter(brokenWriter{}, contracts.WithStreamLogger(log)).Write(&message.System{Type: message.MIDIStop})
	assert.EqualError(t, err, "write System: port closed")
}

func TestApplyDefaultOptions(t *testing.T) {
	opts, err := applyDefaultOptions()
	require.NoError(t, err)
	assert.NotNil(t, opts.Logger)
	assert.Equal(t, contracts.InfoLevel, opts.LogLevel)
	assert.Equal(t, "GO MIDI Client", opts.CoreMIDIConfig.ClientName)

	stream := applyDefaultStreamOptions()
	require.NotNil(t, stream.RunningStatus)
	assert.True(t, *stream.RunningStatus)
}
