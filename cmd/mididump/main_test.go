package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/leandrodaf/midiwire/internal/config"
	"github.com/leandrodaf/midiwire/internal/logger"
	"github.com/leandrodaf/midiwire/sdk/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRunPrintsAndVerifies(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	cfg := config.Default()
	cfg.Decode.Verify = true

	in := bytes.NewReader([]byte{
		0x90, 0x3C, 0x40,
		0xF2, 0x10, 0x20,
		0xF0, 0x41, 0x10, 0x42, 0xF7,
	})
	var out bytes.Buffer

	require.NoError(t, run(in, &out, cfg, logger.NewZapLoggerWithCore(core)))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Note On (0) note = 60, velocity = 64")
	assert.Contains(t, lines[1], "System SongPosition value = 2080")
	assert.Contains(t, lines[2], "SysEx 3 bytes: 41 10 42")
	assert.Equal(t, 1, logs.FilterMessage("Stream decoded").Len())
}

func TestRunReportsTruncation(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)
	var out bytes.Buffer

	err := run(bytes.NewReader([]byte{0xC0, 0x01, 0x90, 0x3C}), &out, config.Default(), logger.NewZapLoggerWithCore(core))
	assert.ErrorIs(t, err, message.ErrStreamExhausted)
	assert.Contains(t, out.String(), "Patch Change (0) number = 1")
}

func TestVerifyRoundTripRejectsUnencodable(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)
	cfg := config.Default()
	opts, err := cfg.StreamOptions(logger.NewZapLoggerWithCore(core))
	require.NoError(t, err)

	err = verifyRoundTrip([]message.Message{&message.System{Type: message.Undefined1}}, opts)
	assert.ErrorIs(t, err, message.ErrUnknownSystemCode)
}
