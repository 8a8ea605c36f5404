package midi

import (
	"fmt"
	"io"

	"github.com/leandrodaf/midiwire/sdk/contracts"
	"github.com/leandrodaf/midiwire/sdk/message"
)

// Writer encodes messages onto a byte stream. SysEx messages are written
// with their 0xF0 and 0xF7 framing so the output can be read back by a
// Reader.
type Writer struct {
	w      io.Writer
	logger contracts.Logger
}

// NewWriter creates a Writer over w.
func NewWriter(w io.Writer, opts ...contracts.StreamOption) *Writer {
	options := applyDefaultStreamOptions(opts...)
	return &Writer{w: w, logger: options.Logger}
}

// Write encodes m and writes it to the stream.
func (w *Writer) Write(m message.Message) error {
	out, err := frame(m)
	if err != nil {
		w.logger.Error("Failed to encode MIDI message", w.logger.Field().Error("error", err))
		return err
	}
	if _, err := w.w.Write(out); err != nil {
		return fmt.Errorf("write %s: %w", m.Kind(), err)
	}
	w.logger.Debug("MIDI message written",
		w.logger.Field().String("kind", m.Kind().String()),
		w.logger.Field().Int("bytes", len(out)))
	return nil
}

// frame returns the full wire frame for m.
func frame(m message.Message) ([]byte, error) {
	if sx, ok := m.(*message.SysEx); ok {
		return sx.Frame()
	}
	return message.Encode(m)
}
