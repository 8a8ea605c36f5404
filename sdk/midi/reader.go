package midi

import (
	"bufio"
	"io"

	"github.com/leandrodaf/midiwire/sdk/contracts"
	"github.com/leandrodaf/midiwire/sdk/message"
)

// Reader decodes MIDI messages from a byte stream and logs what it reads.
// It is not safe for concurrent use.
type Reader struct {
	dec    *message.Decoder
	logger contracts.Logger
	filter *contracts.MIDIEventFilter
	count  uint64
}

// NewReader creates a Reader over r. If r does not implement io.ByteReader
// it is wrapped in a bufio.Reader.
//
// opts ...contracts.StreamOption: logger, log level, running status and filter.
func NewReader(r io.Reader, opts ...contracts.StreamOption) *Reader {
	options := applyDefaultStreamOptions(opts...)

	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}

	return &Reader{
		dec:    message.NewDecoder(br, message.WithRunningStatus(*options.RunningStatus)),
		logger: options.Logger,
		filter: options.MIDIEventFilter,
	}
}

// Read returns the next message that passes the filter. It returns io.EOF
// when the stream ends on a message boundary.
func (r *Reader) Read() (message.Message, error) {
	for {
		m, err := r.dec.Decode()
		if err != nil {
			if err != io.EOF {
				r.logger.Error("Failed to decode MIDI message",
					r.logger.Field().Uint64("index", r.count),
					r.logger.Field().Error("error", err))
			}
			return nil, err
		}
		r.count++

		if !r.filter.Allows(m.Kind()) {
			r.logger.Debug("MIDI message filtered out", r.logger.Field().String("kind", m.Kind().String()))
			continue
		}

		r.logger.Debug("MIDI message decoded",
			r.logger.Field().String("kind", m.Kind().String()),
			r.logger.Field().String("message", m.String()))
		return m, nil
	}
}

// ReadAll decodes until the end of the stream.
func (r *Reader) ReadAll() ([]message.Message, error) {
	var out []message.Message
	for {
		m, err := r.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, m)
	}
}

// Count returns the number of messages decoded so far, filtered ones included.
func (r *Reader) Count() uint64 {
	return r.count
}
