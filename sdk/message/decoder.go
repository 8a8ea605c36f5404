package message

import (
	"errors"
	"fmt"
	"io"
)

// Decoder reads successive messages from a byte stream, classifying each
// status byte and dispatching to DecodeChannel, DecodeSystem or DecodeSysEx.
// A Decoder is not safe for concurrent use; use one per stream.
type Decoder struct {
	r             io.ByteReader
	runningStatus bool
	running       byte // last channel status, 0 when none
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithRunningStatus enables or disables running status. When enabled, a
// data byte read where a status byte is expected reuses the previous
// channel status. Enabled by default.
func WithRunningStatus(enabled bool) DecoderOption {
	return func(d *Decoder) {
		d.runningStatus = enabled
	}
}

// NewDecoder returns a Decoder pulling bytes from r.
func NewDecoder(r io.ByteReader, opts ...DecoderOption) *Decoder {
	d := &Decoder{r: r, runningStatus: true}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode reads the next message. It returns io.EOF only when the stream
// ends on a message boundary; running out of bytes inside a message yields
// ErrStreamExhausted.
func (d *Decoder) Decode() (Message, error) {
	status, err := d.r.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, exhausted(err)
	}

	src := d.r
	if status < 0x80 {
		if !d.runningStatus || d.running == 0 {
			return nil, fmt.Errorf("%w: data byte 0x%02X without running status", ErrInvalidStatus, status)
		}
		src = &prefixReader{first: status, r: d.r}
		status = d.running
	}

	switch {
	case IsChannelStatus(status):
		cmd, channel := SplitStatus(status)
		m, err := DecodeChannel(src, cmd, channel)
		if err != nil {
			return nil, err
		}
		d.running = status
		return m, nil
	case status == byte(SysExStart):
		d.running = 0
		return DecodeSysEx(d.r)
	default:
		if !SystemType(status).IsRealtime() {
			d.running = 0
		}
		return DecodeSystem(d.r, status)
	}
}

// Reset clears running status, as after a stream discontinuity.
func (d *Decoder) Reset() {
	d.running = 0
}

// prefixReader yields first once before reading from r.
type prefixReader struct {
	first byte
	used  bool
	r     io.ByteReader
}

func (p *prefixReader) ReadByte() (byte, error) {
	if !p.used {
		p.used = true
		return p.first, nil
	}
	return p.r.ReadByte()
}
