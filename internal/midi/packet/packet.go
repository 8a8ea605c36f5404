// Package packet turns the raw byte blocks delivered by platform MIDI APIs
// into decoded messages.
package packet

import (
	"bytes"
	"errors"
	"io"

	"github.com/leandrodaf/midiwire/sdk/message"
)

// ErrEmptyPacket is returned for a packet with no bytes.
var ErrEmptyPacket = errors.New("empty MIDI packet")

// Decode decodes every message in data. Running status applies within the
// packet only. On failure it returns the messages decoded before the error.
func Decode(data []byte) ([]message.Message, error) {
	if len(data) == 0 {
		return nil, ErrEmptyPacket
	}

	dec := message.NewDecoder(bytes.NewReader(data))
	var out []message.Message
	for {
		m, err := dec.Decode()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, m)
	}
}

// DecodeShort decodes the single message packed into a winmm short message:
// status in the low byte, then up to two data bytes. Unused high bytes are
// ignored.
func DecodeShort(param uint32) (message.Message, error) {
	data := []byte{byte(param), byte(param >> 8), byte(param >> 16)}
	if data[0] < 0x80 {
		return nil, message.ErrInvalidStatus
	}
	return message.NewDecoder(bytes.NewReader(data), message.WithRunningStatus(false)).Decode()
}
