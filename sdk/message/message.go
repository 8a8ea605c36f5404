// Package message implements the MIDI wire codec: typed message values,
// decoders that pull their trailing data bytes from an io.ByteReader, and
// encoders that render each value back to its exact byte sequence.
package message

import (
	"errors"
	"fmt"
	"io"
)

// Kind identifies the concrete variant behind a Message.
type Kind uint8

const (
	KindNoteOff Kind = iota + 1
	KindNoteOn
	KindAftertouch
	KindController
	KindPatchChange
	KindChannelPressure
	KindPitchWheel
	KindSystem
	KindSysEx
)

var kindNames = map[Kind]string{
	KindNoteOff:         "NoteOff",
	KindNoteOn:          "NoteOn",
	KindAftertouch:      "Aftertouch",
	KindController:      "Controller",
	KindPatchChange:     "PatchChange",
	KindChannelPressure: "ChannelPressure",
	KindPitchWheel:      "PitchWheel",
	KindSystem:          "System",
	KindSysEx:           "SysEx",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Message is a decoded MIDI wire message. The set of implementations is
// closed: NoteOn, NoteOff, Aftertouch, Controller, PatchChange,
// ChannelPressure, PitchWheel, System and SysEx.
type Message interface {
	// Kind reports the concrete variant.
	Kind() Kind
	// Encode renders the message to the bytes sent on the wire.
	Encode() ([]byte, error)
	// Copy returns a shallow duplicate of the same variant.
	Copy() Message
	String() string

	isMessage()
}

// ChannelMessage is a Message addressed to one of the 16 MIDI channels.
type ChannelMessage interface {
	Message
	// ChannelNumber returns the channel in the range 0-15.
	ChannelNumber() uint8
}

// Encode renders any message to its wire bytes.
func Encode(m Message) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil message", ErrInvalidStatus)
	}
	return m.Encode()
}

// readByte pulls one byte from r, converting any failure into
// ErrStreamExhausted.
func readByte(r io.ByteReader) (byte, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, exhausted(err)
	}
	return b, nil
}

// exhausted wraps a byte source failure in ErrStreamExhausted. io.EOF is
// kept out of the chain so that errors.Is(err, io.EOF) only ever matches a
// clean end of stream.
func exhausted(err error) error {
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", ErrStreamExhausted, err)
	}
	return fmt.Errorf("%w: %w", ErrStreamExhausted, err)
}

// read14 pulls two 7-bit bytes, most significant first.
func read14(r io.ByteReader) (uint16, error) {
	msb, err := readByte(r)
	if err != nil {
		return 0, err
	}
	lsb, err := readByte(r)
	if err != nil {
		return 0, err
	}
	return uint16(msb)*128 + uint16(lsb), nil
}

// split14 is the inverse of read14.
func split14(v uint16) (msb, lsb byte) {
	return byte(v / 128), byte(v % 128)
}

// ParseKind maps a variant name such as "NoteOn" back to its Kind.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}
