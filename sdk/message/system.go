package message

import (
	"fmt"
	"io"
)

// SystemType is the status code of a system message.
type SystemType byte

const (
	SysExStart   SystemType = 0xF0
	QuarterFrame SystemType = 0xF1
	SongPosition SystemType = 0xF2
	SongSelect   SystemType = 0xF3
	Undefined1   SystemType = 0xF4
	Undefined2   SystemType = 0xF5
	TuneRequest  SystemType = 0xF6
	SysExEnd     SystemType = 0xF7
	MIDIClock    SystemType = 0xF8
	MIDITick     SystemType = 0xF9
	MIDIStart    SystemType = 0xFA
	MIDIContinue SystemType = 0xFB
	MIDIStop     SystemType = 0xFC
	Undefined3   SystemType = 0xFD
	ActiveSense  SystemType = 0xFE
)

// systemLength holds the total encoded length of each system status code,
// indexed by code-0xF0. A zero entry has no defined encoding.
var systemLength = [16]int{1, 2, 3, 2, 0, 0, 1, 1, 1, 1, 1, 1, 1, 0, 1, 0}

var systemNames = map[SystemType]string{
	SysExStart:   "SysExStart",
	QuarterFrame: "QuarterFrame",
	SongPosition: "SongPosition",
	SongSelect:   "SongSelect",
	Undefined1:   "Undefined1",
	Undefined2:   "Undefined2",
	TuneRequest:  "TuneRequest",
	SysExEnd:     "SysExEnd",
	MIDIClock:    "MIDIClock",
	MIDITick:     "MIDITick",
	MIDIStart:    "MIDIStart",
	MIDIContinue: "MIDIContinue",
	MIDIStop:     "MIDIStop",
	Undefined3:   "Undefined3",
	ActiveSense:  "ActiveSense",
}

func (t SystemType) String() string {
	if name, ok := systemNames[t]; ok {
		return name
	}
	return fmt.Sprintf("SystemType(0x%02X)", byte(t))
}

// Length returns the total encoded length for t, status byte included.
// It fails with ErrInvalidStatus below 0xF0 and with ErrUnknownSystemCode
// for codes that have no defined encoding.
func (t SystemType) Length() (int, error) {
	if t < SysExStart {
		return 0, fmt.Errorf("%w: 0x%02X is not a system code", ErrInvalidStatus, byte(t))
	}
	n := systemLength[t-SysExStart]
	if n == 0 {
		return 0, fmt.Errorf("%w: 0x%02X", ErrUnknownSystemCode, byte(t))
	}
	return n, nil
}

// IsRealtime reports whether t is a system real-time code (0xF8-0xFF).
// Real-time messages may appear between the bytes of other messages and do
// not cancel running status.
func (t SystemType) IsRealtime() bool {
	return t >= MIDIClock
}

// System is a non-sysex system message. Value is a 7-bit byte for
// QuarterFrame and SongSelect, a 14-bit position for SongPosition, and
// unused for every other type.
type System struct {
	Type  SystemType
	Value uint16
}

// DecodeSystem builds the system message for status, pulling the data bytes
// its type needs from r. Codes 0xF0, 0xF7 and 0xFF are rejected; the
// undefined codes 0xF4, 0xF5 and 0xFD are accepted with no data bytes.
func DecodeSystem(r io.ByteReader, status byte) (*System, error) {
	t := SystemType(status)
	if t <= SysExStart || t == SysExEnd || t > ActiveSense {
		return nil, fmt.Errorf("%w: 0x%02X is not a system message code", ErrInvalidStatus, status)
	}

	m := &System{Type: t}
	switch t {
	case QuarterFrame, SongSelect:
		b, err := readByte(r)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", t, err)
		}
		m.Value = uint16(b)
	case SongPosition:
		v, err := read14(r)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", t, err)
		}
		m.Value = v
	}
	return m, nil
}

func (*System) isMessage() {}
func (*System) Kind() Kind { return KindSystem }

// Encode renders the message using the length table. Types without a
// defined length fail with ErrUnknownSystemCode instead of emitting a
// truncated frame.
func (m *System) Encode() ([]byte, error) {
	if m.Type == SysExStart || m.Type == SysExEnd {
		return nil, fmt.Errorf("%w: %s is sysex framing, use SysEx", ErrInvalidStatus, m.Type)
	}
	n, err := m.Type.Length()
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	out[0] = byte(m.Type)

	switch m.Type {
	case QuarterFrame, SongSelect:
		if err := checkFields(KindSystem, fieldCheck{"value", int(m.Value), maxData7}); err != nil {
			return nil, err
		}
		out[1] = byte(m.Value)
	case SongPosition:
		if err := checkFields(KindSystem, fieldCheck{"value", int(m.Value), maxData14}); err != nil {
			return nil, err
		}
		out[1], out[2] = split14(m.Value)
	}
	return out, nil
}

func (m *System) Copy() Message {
	c := *m
	return &c
}

func (m *System) String() string {
	switch m.Type {
	case QuarterFrame, SongPosition, SongSelect:
		return fmt.Sprintf("System %s value = %d", m.Type, m.Value)
	default:
		return fmt.Sprintf("System %s", m.Type)
	}
}
