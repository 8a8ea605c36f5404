package message

import (
	"fmt"
	"io"
)

// Command is the high nibble of a channel status byte, kept in place
// (low nibble zero) so that Command + channel is the status byte.
type Command byte

const (
	NoteOffCommand         Command = 0x80
	NoteOnCommand          Command = 0x90
	AftertouchCommand      Command = 0xA0
	ControllerCommand      Command = 0xB0
	PatchChangeCommand     Command = 0xC0
	ChannelPressureCommand Command = 0xD0
	PitchWheelCommand      Command = 0xE0
)

// SplitStatus splits a channel status byte into its command and channel.
func SplitStatus(status byte) (Command, uint8) {
	return Command(status & 0xF0), status & 0x0F
}

// IsChannelStatus reports whether status lies in the channel range 0x80-0xEF.
func IsChannelStatus(status byte) bool {
	return status >= 0x80 && status < 0xF0
}

// DataLength returns the number of data bytes that follow the status byte,
// or -1 if c is not a channel command.
func (c Command) DataLength() int {
	switch c {
	case NoteOffCommand, NoteOnCommand, AftertouchCommand, ControllerCommand, PitchWheelCommand:
		return 2
	case PatchChangeCommand, ChannelPressureCommand:
		return 1
	default:
		return -1
	}
}

// Kind returns the message variant produced for c, or 0 if c is not a
// channel command.
func (c Command) Kind() Kind {
	switch c {
	case NoteOffCommand:
		return KindNoteOff
	case NoteOnCommand:
		return KindNoteOn
	case AftertouchCommand:
		return KindAftertouch
	case ControllerCommand:
		return KindController
	case PatchChangeCommand:
		return KindPatchChange
	case ChannelPressureCommand:
		return KindChannelPressure
	case PitchWheelCommand:
		return KindPitchWheel
	default:
		return 0
	}
}

func (c Command) String() string {
	if k := c.Kind(); k != 0 {
		return k.String()
	}
	return fmt.Sprintf("Command(0x%02X)", byte(c))
}

// DecodeChannel builds the channel message for cmd, pulling exactly
// cmd.DataLength() bytes from r. The status byte must already have been
// consumed by the caller. Data bytes are stored as read.
func DecodeChannel(r io.ByteReader, cmd Command, channel uint8) (ChannelMessage, error) {
	n := cmd.DataLength()
	if n < 0 {
		return nil, fmt.Errorf("%w: 0x%02X is not a channel command", ErrInvalidStatus, byte(cmd))
	}

	var data [2]byte
	for i := 0; i < n; i++ {
		b, err := readByte(r)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", cmd, err)
		}
		data[i] = b
	}

	switch cmd {
	case NoteOffCommand:
		return &NoteOff{Channel: channel, Note: data[0], Velocity: data[1]}, nil
	case NoteOnCommand:
		return &NoteOn{Channel: channel, Note: data[0], Velocity: data[1]}, nil
	case AftertouchCommand:
		return &Aftertouch{Channel: channel, Note: data[0], Pressure: data[1]}, nil
	case ControllerCommand:
		return &Controller{Channel: channel, Number: data[0], Value: data[1]}, nil
	case PatchChangeCommand:
		return &PatchChange{Channel: channel, Patch: data[0]}, nil
	case ChannelPressureCommand:
		return &ChannelPressure{Channel: channel, Pressure: data[0]}, nil
	default:
		return &PitchWheel{Channel: channel, Wheel: uint16(data[0])*128 + uint16(data[1])}, nil
	}
}

// encodeChannel renders status plus data after validating every field.
func encodeChannel(k Kind, cmd Command, channel uint8, fields ...fieldCheck) ([]byte, error) {
	checks := append([]fieldCheck{{"channel", int(channel), maxChannel}}, fields...)
	if err := checkFields(k, checks...); err != nil {
		return nil, err
	}
	out := make([]byte, 1, 1+len(fields))
	out[0] = byte(cmd) + channel
	for _, f := range fields {
		out = append(out, byte(f.value))
	}
	return out, nil
}

// NoteOn starts a note (status 0x90).
type NoteOn struct {
	Channel  uint8
	Note     uint8
	Velocity uint8
}

func (*NoteOn) isMessage()             {}
func (*NoteOn) Kind() Kind             { return KindNoteOn }
func (m *NoteOn) ChannelNumber() uint8 { return m.Channel }

func (m *NoteOn) Encode() ([]byte, error) {
	return encodeChannel(KindNoteOn, NoteOnCommand, m.Channel,
		fieldCheck{"note", int(m.Note), maxData7},
		fieldCheck{"velocity", int(m.Velocity), maxData7})
}

func (m *NoteOn) Copy() Message {
	c := *m
	return &c
}

func (m *NoteOn) String() string {
	return fmt.Sprintf("Note On (%d) note = %d, velocity = %d", m.Channel, m.Note, m.Velocity)
}

// NoteOff releases a note (status 0x80).
type NoteOff struct {
	Channel  uint8
	Note     uint8
	Velocity uint8
}

func (*NoteOff) isMessage()             {}
func (*NoteOff) Kind() Kind             { return KindNoteOff }
func (m *NoteOff) ChannelNumber() uint8 { return m.Channel }

func (m *NoteOff) Encode() ([]byte, error) {
	return encodeChannel(KindNoteOff, NoteOffCommand, m.Channel,
		fieldCheck{"note", int(m.Note), maxData7},
		fieldCheck{"velocity", int(m.Velocity), maxData7})
}

func (m *NoteOff) Copy() Message {
	c := *m
	return &c
}

func (m *NoteOff) String() string {
	return fmt.Sprintf("Note Off (%d) note = %d, velocity = %d", m.Channel, m.Note, m.Velocity)
}

// Aftertouch is polyphonic key pressure (status 0xA0).
type Aftertouch struct {
	Channel  uint8
	Note     uint8
	Pressure uint8
}

func (*Aftertouch) isMessage()             {}
func (*Aftertouch) Kind() Kind             { return KindAftertouch }
func (m *Aftertouch) ChannelNumber() uint8 { return m.Channel }

func (m *Aftertouch) Encode() ([]byte, error) {
	return encodeChannel(KindAftertouch, AftertouchCommand, m.Channel,
		fieldCheck{"note", int(m.Note), maxData7},
		fieldCheck{"pressure", int(m.Pressure), maxData7})
}

func (m *Aftertouch) Copy() Message {
	c := *m
	return &c
}

func (m *Aftertouch) String() string {
	return fmt.Sprintf("Aftertouch (%d) note = %d, pressure = %d", m.Channel, m.Note, m.Pressure)
}

// Controller is a control change (status 0xB0).
type Controller struct {
	Channel uint8
	Number  uint8
	Value   uint8
}

func (*Controller) isMessage()             {}
func (*Controller) Kind() Kind             { return KindController }
func (m *Controller) ChannelNumber() uint8 { return m.Channel }

func (m *Controller) Encode() ([]byte, error) {
	return encodeChannel(KindController, ControllerCommand, m.Channel,
		fieldCheck{"number", int(m.Number), maxData7},
		fieldCheck{"value", int(m.Value), maxData7})
}

func (m *Controller) Copy() Message {
	c := *m
	return &c
}

func (m *Controller) String() string {
	return fmt.Sprintf("Controller (%d) number = %d, value = %d", m.Channel, m.Number, m.Value)
}

// PatchChange selects a program (status 0xC0).
type PatchChange struct {
	Channel uint8
	Patch   uint8
}

func (*PatchChange) isMessage()             {}
func (*PatchChange) Kind() Kind             { return KindPatchChange }
func (m *PatchChange) ChannelNumber() uint8 { return m.Channel }

func (m *PatchChange) Encode() ([]byte, error) {
	return encodeChannel(KindPatchChange, PatchChangeCommand, m.Channel,
		fieldCheck{"patch", int(m.Patch), maxData7})
}

func (m *PatchChange) Copy() Message {
	c := *m
	return &c
}

func (m *PatchChange) String() string {
	return fmt.Sprintf("Patch Change (%d) number = %d", m.Channel, m.Patch)
}

// ChannelPressure is channel-wide aftertouch (status 0xD0).
type ChannelPressure struct {
	Channel  uint8
	Pressure uint8
}

func (*ChannelPressure) isMessage()             {}
func (*ChannelPressure) Kind() Kind             { return KindChannelPressure }
func (m *ChannelPressure) ChannelNumber() uint8 { return m.Channel }

func (m *ChannelPressure) Encode() ([]byte, error) {
	return encodeChannel(KindChannelPressure, ChannelPressureCommand, m.Channel,
		fieldCheck{"pressure", int(m.Pressure), maxData7})
}

func (m *ChannelPressure) Copy() Message {
	c := *m
	return &c
}

func (m *ChannelPressure) String() string {
	return fmt.Sprintf("Channel Pressure (%d) pressure = %d", m.Channel, m.Pressure)
}

// PitchWheel carries a 14-bit wheel position (status 0xE0). On the wire
// the two data bytes are Wheel/128 then Wheel%128.
type PitchWheel struct {
	Channel uint8
	Wheel   uint16
}

func (*PitchWheel) isMessage()             {}
func (*PitchWheel) Kind() Kind             { return KindPitchWheel }
func (m *PitchWheel) ChannelNumber() uint8 { return m.Channel }

func (m *PitchWheel) Encode() ([]byte, error) {
	if err := checkFields(KindPitchWheel,
		fieldCheck{"channel", int(m.Channel), maxChannel},
		fieldCheck{"wheel", int(m.Wheel), maxData14}); err != nil {
		return nil, err
	}
	msb, lsb := split14(m.Wheel)
	return []byte{byte(PitchWheelCommand) + m.Channel, msb, lsb}, nil
}

func (m *PitchWheel) Copy() Message {
	c := *m
	return &c
}

func (m *PitchWheel) String() string {
	return fmt.Sprintf("Pitch Wheel (%d) wheel = %d", m.Channel, m.Wheel)
}
