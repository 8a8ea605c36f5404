package message

import (
	"fmt"
	"io"
)

// SysEx is a system exclusive message. Data holds the bytes between the
// 0xF0 start and the 0xF7 terminator, neither of which is stored.
type SysEx struct {
	Data []byte
}

// DecodeSysEx collects bytes from r until it reads 0xF7. The 0xF0 start
// byte must already have been consumed; the terminator is consumed but not
// stored. There is no length limit.
func DecodeSysEx(r io.ByteReader) (*SysEx, error) {
	data := make([]byte, 0, 16)
	for {
		b, err := readByte(r)
		if err != nil {
			return nil, fmt.Errorf("decode %s after %d bytes: %w", KindSysEx, len(data), err)
		}
		if b == byte(SysExEnd) {
			return &SysEx{Data: data}, nil
		}
		data = append(data, b)
	}
}

func (*SysEx) isMessage() {}
func (*SysEx) Kind() Kind { return KindSysEx }

// Encode returns a copy of Data with no framing bytes and no range check.
// Use Frame for the full 0xF0 ... 0xF7 sequence.
func (m *SysEx) Encode() ([]byte, error) {
	out := make([]byte, len(m.Data))
	copy(out, m.Data)
	return out, nil
}

// Frame returns Data wrapped in the 0xF0 start and 0xF7 end bytes. Every
// data byte must be 7-bit, otherwise the frame could not be decoded again
// and a *RangeError is returned.
func (m *SysEx) Frame() ([]byte, error) {
	for i, b := range m.Data {
		if b > maxData7 {
			return nil, &RangeError{Kind: KindSysEx, Field: fmt.Sprintf("data[%d]", i), Value: int(b), Max: maxData7}
		}
	}
	out := make([]byte, 0, len(m.Data)+2)
	out = append(out, byte(SysExStart))
	out = append(out, m.Data...)
	return append(out, byte(SysExEnd)), nil
}

// Copy returns a new SysEx that shares the underlying Data buffer with m.
// Use Clone when the copy must own its bytes.
func (m *SysEx) Copy() Message {
	c := *m
	return &c
}

// Clone returns a new SysEx with its own copy of Data.
func (m *SysEx) Clone() *SysEx {
	data := make([]byte, len(m.Data))
	copy(data, m.Data)
	return &SysEx{Data: data}
}

func (m *SysEx) String() string {
	return fmt.Sprintf("SysEx %d bytes: % x", len(m.Data), m.Data)
}
