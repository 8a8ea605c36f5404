package message

import (
	"errors"
	"fmt"
)

// Error kinds returned by the codec. Match them with errors.Is.
var (
	// ErrStreamExhausted is returned when the byte source cannot supply a
	// byte that a message still needs. The source error is wrapped too.
	ErrStreamExhausted = errors.New("byte stream exhausted")
	// ErrUnknownSystemCode is returned when encoding a system message whose
	// status code has no defined wire length (0xF4, 0xF5, 0xFD).
	ErrUnknownSystemCode = errors.New("unknown system message code")
	// ErrRangeOverflow is returned when a field does not fit its wire width.
	ErrRangeOverflow = errors.New("field value out of range")
	// ErrInvalidStatus is returned when a status byte is handed to a decoder
	// that does not handle it.
	ErrInvalidStatus = errors.New("invalid status byte")
)

// RangeError describes a field that does not fit its wire width.
type RangeError struct {
	Kind  Kind
	Field string
	Value int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %s = %d exceeds %d", e.Kind, e.Field, e.Value, e.Max)
}

func (e *RangeError) Unwrap() error { return ErrRangeOverflow }

const (
	maxChannel = 0x0F
	maxData7   = 0x7F
	maxData14  = 0x3FFF
)

// fieldCheck validates a list of fields in declaration order and returns
// the first violation.
type fieldCheck struct {
	name  string
	value int
	max   int
}

func checkFields(k Kind, fields ...fieldCheck) error {
	for _, f := range fields {
		if f.value > f.max {
			return &RangeError{Kind: k, Field: f.name, Value: f.value, Max: f.max}
		}
	}
	return nil
}
