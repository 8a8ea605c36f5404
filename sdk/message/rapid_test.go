package message

import (
	"bytes"
	"reflect"
	"testing"

	"pgregory.net/rapid"
)

func data7() *rapid.Generator[uint8] { return rapid.Uint8Range(0, 0x7F) }

// channelMessageGen draws any in-range channel message.
func channelMessageGen() *rapid.Generator[ChannelMessage] {
	return rapid.Custom(func(t *rapid.T) ChannelMessage {
		ch := rapid.Uint8Range(0, 15).Draw(t, "channel")
		a := data7().Draw(t, "a")
		b := data7().Draw(t, "b")
		switch rapid.IntRange(0, 6).Draw(t, "variant") {
		case 0:
			return &NoteOff{Channel: ch, Note: a, Velocity: b}
		case 1:
			return &NoteOn{Channel: ch, Note: a, Velocity: b}
		case 2:
			return &Aftertouch{Channel: ch, Note: a, Pressure: b}
		case 3:
			return &Controller{Channel: ch, Number: a, Value: b}
		case 4:
			return &PatchChange{Channel: ch, Patch: a}
		case 5:
			return &ChannelPressure{Channel: ch, Pressure: a}
		default:
			return &PitchWheel{Channel: ch, Wheel: rapid.Uint16Range(0, 16383).Draw(t, "wheel")}
		}
	})
}

// TestChannelRoundTrip checks decode(encode(m)) == m for every channel variant.
func TestChannelRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		original := channelMessageGen().Draw(t, "msg")

		enc, err := original.Encode()
		if err != nil {
			t.Fatalf("encode failed: %v", err)
		}

		cmd, channel := SplitStatus(enc[0])
		if len(enc) != 1+cmd.DataLength() {
			t.Fatalf("length mismatch: got %d, want %d", len(enc), 1+cmd.DataLength())
		}

		decoded, err := DecodeChannel(bytes.NewReader(enc[1:]), cmd, channel)
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if !reflect.DeepEqual(decoded, original) {
			t.Fatalf("round trip mismatch: got %v, want %v", decoded, original)
		}
	})
}

// TestFourteenBitPacking checks the 7+7 split shared by PitchWheel and SongPosition.
func TestFourteenBitPacking(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := rapid.Uint16Range(0, 16383).Draw(t, "w")
		want := []byte{byte(w / 128), byte(w % 128)}

		pw, err := (&PitchWheel{Wheel: w}).Encode()
		if err != nil {
			t.Fatalf("pitch wheel encode failed: %v", err)
		}
		if !bytes.Equal(pw[1:], want) {
			t.Fatalf("pitch wheel bytes: got % x, want % x", pw[1:], want)
		}

		sp, err := (&System{Type: SongPosition, Value: w}).Encode()
		if err != nil {
			t.Fatalf("song position encode failed: %v", err)
		}
		if !bytes.Equal(sp[1:], want) {
			t.Fatalf("song position bytes: got % x, want % x", sp[1:], want)
		}

		m, err := DecodeChannel(bytes.NewReader(want), PitchWheelCommand, 0)
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if got := m.(*PitchWheel).Wheel; got != w {
			t.Fatalf("wheel: got %d, want %d", got, w)
		}

		s, err := DecodeSystem(bytes.NewReader(want), byte(SongPosition))
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if s.Value != w {
			t.Fatalf("song position: got %d, want %d", s.Value, w)
		}
	})
}

// TestSysExTermination checks that exactly n+2 bytes are consumed for n data bytes.
func TestSysExTermination(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		payload := rapid.SliceOfN(data7(), 1, 256).Draw(t, "payload")
		tail := rapid.SliceOf(rapid.Byte()).Draw(t, "tail")

		stream := append(append(append([]byte{}, payload...), 0xF7), tail...)
		r := bytes.NewReader(stream)

		m, err := DecodeSysEx(r)
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if !bytes.Equal(m.Data, payload) {
			t.Fatalf("data mismatch: got % x, want % x", m.Data, payload)
		}
		// n+2 counts the status byte consumed by the caller.
		if consumed := len(stream) - r.Len(); consumed+1 != len(payload)+2 {
			t.Fatalf("consumed %d bytes, want %d", consumed, len(payload)+1)
		}
	})
}

// TestSystemLengthConsistency checks encoded length against the length table.
func TestSystemLengthConsistency(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		code := rapid.SampledFrom([]SystemType{
			QuarterFrame, SongPosition, SongSelect, TuneRequest,
			MIDIClock, MIDITick, MIDIStart, MIDIContinue, MIDIStop, ActiveSense,
		}).Draw(t, "code")
		value := rapid.Uint16Range(0, 0x7F).Draw(t, "value")

		want, err := code.Length()
		if err != nil {
			t.Fatalf("length failed: %v", err)
		}
		out, err := (&System{Type: code, Value: value}).Encode()
		if err != nil {
			t.Fatalf("encode failed: %v", err)
		}
		if len(out) != want {
			t.Fatalf("%s: got %d bytes, want %d", code, len(out), want)
		}
		if out[0] != byte(code) {
			t.Fatalf("status: got 0x%02X, want 0x%02X", out[0], byte(code))
		}
	})
}

// TestDecoderStreamRoundTrip encodes a random message sequence and decodes it back.
func TestDecoderStreamRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		msgs := rapid.SliceOfN(channelMessageGen(), 1, 32).Draw(t, "msgs")

		var buf bytes.Buffer
		for _, m := range msgs {
			enc, err := m.Encode()
			if err != nil {
				t.Fatalf("encode failed: %v", err)
			}
			buf.Write(enc)
		}

		d := NewDecoder(&buf)
		for i, want := range msgs {
			got, err := d.Decode()
			if err != nil {
				t.Fatalf("message %d: decode failed: %v", i, err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("message %d: got %v, want %v", i, got, want)
			}
		}
	})
}
