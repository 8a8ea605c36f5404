package midi

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/leandrodaf/midiwire/internal/midi/mididarwin"
	"github.com/leandrodaf/midiwire/internal/midi/midiwindows"
	"github.com/leandrodaf/midiwire/sdk/contracts"
)

// ErrUnsupportedOS is returned when the operating system is not supported by the MIDI client.
var ErrUnsupportedOS = errors.New("unsupported operating system")

type clientInitializer func(*contracts.ClientOptions) (contracts.ClientMIDI, error)

// clientInitializers maps OS names to corresponding MIDI client initializers.
var clientInitializers = map[string]clientInitializer{
	"darwin":  mididarwin.NewMIDIClient,  // CoreMIDI
	"windows": midiwindows.NewMIDIClient, // winmm
}

// NewClient initializes a MIDI client based on the current operating system.
// It returns ErrUnsupportedOS when no platform client exists.
func NewClient(opts *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	return newClientFor(runtime.GOOS, opts)
}

func newClientFor(goos string, opts *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	initializer, exists := clientInitializers[goos]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, goos)
	}
	opts.Logger.Debug("Initializing platform MIDI client", opts.Logger.Field().String("os", goos))
	return initializer(opts)
}
