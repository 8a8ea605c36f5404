// Package midi is the entry point of the library. It opens platform MIDI
// inputs whose packets are decoded into typed messages (NewMIDIClient), and
// wraps byte streams for reading and writing messages (NewReader,
// NewWriter).
package midi

import (
	"github.com/leandrodaf/midiwire/sdk/contracts"
)

// NewMIDIClient creates a new MIDI client with the specified options.
// It applies default options and initializes the client for the current
// operating system.
//
// opts ...contracts.Option: A variadic list of option functions to customize the client configuration.
//
// Returns:
//   - contracts.ClientMIDI: An instance of the MIDI client.
//   - error: An error, if any occurred during the creation of the client.
func NewMIDIClient(opts ...contracts.Option) (contracts.ClientMIDI, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}

	client, err := NewClient(&options)
	if err != nil {
		options.Logger.Error("Failed to create MIDI client", options.Logger.Field().Error("error", err))
		return nil, err
	}

	return client, nil
}
