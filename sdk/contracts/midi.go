package contracts

import "github.com/leandrodaf/midiwire/sdk/message"

// Event is a decoded MIDI message together with the time it was received.
type Event struct {
	Timestamp uint64          // Timestamp in nanoseconds since the Unix epoch.
	Message   message.Message // Message is the decoded wire message.
}

// ClientMIDI defines an interface for MIDI client operations.
type ClientMIDI interface {
	Stop() error                          // Stops the MIDI client and releases resources.
	ListDevices() ([]DeviceInfo, error)   // Lists all available MIDI devices.
	SelectDevice(deviceID int) error      // Selects a MIDI device by its ID for communication.
	StartCapture(eventChannel chan Event) // Starts capturing MIDI events and sends them to the specified channel.
}
