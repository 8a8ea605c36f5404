//go:build darwin
// +build darwin

package mididarwin

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/leandrodaf/midiwire/internal/midi/packet"
	"github.com/leandrodaf/midiwire/sdk/contracts"
	"github.com/youpy/go-coremidi"
)

// Error definitions for MIDI connection and handling issues.
var (
	ErrNoMIDIDevices       = errors.New("no MIDI devices found")
	ErrInvalidMIDIDevice   = errors.New("invalid MIDI device")
	ErrMIDIConnectionError = errors.New("error connecting to MIDI device")
	ErrCreateInputPort     = errors.New("error creating input port")
)

// internalPortConnection is an interface for handling disconnection from a MIDI port.
type internalPortConnection interface {
	Disconnect()
}

// ClientMid manages MIDI operations on Darwin (macOS) systems.
// Incoming CoreMIDI packets are decoded into typed messages before they
// reach the event channel.
type ClientMid struct {
	logger          contracts.Logger
	eventChannel    atomic.Value               // Atomic storage for the event channel to ensure thread safety.
	client          coremidi.Client            // CoreMIDI client instance for MIDI operations.
	inputPort       coremidi.InputPort         // Input port for receiving MIDI events.
	portConn        internalPortConnection     // Connection to the MIDI port.
	midiEventFilter *contracts.MIDIEventFilter // Filter for specific message kinds.
	coreMIDIConfig  *contracts.CoreMIDIConfig  // Configuration for MIDI client.
	mu              sync.Mutex                 // Mutex for thread safety on shared resources.
	capturing       bool                       // Indicates if event capturing is currently active.
	wg              sync.WaitGroup             // WaitGroup for managing concurrent MIDI event processing.
	stopOnce        sync.Once                  // Ensures Stop() is executed only once.
}

// NewMIDIClient initializes a new ClientMid for handling MIDI events on macOS.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	client, err := coremidi.NewClient(options.CoreMIDIConfig.ClientName)
	if err != nil {
		return nil, err
	}
	options.Logger.Info("MIDI client successfully created",
		options.Logger.Field().String("clientName", options.CoreMIDIConfig.ClientName))

	return &ClientMid{
		logger:          options.Logger,
		client:          client,
		midiEventFilter: options.MIDIEventFilter,
		coreMIDIConfig:  options.CoreMIDIConfig,
	}, nil
}

// ListDevices retrieves and returns available MIDI sources.
func (m *ClientMid) ListDevices() ([]contracts.DeviceInfo, error) {
	sources, err := coremidi.AllSources()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI sources: %w", err)
	}
	if len(sources) == 0 {
		m.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, len(sources))
	for i, source := range sources {
		sourceEntity := source.Entity()
		devices[i] = contracts.DeviceInfo{
			ID:           i,
			Name:         source.Name(),
			EntityName:   sourceEntity.Name(),
			Manufacturer: sourceEntity.Manufacturer(),
		}
	}
	return devices, nil
}

// SelectDevice selects a MIDI source by ID and connects to it.
// If a source is already connected, it disconnects first.
func (m *ClientMid) SelectDevice(deviceID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sources, err := coremidi.AllSources()
	if err != nil {
		return fmt.Errorf("error retrieving MIDI sources: %w", err)
	}
	if deviceID < 0 || deviceID >= len(sources) {
		m.logger.Error(ErrInvalidMIDIDevice.Error(), m.logger.Field().Int("deviceID", deviceID))
		return ErrInvalidMIDIDevice
	}

	if m.portConn != nil {
		m.portConn.Disconnect()
		m.portConn = nil
	}

	source := sources[deviceID]
	m.logger.Info("MIDI device selected",
		m.logger.Field().Int("deviceID", deviceID),
		m.logger.Field().String("deviceName", source.Name()))

	m.inputPort, err = coremidi.NewInputPort(m.client, "Input Port", m.handlePacket)
	if err != nil {
		m.logger.Error(ErrCreateInputPort.Error(), m.logger.Field().Error("error", err))
		return fmt.Errorf("%w: %v", ErrCreateInputPort, err)
	}

	m.portConn, err = m.inputPort.Connect(source)
	if err != nil {
		m.logger.Error(ErrMIDIConnectionError.Error(), m.logger.Field().Error("error", err))
		return fmt.Errorf("%w: %v", ErrMIDIConnectionError, err)
	}

	m.logger.Info("MIDI device successfully connected")
	return nil
}

// handlePacket decodes a CoreMIDI packet and forwards every message that
// passes the filter. Messages decoded before a malformed tail are still
// delivered.
func (m *ClientMid) handlePacket(source coremidi.Source, pkt coremidi.Packet) {
	m.wg.Add(1)
	defer m.wg.Done()

	eventChannel, _ := m.eventChannel.Load().(chan contracts.Event)
	if eventChannel == nil {
		m.logger.Warn("eventChannel not initialized or of invalid type")
		return
	}

	msgs, err := packet.Decode(pkt.Data)
	if err != nil {
		m.logger.Warn("Failed to decode MIDI packet",
			m.logger.Field().String("source", source.Name()),
			m.logger.Field().Int("bytes", len(pkt.Data)),
			m.logger.Field().Error("error", err))
	}

	now := uint64(time.Now().UTC().UnixNano())
	for _, msg := range msgs {
		if !m.midiEventFilter.Allows(msg.Kind()) {
			continue
		}
		select {
		case eventChannel <- contracts.Event{Timestamp: now, Message: msg}:
		default:
			m.logger.Warn("Event buffer full; dropping MIDI event", m.logger.Field().String("kind", msg.Kind().String()))
		}
	}
}

// StartCapture begins capturing MIDI events by storing the event channel and marking capturing as active.
func (m *ClientMid) StartCapture(eventChannel chan contracts.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if eventChannel == nil {
		m.logger.Error("StartCapture called with nil eventChannel")
		return
	}

	if m.capturing {
		m.logger.Warn("Capture already started; replacing event channel")
	}

	m.logger.Info("Starting MIDI event capture")
	m.eventChannel.Store(eventChannel)
	m.capturing = true
}

// Stop halts MIDI event capturing, disconnects from the device, and waits for ongoing processing to complete.
// This function ensures it only executes once, even if called multiple times.
func (m *ClientMid) Stop() error {
	m.stopOnce.Do(func() {
		m.logger.Info("Stopping MIDI capture")
		m.mu.Lock()
		defer m.mu.Unlock()

		if m.capturing {
			m.capturing = false

			if m.portConn != nil {
				m.portConn.Disconnect()
				m.portConn = nil
			}

			// Swap in an unbuffered channel nobody reads so late packets are dropped.
			m.eventChannel.Store(make(chan contracts.Event))

			m.logger.Info("MIDI capture stopped")
			m.wg.Wait()
		}
	})
	return nil
}
