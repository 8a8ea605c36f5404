//go:build windows
// +build windows

package midiwindows

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/leandrodaf/midiwire/internal/midi/packet"
	"github.com/leandrodaf/midiwire/sdk/contracts"
	"golang.org/x/sys/windows"
)

// Type definitions for MIDI handles
type HMIDIIN windows.Handle

// Constants for callback flags
const (
	CALLBACK_FUNCTION = 0x00030000 // Indicates that the callback is a function
	MIDI_IO_STATUS    = 0x00000020 // MIDI input/output status
)

// Constants for MIDI message types
const (
	MIM_OPEN      = 0x3C1 // MIDI device opened
	MIM_CLOSE     = 0x3C2 // MIDI device closed
	MIM_DATA      = 0x3C3 // MIDI data received
	MIM_ERROR     = 0x3C5 // MIDI error
	MIM_LONGERROR = 0x3C6 // Long MIDI error
	MIM_MOREDATA  = 0x3CC // More MIDI data available
)

// Struct representing MIDI device capabilities
type midiInCaps struct {
	wMid           uint16
	wPid           uint16
	vDriverVersion uint32
	szPname        [32]uint16
	dwSupport      uint32
}

// ErrNoMIDIDevices is returned when winmm reports no input devices.
var ErrNoMIDIDevices = errors.New("no MIDI devices found")

// ClientMid manages MIDI input on Windows. Short messages delivered by the
// winmm callback are decoded into typed messages; sysex (MIM_LONGDATA) is
// not requested.
type ClientMid struct {
	logger          contracts.Logger
	eventChannel    atomic.Value // chan contracts.Event
	handle          HMIDIIN
	deviceID        int
	portConn        bool
	mu              sync.Mutex
	callback        uintptr
	midiEventFilter *contracts.MIDIEventFilter
	coreMIDIConfig  *contracts.CoreMIDIConfig
}

// Load the winmm.dll library and required functions
var (
	winmm                = windows.NewLazySystemDLL("winmm.dll")
	procMidiInGetNumDevs = winmm.NewProc("midiInGetNumDevs")
	procMidiInGetDevCaps = winmm.NewProc("midiInGetDevCapsW")
	procMidiInOpen       = winmm.NewProc("midiInOpen")
	procMidiInStart      = winmm.NewProc("midiInStart")
	procMidiInStop       = winmm.NewProc("midiInStop")
	procMidiInClose      = winmm.NewProc("midiInClose")
)

// NewMIDIClient creates a MIDI client for Windows
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	options.Logger.Info("MIDI client created for Windows")

	return &ClientMid{
		deviceID:        -1,
		logger:          options.Logger,
		midiEventFilter: options.MIDIEventFilter,
		coreMIDIConfig:  options.CoreMIDIConfig,
	}, nil
}

// ListDevices lists the available MIDI devices
func (m *ClientMid) ListDevices() ([]contracts.DeviceInfo, error) {
	r0, _, _ := procMidiInGetNumDevs.Call()
	numDevices := uint32(r0)
	if numDevices == 0 {
		m.logger.Warn("No MIDI devices found")
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, numDevices)
	for i := uint32(0); i < numDevices; i++ {
		var caps midiInCaps
		r1, _, _ := procMidiInGetDevCaps.Call(
			uintptr(i),
			uintptr(unsafe.Pointer(&caps)),
			unsafe.Sizeof(caps),
		)
		if r1 != 0 {
			m.logger.Warn("Failed to get MIDI device capabilities", m.logger.Field().Int("deviceID", int(i)))
			continue
		}
		deviceName := windows.UTF16ToString(caps.szPname[:])
		devices[i] = contracts.DeviceInfo{
			Name:         deviceName,
			ID:           int(i),
			EntityName:   deviceName,
			Manufacturer: fmt.Sprintf("MID: %d PID: %d", caps.wMid, caps.wPid),
		}
	}
	return devices, nil
}

// SelectDevice selects a MIDI device
func (m *ClientMid) SelectDevice(deviceID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.portConn {
		if err := m.stopCapture(); err != nil {
			return fmt.Errorf("failed to stop previous MIDI capture: %w", err)
		}
	}

	m.callback = windows.NewCallback(midiInCallback)
	fdwOpen := CALLBACK_FUNCTION | MIDI_IO_STATUS

	r1, _, err := procMidiInOpen.Call(
		uintptr(unsafe.Pointer(&m.handle)),
		uintptr(deviceID),
		m.callback,
		uintptr(unsafe.Pointer(m)),
		uintptr(fdwOpen),
	)
	if r1 != 0 {
		m.logger.Error("Failed to open MIDI device",
			m.logger.Field().Int("deviceID", deviceID),
			m.logger.Field().Error("error", err))
		return fmt.Errorf("failed to open MIDI device %d: %v", deviceID, err)
	}

	m.portConn = true
	m.deviceID = deviceID
	m.logger.Info("MIDI device connected", m.logger.Field().Int("deviceID", deviceID))
	return nil
}

// StartCapture initializes MIDI event capture
func (m *ClientMid) StartCapture(eventChannel chan contracts.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.portConn {
		m.logger.Error("Cannot start capture: No MIDI device selected")
		return
	}

	if ch, ok := m.eventChannel.Load().(chan contracts.Event); ok && ch != nil {
		m.logger.Warn("Capture already started")
		return
	}

	m.eventChannel.Store(eventChannel)

	if m.handle == 0 {
		m.logger.Error("Invalid MIDI device handle")
		return
	}

	r1, _, err := procMidiInStart.Call(uintptr(m.handle))
	if r1 != 0 {
		m.logger.Error("Failed to start MIDI capture", m.logger.Field().Error("error", err))
		return
	}

	m.logger.Info("MIDI capture started")
}

// midiInCallback processes incoming MIDI messages
func midiInCallback(hMidiIn uintptr, wMsg uint32, dwInstance uintptr, dwParam1 uintptr, dwParam2 uintptr) uintptr {
	m := (*ClientMid)(unsafe.Pointer(dwInstance))

	switch wMsg {
	case MIM_OPEN:
		m.logger.Info("MIDI device opened")
	case MIM_CLOSE:
		m.logger.Info("MIDI device closed")
	case MIM_DATA:
		msg, err := packet.DecodeShort(uint32(dwParam1))
		if err != nil {
			m.logger.Warn("Failed to decode MIDI short message",
				m.logger.Field().Uint64("param", uint64(dwParam1)),
				m.logger.Field().Error("error", err))
			return 0
		}

		if !m.midiEventFilter.Allows(msg.Kind()) {
			m.logger.Debug("MIDI message filtered out", m.logger.Field().String("kind", msg.Kind().String()))
			return 0
		}

		m.logger.Debug("MIDI message received", m.logger.Field().String("message", msg.String()))

		// Send the event to the channel, with a warning in case the channel is full
		if ch, ok := m.eventChannel.Load().(chan contracts.Event); ok && ch != nil {
			select {
			case ch <- contracts.Event{Timestamp: uint64(time.Now().UTC().UnixNano()), Message: msg}:
			default:
				m.logger.Warn("MIDI event channel is full; event discarded")
			}
		}
	case MIM_ERROR, MIM_LONGERROR:
		m.logger.Error("MIDI driver reported an error", m.logger.Field().Uint64("msg", uint64(wMsg)))
	case MIM_MOREDATA:
		m.logger.Debug("Received MIM_MOREDATA message; ignored")
	default:
		m.logger.Warn("Unknown winmm callback message", m.logger.Field().Uint64("msg", uint64(wMsg)))
	}

	return 0
}

// Stop terminates MIDI event capture and disconnects the device
func (m *ClientMid) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.portConn {
		m.logger.Warn("No MIDI device is connected")
		return nil
	}

	if err := m.stopCapture(); err != nil {
		return fmt.Errorf("failed to stop MIDI capture: %w", err)
	}
	m.logger.Info("MIDI capture stopped and device closed")
	return nil
}

// stopCapture stops the capture and releases resources
func (m *ClientMid) stopCapture() error {
	if m.handle == 0 {
		return fmt.Errorf("invalid MIDI device handle")
	}

	r1, _, err := procMidiInStop.Call(uintptr(m.handle))
	if r1 != 0 {
		m.logger.Error("Failed to stop MIDI capture", m.logger.Field().Error("error", err))
		return err
	}

	r1, _, err = procMidiInClose.Call(uintptr(m.handle))
	if r1 != 0 {
		m.logger.Error("Failed to close MIDI device", m.logger.Field().Int("deviceID", m.deviceID), m.logger.Field().Error("error", err))
		return err
	}

	m.portConn = false
	m.handle = 0
	m.eventChannel.Store((chan contracts.Event)(nil))
	m.deviceID = -1
	return nil
}
