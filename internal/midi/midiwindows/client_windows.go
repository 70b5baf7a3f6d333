//go:build windows
// +build windows

package midiwindows

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/leandrodaf/midiqwerty/internal/midi/midievent"
	"github.com/leandrodaf/midiqwerty/sdk/contracts"
	"golang.org/x/sys/windows"
)

var (
	ErrNoMIDIDevices       = errors.New("no MIDI devices found")
	ErrInvalidMIDIDevice   = errors.New("invalid MIDI device")
	ErrMIDIConnectionError = errors.New("error connecting to MIDI device")
)

const (
	callbackFunction = 0x00030000 // CALLBACK_FUNCTION
	midiIOStatus     = 0x00000020 // MIDI_IO_STATUS

	mimOpen      = 0x3C1
	mimClose     = 0x3C2
	mimData      = 0x3C3
	mimError     = 0x3C5
	mimLongError = 0x3C6
	mimMoreData  = 0x3CC
)

// midiInCaps mirrors MIDIINCAPSW.
type midiInCaps struct {
	wMid           uint16
	wPid           uint16
	vDriverVersion uint32
	szPname        [32]uint16
	dwSupport      uint32
}

var (
	winmm                = windows.NewLazySystemDLL("winmm.dll")
	procMidiInGetNumDevs = winmm.NewProc("midiInGetNumDevs")
	procMidiInGetDevCaps = winmm.NewProc("midiInGetDevCapsW")
	procMidiInOpen       = winmm.NewProc("midiInOpen")
	procMidiInStart      = winmm.NewProc("midiInStart")
	procMidiInStop       = winmm.NewProc("midiInStop")
	procMidiInClose      = winmm.NewProc("midiInClose")

	// Callbacks are never freed by the runtime, so one is shared by every client.
	midiInCallbackPtr = windows.NewCallback(midiInCallback)
)

// ClientMid reads MIDI input through winmm.
type ClientMid struct {
	logger          contracts.Logger
	midiEventFilter *contracts.MIDIEventFilter
	events          atomic.Value // chan contracts.MIDI

	mu        sync.Mutex
	handle    windows.Handle
	capturing bool
}

// NewMIDIClient creates a winmm client. No device is opened until SelectDevice.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	if err := winmm.Load(); err != nil {
		return nil, fmt.Errorf("%w: %v", contracts.ErrMIDIUnavailable, err)
	}
	options.Logger.Info("MIDI client successfully created")

	return &ClientMid{
		logger:          options.Logger,
		midiEventFilter: options.MIDIEventFilter,
	}, nil
}

// ListDevices returns the winmm input devices. Devices whose capabilities
// cannot be read keep an empty entry so indexes match SelectDevice.
func (m *ClientMid) ListDevices() ([]contracts.DeviceInfo, error) {
	count, _, _ := procMidiInGetNumDevs.Call()
	if count == 0 {
		m.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, count)
	for i := range devices {
		var caps midiInCaps
		r, _, _ := procMidiInGetDevCaps.Call(uintptr(i), uintptr(unsafe.Pointer(&caps)), unsafe.Sizeof(caps))
		if r != 0 {
			m.logger.Warn("Failed to read MIDI device capabilities", m.logger.Field().Int("deviceID", i))
			continue
		}
		name := windows.UTF16ToString(caps.szPname[:])
		devices[i] = contracts.DeviceInfo{
			Name:         name,
			EntityName:   name,
			Manufacturer: fmt.Sprintf("MID: %d PID: %d", caps.wMid, caps.wPid),
		}
	}
	return devices, nil
}

// SelectDevice opens device deviceID, closing any previous one. When a capture
// is running, input starts on the new device right away.
func (m *ClientMid) SelectDevice(deviceID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	count, _, _ := procMidiInGetNumDevs.Call()
	if deviceID < 0 || uintptr(deviceID) >= count {
		m.logger.Error(ErrInvalidMIDIDevice.Error(), m.logger.Field().Int("deviceID", deviceID))
		return ErrInvalidMIDIDevice
	}

	if err := m.closeDevice(); err != nil {
		return fmt.Errorf("failed to close previous MIDI device: %w", err)
	}

	var handle windows.Handle
	r, _, err := procMidiInOpen.Call(
		uintptr(unsafe.Pointer(&handle)),
		uintptr(deviceID),
		midiInCallbackPtr,
		uintptr(unsafe.Pointer(m)),
		uintptr(callbackFunction|midiIOStatus),
	)
	if r != 0 {
		m.logger.Error(ErrMIDIConnectionError.Error(), m.logger.Field().Error("error", err))
		return fmt.Errorf("%w: device %d: %v", ErrMIDIConnectionError, deviceID, err)
	}
	m.handle = handle
	m.logger.Info("MIDI device successfully connected", m.logger.Field().Int("deviceID", deviceID))

	if m.capturing {
		return m.start()
	}
	return nil
}

// StartCapture routes decoded events into eventChannel. Input begins now if a
// device is open, otherwise on the next SelectDevice.
func (m *ClientMid) StartCapture(eventChannel chan contracts.MIDI) {
	if eventChannel == nil {
		m.logger.Error("StartCapture called with nil eventChannel")
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Info("Starting MIDI event capture")
	m.events.Store(eventChannel)
	if m.capturing {
		return
	}
	m.capturing = true
	if m.handle == 0 {
		return
	}
	if err := m.start(); err != nil {
		m.logger.Error("Failed to start MIDI capture", m.logger.Field().Error("error", err))
	}
}

// start must be called with mu held and an open handle.
func (m *ClientMid) start() error {
	if r, _, err := procMidiInStart.Call(uintptr(m.handle)); r != 0 {
		return fmt.Errorf("midiInStart: %v", err)
	}
	return nil
}

// closeDevice must be called with mu held.
func (m *ClientMid) closeDevice() error {
	if m.handle == 0 {
		return nil
	}
	if r, _, err := procMidiInStop.Call(uintptr(m.handle)); r != 0 {
		return fmt.Errorf("midiInStop: %v", err)
	}
	if r, _, err := procMidiInClose.Call(uintptr(m.handle)); r != 0 {
		return fmt.Errorf("midiInClose: %v", err)
	}
	m.handle = 0
	return nil
}

// Stop ends the capture and closes the device.
func (m *ClientMid) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.capturing = false
	m.events.Store((chan contracts.MIDI)(nil))
	if err := m.closeDevice(); err != nil {
		m.logger.Error("Failed to close MIDI device", m.logger.Field().Error("error", err))
		return err
	}
	m.logger.Info("MIDI capture stopped")
	return nil
}

// midiInCallback runs on a winmm thread. dwParam1 packs status and both data
// bytes little-endian.
func midiInCallback(_ uintptr, msg uint32, instance, param1, _ uintptr) uintptr {
	m := (*ClientMid)(unsafe.Pointer(instance))

	switch msg {
	case mimOpen:
		m.logger.Debug("MIDI device opened")
	case mimClose:
		m.logger.Debug("MIDI device closed")
	case mimData, mimMoreData:
		m.onShortMessage(byte(param1), byte(param1>>8), byte(param1>>16))
	case mimError, mimLongError:
		m.logger.Warn("MIDI driver reported an invalid message", m.logger.Field().Int("msg", int(msg)))
	}
	return 0
}

func (m *ClientMid) onShortMessage(status, data1, data2 byte) {
	events, _ := m.events.Load().(chan contracts.MIDI)
	if events == nil || !m.midiEventFilter.Allows(status) {
		return
	}
	event, ok := midievent.Decode([]byte{status, data1, data2})
	if !ok {
		return
	}
	if !midievent.Forward(events, event) {
		m.logger.Warn("Event buffer full; dropping MIDI event")
	}
}
