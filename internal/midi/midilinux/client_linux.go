//go:build linux
// +build linux

package midilinux

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/leandrodaf/midiqwerty/internal/midi/midievent"
	"github.com/leandrodaf/midiqwerty/sdk/contracts"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

var (
	ErrNoMIDIDevices       = errors.New("no MIDI devices found")
	ErrInvalidMIDIDevice   = errors.New("invalid MIDI device")
	ErrMIDIConnectionError = errors.New("error connecting to MIDI device")
)

// ClientMid reads MIDI input through the ALSA sequencer via RtMidi.
type ClientMid struct {
	logger          contracts.Logger
	driver          *rtmididrv.Driver
	eventChannel    atomic.Value // chan contracts.MIDI
	midiEventFilter *contracts.MIDIEventFilter
	mu              sync.Mutex
	port            drivers.In
	stopListening   func()
	stopOnce        sync.Once
}

// NewMIDIClient opens the RtMidi driver.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	driver, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contracts.ErrMIDIUnavailable, err)
	}
	options.Logger.Info("MIDI client successfully created")

	return &ClientMid{
		logger:          options.Logger,
		driver:          driver,
		midiEventFilter: options.MIDIEventFilter,
	}, nil
}

// ListDevices returns the MIDI input ports known to ALSA.
func (m *ClientMid) ListDevices() ([]contracts.DeviceInfo, error) {
	ins, err := m.driver.Ins()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI inputs: %w", err)
	}
	if len(ins) == 0 {
		m.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, len(ins))
	for i, in := range ins {
		devices[i] = contracts.DeviceInfo{
			Name:         in.String(),
			EntityName:   in.String(),
			Manufacturer: "ALSA",
		}
	}
	return devices, nil
}

// SelectDevice starts listening on the input port with the given index.
// A previously selected port is closed first.
func (m *ClientMid) SelectDevice(deviceID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ins, err := m.driver.Ins()
	if err != nil {
		return fmt.Errorf("error retrieving MIDI inputs: %w", err)
	}
	if deviceID < 0 || deviceID >= len(ins) {
		m.logger.Error(ErrInvalidMIDIDevice.Error())
		return ErrInvalidMIDIDevice
	}

	m.closePort()

	in := ins[deviceID]
	m.logger.Info("MIDI device selected",
		m.logger.Field().Int("deviceID", deviceID),
		m.logger.Field().String("deviceName", in.String()))

	if err := in.Open(); err != nil {
		m.logger.Error(ErrMIDIConnectionError.Error())
		return fmt.Errorf("%w: %v", ErrMIDIConnectionError, err)
	}

	stop, err := midi.ListenTo(in, m.handleMessage, midi.HandleError(func(listenErr error) {
		m.logger.Warn("MIDI listener error", m.logger.Field().Error("error", listenErr))
	}))
	if err != nil {
		_ = in.Close()
		m.logger.Error(ErrMIDIConnectionError.Error())
		return fmt.Errorf("%w: %v", ErrMIDIConnectionError, err)
	}

	m.port = in
	m.stopListening = stop
	m.logger.Info("MIDI device successfully connected")
	return nil
}

// closePort must be called with mu held.
func (m *ClientMid) closePort() {
	if m.stopListening != nil {
		m.stopListening()
		m.stopListening = nil
	}
	if m.port != nil {
		if err := m.port.Close(); err != nil {
			m.logger.Warn("Failed to close MIDI port", m.logger.Field().Error("error", err))
		}
		m.port = nil
	}
}

func (m *ClientMid) handleMessage(msg midi.Message, _ int32) {
	eventChannel, _ := m.eventChannel.Load().(chan contracts.MIDI)
	if eventChannel == nil {
		return
	}

	event, ok := midievent.Decode(msg)
	if !ok {
		m.logger.Debug("Skipping non-channel MIDI data", m.logger.Field().String("message", msg.String()))
		return
	}
	if !m.midiEventFilter.Allows(msg[0]) {
		return
	}

	if !midievent.Forward(eventChannel, event) {
		m.logger.Warn("Event buffer full; dropping MIDI event")
	}
}

// StartCapture routes decoded events into eventChannel.
// A second call replaces the channel of the running capture.
func (m *ClientMid) StartCapture(eventChannel chan contracts.MIDI) {
	if eventChannel == nil {
		m.logger.Error("StartCapture called with nil eventChannel")
		return
	}

	m.logger.Info("Starting MIDI event capture")
	m.eventChannel.Store(eventChannel)
}

// Stop closes the port and the driver. Only the first call has effect.
func (m *ClientMid) Stop() error {
	var err error
	m.stopOnce.Do(func() {
		m.logger.Info("Stopping MIDI capture")
		m.mu.Lock()
		defer m.mu.Unlock()

		m.eventChannel.Store((chan contracts.MIDI)(nil))
		m.closePort()
		err = m.driver.Close()
		m.logger.Info("MIDI capture stopped")
	})
	return err
}
