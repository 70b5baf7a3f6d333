//go:build darwin
// +build darwin

package mididarwin

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/leandrodaf/midiqwerty/internal/midi/midievent"
	"github.com/leandrodaf/midiqwerty/sdk/contracts"
	"github.com/youpy/go-coremidi"
)

var (
	ErrNoMIDIDevices        = errors.New("no MIDI devices found")
	ErrInvalidMIDIDevice    = errors.New("invalid MIDI device")
	ErrMIDIConnectionError  = errors.New("error connecting to MIDI device")
	ErrCreateInputPort      = errors.New("error creating input port")
	ErrIncompleteMIDIPacket = errors.New("incomplete MIDI packet")
)

// sourceConnection is the part of coremidi.PortConnection the client needs.
type sourceConnection interface {
	Disconnect()
}

// ClientMid reads MIDI input from a CoreMIDI source.
type ClientMid struct {
	logger          contracts.Logger
	client          coremidi.Client
	midiEventFilter *contracts.MIDIEventFilter
	events          atomic.Value // chan contracts.MIDI

	mu       sync.Mutex
	port     coremidi.InputPort
	conn     sourceConnection
	inflight sync.WaitGroup
	stopOnce sync.Once
}

// NewMIDIClient registers a CoreMIDI client named after options.CoreMIDIConfig.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	client, err := coremidi.NewClient(options.CoreMIDIConfig.ClientName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contracts.ErrMIDIUnavailable, err)
	}
	options.Logger.Info("MIDI client successfully created",
		options.Logger.Field().String("client", options.CoreMIDIConfig.ClientName))

	return &ClientMid{
		logger:          options.Logger,
		client:          client,
		midiEventFilter: options.MIDIEventFilter,
	}, nil
}

// ListDevices returns every CoreMIDI source with its entity and manufacturer.
func (m *ClientMid) ListDevices() ([]contracts.DeviceInfo, error) {
	sources, err := coremidi.AllSources()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI sources: %w", err)
	}
	if len(sources) == 0 {
		m.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, 0, len(sources))
	for _, source := range sources {
		entity := source.Entity()
		devices = append(devices, contracts.DeviceInfo{
			Name:         source.Name(),
			EntityName:   entity.Name(),
			Manufacturer: entity.Manufacturer(),
		})
	}
	return devices, nil
}

// SelectDevice connects to the source at index deviceID, dropping any previous connection.
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

	m.disconnect()

	source := sources[deviceID]
	m.logger.Info("MIDI device selected",
		m.logger.Field().Int("deviceID", deviceID),
		m.logger.Field().String("deviceName", source.Name()))

	port, err := coremidi.NewInputPort(m.client, "midiqwerty input", m.onPacket)
	if err != nil {
		m.logger.Error(ErrCreateInputPort.Error(), m.logger.Field().Error("error", err))
		return fmt.Errorf("%w: %v", ErrCreateInputPort, err)
	}
	conn, err := port.Connect(source)
	if err != nil {
		m.logger.Error(ErrMIDIConnectionError.Error(), m.logger.Field().Error("error", err))
		return fmt.Errorf("%w: %v", ErrMIDIConnectionError, err)
	}

	m.port = port
	m.conn = conn
	m.logger.Info("MIDI device successfully connected")
	return nil
}

// disconnect must be called with mu held.
func (m *ClientMid) disconnect() {
	if m.conn != nil {
		m.conn.Disconnect()
		m.conn = nil
	}
}

// onPacket runs on a CoreMIDI thread. A packet may carry several messages of
// mixed length back to back.
func (m *ClientMid) onPacket(_ coremidi.Source, packet coremidi.Packet) {
	m.inflight.Add(1)
	defer m.inflight.Done()

	events, _ := m.events.Load().(chan contracts.MIDI)
	if events == nil {
		return
	}
	consumed := midievent.Split(packet.Data, func(event contracts.MIDI, status byte) {
		if !m.midiEventFilter.Allows(status) {
			return
		}
		if !midievent.Forward(events, event) {
			m.logger.Warn("Event buffer full; dropping MIDI event")
		}
	})
	if consumed < len(packet.Data) {
		m.logger.Warn(ErrIncompleteMIDIPacket.Error(),
			m.logger.Field().Int("length", len(packet.Data)),
			m.logger.Field().Int("dropped", len(packet.Data)-consumed))
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
	m.events.Store(eventChannel)
}

// Stop disconnects the source and waits for in-flight packets. Only the first call has effect.
func (m *ClientMid) Stop() error {
	m.stopOnce.Do(func() {
		m.logger.Info("Stopping MIDI capture")
		m.mu.Lock()
		defer m.mu.Unlock()

		m.events.Store((chan contracts.MIDI)(nil))
		m.disconnect()
		m.inflight.Wait()
		m.logger.Info("MIDI capture stopped")
	})
	return nil
}
