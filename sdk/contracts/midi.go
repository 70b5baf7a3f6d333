package contracts

import "errors"

// MIDI represents a channel voice event with a timestamp, command, channel and two data bytes.
type MIDI struct {
	Timestamp uint64 // Timestamp indicates the time the event occurred.
	Command   byte   // Command is the status nibble (e.g., Note On, Note Off, Control Change).
	Channel   byte   // Channel is the zero-based MIDI channel (0-15).
	Note      byte   // Note is the first data byte: note number or controller number (0-127).
	Velocity  byte   // Velocity is the second data byte: velocity or controller value (0-127).
}

// ClientMIDI defines an interface for MIDI client operations.
type ClientMIDI interface {
	Stop() error                         // Stops the MIDI client and releases resources.
	ListDevices() ([]DeviceInfo, error)  // Lists all available MIDI devices.
	SelectDevice(deviceID int) error     // Selects a MIDI device by its ID for communication.
	StartCapture(eventChannel chan MIDI) // Starts capturing MIDI events and sends them to the specified channel.
}

// ErrMIDIUnavailable is returned by MIDI clients on platforms without a MIDI backend.
var ErrMIDIUnavailable = errors.New("MIDI functionality is not available on this platform")
