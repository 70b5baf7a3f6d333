// Package setup finalizes client options shared by the MIDI client, the virtual keyboard and the translator.
package setup

import (
	"github.com/leandrodaf/midiqwerty/internal/logger"
	"github.com/leandrodaf/midiqwerty/sdk/contracts"
)

// Defaults for options left unset.
const (
	DefaultClientName   = "midiqwerty"
	DefaultKeyboardName = "midiqwerty"
	DefaultUinputPath   = "/dev/uinput"
)

// ApplyDefaultOptions sets default values for ClientOptions if not explicitly provided.
//
// opts ...contracts.Option: A variadic list of option functions that can modify ClientOptions.
//
// Returns:
//   - contracts.ClientOptions: A structure containing the finalized client options with defaults applied.
//   - error: An error if there was an issue applying the options.
func ApplyDefaultOptions(opts ...contracts.Option) (contracts.ClientOptions, error) {
	options := &contracts.ClientOptions{}
	for _, opt := range opts {
		opt(options)
	}

	defaultLogger := options.Logger == nil
	if defaultLogger {
		options.Logger = logger.NewZapLogger()
	}

	if options.CoreMIDIConfig == nil {
		options.CoreMIDIConfig = &contracts.CoreMIDIConfig{ClientName: DefaultClientName}
	}

	if options.KeyboardConfig == nil {
		options.KeyboardConfig = &contracts.KeyboardConfig{}
	}
	if options.KeyboardConfig.Name == "" {
		options.KeyboardConfig.Name = DefaultKeyboardName
	}
	if options.KeyboardConfig.DevicePath == "" {
		options.KeyboardConfig.DevicePath = DefaultUinputPath
	}

	if options.MIDIEventFilter == nil {
		options.MIDIEventFilter = &contracts.MIDIEventFilter{
			Commands: []contracts.MIDICommand{contracts.NoteOn, contracts.NoteOff, contracts.ControlChange},
		}
	}

	// A supplied logger keeps its own level unless one was asked for.
	if defaultLogger || options.LogLevelSet {
		options.Logger.SetLevel(options.LogLevel)
	}
	if options.LogFilePath != "" {
		options.Logger.SetDestination(contracts.FileLog, options.LogFilePath)
	}
	return *options, nil
}
