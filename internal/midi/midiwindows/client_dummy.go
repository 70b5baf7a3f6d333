//go:build !windows
// +build !windows

package midiwindows

import "github.com/leandrodaf/midiqwerty/sdk/contracts"

// NewMIDIClient fails outside Windows; winmm is the only backend in this package.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	options.Logger.Warn("winmm MIDI client requested on a non-Windows system")
	return nil, contracts.ErrMIDIUnavailable
}
