//go:build !linux
// +build !linux

package midilinux

import "github.com/leandrodaf/midiqwerty/sdk/contracts"

// NewMIDIClient fails outside Linux; RtMidi over ALSA is the only backend in this package.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	options.Logger.Warn("ALSA MIDI client requested on a non-Linux system")
	return nil, contracts.ErrMIDIUnavailable
}
