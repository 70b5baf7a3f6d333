//go:build !darwin
// +build !darwin

package mididarwin

import "github.com/leandrodaf/midiqwerty/sdk/contracts"

// NewMIDIClient fails outside macOS; CoreMIDI is the only backend in this package.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	options.Logger.Warn("CoreMIDI client requested on a non-macOS system")
	return nil, contracts.ErrMIDIUnavailable
}
