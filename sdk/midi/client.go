// Package midi opens the MIDI input client for the current operating system.
package midi

import (
	"runtime"

	"github.com/leandrodaf/midiqwerty/internal/setup"
	"github.com/leandrodaf/midiqwerty/sdk/contracts"
)

// NewMIDIClient applies defaults to opts and opens the platform MIDI client.
// Without a filter the client forwards note on, note off and control change.
func NewMIDIClient(opts ...contracts.Option) (contracts.ClientMIDI, error) {
	options, err := setup.ApplyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}
	return newFor(runtime.GOOS, &options)
}
