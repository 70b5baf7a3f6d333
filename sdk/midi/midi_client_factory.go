package midi

import (
	"errors"
	"fmt"

	"github.com/leandrodaf/midiqwerty/internal/midi/mididarwin"
	"github.com/leandrodaf/midiqwerty/internal/midi/midilinux"
	"github.com/leandrodaf/midiqwerty/internal/midi/midiwindows"
	"github.com/leandrodaf/midiqwerty/sdk/contracts"
)

// ErrUnsupportedOS is returned when no MIDI backend exists for the operating system.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// clientInitializers maps GOOS values to MIDI input backends.
var clientInitializers = map[string]func(*contracts.ClientOptions) (contracts.ClientMIDI, error){
	"darwin":  mididarwin.NewMIDIClient,  // CoreMIDI.
	"windows": midiwindows.NewMIDIClient, // winmm.
	"linux":   midilinux.NewMIDIClient,   // ALSA through RtMidi.
}

func newFor(goos string, options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	if initializer, exists := clientInitializers[goos]; exists {
		return initializer(options)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, goos)
}
