// Package methods implements the output methods that turn notes, velocities and
// pedal changes into ordered key transitions.
package methods

import (
	"errors"
	"fmt"

	"github.com/leandrodaf/midiqwerty/internal/keycodes"
	"github.com/leandrodaf/midiqwerty/internal/keystate"
	"github.com/leandrodaf/midiqwerty/sdk/contracts"
)

// ErrNoteOutOfRange is logged when a note has no key under the active method.
var ErrNoteOutOfRange = errors.New("note outside supported range")

// sustainThreshold splits pedal values into up (<64) and down (>=64).
const sustainThreshold = 64

// Bounds of the 61-note window shared by Generic and the core register of PV (C2..C7).
const (
	coreLow  = 36
	coreHigh = 96
)

// coreSymbols assigns one symbol to every note of the core window, lowest first.
const coreSymbols = "1!2@34$5%6^78*9(0qQwWeErtTyYuiIoOpPasSdDfgGhHjJklLzZxcCvVbBnm"

// New creates a fresh instance of the given method.
func New(kind contracts.MethodKind, log contracts.Logger) (contracts.OutputMethod, error) {
	switch kind {
	case contracts.MethodGeneric:
		return NewGeneric(log), nil
	case contracts.MethodPianoVisualizations:
		return NewPianoVisualizations(log), nil
	case contracts.MethodPianoRooms:
		return NewPianoRooms(log), nil
	}
	return nil, fmt.Errorf("unsupported output method %s", kind)
}

func coreSymbol(note uint8) (string, bool) {
	if note < coreLow || note > coreHigh {
		return "", false
	}
	return string(coreSymbols[note-coreLow]), true
}

// heldKeys is the state shared by methods that hold note keys down.
type heldKeys struct {
	keys  keystate.Tracker
	pedal bool
	shift contracts.Key
	space contracts.Key
}

func newHeldKeys() heldKeys {
	return heldKeys{
		shift: keycodes.MustResolve(keycodes.Shift),
		space: keycodes.MustResolve(keycodes.Space),
	}
}

// strike re-presses key: a release first clears any desynchronized OS state,
// then the press, bracketed by shift when the symbol needs it.
func (h *heldKeys) strike(out contracts.KeyTransitions, key contracts.Key) contracts.KeyTransitions {
	out = append(out, contracts.ReleaseKey(key))
	if key.Shifted {
		out = append(out, contracts.PressKey(h.shift))
	}
	out = append(out, contracts.PressKey(key))
	if key.Shifted {
		out = append(out, contracts.ReleaseKey(h.shift))
	}
	h.keys.Acquire(key.Code)
	return out
}

// lift drops one press of key and reports whether the key is now free to release.
func (h *heldKeys) lift(key contracts.Key) bool {
	return h.keys.Release(key.Code)
}

func (h *heldKeys) sustain(value uint8) contracts.KeyTransitions {
	down := value >= sustainThreshold
	if down == h.pedal {
		return nil
	}
	h.pedal = down
	if down {
		return contracts.KeyTransitions{contracts.PressKey(h.space)}
	}
	return contracts.KeyTransitions{contracts.ReleaseKey(h.space)}
}

func (h *heldKeys) reset() {
	h.keys.Reset()
	h.pedal = false
}

func logOutOfRange(log contracts.Logger, method string, note uint8) {
	log.Warn("Note cannot be played",
		log.Field().String("method", method),
		log.Field().Uint8("note", note),
		log.Field().Error("error", ErrNoteOutOfRange))
}
