package methods

import (
	"github.com/leandrodaf/midiqwerty/internal/keycodes"
	"github.com/leandrodaf/midiqwerty/sdk/contracts"
)

// Generic plays the 61-note window C2..C7 on the standard virtual piano layout.
// It carries no velocity information.
type Generic struct {
	log contracts.Logger
	heldKeys
}

// NewGeneric creates a Generic method with empty key state.
func NewGeneric(log contracts.Logger) *Generic {
	return &Generic{log: log, heldKeys: newHeldKeys()}
}

// Name returns the display name of the method.
func (g *Generic) Name() string {
	return "Generic"
}

// Press strikes the key for note. Velocity is ignored.
func (g *Generic) Press(note, velocity uint8) contracts.KeyTransitions {
	symbol, ok := coreSymbol(note)
	if !ok {
		logOutOfRange(g.log, g.Name(), note)
		return nil
	}
	g.log.Debug("Playing note",
		g.log.Field().String("method", g.Name()),
		g.log.Field().Uint8("note", note),
		g.log.Field().Uint8("velocity", velocity))

	return g.strike(nil, keycodes.MustResolve(symbol))
}

// Release lifts the key for note once its last holder lets go.
func (g *Generic) Release(note uint8) contracts.KeyTransitions {
	symbol, ok := coreSymbol(note)
	if !ok {
		logOutOfRange(g.log, g.Name(), note)
		return nil
	}
	key := keycodes.MustResolve(symbol)
	if !g.lift(key) {
		return nil
	}
	return contracts.KeyTransitions{contracts.ReleaseKey(key)}
}

// Sustain holds or releases the space bar on pedal edges.
func (g *Generic) Sustain(value uint8) contracts.KeyTransitions {
	return g.sustain(value)
}

// Reset forgets every held key and the pedal state.
func (g *Generic) Reset() {
	g.reset()
}
