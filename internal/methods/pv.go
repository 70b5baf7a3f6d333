package methods

import (
	"github.com/leandrodaf/midiqwerty/internal/keycodes"
	"github.com/leandrodaf/midiqwerty/sdk/contracts"
)

// Outer registers of the 88-key range. Low notes count down from B1, high notes up from C#7.
const (
	lowSymbols  = "trewq0987654321"
	highSymbols = "yuiopasdfghj"

	lowTop     = coreLow - 1  // B1
	highBottom = coreHigh + 1 // C#7
	lowest     = lowTop - len(lowSymbols) + 1
	highest    = highBottom + len(highSymbols) - 1
)

// velocityBuckets is ascending; velocityKeys[i] is tapped under alt for bucket i.
var velocityBuckets = [32]uint8{
	4, 8, 12, 16,
	20, 24, 28, 32,
	36, 40, 44, 48,
	52, 56, 60, 64,
	68, 72, 76, 80,
	84, 88, 92, 96,
	100, 104, 108, 112,
	116, 120, 124, 127,
}

const velocityKeys = "1234567890qwertyuiopasdfghjklzxc"

// PianoVisualizations covers the full 88 keys. Velocity precedes every note as an
// alt-held tap; notes outside C2..C7 are played with ctrl held.
type PianoVisualizations struct {
	log contracts.Logger
	heldKeys
	alt  contracts.Key
	ctrl contracts.Key
}

// NewPianoVisualizations creates a PV method with empty key state.
func NewPianoVisualizations(log contracts.Logger) *PianoVisualizations {
	return &PianoVisualizations{
		log:      log,
		heldKeys: newHeldKeys(),
		alt:      keycodes.MustResolve(keycodes.Alt),
		ctrl:     keycodes.MustResolve(keycodes.Ctrl),
	}
}

// Name returns the display name of the method.
func (p *PianoVisualizations) Name() string {
	return "Piano Visualizations"
}

// velocityBucket returns the index of the nearest bucket. Ties go to the lower bucket.
func velocityBucket(velocity uint8) int {
	best, bestDist := 0, 256
	for i, bucket := range velocityBuckets {
		dist := int(velocity) - int(bucket)
		if dist < 0 {
			dist = -dist
		}
		if dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

func velocityKey(velocity uint8) contracts.Key {
	return keycodes.MustResolve(string(velocityKeys[velocityBucket(velocity)]))
}

func pvSymbol(note uint8) (symbol string, outer bool, ok bool) {
	n := int(note)
	switch {
	case n >= lowest && n <= lowTop:
		return string(lowSymbols[lowTop-n]), true, true
	case n >= highBottom && n <= highest:
		return string(highSymbols[n-highBottom]), true, true
	}
	symbol, ok = coreSymbol(note)
	return symbol, false, ok
}

// velocityTap taps the bucket key under alt. If a sounding note holds the same
// key, the key is left down so the note's own release still balances it.
func (p *PianoVisualizations) velocityTap(velocity uint8) contracts.KeyTransitions {
	key := velocityKey(velocity)
	out := contracts.KeyTransitions{
		contracts.PressKey(p.alt),
		contracts.ReleaseKey(key),
		contracts.PressKey(key),
	}
	if !p.keys.Held(key.Code) {
		out = append(out, contracts.ReleaseKey(key))
	}
	return append(out, contracts.ReleaseKey(p.alt))
}

// Press taps the velocity key under alt, then strikes the note key, under ctrl for the outer registers.
func (p *PianoVisualizations) Press(note, velocity uint8) contracts.KeyTransitions {
	symbol, outer, ok := pvSymbol(note)
	if !ok {
		logOutOfRange(p.log, p.Name(), note)
		return nil
	}
	p.log.Debug("Playing note",
		p.log.Field().String("method", p.Name()),
		p.log.Field().Uint8("note", note),
		p.log.Field().Uint8("velocity", velocity),
		p.log.Field().Bool("outer", outer))

	out := p.velocityTap(velocity)
	if outer {
		out = append(out, contracts.PressKey(p.ctrl))
	}
	out = p.strike(out, keycodes.MustResolve(symbol))
	if outer {
		out = append(out, contracts.ReleaseKey(p.ctrl))
	}
	return out
}

// Release lifts the key for note once its last holder lets go.
func (p *PianoVisualizations) Release(note uint8) contracts.KeyTransitions {
	symbol, outer, ok := pvSymbol(note)
	if !ok {
		logOutOfRange(p.log, p.Name(), note)
		return nil
	}
	key := keycodes.MustResolve(symbol)
	if !p.lift(key) {
		return nil
	}
	if !outer {
		return contracts.KeyTransitions{contracts.ReleaseKey(key)}
	}
	return contracts.KeyTransitions{
		contracts.PressKey(p.ctrl),
		contracts.ReleaseKey(key),
		contracts.ReleaseKey(p.ctrl),
	}
}

// Sustain holds or releases the space bar on pedal edges.
func (p *PianoVisualizations) Sustain(value uint8) contracts.KeyTransitions {
	return p.sustain(value)
}

// Reset forgets every held key and the pedal state.
func (p *PianoVisualizations) Reset() {
	p.reset()
}
