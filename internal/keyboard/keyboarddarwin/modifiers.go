package keyboarddarwin

import (
	"github.com/leandrodaf/midiqwerty/internal/keycodes"
	"github.com/leandrodaf/midiqwerty/sdk/contracts"
)

// Event flag masks from CGEventTypes.h.
const (
	flagMaskShift     uint64 = 0x00020000
	flagMaskControl   uint64 = 0x00040000
	flagMaskAlternate uint64 = 0x00080000
)

// modifierState tracks which modifiers this process holds down. Posted events
// carry their flags explicitly and the system offers no query for the flags of
// a synthetic source, so the keyboard keeps its own copy.
type modifierState struct {
	masks map[uint16]uint64
	flags uint64
}

func newModifierState() *modifierState {
	return &modifierState{masks: map[uint16]uint64{
		macCode(keycodes.Shift): flagMaskShift,
		macCode(keycodes.Ctrl):  flagMaskControl,
		macCode(keycodes.Alt):   flagMaskAlternate,
	}}
}

func macCode(name string) uint16 {
	key, err := keycodes.ResolveFor(keycodes.PlatformMac, name)
	if err != nil {
		panic(err)
	}
	return key.Code
}

// apply updates the held modifiers with transition and returns the flags the
// transition's event must carry.
func (m *modifierState) apply(transition contracts.KeyTransition) uint64 {
	if mask, ok := m.masks[transition.Key.Code]; ok {
		if transition.Direction == contracts.Press {
			m.flags |= mask
		} else {
			m.flags &^= mask
		}
	}
	return m.flags
}

func (m *modifierState) reset() {
	m.flags = 0
}
