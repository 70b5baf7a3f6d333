package contracts

import (
	"fmt"
	"strings"
)

// OutputMethod translates musical events into ordered key transitions.
// Implementations are not safe for concurrent use; the translator serializes access.
type OutputMethod interface {
	Name() string
	Press(note, velocity uint8) KeyTransitions
	Release(note uint8) KeyTransitions
	Sustain(value uint8) KeyTransitions
	// Reset clears latched and pressed state without emitting releases.
	Reset()
}

// MethodKind enumerates the available output methods.
type MethodKind int

const (
	// MethodGeneric maps a 61-note window onto the QWERTY virtual piano layout.
	MethodGeneric MethodKind = iota
	// MethodPianoVisualizations covers 88 keys using ctrl for the outer registers and alt-tapped velocity.
	MethodPianoVisualizations
	// MethodPianoRooms sends base-12 encoded bursts on the numeric keypad.
	MethodPianoRooms
)

var methodKindNames = map[MethodKind]string{
	MethodGeneric:             "generic",
	MethodPianoVisualizations: "pv",
	MethodPianoRooms:          "rooms",
}

func (k MethodKind) String() string {
	if name, ok := methodKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("MethodKind(%d)", int(k))
}

// ParseMethodKind maps a short name ("generic", "pv", "rooms") to a MethodKind.
func ParseMethodKind(s string) (MethodKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for kind, name := range methodKindNames {
		if s == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown output method %q", s)
}
