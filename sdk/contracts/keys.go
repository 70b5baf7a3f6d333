package contracts

import "fmt"

// Key is a symbolic key resolved to the code of the targeted platform.
type Key struct {
	Name    string // Symbol the key was resolved from, e.g. "q" or "Q".
	Code    uint16 // Platform key code (scan code on Linux/Windows, virtual key code on macOS).
	Shifted bool   // The symbol needs shift held to be typed.
}

// Equal reports whether both keys address the same physical key.
func (k Key) Equal(other Key) bool {
	return k.Code == other.Code
}

func (k Key) String() string {
	return fmt.Sprintf("%s(%d)", k.Name, k.Code)
}

// Direction tells whether a transition pushes a key down or lets it up.
type Direction uint8

const (
	// Release lets the key up.
	Release Direction = iota
	// Press pushes the key down.
	Press
)

func (d Direction) String() string {
	if d == Press {
		return "press"
	}
	return "release"
}

// KeyTransition is a single press or release instruction for one key.
type KeyTransition struct {
	Key       Key
	Direction Direction
}

// PressKey builds a Press transition for k.
func PressKey(k Key) KeyTransition {
	return KeyTransition{Key: k, Direction: Press}
}

// ReleaseKey builds a Release transition for k.
func ReleaseKey(k Key) KeyTransition {
	return KeyTransition{Key: k, Direction: Release}
}

func (t KeyTransition) String() string {
	return t.Direction.String() + " " + t.Key.String()
}

// KeyTransitions is an ordered batch. Order matters: modifier brackets must nest.
type KeyTransitions []KeyTransition
