package contracts

import "errors"

// ErrDeviceUnavailable is returned when the platform input-injection target cannot be acquired.
var ErrDeviceUnavailable = errors.New("virtual keyboard device unavailable")

// VirtualKeyboard executes key transitions as real OS input.
// Implementations serialize writes: a batch passed to EmitMany is applied in order
// and never interleaves with another caller's batch.
type VirtualKeyboard interface {
	// Emit applies a single transition.
	Emit(transition KeyTransition) error
	// EmitMany applies an ordered batch as one uninterrupted unit.
	EmitMany(transitions KeyTransitions) error
	// Close releases the platform resource. Only the first call has effect.
	Close() error
}

// ErrKeyboardClosed is returned by writes after Close.
var ErrKeyboardClosed = errors.New("virtual keyboard closed")
