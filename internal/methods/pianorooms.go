package methods

import (
	"github.com/leandrodaf/midiqwerty/internal/keycodes"
	"github.com/leandrodaf/midiqwerty/sdk/contracts"
)

// roomsSustainControl replaces the note pair of a sustain burst.
const roomsSustainControl = 143

var roomsDigits = [12]string{
	"kp0", "kp1", "kp2", "kp3", "kp4", "kp5",
	"kp6", "kp7", "kp8", "kp9", "kpminus", "kpplus",
}

// PianoRooms sends every event as a delimiter tap followed by four base-12 digit
// taps on the keypad. No key is ever held, so it keeps no key state.
type PianoRooms struct {
	log       contracts.Logger
	delimiter contracts.Key
	digits    [12]contracts.Key
}

// NewPianoRooms creates a Piano Rooms method.
func NewPianoRooms(log contracts.Logger) *PianoRooms {
	r := &PianoRooms{log: log, delimiter: keycodes.MustResolve(keycodes.Delimiter)}
	for i, name := range roomsDigits {
		r.digits[i] = keycodes.MustResolve(name)
	}
	return r
}

// Name returns the display name of the method.
func (r *PianoRooms) Name() string {
	return "Piano Rooms"
}

func (r *PianoRooms) tap(out contracts.KeyTransitions, key contracts.Key) contracts.KeyTransitions {
	return append(out, contracts.PressKey(key), contracts.ReleaseKey(key))
}

// burst encodes two values below 144 as four base-12 digits.
func (r *PianoRooms) burst(first, second int) contracts.KeyTransitions {
	out := r.tap(make(contracts.KeyTransitions, 0, 10), r.delimiter)
	for _, digit := range [4]int{first / 12, first % 12, second / 12, second % 12} {
		out = r.tap(out, r.digits[digit])
	}
	return out
}

// Press sends the note and velocity as a delimited burst of base-12 keypad digits.
func (r *PianoRooms) Press(note, velocity uint8) contracts.KeyTransitions {
	if note > 127 || velocity > 127 {
		logOutOfRange(r.log, r.Name(), note)
		return nil
	}
	r.log.Debug("Playing note",
		r.log.Field().String("method", r.Name()),
		r.log.Field().Uint8("note", note),
		r.log.Field().Uint8("velocity", velocity))
	return r.burst(int(note), int(velocity))
}

// Release sends the note with velocity zero.
func (r *PianoRooms) Release(note uint8) contracts.KeyTransitions {
	if note > 127 {
		logOutOfRange(r.log, r.Name(), note)
		return nil
	}
	return r.burst(int(note), 0)
}

// Sustain sends the pedal value on control 143 in place of a note.
func (r *PianoRooms) Sustain(value uint8) contracts.KeyTransitions {
	if value > 127 {
		value = 127
	}
	return r.burst(roomsSustainControl, int(value))
}

// Reset does nothing; every burst is self-contained.
func (r *PianoRooms) Reset() {}
