package methods

import (
	"testing"

	"github.com/leandrodaf/midiqwerty/sdk/contracts"
)

func taps(names ...string) contracts.KeyTransitions {
	out := contracts.KeyTransitions{press("kpasterisk"), release("kpasterisk")}
	for _, name := range names {
		out = append(out, press(name), release(name))
	}
	return out
}

func TestPianoRoomsPress(t *testing.T) {
	r := NewPianoRooms(nopLogger())

	// 60 = 5*12+0, 100 = 8*12+4
	sameTransitions(t, r.Press(60, 100), taps("kp5", "kp0", "kp8", "kp4"))
}

func TestPianoRoomsRelease(t *testing.T) {
	r := NewPianoRooms(nopLogger())

	// 127 = 10*12+7
	sameTransitions(t, r.Release(127), taps("kpminus", "kp7", "kp0", "kp0"))
}

func TestPianoRoomsSustain(t *testing.T) {
	r := NewPianoRooms(nopLogger())

	// 143 = 11*12+11, 127 = 10*12+7
	sameTransitions(t, r.Sustain(127), taps("kpplus", "kpplus", "kpminus", "kp7"))
	// every value is sent, not only edges
	sameTransitions(t, r.Sustain(127), taps("kpplus", "kpplus", "kpminus", "kp7"))
	sameTransitions(t, r.Sustain(0), taps("kpplus", "kpplus", "kp0", "kp0"))
}

func TestPianoRoomsRejectsInvalidNote(t *testing.T) {
	r := NewPianoRooms(nopLogger())
	if got := r.Press(128, 10); got != nil {
		t.Errorf("Press(128) = %v, want nothing", got)
	}
	if got := r.Release(200); got != nil {
		t.Errorf("Release(200) = %v, want nothing", got)
	}
}
