package methods

import (
	"testing"

	"github.com/leandrodaf/midiqwerty/sdk/contracts"
)

func TestVelocityBucket(t *testing.T) {
	tests := []struct {
		velocity uint8
		index    int
	}{
		{0, 0},
		{4, 0},
		{6, 0}, // tie between 4 and 8
		{7, 1},
		{64, 15},
		{66, 15}, // tie between 64 and 68
		{67, 16},
		{100, 24},
		{125, 30}, // 124 beats 127
		{126, 31},
		{127, 31},
	}
	for _, tt := range tests {
		if got := velocityBucket(tt.velocity); got != tt.index {
			t.Errorf("velocityBucket(%d) = %d, want %d", tt.velocity, got, tt.index)
		}
	}
}

func TestVelocityKeyDeterministic(t *testing.T) {
	first, second := velocityKey(66), velocityKey(66)
	if !first.Equal(second) {
		t.Fatalf("velocityKey(66) not stable: %v vs %v", first, second)
	}
	if first.Name != "y" {
		t.Errorf("velocityKey(66) = %q, want bucket 15 key %q", first.Name, "y")
	}
}

func TestPVCoreNote(t *testing.T) {
	p := NewPianoVisualizations(nopLogger())

	sameTransitions(t, p.Press(60, 66), contracts.KeyTransitions{
		press("leftalt"), release("y"), press("y"), release("y"), release("leftalt"),
		release("t"), press("t"),
	})
	sameTransitions(t, p.Release(60), contracts.KeyTransitions{release("t")})
}

func TestPVShiftedCoreNote(t *testing.T) {
	p := NewPianoVisualizations(nopLogger())

	sameTransitions(t, p.Press(61, 127), contracts.KeyTransitions{
		press("leftalt"), release("c"), press("c"), release("c"), release("leftalt"),
		release("t"), press("shift"), press("t"), release("shift"),
	})
}

func TestPVOuterNotes(t *testing.T) {
	tests := []struct {
		note   uint8
		symbol string
	}{
		{21, "1"}, // A0
		{35, "t"}, // B1
		{97, "y"}, // C#7
		{108, "j"},
	}
	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			p := NewPianoVisualizations(nopLogger())
			sameTransitions(t, p.Press(tt.note, 4), contracts.KeyTransitions{
				press("leftalt"), release("1"), press("1"), release("1"), release("leftalt"),
				press("leftctrl"), release(tt.symbol), press(tt.symbol), release("leftctrl"),
			})
			sameTransitions(t, p.Release(tt.note), contracts.KeyTransitions{
				press("leftctrl"), release(tt.symbol), release("leftctrl"),
			})
		})
	}
}

func TestPVSharedKeyAcrossRegisters(t *testing.T) {
	p := NewPianoVisualizations(nopLogger())

	p.Press(35, 100) // B1 → ctrl+t
	p.Press(60, 100) // C4 → t

	if got := p.Release(35); got != nil {
		t.Fatalf("releasing B1 while C4 holds the key emitted %v", got)
	}
	sameTransitions(t, p.Release(60), contracts.KeyTransitions{release("t")})
}

func TestPVVelocityKeyHeldByNote(t *testing.T) {
	p := NewPianoVisualizations(nopLogger())

	// Velocity 44 taps "q", the same key F3 is holding.
	p.Press(53, 100)
	sameTransitions(t, p.Press(60, 44), contracts.KeyTransitions{
		press("leftalt"), release("q"), press("q"), release("leftalt"),
		release("t"), press("t"),
	})
}

func TestPVOutOfRange(t *testing.T) {
	p := NewPianoVisualizations(nopLogger())
	for _, note := range []uint8{0, 20, 109, 127} {
		if got := p.Press(note, 100); got != nil {
			t.Errorf("Press(%d) = %v, want nothing", note, got)
		}
		if got := p.Release(note); got != nil {
			t.Errorf("Release(%d) = %v, want nothing", note, got)
		}
	}
}
