// Package keystate reference-counts demand on physical keys so that notes
// sharing a key never release it out from under each other.
package keystate

// Tracker counts outstanding presses per key code. The zero value is ready to use.
// A Tracker belongs to a single output method and is not safe for concurrent use.
type Tracker struct {
	counts map[uint16]int
}

// Acquire records a press of code and reports whether it was a 0→1 transition.
func (t *Tracker) Acquire(code uint16) bool {
	if t.counts == nil {
		t.counts = make(map[uint16]int)
	}
	t.counts[code]++
	return t.counts[code] == 1
}

// Release records a release of code and reports whether it was a 1→0 transition.
// Releasing a code with no outstanding presses is absorbed and returns false.
func (t *Tracker) Release(code uint16) bool {
	n := t.counts[code]
	switch n {
	case 0:
		return false
	case 1:
		delete(t.counts, code)
		return true
	default:
		t.counts[code] = n - 1
		return false
	}
}

// Count returns the outstanding presses of code.
func (t *Tracker) Count(code uint16) int {
	return t.counts[code]
}

// Held reports whether any press of code is outstanding.
func (t *Tracker) Held(code uint16) bool {
	return t.counts[code] > 0
}

// Reset forgets every outstanding press.
func (t *Tracker) Reset() {
	t.counts = nil
}
