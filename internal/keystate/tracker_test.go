package keystate

import "testing"

func TestTrackerTransitions(t *testing.T) {
	var tr Tracker

	if !tr.Acquire(16) {
		t.Error("first Acquire should report 0→1")
	}
	if tr.Acquire(16) {
		t.Error("second Acquire should not report 0→1")
	}
	if got := tr.Count(16); got != 2 {
		t.Fatalf("Count = %d, want 2", got)
	}
	if tr.Release(16) {
		t.Error("Release from 2 should not report 1→0")
	}
	if !tr.Held(16) {
		t.Error("key should still be held")
	}
	if !tr.Release(16) {
		t.Error("Release from 1 should report 1→0")
	}
	if tr.Held(16) {
		t.Error("key should no longer be held")
	}
}

func TestTrackerSaturates(t *testing.T) {
	var tr Tracker

	for i := 0; i < 3; i++ {
		if tr.Release(2) {
			t.Fatalf("Release on empty tracker reported 1→0 at iteration %d", i)
		}
	}
	if got := tr.Count(2); got != 0 {
		t.Fatalf("Count = %d after extra releases, want 0", got)
	}
	if !tr.Acquire(2) {
		t.Error("Acquire after absorbed releases should report 0→1")
	}
}

func TestTrackerKeysIndependent(t *testing.T) {
	var tr Tracker
	tr.Acquire(2)
	tr.Acquire(3)

	if !tr.Release(2) {
		t.Error("releasing 2 should report 1→0")
	}
	if !tr.Held(3) {
		t.Error("releasing 2 must not affect 3")
	}
}

func TestTrackerReset(t *testing.T) {
	var tr Tracker
	tr.Acquire(57)
	tr.Acquire(57)
	tr.Reset()

	if tr.Held(57) {
		t.Error("Reset should clear counts")
	}
	if tr.Release(57) {
		t.Error("Release after Reset should be absorbed")
	}
	if !tr.Acquire(57) {
		t.Error("Acquire after Reset should report 0→1")
	}
}
