package translator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/leandrodaf/midiqwerty/internal/keyboard/keyboardrecorder"
	"github.com/leandrodaf/midiqwerty/internal/keycodes"
	"github.com/leandrodaf/midiqwerty/internal/logger"
	"github.com/leandrodaf/midiqwerty/sdk/contracts"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestTranslator(t *testing.T, opts ...contracts.Option) (*Translator, *keyboardrecorder.Recorder, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	log := logger.New(zap.New(core))
	rec := keyboardrecorder.New(log)

	opts = append([]contracts.Option{contracts.WithLogger(log), contracts.WithLogLevel(contracts.DebugLevel)}, opts...)
	tr, err := New(rec, opts...)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return tr, rec, logs
}

func noteOn(note, velocity uint8) contracts.MIDI {
	return contracts.MIDI{Command: byte(contracts.NoteOn), Note: note, Velocity: velocity}
}

func noteOff(note uint8) contracts.MIDI {
	return contracts.MIDI{Command: byte(contracts.NoteOff), Note: note}
}

func controlChange(controller, value uint8) contracts.MIDI {
	return contracts.MIDI{Command: byte(contracts.ControlChange), Channel: 3, Note: controller, Velocity: value}
}

func mustHandle(t *testing.T, tr *Translator, event contracts.MIDI) {
	t.Helper()
	if err := tr.Handle(event); err != nil {
		t.Fatalf("Handle(%+v) error: %v", event, err)
	}
}

func TestHandleNoteOnOff(t *testing.T) {
	tr, rec, _ := newTestTranslator(t)
	one := keycodes.MustResolve("1")

	mustHandle(t, tr, noteOn(36, 100))
	if down := rec.Down(); len(down) != 1 || down[0] != one.Code {
		t.Fatalf("Down() after note on = %v, want [%d]", down, one.Code)
	}

	mustHandle(t, tr, noteOff(36))
	if down := rec.Down(); len(down) != 0 {
		t.Fatalf("Down() after note off = %v, want none", down)
	}
	if got := len(rec.Batches()); got != 2 {
		t.Errorf("got %d batches, want 2", got)
	}
}

func TestHandleZeroVelocityNoteOnReleases(t *testing.T) {
	tr, rec, _ := newTestTranslator(t)

	mustHandle(t, tr, noteOn(60, 90))
	mustHandle(t, tr, noteOn(60, 0))

	if down := rec.Down(); len(down) != 0 {
		t.Fatalf("zero-velocity note on left keys down: %v", down)
	}
}

func TestHandleSustainOnAnyChannel(t *testing.T) {
	tr, rec, _ := newTestTranslator(t)
	space := keycodes.MustResolve("space")

	mustHandle(t, tr, controlChange(SustainController, 127))
	mustHandle(t, tr, controlChange(SustainController, 100))
	if down := rec.Down(); len(down) != 1 || down[0] != space.Code {
		t.Fatalf("Down() = %v, want space", down)
	}
	if got := len(rec.Batches()); got != 1 {
		t.Fatalf("repeated pedal value produced %d batches, want 1", got)
	}

	mustHandle(t, tr, controlChange(SustainController, 0))
	if down := rec.Down(); len(down) != 0 {
		t.Fatalf("Down() after pedal up = %v, want none", down)
	}
}

func TestHandleUnsupportedEvents(t *testing.T) {
	tr, rec, logs := newTestTranslator(t)

	mustHandle(t, tr, controlChange(1, 64))                                 // modulation wheel
	mustHandle(t, tr, contracts.MIDI{Command: 0xE0, Note: 0, Velocity: 64}) // pitch bend

	if got := len(rec.Batches()); got != 0 {
		t.Fatalf("unsupported events produced %d batches", got)
	}
	entries := logs.FilterMessage("Ignoring control change").All()
	if len(entries) != 1 {
		t.Fatalf("got %d control change entries, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["error"]; got != ErrUnsupportedControl.Error() {
		t.Errorf("error field = %v", got)
	}
	if logs.FilterMessage("Unsupported MIDI event type").Len() != 1 {
		t.Error("pitch bend should be logged as unsupported")
	}
}

func TestSelectMethodReleasesEverything(t *testing.T) {
	tr, rec, _ := newTestTranslator(t)

	mustHandle(t, tr, noteOn(60, 100))
	mustHandle(t, tr, controlChange(SustainController, 127))
	rec.Clear()

	if err := tr.SelectMethod(contracts.MethodPianoRooms); err != nil {
		t.Fatalf("SelectMethod error: %v", err)
	}
	if down := rec.Down(); len(down) != 0 {
		t.Fatalf("keys left down after method switch: %v", down)
	}
	batches := rec.Batches()
	if len(batches) != 1 || len(batches[0]) != len(keycodes.All()) {
		t.Fatalf("method switch should emit one release-all batch, got %v", batches)
	}
	for _, transition := range batches[0] {
		if transition.Direction != contracts.Release {
			t.Fatalf("release-all batch contains %v", transition)
		}
	}

	kind, name := tr.Method()
	if kind != contracts.MethodPianoRooms || name != "Piano Rooms" {
		t.Errorf("Method() = %s, %q", kind, name)
	}

	// The new method starts clean: a stale note off from the old method emits a rooms burst, not a release.
	rec.Clear()
	mustHandle(t, tr, noteOff(60))
	if got := len(rec.Transitions()); got != 10 {
		t.Errorf("rooms release emitted %d transitions, want 10", got)
	}
}

func TestSelectMethodUnknownKind(t *testing.T) {
	tr, rec, _ := newTestTranslator(t)

	if err := tr.SelectMethod(contracts.MethodKind(99)); err == nil {
		t.Fatal("SelectMethod with unknown kind should fail")
	}
	if got := len(rec.Batches()); got != 0 {
		t.Errorf("failed switch emitted %d batches", got)
	}
	if kind, _ := tr.Method(); kind != contracts.MethodGeneric {
		t.Errorf("method changed to %s after failed switch", kind)
	}
}

func TestOutputToggle(t *testing.T) {
	tr, rec, _ := newTestTranslator(t, contracts.WithOutputEnabled(false))

	if tr.OutputEnabled() {
		t.Fatal("output should start disabled")
	}
	mustHandle(t, tr, noteOn(60, 100))
	if got := len(rec.Batches()); got != 0 {
		t.Fatalf("disabled output emitted %d batches", got)
	}

	if err := tr.SetOutputEnabled(true); err != nil {
		t.Fatalf("SetOutputEnabled error: %v", err)
	}
	if err := tr.SetOutputEnabled(true); err != nil {
		t.Fatalf("SetOutputEnabled error: %v", err)
	}
	if got := len(rec.Batches()); got != 1 {
		t.Fatalf("enabling output should flush once, got %d batches", got)
	}

	mustHandle(t, tr, noteOn(60, 100))
	if err := tr.SetOutputEnabled(false); err != nil {
		t.Fatalf("SetOutputEnabled error: %v", err)
	}
	if down := rec.Down(); len(down) != 0 {
		t.Fatalf("disabling output left keys down: %v", down)
	}
}

func TestReleaseAllResetsMethodState(t *testing.T) {
	tr, rec, _ := newTestTranslator(t)

	mustHandle(t, tr, noteOn(60, 100))
	mustHandle(t, tr, noteOn(60, 100))
	if err := tr.ReleaseAll(); err != nil {
		t.Fatalf("ReleaseAll error: %v", err)
	}
	rec.Clear()

	mustHandle(t, tr, noteOff(60))
	if got := rec.Batches(); len(got) != 0 {
		t.Errorf("note off after ReleaseAll emitted %v", got)
	}
}

func TestCloseReleasesAndClosesKeyboard(t *testing.T) {
	tr, rec, _ := newTestTranslator(t)
	mustHandle(t, tr, noteOn(60, 100))

	if err := tr.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if !rec.Closed() {
		t.Error("keyboard should be closed")
	}
	if down := rec.Down(); len(down) != 0 {
		t.Errorf("keys left down after Close: %v", down)
	}
	if err := tr.Handle(noteOn(60, 100)); !errors.Is(err, contracts.ErrKeyboardClosed) {
		t.Errorf("Handle after Close error = %v, want ErrKeyboardClosed", err)
	}
}

func TestRunStopsOnClosedChannel(t *testing.T) {
	tr, rec, _ := newTestTranslator(t)

	events := make(chan contracts.MIDI, 4)
	events <- noteOn(60, 100)
	events <- noteOff(60)
	close(events)

	if err := tr.Run(context.Background(), events); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if got := len(rec.Batches()); got != 2 {
		t.Errorf("got %d batches, want 2", got)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	tr, _, _ := newTestTranslator(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- tr.Run(ctx, make(chan contracts.MIDI)) }()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run error = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestConcurrentFlushDoesNotSplitBatches(t *testing.T) {
	tr, rec, _ := newTestTranslator(t, contracts.WithOutputMethod(contracts.MethodPianoVisualizations))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_ = tr.Handle(noteOn(uint8(21+i%88), uint8(i%128)))
			_ = tr.Handle(noteOff(uint8(21 + i%88)))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			_ = tr.ReleaseAll()
		}
	}()
	wg.Wait()

	alt := keycodes.MustResolve(keycodes.Alt)
	for i, batch := range rec.Batches() {
		if !batch[0].Key.Equal(alt) || batch[0].Direction != contracts.Press {
			continue
		}
		// A PV press batch opens and closes its alt bracket itself.
		closed := false
		for _, transition := range batch[1:] {
			if transition.Key.Equal(alt) && transition.Direction == contracts.Release {
				closed = true
				break
			}
		}
		if !closed {
			t.Fatalf("batch %d does not close its alt bracket: %v", i, batch)
		}
	}
}
