// Package translator connects parsed MIDI events to an output method and a virtual keyboard.
package translator

import (
	"context"
	"errors"
	"sync"

	"github.com/leandrodaf/midiqwerty/internal/keycodes"
	"github.com/leandrodaf/midiqwerty/internal/methods"
	"github.com/leandrodaf/midiqwerty/internal/setup"
	"github.com/leandrodaf/midiqwerty/sdk/contracts"
	"gitlab.com/gomidi/midi/v2"
	"go.uber.org/multierr"
)

// SustainController is the controller number of the sustain pedal.
const SustainController = 64

// ErrUnsupportedControl is logged for control changes other than sustain.
var ErrUnsupportedControl = errors.New("unsupported control change")

// Translator feeds events through the active output method and writes the
// resulting batches to the keyboard. All methods are safe for concurrent use;
// the lock spans translation and emission so batches never interleave and the
// method is never swapped mid-update.
type Translator struct {
	logger   contracts.Logger
	keyboard contracts.VirtualKeyboard
	mu       sync.Mutex
	method   contracts.OutputMethod
	kind     contracts.MethodKind
	enabled  bool
}

// New creates a translator writing to keyboard. The starting method and output
// state come from the options.
func New(keyboard contracts.VirtualKeyboard, opts ...contracts.Option) (*Translator, error) {
	options, err := setup.ApplyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}
	method, err := methods.New(options.OutputMethod, options.Logger)
	if err != nil {
		return nil, err
	}
	options.Logger.Info("Translator ready",
		options.Logger.Field().String("method", method.Name()),
		options.Logger.Field().Bool("output", !options.OutputDisabled))

	return &Translator{
		logger:   options.Logger,
		keyboard: keyboard,
		method:   method,
		kind:     options.OutputMethod,
		enabled:  !options.OutputDisabled,
	}, nil
}

// Handle translates one event and writes the result to the keyboard.
// Unsupported events are logged and dropped.
func (t *Translator) Handle(event contracts.MIDI) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.enabled {
		t.logger.Debug("Output disabled; dropping MIDI event", t.logger.Field().Uint8("command", event.Command))
		return nil
	}

	batch := t.translate(event)
	if len(batch) == 0 {
		return nil
	}
	return t.keyboard.EmitMany(batch)
}

// translate decodes event and dispatches it to the method. Caller holds t.mu.
func (t *Translator) translate(event contracts.MIDI) contracts.KeyTransitions {
	msg := midi.Message{event.Command&0xF0 | event.Channel&0x0F, event.Note, event.Velocity}

	var channel, key, velocity, controller, value uint8
	switch {
	case msg.GetNoteStart(&channel, &key, &velocity):
		return t.method.Press(key, velocity)
	case msg.GetNoteEnd(&channel, &key):
		return t.method.Release(key)
	case msg.GetControlChange(&channel, &controller, &value):
		if controller == SustainController {
			return t.method.Sustain(value)
		}
		t.logger.Info("Ignoring control change",
			t.logger.Field().Uint8("controller", controller),
			t.logger.Field().Uint8("value", value),
			t.logger.Field().Error("error", ErrUnsupportedControl))
		return nil
	}
	t.logger.Info("Unsupported MIDI event type", t.logger.Field().String("message", msg.String()))
	return nil
}

// Run handles events until ctx is cancelled or events is closed. Keyboard errors
// are logged and do not stop the loop.
func (t *Translator) Run(ctx context.Context, events <-chan contracts.MIDI) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if err := t.Handle(event); err != nil {
				t.logger.Error("Failed to emit key transitions", t.logger.Field().Error("error", err))
			}
		}
	}
}

// SelectMethod releases every key, resets the current method and installs a
// fresh instance of kind.
func (t *Translator) SelectMethod(kind contracts.MethodKind) error {
	method, err := methods.New(kind, t.logger)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	err = t.releaseAll()
	t.method.Reset()
	t.method = method
	t.kind = kind
	t.logger.Info("Output method selected", t.logger.Field().String("method", method.Name()))
	return err
}

// Method returns the kind and display name of the active output method.
func (t *Translator) Method() (contracts.MethodKind, string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.kind, t.method.Name()
}

// SetOutputEnabled switches key output. A change releases every key and resets
// the method so nothing stays held across the switch.
func (t *Translator) SetOutputEnabled(enabled bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.enabled == enabled {
		return nil
	}
	t.enabled = enabled
	err := t.releaseAll()
	t.method.Reset()
	t.logger.Info("Output switched", t.logger.Field().Bool("enabled", enabled))
	return err
}

// OutputEnabled reports whether events currently produce key output.
func (t *Translator) OutputEnabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.enabled
}

// ReleaseAll emits a release for every key in the symbol table as one batch and
// resets the method's key state. Used to recover from stuck keys on reconnect.
func (t *Translator) ReleaseAll() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	err := t.releaseAll()
	t.method.Reset()
	return err
}

func (t *Translator) releaseAll() error {
	keys := keycodes.All()
	batch := make(contracts.KeyTransitions, 0, len(keys))
	for _, key := range keys {
		batch = append(batch, contracts.ReleaseKey(key))
	}
	if err := t.keyboard.EmitMany(batch); err != nil {
		t.logger.Error("Failed to release all keys", t.logger.Field().Error("error", err))
		return err
	}
	t.logger.Info("Released all keys")
	return nil
}

// Close releases every key and closes the keyboard.
func (t *Translator) Close() error {
	return multierr.Append(t.ReleaseAll(), t.keyboard.Close())
}
