//go:build darwin
// +build darwin

package keyboarddarwin

/*
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation

#include <CoreGraphics/CoreGraphics.h>
#include <CoreFoundation/CoreFoundation.h>

static CGEventSourceRef newEventSource(void) {
	return CGEventSourceCreate(kCGEventSourceStateHIDSystemState);
}

static int postKeyEvent(CGEventSourceRef source, CGKeyCode code, int down, CGEventFlags flags) {
	CGEventRef event = CGEventCreateKeyboardEvent(source, code, down != 0);
	if (event == NULL) {
		return -1;
	}
	CGEventSetFlags(event, flags);
	CGEventPost(kCGHIDEventTap, event);
	CFRelease(event);
	return 0;
}

static void releaseEventSource(CGEventSourceRef source) {
	CFRelease(source);
}
*/
import "C"

import (
	"fmt"
	"sync"

	"github.com/leandrodaf/midiqwerty/sdk/contracts"
	"go.uber.org/multierr"
)

// Keyboard posts keyboard events at the HID tap with CoreGraphics.
type Keyboard struct {
	logger    contracts.Logger
	source    C.CGEventSourceRef
	modifiers *modifierState // Held modifiers; applied as flags to every posted event.
	mu        sync.Mutex
	closed    bool
	closeOnce sync.Once
}

// NewVirtualKeyboard creates the event source. Posting also needs the
// Accessibility permission; without it the system drops events silently.
func NewVirtualKeyboard(options *contracts.ClientOptions) (contracts.VirtualKeyboard, error) {
	source := C.newEventSource()
	if source == 0 {
		options.Logger.Error("Failed to create CoreGraphics event source")
		return nil, fmt.Errorf("%w: CGEventSourceCreate returned NULL", contracts.ErrDeviceUnavailable)
	}
	options.Logger.Info("Virtual keyboard created for macOS")

	return &Keyboard{
		logger:    options.Logger,
		source:    source,
		modifiers: newModifierState(),
	}, nil
}

// Emit applies a single transition.
func (k *Keyboard) Emit(transition contracts.KeyTransition) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.closed {
		return contracts.ErrKeyboardClosed
	}
	return k.post(transition)
}

// EmitMany posts every transition in order while holding the keyboard lock.
func (k *Keyboard) EmitMany(transitions contracts.KeyTransitions) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.closed {
		return contracts.ErrKeyboardClosed
	}
	var err error
	for _, transition := range transitions {
		err = multierr.Append(err, k.post(transition))
	}
	return err
}

func (k *Keyboard) post(transition contracts.KeyTransition) error {
	flags := k.modifiers.apply(transition)
	down := C.int(0)
	if transition.Direction == contracts.Press {
		down = 1
	}
	if C.postKeyEvent(k.source, C.CGKeyCode(transition.Key.Code), down, C.CGEventFlags(flags)) != 0 {
		return fmt.Errorf("post %s: CGEventCreateKeyboardEvent failed", transition)
	}
	return nil
}

// Close releases the event source. Only the first call has effect.
func (k *Keyboard) Close() error {
	k.closeOnce.Do(func() {
		k.mu.Lock()
		defer k.mu.Unlock()

		k.closed = true
		k.modifiers.reset()
		C.releaseEventSource(k.source)
		k.logger.Info("Virtual keyboard closed")
	})
	return nil
}
