//go:build windows
// +build windows

package keyboardwindows

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/leandrodaf/midiqwerty/sdk/contracts"
	"golang.org/x/sys/windows"
)

// Constants for SendInput
const (
	INPUT_KEYBOARD     = 1      // Input is a keyboard event
	KEYEVENTF_KEYUP    = 0x0002 // Key is being released
	KEYEVENTF_SCANCODE = 0x0008 // wScan identifies the key; wVk is ignored
)

// keyboardInput mirrors KEYBDINPUT.
type keyboardInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

// input mirrors INPUT on 64-bit Windows: the union is padded to MOUSEINPUT's size.
type input struct {
	inputType uint32
	_         uint32
	ki        keyboardInput
	_         [8]byte
}

// Load the user32.dll library and required functions
var (
	user32        = windows.NewLazySystemDLL("user32.dll")
	procSendInput = user32.NewProc("SendInput")
)

// Keyboard injects scan codes with SendInput. Windows needs no device state,
// so the keyboard only guards ordering and the closed flag.
type Keyboard struct {
	logger    contracts.Logger
	mu        sync.Mutex
	closed    bool
	closeOnce sync.Once
}

// NewVirtualKeyboard checks that SendInput can be resolved.
func NewVirtualKeyboard(options *contracts.ClientOptions) (contracts.VirtualKeyboard, error) {
	if err := procSendInput.Find(); err != nil {
		options.Logger.Error("SendInput unavailable", options.Logger.Field().Error("error", err))
		return nil, fmt.Errorf("%w: %v", contracts.ErrDeviceUnavailable, err)
	}
	options.Logger.Info("Virtual keyboard ready for Windows")
	return &Keyboard{logger: options.Logger}, nil
}

// Emit applies a single transition.
func (k *Keyboard) Emit(transition contracts.KeyTransition) error {
	return k.EmitMany(contracts.KeyTransitions{transition})
}

// EmitMany submits the whole batch in one SendInput call, which the system
// inserts into the input stream without interleaving other input.
func (k *Keyboard) EmitMany(transitions contracts.KeyTransitions) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.closed {
		return contracts.ErrKeyboardClosed
	}
	if len(transitions) == 0 {
		return nil
	}

	inputs := make([]input, len(transitions))
	for i, transition := range transitions {
		flags := uint32(KEYEVENTF_SCANCODE)
		if transition.Direction == contracts.Release {
			flags |= KEYEVENTF_KEYUP
		}
		inputs[i] = input{
			inputType: INPUT_KEYBOARD,
			ki:        keyboardInput{wScan: transition.Key.Code, dwFlags: flags},
		}
	}

	r1, _, err := procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if int(r1) != len(inputs) {
		k.logger.Error("SendInput rejected input",
			k.logger.Field().Int("sent", int(r1)),
			k.logger.Field().Int("requested", len(inputs)),
			k.logger.Field().Error("error", err))
		return fmt.Errorf("SendInput inserted %d of %d events: %v", r1, len(inputs), err)
	}
	return nil
}

// Close marks the keyboard closed. Only the first call has effect.
func (k *Keyboard) Close() error {
	k.closeOnce.Do(func() {
		k.mu.Lock()
		defer k.mu.Unlock()

		k.closed = true
		k.logger.Info("Virtual keyboard closed")
	})
	return nil
}
