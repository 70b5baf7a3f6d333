package keyboard

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/leandrodaf/midiqwerty/internal/keyboard/keyboarddarwin"
	"github.com/leandrodaf/midiqwerty/internal/keyboard/keyboardlinux"
	"github.com/leandrodaf/midiqwerty/internal/keyboard/keyboardrecorder"
	"github.com/leandrodaf/midiqwerty/internal/keyboard/keyboardwindows"
	"github.com/leandrodaf/midiqwerty/internal/setup"
	"github.com/leandrodaf/midiqwerty/sdk/contracts"
)

// ErrUnsupportedOS is returned when no input-injection mechanism exists for the operating system.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// keyboardInitializers maps OS names to corresponding virtual keyboard initializers.
var keyboardInitializers = map[string]func(*contracts.ClientOptions) (contracts.VirtualKeyboard, error){
	"linux":   keyboardlinux.NewVirtualKeyboard,   // Kernel virtual input device (uinput).
	"darwin":  keyboarddarwin.NewVirtualKeyboard,  // CoreGraphics event posting.
	"windows": keyboardwindows.NewVirtualKeyboard, // SendInput scan codes.
}

// NewVirtualKeyboard creates the virtual keyboard for the current operating system.
// Failure to acquire the platform resource wraps contracts.ErrDeviceUnavailable.
func NewVirtualKeyboard(opts ...contracts.Option) (contracts.VirtualKeyboard, error) {
	options, err := setup.ApplyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}
	return newFor(runtime.GOOS, &options)
}

// NewRecordingKeyboard creates a keyboard that records transitions instead of injecting them.
func NewRecordingKeyboard(opts ...contracts.Option) (contracts.VirtualKeyboard, error) {
	options, err := setup.ApplyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}
	return keyboardrecorder.NewVirtualKeyboard(&options)
}

func newFor(goos string, options *contracts.ClientOptions) (contracts.VirtualKeyboard, error) {
	if initializer, exists := keyboardInitializers[goos]; exists {
		return initializer(options)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, goos)
}
