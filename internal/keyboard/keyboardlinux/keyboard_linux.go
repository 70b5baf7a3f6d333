//go:build linux
// +build linux

package keyboardlinux

import (
	"fmt"
	"sync"

	"github.com/bendahl/uinput"
	"github.com/leandrodaf/midiqwerty/sdk/contracts"
	"go.uber.org/multierr"
)

// Keyboard injects key events through a kernel virtual input device (uinput).
type Keyboard struct {
	logger    contracts.Logger
	device    uinput.Keyboard // Virtual device registered with the kernel.
	mu        sync.Mutex      // Serializes writes and Close.
	closed    bool
	closeOnce sync.Once
	closeErr  error
}

// NewVirtualKeyboard registers a virtual keyboard through the uinput node.
// Fails with contracts.ErrDeviceUnavailable when the node is missing or not writable.
func NewVirtualKeyboard(options *contracts.ClientOptions) (contracts.VirtualKeyboard, error) {
	cfg := options.KeyboardConfig
	device, err := uinput.CreateKeyboard(cfg.DevicePath, []byte(cfg.Name))
	if err != nil {
		options.Logger.Error("Failed to create uinput keyboard",
			options.Logger.Field().String("path", cfg.DevicePath),
			options.Logger.Field().Error("error", err))
		return nil, fmt.Errorf("%w: %s: %v (is the uinput module loaded and writable?)", contracts.ErrDeviceUnavailable, cfg.DevicePath, err)
	}
	options.Logger.Info("Virtual keyboard created",
		options.Logger.Field().String("path", cfg.DevicePath),
		options.Logger.Field().String("name", cfg.Name))

	return &Keyboard{logger: options.Logger, device: device}, nil
}

// Emit applies a single transition.
func (k *Keyboard) Emit(transition contracts.KeyTransition) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.closed {
		return contracts.ErrKeyboardClosed
	}
	return k.emit(transition)
}

// EmitMany applies every transition in order while holding the device lock.
// A failed transition does not stop the rest, so modifier brackets still close.
func (k *Keyboard) EmitMany(transitions contracts.KeyTransitions) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.closed {
		return contracts.ErrKeyboardClosed
	}
	var err error
	for _, transition := range transitions {
		err = multierr.Append(err, k.emit(transition))
	}
	return err
}

func (k *Keyboard) emit(transition contracts.KeyTransition) error {
	var err error
	if transition.Direction == contracts.Press {
		err = k.device.KeyDown(int(transition.Key.Code))
	} else {
		err = k.device.KeyUp(int(transition.Key.Code))
	}
	if err != nil {
		return fmt.Errorf("uinput %s: %w", transition, err)
	}
	return nil
}

// Close destroys the virtual device. Only the first call has effect.
func (k *Keyboard) Close() error {
	k.closeOnce.Do(func() {
		k.mu.Lock()
		defer k.mu.Unlock()

		k.closed = true
		k.closeErr = k.device.Close()
		k.logger.Info("Virtual keyboard closed")
	})
	return k.closeErr
}
