//go:build !linux
// +build !linux

package keyboardlinux

import (
	"fmt"

	"github.com/leandrodaf/midiqwerty/sdk/contracts"
)

// NewVirtualKeyboard reports that uinput is not available on this platform.
func NewVirtualKeyboard(options *contracts.ClientOptions) (contracts.VirtualKeyboard, error) {
	options.Logger.Warn("uinput keyboard requested on non-Linux system")
	return nil, fmt.Errorf("%w: uinput is only available on Linux", contracts.ErrDeviceUnavailable)
}
