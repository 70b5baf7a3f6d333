//go:build !windows
// +build !windows

package keyboardwindows

import (
	"fmt"

	"github.com/leandrodaf/midiqwerty/sdk/contracts"
)

// NewVirtualKeyboard reports that SendInput is not available on this platform.
func NewVirtualKeyboard(options *contracts.ClientOptions) (contracts.VirtualKeyboard, error) {
	options.Logger.Warn("SendInput keyboard requested on non-Windows system")
	return nil, fmt.Errorf("%w: SendInput is only available on Windows", contracts.ErrDeviceUnavailable)
}
