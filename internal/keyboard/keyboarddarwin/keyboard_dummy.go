//go:build !darwin
// +build !darwin

package keyboarddarwin

import (
	"fmt"

	"github.com/leandrodaf/midiqwerty/sdk/contracts"
)

// NewVirtualKeyboard reports that CoreGraphics is not available on this platform.
func NewVirtualKeyboard(options *contracts.ClientOptions) (contracts.VirtualKeyboard, error) {
	options.Logger.Warn("CoreGraphics keyboard requested on non-macOS system")
	return nil, fmt.Errorf("%w: CoreGraphics is only available on macOS", contracts.ErrDeviceUnavailable)
}
