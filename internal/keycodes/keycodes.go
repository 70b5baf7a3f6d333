// Package keycodes resolves symbolic key names to platform key codes.
//
// The table is built at init and never mutated, so lookups are safe from any goroutine.
package keycodes

import (
	"errors"
	"fmt"
	"runtime"
	"sort"

	"github.com/leandrodaf/midiqwerty/sdk/contracts"
)

// ErrUnknownKey is returned when a name has no entry in the symbol table.
var ErrUnknownKey = errors.New("unknown key")

// Platform selects which column of the code table is used.
type Platform int

const (
	// PlatformScanCode covers Linux (evdev) and Windows (SendInput scan codes).
	PlatformScanCode Platform = iota
	// PlatformMac covers macOS virtual key codes.
	PlatformMac
)

// Current is the platform this binary targets.
var Current = platformFor(runtime.GOOS)

func platformFor(goos string) Platform {
	if goos == "darwin" {
		return PlatformMac
	}
	return PlatformScanCode
}

func (c code) on(p Platform) uint16 {
	if p == PlatformMac {
		return c.mac
	}
	return c.scan
}

// Resolve resolves name for the current platform.
func Resolve(name string) (contracts.Key, error) {
	return ResolveFor(Current, name)
}

// ResolveFor resolves name for platform p. Shifted symbols resolve to their base key
// with Shifted set.
func ResolveFor(p Platform, name string) (contracts.Key, error) {
	base, shifted := shifts[name]
	if !shifted {
		base = name
	}
	c, ok := codes[base]
	if !ok {
		return contracts.Key{}, fmt.Errorf("%w: %q", ErrUnknownKey, name)
	}
	return contracts.Key{Name: name, Code: c.on(p), Shifted: shifted}, nil
}

// MustResolve is Resolve for names the program itself generates. A miss is a defect
// in the fixed tables and panics.
func MustResolve(name string) contracts.Key {
	key, err := Resolve(name)
	if err != nil {
		panic(err)
	}
	return key
}

// All returns every key in the table for the current platform, ordered by code.
func All() []contracts.Key {
	keys := make([]contracts.Key, 0, len(codes))
	for name, c := range codes {
		keys = append(keys, contracts.Key{Name: name, Code: c.on(Current)})
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Code < keys[j].Code })
	return keys
}
