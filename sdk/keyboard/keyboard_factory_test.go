package keyboard

import (
	"errors"
	"runtime"
	"testing"

	"github.com/leandrodaf/midiqwerty/internal/logger"
	"github.com/leandrodaf/midiqwerty/internal/setup"
	"github.com/leandrodaf/midiqwerty/sdk/contracts"
	"go.uber.org/zap"
)

func testOptions(t *testing.T) *contracts.ClientOptions {
	t.Helper()
	options, err := setup.ApplyDefaultOptions(contracts.WithLogger(logger.New(zap.NewNop())))
	if err != nil {
		t.Fatalf("ApplyDefaultOptions error: %v", err)
	}
	return &options
}

func TestNewForUnsupportedOS(t *testing.T) {
	_, err := newFor("plan9", testOptions(t))
	if !errors.Is(err, ErrUnsupportedOS) {
		t.Fatalf("error = %v, want ErrUnsupportedOS", err)
	}
}

func TestForeignPlatformIsUnavailable(t *testing.T) {
	for goos := range keyboardInitializers {
		if goos == runtime.GOOS {
			continue
		}
		t.Run(goos, func(t *testing.T) {
			kb, err := newFor(goos, testOptions(t))
			if kb != nil {
				t.Fatal("foreign platform keyboard should not be created")
			}
			if !errors.Is(err, contracts.ErrDeviceUnavailable) {
				t.Fatalf("error = %v, want ErrDeviceUnavailable", err)
			}
		})
	}
}

func TestNewRecordingKeyboard(t *testing.T) {
	kb, err := NewRecordingKeyboard(contracts.WithLogger(logger.New(zap.NewNop())))
	if err != nil {
		t.Fatalf("NewRecordingKeyboard error: %v", err)
	}
	defer kb.Close()

	if err := kb.Emit(contracts.PressKey(contracts.Key{Name: "q", Code: 16})); err != nil {
		t.Fatalf("Emit error: %v", err)
	}
}
