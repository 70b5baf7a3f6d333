package midi

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

func TestForeignBackendIsUnavailable(t *testing.T) {
	for goos := range clientInitializers {
		if goos == runtime.GOOS {
			continue
		}
		t.Run(goos, func(t *testing.T) {
			client, err := newFor(goos, testOptions(t))
			if client != nil {
				t.Fatal("foreign backend should not be created")
			}
			if !errors.Is(err, contracts.ErrMIDIUnavailable) {
				t.Errorf("error = %v, want ErrMIDIUnavailable", err)
			}
		})
	}
}
