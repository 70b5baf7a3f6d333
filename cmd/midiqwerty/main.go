// Command midiqwerty turns MIDI note, velocity and sustain input into
// keyboard presses for virtual piano players.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/leandrodaf/midiqwerty/internal/logger"
	"github.com/leandrodaf/midiqwerty/sdk/contracts"
	"github.com/leandrodaf/midiqwerty/sdk/keyboard"
	"github.com/leandrodaf/midiqwerty/sdk/midi"
	"github.com/leandrodaf/midiqwerty/sdk/translator"
	"go.uber.org/multierr"
)

type config struct {
	method   contracts.MethodKind
	device   int
	list     bool
	dryRun   bool
	logLevel contracts.LogLevel
	logFile  string
	uinput   string
}

func parseFlags(args []string) (config, error) {
	var (
		cfg      config
		method   string
		logLevel string
	)
	fs := flag.NewFlagSet("midiqwerty", flag.ContinueOnError)
	fs.StringVar(&method, "method", "generic", "output method: generic, pv or rooms")
	fs.IntVar(&cfg.device, "device", 0, "index of the MIDI input to open (see -list)")
	fs.BoolVar(&cfg.list, "list", false, "list MIDI inputs and exit")
	fs.BoolVar(&cfg.dryRun, "dry-run", false, "log key transitions instead of typing them")
	fs.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	fs.StringVar(&cfg.logFile, "log-file", "", "write logs to this file instead of stderr")
	fs.StringVar(&cfg.uinput, "uinput", "/dev/uinput", "uinput device path (Linux)")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	var err error
	if cfg.method, err = contracts.ParseMethodKind(method); err != nil {
		return cfg, err
	}
	if cfg.logLevel, err = contracts.ParseLogLevel(logLevel); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "midiqwerty:", err)
		os.Exit(2)
	}
	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "midiqwerty:", err)
		os.Exit(1)
	}
}

func run(cfg config) (err error) {
	log := logger.NewZapLogger()
	if cfg.logFile != "" {
		log.SetDestination(contracts.FileLog, cfg.logFile)
	}
	opts := []contracts.Option{
		contracts.WithLogger(log),
		contracts.WithLogLevel(cfg.logLevel),
		contracts.WithOutputMethod(cfg.method),
		contracts.WithKeyboardConfig(contracts.KeyboardConfig{DevicePath: cfg.uinput}),
	}

	client, err := midi.NewMIDIClient(opts...)
	if err != nil {
		return fmt.Errorf("initialize MIDI client: %w", err)
	}
	defer func() { err = multierr.Append(err, client.Stop()) }()

	if cfg.list {
		return listDevices(os.Stdout, client)
	}

	newKeyboard := keyboard.NewVirtualKeyboard
	if cfg.dryRun {
		newKeyboard = keyboard.NewRecordingKeyboard
	}
	kb, err := newKeyboard(opts...)
	if err != nil {
		return fmt.Errorf("create virtual keyboard: %w", err)
	}

	tr, err := translator.New(kb, opts...)
	if err != nil {
		return multierr.Append(err, kb.Close())
	}
	defer func() { err = multierr.Append(err, tr.Close()) }()

	if err := client.SelectDevice(cfg.device); err != nil {
		return fmt.Errorf("select MIDI device %d: %w", cfg.device, err)
	}

	events := make(chan contracts.MIDI, 256)
	client.StartCapture(events)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	con := &console{logger: log, translator: tr, client: client, out: os.Stdout}
	go func() {
		switch err := con.serve(os.Stdin); {
		case errors.Is(err, errQuit):
			stop()
		case err != nil:
			log.Error("Console stopped", log.Field().Error("error", err))
		}
	}()

	log.Info("Translating MIDI input; type help for commands")
	if err := tr.Run(ctx, events); err != nil && ctx.Err() == nil {
		return err
	}
	log.Info("Shutting down")
	return nil
}
