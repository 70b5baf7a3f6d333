package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/leandrodaf/midiqwerty/sdk/contracts"
	"github.com/leandrodaf/midiqwerty/sdk/translator"
)

// errQuit ends the console loop.
var errQuit = errors.New("quit requested")

const consoleHelp = `commands:
  method <generic|pv|rooms>  switch output method
  output <on|off>            enable or disable key output
  device <n>                 reconnect to MIDI input n
  devices                    list MIDI inputs
  release                    release every key
  quit                       exit`

// console executes line commands against a running translator.
type console struct {
	logger     contracts.Logger
	translator *translator.Translator
	client     contracts.ClientMIDI
	out        io.Writer
}

// serve reads commands from r until EOF or quit, returning errQuit for the
// latter. Command errors are reported and do not stop the loop.
func (c *console) serve(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		err := c.execute(scanner.Text())
		if errors.Is(err, errQuit) {
			return err
		}
		if err != nil {
			fmt.Fprintln(c.out, "error:", err)
		}
	}
	return scanner.Err()
}

func (c *console) execute(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch cmd, args := strings.ToLower(fields[0]), fields[1:]; cmd {
	case "method":
		if len(args) != 1 {
			return errors.New("usage: method <generic|pv|rooms>")
		}
		kind, err := contracts.ParseMethodKind(args[0])
		if err != nil {
			return err
		}
		if err := c.translator.SelectMethod(kind); err != nil {
			return err
		}
		_, name := c.translator.Method()
		fmt.Fprintln(c.out, "method:", name)
	case "output":
		if len(args) != 1 {
			return errors.New("usage: output <on|off>")
		}
		var enabled bool
		switch strings.ToLower(args[0]) {
		case "on":
			enabled = true
		case "off":
		default:
			return errors.New("usage: output <on|off>")
		}
		if err := c.translator.SetOutputEnabled(enabled); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "output:", args[0])
	case "device":
		if len(args) != 1 {
			return errors.New("usage: device <n>")
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid device number %q", args[0])
		}
		return c.reconnect(id)
	case "devices":
		return listDevices(c.out, c.client)
	case "release":
		return c.translator.ReleaseAll()
	case "help":
		fmt.Fprintln(c.out, consoleHelp)
	case "quit", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}
	return nil
}

// reconnect releases every key before binding the new input so nothing stays
// held from the previous device.
func (c *console) reconnect(id int) error {
	if err := c.translator.ReleaseAll(); err != nil {
		c.logger.Warn("Release before reconnect failed", c.logger.Field().Error("error", err))
	}
	if err := c.client.SelectDevice(id); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "device:", id)
	return nil
}

func listDevices(w io.Writer, client contracts.ClientMIDI) error {
	devices, err := client.ListDevices()
	if err != nil {
		return err
	}
	for i, device := range devices {
		fmt.Fprintf(w, "%d: %s\n", i, device)
	}
	return nil
}
