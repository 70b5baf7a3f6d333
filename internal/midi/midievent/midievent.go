// Package midievent converts raw channel voice bytes into contracts.MIDI events.
package midievent

import (
	"time"

	"github.com/leandrodaf/midiqwerty/sdk/contracts"
)

// Size is the length of the note and controller messages the clients forward.
const Size = 3

// IsChannelStatus reports whether b is a channel voice status byte (0x80-0xEF).
func IsChannelStatus(b byte) bool {
	return b >= 0x80 && b < 0xF0
}

// IsRealtime reports whether b is a single-byte system realtime message (0xF8-0xFF).
// Realtime bytes may appear anywhere in a stream, even inside another message.
func IsRealtime(b byte) bool {
	return b >= 0xF8
}

// Length returns the full length of the channel message started by status:
// two bytes for program change and channel pressure, three for the rest.
func Length(status byte) int {
	switch status & 0xF0 {
	case 0xC0, 0xD0:
		return 2
	}
	return Size
}

// Decode builds an event from the channel message at the start of data,
// stamped with the current time. Two-byte messages leave Velocity zero.
// It fails on short input and on anything but channel voice status.
func Decode(data []byte) (contracts.MIDI, bool) {
	if len(data) == 0 || !IsChannelStatus(data[0]) || len(data) < Length(data[0]) {
		return contracts.MIDI{}, false
	}
	event := contracts.MIDI{
		Timestamp: uint64(time.Now().UTC().UnixNano()),
		Command:   data[0] & 0xF0,
		Channel:   data[0] & 0x0F,
		Note:      data[1],
	}
	if Length(data[0]) == Size {
		event.Velocity = data[2]
	}
	return event, true
}

// Split walks a buffer of MIDI messages, such as a CoreMIDI packet, calling fn
// for each channel message. Realtime bytes are skipped wherever they occur,
// system common and exclusive messages are skipped with their data bytes, and
// data bytes following a channel message reuse its status (running status).
// A message cut short by a new status byte is dropped. It returns the number
// of bytes consumed; only a trailing incomplete message is left over.
func Split(data []byte, fn func(event contracts.MIDI, status byte)) int {
	var running byte
	i := 0
	for i < len(data) {
		start := i
		b := data[i]
		switch {
		case IsRealtime(b):
			i++
			continue
		case b >= 0xF0:
			// System common or exclusive: cancels running status and owns the
			// data bytes up to the next status byte.
			running = 0
			i++
			for i < len(data) && (data[i] < 0x80 || data[i] == 0xF7) {
				i++
			}
			continue
		case IsChannelStatus(b):
			running = b
			i++
		case running == 0:
			// Stray data byte.
			i++
			continue
		}

		message := []byte{running}
	collect:
		for len(message) < Length(running) && i < len(data) {
			switch c := data[i]; {
			case IsRealtime(c):
				i++
			case c >= 0x80:
				// Truncated by the next status byte.
				message = nil
				break collect
			default:
				message = append(message, c)
				i++
			}
		}
		if message == nil {
			continue
		}
		if len(message) < Length(running) {
			return start
		}
		if event, ok := Decode(message); ok {
			fn(event, running)
		}
	}
	return i
}

// Forward delivers event without blocking and reports whether the channel took it.
func Forward(ch chan contracts.MIDI, event contracts.MIDI) bool {
	select {
	case ch <- event:
		return true
	default:
		return false
	}
}
