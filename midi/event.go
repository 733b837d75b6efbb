package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// MIDI message types
const (
	NoteOn  uint8 = 0x90
	NoteOff uint8 = 0x80
	CC      uint8 = 0xB0
)

// CCSustain is the damper pedal controller.
const CCSustain uint8 = 64

// Event is one outgoing channel message. For CC, Note holds the
// controller number and Velocity the value.
type Event struct {
	Type     uint8 // NoteOn, NoteOff, CC
	Channel  uint8 // 0-15
	Note     uint8
	Velocity uint8
}

// NoteOnEvent builds a note-on.
func NoteOnEvent(channel, note, velocity uint8) Event {
	return Event{Type: NoteOn, Channel: channel, Note: note, Velocity: velocity}
}

// NoteOffEvent builds a note-off with release velocity 0.
func NoteOffEvent(channel, note uint8) Event {
	return Event{Type: NoteOff, Channel: channel, Note: note}
}

// SustainEvent builds a damper pedal CC (127 down, 0 up).
func SustainEvent(channel uint8, down bool) Event {
	var value uint8
	if down {
		value = 127
	}
	return Event{Type: CC, Channel: channel, Note: CCSustain, Velocity: value}
}

// Message encodes the event for the wire.
func (e Event) Message() gomidi.Message {
	switch e.Type {
	case NoteOn:
		return gomidi.NoteOn(e.Channel, e.Note, e.Velocity)
	case NoteOff:
		return gomidi.NoteOff(e.Channel, e.Note)
	case CC:
		return gomidi.ControlChange(e.Channel, e.Note, e.Velocity)
	}
	return nil
}

func (e Event) String() string {
	switch e.Type {
	case NoteOn:
		return fmt.Sprintf("NoteOn(%d, %d)", e.Note, e.Velocity)
	case NoteOff:
		return fmt.Sprintf("NoteOff(%d, %d)", e.Note, e.Velocity)
	case CC:
		return fmt.Sprintf("CC(%d, %d)", e.Note, e.Velocity)
	}
	return fmt.Sprintf("Event(0x%02X)", e.Type)
}
