// Package input produces key events for the translator.
package input

import (
	"errors"

	"go-isokeys/keys"
)

var (
	ErrNoKeyboard  = errors.New("no keyboard input device found")
	ErrUnsupported = errors.New("evdev input is only available on Linux")
)

// Source is a stream of key events.
type Source interface {
	Events() <-chan keys.Event
	Close() error
}

// Linux key event values.
const (
	valueRelease = 0
	valuePress   = 1
	valueRepeat  = 2
)

// FromInputEvent converts a raw key event (code and value from an
// EV_KEY input event). Unknown values are dropped.
func FromInputEvent(code uint16, value int32) (keys.Event, bool) {
	var a keys.Action
	switch value {
	case valueRelease:
		a = keys.Release
	case valuePress:
		a = keys.Press
	case valueRepeat:
		a = keys.Repeat
	default:
		return keys.Event{}, false
	}
	return keys.Event{Key: keys.Key(code), Action: a}, true
}
