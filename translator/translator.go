// Package translator turns key events into MIDI events.
//
// A Translator holds one Idle/Sounding state per physical key and the
// sustain pedal flag. It is not safe for concurrent use; one event loop
// owns it.
package translator

import (
	"errors"
	"fmt"
	"slices"

	"go-isokeys/debug"
	"go-isokeys/keys"
	"go-isokeys/lattice"
	"go-isokeys/midi"
)

// ErrNoteOutOfRange is returned when a press would produce a note outside
// 0-127. The press is dropped and the key stays idle.
var ErrNoteOutOfRange = errors.New("note out of range")

const (
	DefaultVelocity uint8 = 64
	MaxNote               = 127
)

// Config is the fixed context of a run.
type Config struct {
	Basis      lattice.Basis
	Transpose  int
	Channel    uint8      // 0-15
	Velocity   uint8      // note-on velocity, DefaultVelocity if zero
	SustainKey keys.Key   // keys.KeySpace if zero
	Table      keys.Table // keys.Standard if nil
}

type keyState struct {
	sounding bool
	note     uint8
}

// Translator is the per-run key state machine.
type Translator struct {
	cfg     Config
	keys    map[keys.Key]keyState
	sustain bool
}

// New creates a translator with every key idle and the pedal up.
func New(cfg Config) *Translator {
	if cfg.Velocity == 0 {
		cfg.Velocity = DefaultVelocity
	}
	if cfg.SustainKey == keys.KeyNone {
		cfg.SustainKey = keys.KeySpace
	}
	if cfg.Table == nil {
		cfg.Table = keys.Standard
	}
	return &Translator{
		cfg:  cfg,
		keys: make(map[keys.Key]keyState),
	}
}

// Basis returns the active basis.
func (t *Translator) Basis() lattice.Basis {
	return t.cfg.Basis
}

// Transpose returns the transpose in semitones.
func (t *Translator) Transpose() int {
	return t.cfg.Transpose
}

// Sustain reports whether the pedal is down.
func (t *Translator) Sustain() bool {
	return t.sustain
}

// Sounding returns the note a key is sounding, if any.
func (t *Translator) Sounding(k keys.Key) (uint8, bool) {
	st := t.keys[k]
	return st.note, st.sounding
}

// SoundingKeys returns a snapshot of every sounding key and its note.
func (t *Translator) SoundingKeys() map[keys.Key]uint8 {
	out := make(map[keys.Key]uint8, len(t.keys))
	for k, st := range t.keys {
		if st.sounding {
			out[k] = st.note
		}
	}
	return out
}

// Note computes the note a key would play, without changing state.
func (t *Translator) Note(k keys.Key) (uint8, bool, error) {
	p, ok := t.cfg.Table.Point(k)
	if !ok {
		return 0, false, nil
	}
	n, err := t.noteAt(p)
	return n, true, err
}

func (t *Translator) noteAt(p lattice.Point) (uint8, error) {
	n := int(lattice.Offset(t.cfg.Basis, p)) + lattice.MiddleC + t.cfg.Transpose
	if n < 0 || n > MaxNote {
		return 0, fmt.Errorf("%w: %d at %v", ErrNoteOutOfRange, n, p)
	}
	return uint8(n), nil
}

// Handle feeds one key event through the state machine. It returns the
// event to transmit and true, or false when the key action produces no
// output.
func (t *Translator) Handle(ev keys.Event) (midi.Event, bool, error) {
	if ev.Action == keys.Repeat {
		return midi.Event{}, false, nil
	}

	if ev.Key == t.cfg.SustainKey {
		switch ev.Action {
		case keys.Press:
			t.sustain = true
			return midi.SustainEvent(t.cfg.Channel, true), true, nil
		case keys.Release:
			t.sustain = false
			return midi.SustainEvent(t.cfg.Channel, false), true, nil
		}
		return midi.Event{}, false, nil
	}

	switch ev.Action {
	case keys.Press:
		return t.press(ev.Key)
	case keys.Release:
		return t.release(ev.Key)
	}
	return midi.Event{}, false, nil
}

func (t *Translator) press(k keys.Key) (midi.Event, bool, error) {
	if t.keys[k].sounding {
		return midi.Event{}, false, nil
	}
	p, ok := t.cfg.Table.Point(k)
	if !ok {
		debug.Log("translate", "unmapped key %s", k)
		return midi.Event{}, false, nil
	}
	note, err := t.noteAt(p)
	if err != nil {
		debug.Log("translate", "key %s rejected: %v", k, err)
		return midi.Event{}, false, fmt.Errorf("key %s: %w", k, err)
	}
	t.keys[k] = keyState{sounding: true, note: note}
	debug.Log("translate", "%s %d on", lattice.NoteName(note), note)
	return midi.NoteOnEvent(t.cfg.Channel, note, t.cfg.Velocity), true, nil
}

func (t *Translator) release(k keys.Key) (midi.Event, bool, error) {
	st := t.keys[k]
	if !st.sounding {
		if _, ok := t.cfg.Table.Point(k); !ok {
			debug.Log("translate", "unmapped key %s", k)
		}
		return midi.Event{}, false, nil
	}
	delete(t.keys, k)
	debug.Log("translate", "%s %d off", lattice.NoteName(st.note), st.note)
	return midi.NoteOffEvent(t.cfg.Channel, st.note), true, nil
}

// Flush releases every sounding key and the pedal, returning the events
// needed to silence the output. Notes are released in ascending order.
func (t *Translator) Flush() []midi.Event {
	var notes []uint8
	for k, st := range t.keys {
		if st.sounding {
			notes = append(notes, st.note)
		}
		delete(t.keys, k)
	}
	slices.Sort(notes)

	out := make([]midi.Event, 0, len(notes)+1)
	for _, n := range notes {
		out = append(out, midi.NoteOffEvent(t.cfg.Channel, n))
	}
	if t.sustain {
		t.sustain = false
		out = append(out, midi.SustainEvent(t.cfg.Channel, false))
	}
	return out
}
