package input

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"go-isokeys/keys"
)

// DefaultGate is how long a terminal key sounds without auto-repeat.
const DefaultGate = 400 * time.Millisecond

// GateMsg ends a held terminal key unless a repeat renewed it since.
type GateMsg struct {
	Key keys.Key
	Seq uint64
}

// Terminal turns bubbletea key messages into key events. Terminals report
// no key release, so a press is held for the gate interval and every
// auto-repeat of the key extends it. The sustain key toggles.
type Terminal struct {
	gate       time.Duration
	sustainKey keys.Key
	sustain    bool
	held       map[keys.Key]uint64
	seq        uint64
}

// NewTerminal creates a terminal source. gate <= 0 uses DefaultGate.
func NewTerminal(gate time.Duration) *Terminal {
	if gate <= 0 {
		gate = DefaultGate
	}
	return &Terminal{
		gate:       gate,
		sustainKey: keys.KeySpace,
		held:       make(map[keys.Key]uint64),
	}
}

// KeyOf maps a terminal key message to a physical key.
func KeyOf(msg tea.KeyMsg) (keys.Key, bool) {
	switch msg.Type {
	case tea.KeySpace:
		return keys.KeySpace, true
	case tea.KeyRunes:
		if len(msg.Runes) != 1 || msg.Alt {
			return keys.KeyNone, false
		}
		return keys.FromRune(msg.Runes[0])
	}
	return keys.KeyNone, false
}

// Key handles a terminal key message. It returns the resulting events
// and a command that fires the gate, if any.
func (t *Terminal) Key(msg tea.KeyMsg) ([]keys.Event, tea.Cmd) {
	k, ok := KeyOf(msg)
	if !ok {
		return nil, nil
	}

	if k == t.sustainKey {
		t.sustain = !t.sustain
		if t.sustain {
			return []keys.Event{{Key: k, Action: keys.Press}}, nil
		}
		return []keys.Event{{Key: k, Action: keys.Release}}, nil
	}

	action := keys.Press
	if _, held := t.held[k]; held {
		action = keys.Repeat
	}
	t.seq++
	t.held[k] = t.seq
	return []keys.Event{{Key: k, Action: action}}, t.tick(k, t.seq)
}

func (t *Terminal) tick(k keys.Key, seq uint64) tea.Cmd {
	return tea.Tick(t.gate, func(time.Time) tea.Msg {
		return GateMsg{Key: k, Seq: seq}
	})
}

// Expire handles a gate message, releasing the key if it was not renewed.
func (t *Terminal) Expire(msg GateMsg) []keys.Event {
	seq, held := t.held[msg.Key]
	if !held || seq != msg.Seq {
		return nil
	}
	delete(t.held, msg.Key)
	return []keys.Event{{Key: msg.Key, Action: keys.Release}}
}

// Held reports whether a key is currently held.
func (t *Terminal) Held(k keys.Key) bool {
	_, ok := t.held[k]
	return ok
}

// Sustain reports the toggled pedal state.
func (t *Terminal) Sustain() bool {
	return t.sustain
}
