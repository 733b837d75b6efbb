package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-isokeys/input"
	"go-isokeys/keys"
	"go-isokeys/lattice"
	"go-isokeys/midi"
	"go-isokeys/theme"
	"go-isokeys/translator"
)

var tonnetz = lattice.Basis{Up: 4, UpRight: -3}

type chanSource chan keys.Event

func (c chanSource) Events() <-chan keys.Event { return c }
func (c chanSource) Close() error              { return nil }

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func TestTerminalModelPlays(t *testing.T) {
	rec := &midi.Recorder{}
	tr := translator.New(translator.Config{Basis: tonnetz})
	m := NewTerminalModel(tr, rec, input.NewTerminal(0), theme.Default(), Options{Preset: "Tonnetz"})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	assert.NotNil(t, cmd)
	assert.Equal(t, []midi.Event{midi.NoteOnEvent(0, 60, 64)}, rec.Events())
	assert.Equal(t, "C3 60 on", m.Last())
	assert.Contains(t, m.View(), "Tonnetz (4,-3)")

	m, _ = update(t, m, input.GateMsg{Key: keys.KeyG, Seq: 1})
	assert.Equal(t, midi.NoteOffEvent(0, 60), rec.Events()[1])
	assert.Equal(t, "C3 60 off", m.Last())
}

func TestSourceModelPlaysAndQuits(t *testing.T) {
	rec := &midi.Recorder{}
	tr := translator.New(translator.Config{Basis: tonnetz, Transpose: 2})
	src := make(chanSource, 4)
	m := NewSourceModel(tr, rec, src, theme.Default(), Options{})
	require.NotNil(t, m.Init())

	m, cmd := update(t, m, KeyEventMsg{Key: keys.KeyH, Action: keys.Press})
	assert.NotNil(t, cmd)
	m, _ = update(t, m, KeyEventMsg{Key: keys.KeySpace, Action: keys.Press})
	m, _ = update(t, m, KeyEventMsg{Key: keys.KeyH, Action: keys.Repeat})

	// Terminal echo is ignored in source mode.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})

	_, cmd = update(t, m, KeyEventMsg{Key: keys.KeyEsc, Action: keys.Press})
	assert.NotNil(t, cmd)
	assert.Equal(t, []midi.Event{
		midi.NoteOnEvent(0, 55, 64),
		midi.SustainEvent(0, true),
		midi.NoteOffEvent(0, 55),
		midi.SustainEvent(0, false),
	}, rec.Events())
}

func TestListenForKeys(t *testing.T) {
	src := make(chanSource, 1)
	src <- keys.Event{Key: keys.KeyG, Action: keys.Press}
	assert.Equal(t, KeyEventMsg{Key: keys.KeyG, Action: keys.Press}, ListenForKeys(src)())
	close(src)
	assert.Equal(t, SourceClosedMsg{}, ListenForKeys(src)())
}

func TestSendFailureKeepsSession(t *testing.T) {
	fail := midi.SinkFunc(func(midi.Event) error { return errors.New("port gone") })
	tr := translator.New(translator.Config{Basis: tonnetz})
	m := NewTerminalModel(tr, fail, input.NewTerminal(0), theme.Default(), Options{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	assert.Equal(t, "port gone", m.Err())
	assert.Contains(t, m.View(), "port gone")

	_, sounding := tr.Sounding(keys.KeyG)
	assert.True(t, sounding)
}

func TestSendRecoveryClearsError(t *testing.T) {
	fail := true
	sink := midi.SinkFunc(func(midi.Event) error {
		if fail {
			return errors.New("port gone")
		}
		return nil
	})
	tr := translator.New(translator.Config{Basis: tonnetz})
	m := NewTerminalModel(tr, sink, input.NewTerminal(0), theme.Default(), Options{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	assert.Equal(t, "port gone", m.Err())

	fail = false
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})
	assert.Empty(t, m.Err())
	assert.NotContains(t, m.View(), "port gone")
}

func TestOutOfRangeReported(t *testing.T) {
	rec := &midi.Recorder{}
	tr := translator.New(translator.Config{Basis: tonnetz, Transpose: 100})
	m := NewTerminalModel(tr, rec, input.NewTerminal(0), theme.Default(), Options{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	assert.Empty(t, rec.Events())
	assert.Contains(t, m.Err(), "note out of range")
}
