package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-isokeys/debug"
	"go-isokeys/input"
	"go-isokeys/keys"
	"go-isokeys/lattice"
	"go-isokeys/midi"
	"go-isokeys/theme"
	"go-isokeys/translator"
	"go-isokeys/widgets"
)

// Options describes the run for the header.
type Options struct {
	Preset     string
	OutputName string
	SourceName string
}

type Model struct {
	Translator *translator.Translator
	Sink       midi.Sink
	Theme      *theme.Theme
	Options    Options

	terminal *input.Terminal // nil when keys come from Source
	source   input.Source

	keys     keyMap
	help     help.Model
	last     string
	lastErr  string
	quitting bool
}

// KeyEventMsg carries one event from a Source.
type KeyEventMsg keys.Event

// SourceClosedMsg is sent when a Source stops delivering events.
type SourceClosedMsg struct{}

// NewTerminalModel plays from terminal key presses.
func NewTerminalModel(tr *translator.Translator, sink midi.Sink, term *input.Terminal, th *theme.Theme, opts Options) Model {
	m := newModel(tr, sink, th, opts)
	m.terminal = term
	return m
}

// NewSourceModel plays from an event source such as evdev.
func NewSourceModel(tr *translator.Translator, sink midi.Sink, src input.Source, th *theme.Theme, opts Options) Model {
	m := newModel(tr, sink, th, opts)
	m.source = src
	return m
}

func newModel(tr *translator.Translator, sink midi.Sink, th *theme.Theme, opts Options) Model {
	return Model{
		Translator: tr,
		Sink:       sink,
		Theme:      th,
		Options:    opts,
		keys:       defaultKeyMap(),
		help:       help.New(),
	}
}

func ListenForKeys(src input.Source) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-src.Events()
		if !ok {
			return SourceClosedMsg{}
		}
		return KeyEventMsg(ev)
	}
}

func (m Model) Init() tea.Cmd {
	if m.source != nil {
		return ListenForKeys(m.source)
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m.quit()
		}
		if m.terminal == nil {
			// Source mode: the terminal only echoes the same keys.
			return m, nil
		}
		evs, cmd := m.terminal.Key(msg)
		m.dispatch(evs)
		return m, cmd

	case input.GateMsg:
		if m.terminal != nil {
			m.dispatch(m.terminal.Expire(msg))
		}

	case KeyEventMsg:
		ev := keys.Event(msg)
		if ev.Key == keys.KeyEsc && ev.Action == keys.Press {
			return m.quit()
		}
		m.dispatch([]keys.Event{ev})
		return m, ListenForKeys(m.source)

	case SourceClosedMsg:
		m.lastErr = "input device closed"
		debug.Log("input", "source closed")
		return m.quit()

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}

	return m, nil
}

// dispatch drives events through the translator and hands the output to
// the sink. Failures are reported and the session continues.
func (m *Model) dispatch(evs []keys.Event) {
	for _, ev := range evs {
		out, ok, err := m.Translator.Handle(ev)
		if err != nil {
			m.lastErr = err.Error()
			continue
		}
		if !ok {
			continue
		}
		if err := m.Sink.Send(out); err != nil {
			m.lastErr = err.Error()
			debug.Log("send", "%v", err)
			continue
		}
		m.last = describe(out)
		m.lastErr = ""
	}
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	for _, ev := range m.Translator.Flush() {
		if err := m.Sink.Send(ev); err != nil {
			debug.Log("send", "flush: %v", err)
		}
	}
	m.quitting = true
	return m, tea.Quit
}

// Err returns the last reported error, if any.
func (m Model) Err() string {
	return m.lastErr
}

// Last returns the last transmitted event, described.
func (m Model) Last() string {
	return m.last
}

func describe(e midi.Event) string {
	switch e.Type {
	case midi.NoteOn:
		return fmt.Sprintf("%s %d on", lattice.NoteName(e.Note), e.Note)
	case midi.NoteOff:
		return fmt.Sprintf("%s %d off", lattice.NoteName(e.Note), e.Note)
	case midi.CC:
		if e.Note == midi.CCSustain {
			if e.Velocity > 0 {
				return "Sustain on"
			}
			return "Sustain off"
		}
	}
	return e.String()
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	errStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())

	preset := m.Options.Preset
	if preset == "" {
		preset = "custom"
	}
	sustain := "off"
	if m.Translator.Sustain() {
		sustain = "on"
	}

	header := headerStyle.Render(fmt.Sprintf("go-isokeys  %s %s", preset, m.Translator.Basis()))
	status := dimStyle.Render(widgets.RenderStatus(
		"transpose", fmt.Sprintf("%+d", m.Translator.Transpose()),
		"sustain", sustain,
		"out", m.Options.OutputName,
		"in", m.Options.SourceName,
	))

	kb := widgets.Keyboard{
		Table:    keys.Standard,
		Note:     m.Translator.Note,
		Sounding: m.Translator.SoundingKeys(),
		Theme:    m.Theme,
	}

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n")
	out.WriteString(status)
	out.WriteString("\n\n")
	out.WriteString(kb.View())
	out.WriteString("\n\n")
	out.WriteString(m.last)
	if m.lastErr != "" {
		out.WriteString("\n")
		out.WriteString(errStyle.Render(m.lastErr))
	}
	out.WriteString("\n\n")
	out.WriteString(m.help.View(m.keys))

	return out.String()
}
