package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-isokeys/keys"
	"go-isokeys/lattice"
	"go-isokeys/theme"
)

// cellWidth is the width of one key; rows are staggered by half of it.
const cellWidth = 4

// NoteFunc returns the note a key plays; ok is false for unmapped keys
// and err is set for keys whose note is out of range.
type NoteFunc func(k keys.Key) (note uint8, ok bool, err error)

// Keyboard renders the mapped keys as staggered rows with note labels.
type Keyboard struct {
	Table    *keys.PointTable
	Note     NoteFunc
	Sounding map[keys.Key]uint8
	Theme    *theme.Theme
}

// View renders two lines per row: key caps, then note names.
func (kb Keyboard) View() string {
	rows := kb.Table.Rows()
	if len(rows) == 0 {
		return ""
	}

	minHalf := 0
	for i, r := range rows {
		h := 2*r.First - r.V
		if i == 0 || h < minHalf {
			minHalf = h
		}
	}

	var lines []string
	for _, r := range rows {
		indent := strings.Repeat(" ", (2*r.First-r.V-minHalf)*cellWidth/2)
		var caps, notes strings.Builder
		caps.WriteString(indent)
		notes.WriteString(indent)
		for _, k := range r.Keys {
			c, n := kb.cell(k)
			caps.WriteString(c)
			notes.WriteString(n)
		}
		lines = append(lines, caps.String(), notes.String())
	}
	return strings.Join(lines, "\n")
}

func (kb Keyboard) cell(k keys.Key) (string, string) {
	label := k.String()
	if r, ok := k.Rune(); ok {
		label = strings.ToUpper(string(r))
	}

	base := lipgloss.NewStyle().Width(cellWidth)
	note, ok, err := kb.Note(k)
	if !ok || err != nil {
		muted := base.Foreground(kb.Theme.Muted())
		return muted.Render(label), muted.Render("--")
	}

	color := kb.Theme.PitchClass(note)
	capStyle := base.Foreground(color)
	noteStyle := base.Foreground(color)
	if _, on := kb.Sounding[k]; on {
		capStyle = base.Bold(true).Foreground(kb.Theme.BG()).Background(kb.Theme.Success())
		noteStyle = capStyle
	}
	return capStyle.Render(label), noteStyle.Render(lattice.ShortName(note))
}

// RenderStatus renders "label value" pairs separated by two spaces.
func RenderStatus(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, fmt.Sprintf("%s %s", pairs[i], pairs[i+1]))
	}
	return strings.Join(parts, "  ")
}
