package theme

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGPL(t *testing.T) {
	src := "GIMP Palette\nName: Test\nColumns: 2\n#\n  0   0   0\tblack\n255 255 255\twhite\n"
	p, err := ParseGPL(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "Test", p.Name)
	assert.Equal(t, []RGB{{0, 0, 0}, {255, 255, 255}}, p.Colors)
}

func TestParseGPLEmpty(t *testing.T) {
	_, err := ParseGPL(strings.NewReader("GIMP Palette\nName: Empty\n"))
	assert.Error(t, err)
}

func TestLookup(t *testing.T) {
	p := &Palette{Colors: []RGB{{0, 0, 0}, {200, 100, 50}}}
	assert.Equal(t, RGB{0, 0, 0}, p.Lookup(-1))
	assert.Equal(t, RGB{200, 100, 50}, p.Lookup(2))
	assert.Equal(t, RGB{100, 50, 25}, p.Lookup(0.5))
}

func TestSingleColorPalette(t *testing.T) {
	p, err := ParseGPL(strings.NewReader("GIMP Palette\nName: one\n255 0 0 red\n"))
	require.NoError(t, err)
	th := New(p)
	for note := uint8(60); note < 72; note++ {
		assert.Equal(t, lipgloss.Color("#ff0000"), th.PitchClass(note), "note %d", note)
	}
	assert.Equal(t, RGB{255, 0, 0}, p.Lookup(0.5))
}

func TestDefaultPitchClasses(t *testing.T) {
	th := Default()
	assert.Equal(t, "Plasma", th.Palette.Name)
	assert.Equal(t, th.PitchClass(60), th.PitchClass(72))
	assert.NotEqual(t, th.PitchClass(60), th.PitchClass(61))
	assert.Equal(t, lipgloss.Color("#0d0887"), th.PitchClass(0))
}
