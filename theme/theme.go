package theme

import (
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
}

func New(palette *Palette) *Theme {
	return &Theme{Palette: palette}
}

// Default uses the embedded palette.
func Default() *Theme {
	return New(DefaultPalette())
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0 // deep purple
	RoleMuted   = 0.2 // purple-magenta
	RoleAccent  = 0.5 // vivid magenta
	RoleWarning = 0.8 // orange
	RoleSuccess = 1.0 // bright yellow
)

// Style helpers

func (t *Theme) BG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleBG))
}

func (t *Theme) Accent() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleAccent))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleMuted))
}

func (t *Theme) Warning() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleWarning))
}

func (t *Theme) Success() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleSuccess))
}

// PitchClassRGB spreads the twelve pitch classes across the palette.
func (t *Theme) PitchClassRGB(note uint8) RGB {
	return t.Palette.Lookup(float64(note%12) / 11)
}

// PitchClass returns the key color for a note.
func (t *Theme) PitchClass(note uint8) lipgloss.Color {
	return rgbToLipgloss(t.PitchClassRGB(note))
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(toColorful(c).Hex())
}
