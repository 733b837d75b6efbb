package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-isokeys/lattice"
)

func TestNormalizeVertical(t *testing.T) {
	b, err := Normalize(4, -3, Vertical)
	require.NoError(t, err)
	assert.Equal(t, lattice.Basis{Up: 4, UpRight: -3}, b)
}

func TestNormalizeHorizontal(t *testing.T) {
	b, err := Normalize(7, 2, Horizontal)
	require.NoError(t, err)
	assert.Equal(t, lattice.Basis{Up: 5, UpRight: 7}, b)
}

func TestNormalizeRejectsOtherRotations(t *testing.T) {
	_, err := Normalize(1, 2, Orientation(90))
	assert.ErrorIs(t, err, ErrOrientation)
}

func TestHorizontalMatchesEquivalentVertical(t *testing.T) {
	// Wicki-Hayden diagrammed horizontally is a vertical (5,7) layout.
	wh, ok := Default.Lookup("Wicki-Hayden")
	require.True(t, ok)
	horiz, err := wh.Basis()
	require.NoError(t, err)
	vert, err := Normalize(5, 7, Vertical)
	require.NoError(t, err)
	assert.Equal(t, vert, horiz)

	// Same intervals from every key under both.
	for _, p := range []lattice.Point{{U: 1, V: 0}, {U: 0, V: 1}, {U: -2, V: 3}} {
		assert.Equal(t, lattice.Offset(vert, p), lattice.Offset(horiz, p))
	}

	// Fernandez is stored vertically; (5,3) horizontal is the same keyboard.
	fern, _ := Default.Lookup("fernandez")
	fb, err := fern.Basis()
	require.NoError(t, err)
	hb, err := Normalize(5, 3, Horizontal)
	require.NoError(t, err)
	assert.Equal(t, fb, hb)
}

func TestCatalogueCoversRequiredLayouts(t *testing.T) {
	required := []string{
		"Janko", "Gerhard", "Gerhard Inverted", "Tonnetz", "Guitar Fourths",
		"Guitar Thirds", "Wicki-Hayden", "B-System", "C-System", "Bosanquet",
		"Wesley", "Fernandez",
	}
	for _, name := range required {
		p, ok := Default.Lookup(name)
		require.True(t, ok, name)
		assert.True(t, p.Orientation.Valid(), name)
		_, err := p.Basis()
		assert.NoError(t, err, name)
	}
}

func TestLookupIgnoresCaseAndPunctuation(t *testing.T) {
	for _, name := range []string{"wicki-hayden", "Wicki–Hayden", "WICKI HAYDEN", "wickihayden", "wicki_hayden"} {
		p, ok := Default.Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, "Wicki-Hayden", p.Name)
	}
}

func TestResolve(t *testing.T) {
	b, err := Resolve("tonnetz", 0, 0, Orientation(45))
	require.NoError(t, err)
	assert.Equal(t, lattice.Basis{Up: 4, UpRight: -3}, b)

	b, err = Resolve("", 3, 4, Vertical)
	require.NoError(t, err)
	assert.Equal(t, lattice.Basis{Up: 3, UpRight: 4}, b)

	_, err = Resolve("nonesuch", 3, 4, Vertical)
	assert.ErrorIs(t, err, ErrUnknownPreset)

	_, err = Resolve("", 3, 4, Orientation(180))
	assert.ErrorIs(t, err, ErrOrientation)
}

func TestParseOrientation(t *testing.T) {
	tests := []struct {
		in   string
		want Orientation
	}{
		{"vertical", Vertical},
		{"Horizontal", Horizontal},
		{"-90", Vertical},
		{"0", Horizontal},
		{" h ", Horizontal},
	}
	for _, tt := range tests {
		got, err := ParseOrientation(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
	for _, bad := range []string{"90", "diagonal", "", "-45"} {
		_, err := ParseOrientation(bad)
		assert.ErrorIs(t, err, ErrOrientation, bad)
	}
}

func TestRegistryIgnoresDuplicates(t *testing.T) {
	r := NewRegistry([]Preset{
		{Name: "A", Upper: 1, Lower: 2, Orientation: Vertical},
		{Name: "a", Upper: 9, Lower: 9, Orientation: Vertical},
		{Name: "B", Upper: 3, Lower: 4, Orientation: Horizontal},
	})
	assert.Len(t, r.Presets(), 2)
	assert.Equal(t, []string{"A", "B"}, r.Names())
	p, _ := r.Lookup("A")
	assert.Equal(t, 1, p.Upper)
}

func TestWriteTable(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, Default.WriteTable(&buf))
	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Wicki-Hayden")
	assert.Contains(t, out, "(5,7)")
	assert.Equal(t, len(Default.Presets())+1, strings.Count(out, "\n"))
}
