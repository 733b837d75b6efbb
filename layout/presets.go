package layout

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"go-isokeys/lattice"
)

// ErrUnknownPreset is returned when a preset name is not in the catalogue.
var ErrUnknownPreset = errors.New("unknown preset")

// Preset is a named basis specification.
//
// Vertical presets give the interval one key up (Upper) and one key
// up-right (Lower). Horizontal presets give the interval one key up-right
// (Upper) and one key right (Lower).
type Preset struct {
	Name        string
	Upper       int
	Lower       int
	Orientation Orientation
}

// Basis normalizes the preset into the lattice frame.
func (p Preset) Basis() (lattice.Basis, error) {
	return Normalize(p.Upper, p.Lower, p.Orientation)
}

// Normalize folds both orientations into one basis. Horizontal layouts
// are rotated by 60 degrees.
func Normalize(upper, lower int, o Orientation) (lattice.Basis, error) {
	switch o {
	case Vertical:
		return lattice.Basis{Up: upper, UpRight: lower}, nil
	case Horizontal:
		return lattice.Basis{Up: upper - lower, UpRight: upper}, nil
	}
	return lattice.Basis{}, fmt.Errorf("%w: %s", ErrOrientation, o)
}

var catalogue = []Preset{
	{Name: "Janko", Upper: 1, Lower: 2, Orientation: Horizontal},
	{Name: "Gerhard", Upper: 3, Lower: 4, Orientation: Vertical},
	{Name: "Gerhard Inverted", Upper: 4, Lower: 3, Orientation: Vertical},
	{Name: "Tonnetz", Upper: 4, Lower: -3, Orientation: Vertical},
	{Name: "Harmonic Table", Upper: 7, Lower: 4, Orientation: Vertical},
	{Name: "Guitar Fourths", Upper: 5, Lower: 1, Orientation: Horizontal},
	{Name: "Guitar Thirds", Upper: 4, Lower: 1, Orientation: Horizontal},
	{Name: "Wicki-Hayden", Upper: 7, Lower: 2, Orientation: Horizontal},
	{Name: "B-System", Upper: 1, Lower: 3, Orientation: Horizontal},
	{Name: "C-System", Upper: 2, Lower: 3, Orientation: Horizontal},
	{Name: "Bosanquet", Upper: 3, Lower: 2, Orientation: Horizontal},
	{Name: "Wesley", Upper: 5, Lower: 2, Orientation: Horizontal},
	{Name: "Fernandez", Upper: 2, Lower: 5, Orientation: Vertical},
}

// Registry is a read-only set of presets looked up by name.
type Registry struct {
	presets []Preset
	byName  map[string]Preset
}

// NewRegistry indexes presets by normalized name. Later duplicates are
// ignored.
func NewRegistry(presets []Preset) *Registry {
	r := &Registry{byName: make(map[string]Preset, len(presets))}
	for _, p := range presets {
		key := normalizeName(p.Name)
		if _, dup := r.byName[key]; dup {
			continue
		}
		r.byName[key] = p
		r.presets = append(r.presets, p)
	}
	return r
}

// Default is the compiled-in catalogue.
var Default = NewRegistry(catalogue)

// Lookup finds a preset ignoring case, spaces, hyphens and dashes.
func (r *Registry) Lookup(name string) (Preset, bool) {
	p, ok := r.byName[normalizeName(name)]
	return p, ok
}

// Presets returns the catalogue in declaration order.
func (r *Registry) Presets() []Preset {
	out := make([]Preset, len(r.presets))
	copy(out, r.presets)
	return out
}

// Names returns the preset names sorted alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.presets))
	for _, p := range r.presets {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}

// Resolve picks the basis for a run. A non-empty name must match a
// preset; an empty name uses the literal upper, lower and orientation.
func (r *Registry) Resolve(name string, upper, lower int, o Orientation) (lattice.Basis, error) {
	if strings.TrimSpace(name) != "" {
		p, ok := r.Lookup(name)
		if !ok {
			return lattice.Basis{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
		}
		return p.Basis()
	}
	return Normalize(upper, lower, o)
}

// Resolve uses the default catalogue.
func Resolve(name string, upper, lower int, o Orientation) (lattice.Basis, error) {
	return Default.Resolve(name, upper, lower, o)
}

func normalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch r {
		case ' ', '-', '_', '–', '—':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// WriteTable prints the catalogue as aligned columns.
func (r *Registry) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tUPPER\tLOWER\tORIENTATION\tBASIS")
	for _, p := range r.presets {
		b, err := p.Basis()
		if err != nil {
			return fmt.Errorf("preset %s: %w", p.Name, err)
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\n", p.Name, p.Upper, p.Lower, p.Orientation, b)
	}
	return tw.Flush()
}
