package keys

import "go-isokeys/lattice"

// Table maps physical keys to lattice points.
type Table interface {
	Point(k Key) (lattice.Point, bool)
}

// Row is one physical keyboard row. Keys[i] sits at U = First+i.
type Row struct {
	V     int
	First int
	Keys  []Key
}

// PointTable is a Table built once from a list of rows.
type PointTable struct {
	rows   []Row
	points map[Key]lattice.Point
}

// NewPointTable builds a table from rows. A key listed twice keeps its
// first position.
func NewPointTable(rows []Row) *PointTable {
	t := &PointTable{rows: rows, points: make(map[Key]lattice.Point)}
	for _, r := range rows {
		for i, k := range r.Keys {
			if _, dup := t.points[k]; dup {
				continue
			}
			t.points[k] = lattice.Point{U: r.First + i, V: r.V}
		}
	}
	return t
}

// Point returns the lattice position of k, or false for keys with no
// musical meaning.
func (t *PointTable) Point(k Key) (lattice.Point, bool) {
	p, ok := t.points[k]
	return p, ok
}

// Rows returns the rows top to bottom.
func (t *PointTable) Rows() []Row {
	return t.rows
}

// Len is the number of mapped keys.
func (t *PointTable) Len() int {
	return len(t.points)
}

// Each row sits half a key to the right of the row above it, so the key
// directly up-left of another shares its U and the key up-right of it is
// at U+1. G is the origin.
var standardRows = []Row{
	{V: 2, First: -5, Keys: []Key{KeyGrave, Key1, Key2, Key3, Key4, Key5, Key6, Key7, Key8, Key9, Key0, KeyMinus, KeyEqual}},
	{V: 1, First: -4, Keys: []Key{KeyQ, KeyW, KeyE, KeyR, KeyT, KeyY, KeyU, KeyI, KeyO, KeyP, KeyLeftBrace, KeyRightBrace, KeyBackslash}},
	{V: 0, First: -4, Keys: []Key{KeyA, KeyS, KeyD, KeyF, KeyG, KeyH, KeyJ, KeyK, KeyL, KeySemicolon, KeyApostrophe}},
	{V: -1, First: -4, Keys: []Key{KeyZ, KeyX, KeyC, KeyV, KeyB, KeyN, KeyM, KeyComma, KeyDot, KeySlash}},
}

// Standard is the table for a US-layout keyboard.
var Standard = NewPointTable(standardRows)
