package lattice

import "fmt"

// Point is a key's fixed position on the 2-D lattice.
// U counts steps to the right, V counts steps up-left.
type Point struct {
	U, V int
}

// Add returns the component-wise sum of two points.
func (p Point) Add(q Point) Point {
	return Point{U: p.U + q.U, V: p.V + q.V}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.U, p.V)
}

// Basis maps lattice movement to pitch: one step up is worth Up
// semitones, one step up-right is worth UpRight semitones.
type Basis struct {
	Up      int
	UpRight int
}

func (b Basis) String() string {
	return fmt.Sprintf("(%d,%d)", b.Up, b.UpRight)
}

// PitchOffset is a number of semitones relative to the reference pitch.
type PitchOffset int

// Offset returns the pitch offset of point p under basis b.
//
// Moving by (0,1) is worth b.Up, moving by (1,0) is worth b.UpRight-b.Up,
// so the diagonal (1,1) is worth b.UpRight. The map is linear, so the
// interval between two keys depends only on their displacement.
func Offset(b Basis, p Point) PitchOffset {
	return PitchOffset(b.Up*p.V + (b.UpRight-b.Up)*p.U)
}
