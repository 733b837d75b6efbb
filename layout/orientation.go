package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrOrientation is returned for orientation values other than the two
// supported rotations.
var ErrOrientation = errors.New("unsupported orientation")

// Orientation is the convention a layout is diagrammed in.
type Orientation int

const (
	Vertical   Orientation = -90
	Horizontal Orientation = 0
)

func (o Orientation) String() string {
	switch o {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	}
	return fmt.Sprintf("rotation(%d)", int(o))
}

// Valid reports whether o is one of the supported rotations.
func (o Orientation) Valid() bool {
	return o == Vertical || o == Horizontal
}

// FromRotation converts a rotation in degrees.
func FromRotation(deg int) (Orientation, error) {
	o := Orientation(deg)
	if !o.Valid() {
		return 0, fmt.Errorf("%w: rotation %d (want -90 or 0)", ErrOrientation, deg)
	}
	return o, nil
}

// ParseOrientation accepts "vertical", "horizontal" or a rotation in degrees.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vertical", "v":
		return Vertical, nil
	case "horizontal", "h":
		return Horizontal, nil
	}
	deg, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrOrientation, s)
	}
	return FromRotation(deg)
}
