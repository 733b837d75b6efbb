package lattice

import "fmt"

// MIDI note number of the reference pitch (offset zero).
const MiddleC = 60

var noteNames = [12]string{"C", "C#/Db", "D", "D#/Eb", "E", "F", "F#/Gb", "G", "G#/Ab", "A", "A#/Bb", "B"}

// PitchClassName returns the name of a note's pitch class.
func PitchClassName(note uint8) string {
	return noteNames[note%12]
}

// Octave uses the convention where note 60 is in octave 3.
func Octave(note uint8) int {
	return int(note)/12 - 2
}

// NoteName formats a MIDI note for display, e.g. "C3" for 60.
func NoteName(note uint8) string {
	return fmt.Sprintf("%s%d", PitchClassName(note), Octave(note))
}

// ShortName is NoteName using only the sharp spelling, e.g. "C#3".
func ShortName(note uint8) string {
	name := PitchClassName(note)
	if len(name) > 2 {
		name = name[:2]
	}
	return fmt.Sprintf("%s%d", name, Octave(note))
}
