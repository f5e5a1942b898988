package filterbank

import (
	"fmt"
	"strings"
)

// ParseNote maps a note name to its pitch-class index from C (0..11).
// Sharps and flats are accepted ("c#" and "db" are both 1); matching is
// case-insensitive.
func ParseNote(name string) (int, error) {
	switch strings.ToLower(name) {
	case "c":
		return 0, nil
	case "c#", "db":
		return 1, nil
	case "d":
		return 2, nil
	case "d#", "eb":
		return 3, nil
	case "e":
		return 4, nil
	case "f":
		return 5, nil
	case "f#", "gb":
		return 6, nil
	case "g":
		return 7, nil
	case "g#", "ab":
		return 8, nil
	case "a":
		return 9, nil
	case "a#", "bb":
		return 10, nil
	case "b", "cb":
		return 11, nil
	default:
		return 0, fmt.Errorf("filterbank: unknown note name %q", name)
	}
}

// NoteName returns the canonical (sharp-based) name for a pitch class.
func NoteName(class int) string {
	names := [NoteCount]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	if class < 0 || class >= NoteCount {
		return ""
	}

	return names[class]
}
