package filterbank

import "testing"

func TestParseNote(t *testing.T) {
	cases := []struct {
		name string
		want int
	}{
		{"c", 0},
		{"C", 0},
		{"c#", 1},
		{"C#", 1},
		{"db", 1},
		{"Db", 1},
		{"d", 2},
		{"eb", 3},
		{"e", 4},
		{"f", 5},
		{"f#", 6},
		{"gb", 6},
		{"g", 7},
		{"ab", 8},
		{"a", 9},
		{"bb", 10},
		{"b", 11},
		{"cb", 11},
	}

	for _, tc := range cases {
		got, err := ParseNote(tc.name)
		if err != nil {
			t.Errorf("ParseNote(%q): %v", tc.name, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseNote(%q) = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestParseNoteUnknown(t *testing.T) {
	for _, name := range []string{"", "h", "e#", "c##", "do", "A4"} {
		if _, err := ParseNote(name); err == nil {
			t.Errorf("ParseNote(%q) = nil error, want error", name)
		}
	}
}

func TestNoteName(t *testing.T) {
	want := []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	for class, w := range want {
		if got := NoteName(class); got != w {
			t.Errorf("NoteName(%d) = %q, want %q", class, got, w)
		}
	}

	for _, class := range []int{-1, 12, 100} {
		if got := NoteName(class); got != "" {
			t.Errorf("NoteName(%d) = %q, want empty", class, got)
		}
	}
}

func TestParseNoteRoundTrip(t *testing.T) {
	for class := 0; class < NoteCount; class++ {
		got, err := ParseNote(NoteName(class))
		if err != nil {
			t.Fatalf("ParseNote(NoteName(%d)): %v", class, err)
		}
		if got != class {
			t.Errorf("round trip for class %d = %d", class, got)
		}
	}
}
