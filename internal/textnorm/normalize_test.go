package textnorm

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"café", "CAFE"},
		{"CAFÉ", "CAFE"},
		{"cafe\u0301", "CAFE"}, // decomposed input
		{"Camión", "CAMION"},
		{"pingüino", "PINGUINO"},
		{"niño", "NINO"},
		{"ice cream", "ICE CREAM"},
		{"ﬁsh", "FISH"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q)=%q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	words := []string{"café", "ÁRBOL", "ﬁsh", "Ærø", "straße", "ǆungla", "mañana", "Ⅻ"}
	for _, w := range words {
		once := Normalize(w)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q then %q", w, once, twice)
		}
	}
}

func TestLength(t *testing.T) {
	if got := Length("canción"); got != 7 {
		t.Errorf("Length(canción)=%d, want 7", got)
	}
	if got := Length("cancio\u0301n"); got != 7 {
		t.Errorf("Length(decomposed canción)=%d, want 7", got)
	}
}

func TestDisplayLength(t *testing.T) {
	if got := DisplayLength("cafe\u0301"); got != 4 {
		t.Errorf("DisplayLength(decomposed café)=%d, want 4", got)
	}
	if got := DisplayLength("CAT"); got != 3 {
		t.Errorf("DisplayLength(CAT)=%d, want 3", got)
	}
}

func TestLetter(t *testing.T) {
	tests := []struct {
		in   string
		want rune
		ok   bool
	}{
		{"a", 'A', true},
		{" Z ", 'Z', true},
		{"é", 'E', true},
		{"Ó", 'O', true},
		{"", 0, false},
		{"ab", 0, false},
		{"1", 0, false},
		{"-", 0, false},
		{"ß", 0, false},
	}
	for _, tt := range tests {
		got, ok := Letter(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Letter(%q)=(%q,%v), want (%q,%v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLetters(t *testing.T) {
	set := Letters("Léon-x")
	for _, r := range "LEONX" {
		if _, ok := set[r]; !ok {
			t.Errorf("missing %q in %v", r, set)
		}
	}
	if _, ok := set['-']; ok {
		t.Errorf("hyphen should not be a letter")
	}
	if len(set) != 5 {
		t.Errorf("len=%d, want 5", len(set))
	}
}
