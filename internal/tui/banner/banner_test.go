package banner

import (
	"strings"
	"testing"
	"unicode/utf8"

	"golang.org/x/image/font/basicfont"
)

func TestRender(t *testing.T) {
	r := New(basicfont.Face7x13)
	if !r.Available() {
		t.Fatal("renderer with a face should be available")
	}

	out := r.Render("HI", 9, 0)
	if out == "" {
		t.Fatal("Render returned nothing")
	}
	lines := strings.Split(out, "\n")
	if len(lines) != 9 {
		t.Fatalf("got %d lines, want 9", len(lines))
	}
	width := utf8.RuneCountInString(lines[0])
	for i, l := range lines {
		if n := utf8.RuneCountInString(l); n != width {
			t.Errorf("line %d has %d cells, want %d", i, n, width)
		}
	}
	if !strings.ContainsAny(out, "█▀▄") {
		t.Errorf("no lit cells in:\n%s", out)
	}

	if again := r.Render("HI", 9, 0); again != out {
		t.Error("cached render differs")
	}
}

func TestRenderTooWide(t *testing.T) {
	r := New(basicfont.Face7x13)
	if out := r.Render("HANGMAN", 9, 10); out != "" {
		t.Errorf("expected empty render for narrow width, got:\n%s", out)
	}
}

func TestUnavailable(t *testing.T) {
	if New(nil).Render("HI", 4, 0) != "" {
		t.Error("nil face should render nothing")
	}
	var zero Renderer
	if zero.Available() || zero.Render("HI", 4, 0) != "" {
		t.Error("zero renderer should render nothing")
	}
	if LoadSystem("/nonexistent/font.ttf").Available() {
		t.Error("missing font should not be available")
	}
}
