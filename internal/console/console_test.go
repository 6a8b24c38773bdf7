package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/f3rmion/hangman/internal/config"
	"github.com/f3rmion/hangman/internal/game"
	"github.com/f3rmion/hangman/internal/scores"
	"github.com/f3rmion/hangman/internal/words"
	"github.com/rs/zerolog"
)

type harness struct {
	out       bytes.Buffer
	scorePath string
	p         *Presenter
}

func newHarness(t *testing.T, input string) *harness {
	t.Helper()
	return newHarnessFrom(t, strings.NewReader(input))
}

func newHarnessFrom(t *testing.T, in io.Reader) *harness {
	t.Helper()
	dir := t.TempDir()
	catalog := config.DefaultCatalog()
	repo := words.NewRepository(filepath.Join(dir, "words"), catalog, zerolog.Nop())
	h := &harness{scorePath: filepath.Join(dir, "high_scores.txt")}
	store := scores.NewTextLog(h.scorePath, zerolog.Nop())
	pickFirst := game.SelectorFunc(func(int) int { return 0 })
	svc := game.NewService(repo, store, pickFirst, zerolog.Nop())

	h.p = New(in, &h.out, Options{
		Catalog: catalog,
		Service: svc,
		Corpora: repo,
		Logger:  zerolog.Nop(),
	})
	return h
}

func (h *harness) expect(t *testing.T, fragments ...string) {
	t.Helper()
	out := h.out.String()
	for _, f := range fragments {
		if !strings.Contains(out, f) {
			t.Errorf("output missing %q\n--- output ---\n%s", f, out)
		}
	}
}

func TestRunWinningRound(t *testing.T) {
	h := newHarness(t, "english\nanimals\neasy\nt\ni\ng\ne\nr\nn\n")

	if err := h.p.Run(context.Background(), Preset{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	h.expect(t,
		"Welcome to the Hangman Game!",
		"Word file not found for category 'animals'",
		"You have 8 tries left.",
		"Word: _ _ _ _ _",
		"Word: t _ _ _ _",
		"Guessed letters: T I",
		"You won! The word was: tiger",
		"Your score: 40",
		"High Scores:",
		"english - animals (easy): 40",
		"Do you want to play again? (Y/N): ",
	)

	data, err := os.ReadFile(h.scorePath)
	if err != nil {
		t.Fatalf("score log: %v", err)
	}
	if string(data) != "english,animals,easy,40\n" {
		t.Fatalf("score log=%q", data)
	}
}

func TestRunRepromptsAndLoses(t *testing.T) {
	input := strings.Join([]string{
		"klingon", "english",
		"plants", "animals",
		"extreme", "medium",
		"1", "zz",
		"z", "z", "q", "x", "w", "v", "k",
		"y",
	}, "\n") + "\n"
	h := newHarness(t, input)

	if err := h.p.Run(context.Background(), Preset{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	h.expect(t,
		"Please choose 'english' or 'spanish'.",
		"Please choose one of: animals, food",
		"Please choose a valid difficulty.",
		"Please enter a valid letter.",
		"You already guessed that letter.",
		"Sorry, that letter is not in the word.",
		"You lost! The word was: elephant",
		"english - animals (medium): 0",
	)
	if strings.Contains(h.out.String(), "Your score") {
		t.Error("score shown for a lost round")
	}
	// After "y" the next round asks for a language and hits end of input.
	if n := strings.Count(h.out.String(), "Choose a language"); n != 3 {
		t.Errorf("language asked %d times, want 3", n)
	}
}

func TestRunEmptyCorpusRecordsNothing(t *testing.T) {
	h := newHarness(t, "")

	err := h.p.Run(context.Background(), Preset{Language: "spanish", Category: "comida", Difficulty: "Difícil"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	h.expect(t,
		"No se encontraron palabras válidas",
		"min_length=10, max_length=15",
		"¿Quieres jugar de nuevo? (S/N): ",
	)
	if _, err := os.Stat(h.scorePath); !os.IsNotExist(err) {
		t.Fatalf("score log should not exist, stat err=%v", err)
	}
}

func TestPlayAgain(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"y", true},
		{"Y", true},
		{"s", true},
		{" S ", true},
		{"n", false},
		{"", false},
		{"yes", false},
	}
	for _, tt := range tests {
		if got := playAgain(tt.in); got != tt.want {
			t.Errorf("playAgain(%q)=%v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRunReportsReadError(t *testing.T) {
	broken := errors.New("terminal gone")
	in := io.MultiReader(
		strings.NewReader("english\nanimals\neasy\nt\ni\ng\ne\nr\n"),
		iotest.ErrReader(broken),
	)
	h := newHarnessFrom(t, in)

	err := h.p.Run(context.Background(), Preset{})
	if !errors.Is(err, broken) {
		t.Fatalf("Run err=%v, want %v", err, broken)
	}
	h.expect(t, "You won! The word was: tiger", "Do you want to play again? (Y/N): ")
}
