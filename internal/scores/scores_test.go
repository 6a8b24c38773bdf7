package scores

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/f3rmion/hangman/internal/hangman"
	"github.com/rs/zerolog"
)

func rec(score int) hangman.ScoreRecord {
	return hangman.ScoreRecord{
		Language:   "english",
		Category:   "animals",
		Difficulty: hangman.DifficultyEasy,
		Score:      score,
	}
}

func scoresOf(recs []hangman.ScoreRecord) []int {
	out := make([]int, len(recs))
	for i, r := range recs {
		out[i] = r.Score
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// stores runs fn against every backend.
func stores(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Run("text", func(t *testing.T) {
		fn(t, NewTextLog(filepath.Join(t.TempDir(), "high_scores.txt"), zerolog.Nop()))
	})
	t.Run("sqlite", func(t *testing.T) {
		db, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "hangman.db"))
		if err != nil {
			t.Fatalf("OpenSQLite: %v", err)
		}
		t.Cleanup(func() { db.Close() })
		fn(t, db)
	})
}

func TestTopRanksDescending(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		for _, n := range []int{10, 50, 30, 50, 5} {
			if err := s.Append(ctx, rec(n)); err != nil {
				t.Fatalf("Append(%d): %v", n, err)
			}
		}

		top, err := s.Top(ctx, 4)
		if err != nil {
			t.Fatalf("Top: %v", err)
		}
		if got, want := scoresOf(top), []int{50, 50, 30, 10}; !equalInts(got, want) {
			t.Fatalf("Top(4)=%v, want %v", got, want)
		}

		top, err = s.Top(ctx, 0)
		if err != nil {
			t.Fatalf("Top: %v", err)
		}
		if got, want := scoresOf(top), []int{50, 50, 30, 10, 5}; !equalInts(got, want) {
			t.Fatalf("Top(default)=%v, want %v", got, want)
		}
	})
}

func TestTopEmpty(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		top, err := s.Top(context.Background(), 5)
		if err != nil {
			t.Fatalf("Top: %v", err)
		}
		if top == nil || len(top) != 0 {
			t.Fatalf("Top=%v, want empty", top)
		}
	})
}

func TestAppendRejectsInvalid(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		bad := rec(10)
		bad.Category = "a,b"
		if err := s.Append(context.Background(), bad); !errors.Is(err, ErrInvalidRecord) {
			t.Fatalf("err=%v, want ErrInvalidRecord", err)
		}
		bad = rec(-1)
		if err := s.Append(context.Background(), bad); !errors.Is(err, ErrInvalidRecord) {
			t.Fatalf("err=%v, want ErrInvalidRecord", err)
		}
	})
}

func TestTextLogFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "high_scores.txt")
	log := NewTextLog(path, zerolog.Nop())
	ctx := context.Background()

	log.Append(ctx, rec(24))
	log.Append(ctx, hangman.ScoreRecord{Language: "spanish", Category: "comida", Difficulty: hangman.DifficultyHard, Score: 0})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "english,animals,easy,24\nspanish,comida,hard,0\n"
	if string(data) != want {
		t.Fatalf("log=%q, want %q", data, want)
	}
}

func TestTextLogSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "high_scores.txt")
	content := strings.Join([]string{
		"english,animals,easy,12",
		"garbage",
		"english,food,medium,abc",
		"",
		"spanish,comida,hard,40",
		"a,b,c,d,5",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	log := NewTextLog(path, zerolog.New(&buf))
	top, err := log.Top(context.Background(), 5)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if got := scoresOf(top); !equalInts(got, []int{40, 12}) {
		t.Fatalf("Top=%v, want [40 12]", got)
	}
	if top[0].Language != "spanish" || top[0].Difficulty != hangman.DifficultyHard {
		t.Errorf("top[0]=%+v", top[0])
	}
	if n := strings.Count(buf.String(), "skipping malformed score line"); n != 3 {
		t.Errorf("logged %d warnings, want 3", n)
	}
}

func TestTextLogUnreadable(t *testing.T) {
	dir := t.TempDir()
	// A directory where the file should be makes both open calls fail.
	log := NewTextLog(dir, zerolog.Nop())
	var perr *hangman.PersistenceError
	if err := log.Append(context.Background(), rec(1)); !errors.As(err, &perr) {
		t.Fatalf("Append err=%v, want *PersistenceError", err)
	}
}

func TestSQLiteKeepsRoundID(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "hangman.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer db.Close()

	r := rec(7)
	r.RoundID = "round-1"
	if err := db.Append(ctx, r); err != nil {
		t.Fatalf("Append: %v", err)
	}
	top, err := db.Top(ctx, 1)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if len(top) != 1 || top[0] != r {
		t.Fatalf("Top=%+v, want %+v", top, r)
	}
}

func TestSQLiteImport(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "hangman.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer db.Close()

	n, err := db.Import(ctx, []hangman.ScoreRecord{rec(3), rec(9)}, false)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if n != 2 {
		t.Fatalf("imported %d, want 2", n)
	}
	top, _ := db.Top(ctx, 5)
	if got := scoresOf(top); !equalInts(got, []int{9, 3}) {
		t.Fatalf("Top=%v, want [9 3]", got)
	}
	for _, r := range top {
		if r.RoundID == "" {
			t.Errorf("imported record without round id: %+v", r)
		}
	}
}

func TestSQLiteImportTwice(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "hangman.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer db.Close()

	log := []hangman.ScoreRecord{rec(50), rec(10)}
	if _, err := db.Import(ctx, log, false); err != nil {
		t.Fatalf("first Import: %v", err)
	}
	n, err := db.Import(ctx, log, false)
	if !errors.Is(err, ErrNotEmpty) {
		t.Fatalf("second Import err=%v, want ErrNotEmpty", err)
	}
	if n != 0 {
		t.Errorf("second Import reported %d records", n)
	}
	top, _ := db.Top(ctx, 5)
	if got := scoresOf(top); !equalInts(got, []int{50, 10}) {
		t.Fatalf("Top after repeated import=%v, want [50 10]", got)
	}

	if _, err := db.Import(ctx, log, true); err != nil {
		t.Fatalf("forced Import: %v", err)
	}
	top, _ = db.Top(ctx, 5)
	if got := scoresOf(top); !equalInts(got, []int{50, 50, 10, 10}) {
		t.Fatalf("Top after forced import=%v, want [50 50 10 10]", got)
	}
}

func TestLine(t *testing.T) {
	if got := Line(rec(24)); got != "english - animals (easy): 24" {
		t.Fatalf("Line=%q", got)
	}
}
