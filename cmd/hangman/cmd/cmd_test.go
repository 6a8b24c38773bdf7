package cmd

import (
	"context"
	"io"
	"reflect"
	"testing"

	"github.com/f3rmion/hangman/internal/config"
	"github.com/f3rmion/hangman/internal/scores"
)

func testSettings(t *testing.T, backend string) config.Settings {
	t.Helper()
	dir := t.TempDir()
	return config.Settings{
		ConfigDir:     dir,
		DataDir:       dir,
		ScoresBackend: backend,
		TopN:          5,
		Placeholder:   "_",
		LogLevel:      "info",
	}
}

func TestImportable(t *testing.T) {
	in := []string{"gato", "中国", "123", "ice-cream", "猫"}

	got := importable(in, false)
	want := []string{"gato", "ice-cream"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("importable without romanize = %v, want %v", got, want)
	}

	got = importable(in, true)
	want = []string{"gato", "zhongguo", "ice-cream", "mao"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("importable with romanize = %v, want %v", got, want)
	}
}

func TestNewRuntimeBackends(t *testing.T) {
	ctx := context.Background()
	log := newLogger(io.Discard, config.Settings{LogLevel: "info"}, false)

	rt, err := newRuntime(ctx, testSettings(t, config.BackendText), log)
	if err != nil {
		t.Fatalf("text backend: %v", err)
	}
	if _, ok := rt.scores.(*scores.TextLog); !ok {
		t.Errorf("text backend store = %T", rt.scores)
	}
	rt.Close()

	rt, err = newRuntime(ctx, testSettings(t, config.BackendSQLite), log)
	if err != nil {
		t.Fatalf("sqlite backend: %v", err)
	}
	if _, ok := rt.scores.(*scores.SQLite); !ok {
		t.Errorf("sqlite backend store = %T", rt.scores)
	}
	if err := rt.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}

	if _, err := newRuntime(ctx, testSettings(t, "csv"), log); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestResolvePreset(t *testing.T) {
	log := newLogger(io.Discard, config.Settings{LogLevel: "info"}, false)
	rt, err := newRuntime(context.Background(), testSettings(t, config.BackendText), log)
	if err != nil {
		t.Fatal(err)
	}
	defer rt.Close()

	tests := []struct {
		name       string
		lang, cat  string
		difficulty string
		wantDiff   string
		wantErr    bool
	}{
		{"empty", "", "", "", "", false},
		{"localized difficulty", "spanish", "animales", "fácil", "easy", false},
		{"language only", "english", "", "", "", false},
		{"unknown language", "klingon", "", "", "", true},
		{"category of other language", "english", "comida", "", "", true},
		{"unknown difficulty", "english", "animals", "brutal", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := resolvePreset(rt, tt.lang, tt.cat, tt.difficulty)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got preset %+v", p)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Difficulty != tt.wantDiff {
				t.Errorf("Difficulty = %q, want %q", p.Difficulty, tt.wantDiff)
			}
		})
	}
}
