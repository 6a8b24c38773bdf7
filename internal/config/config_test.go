package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/f3rmion/hangman/internal/hangman"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()

	ids := c.LanguageIDs()
	if len(ids) != 2 || ids[0] != "english" || ids[1] != "spanish" {
		t.Fatalf("LanguageIDs()=%v", ids)
	}

	words, err := c.DefaultWords("spanish", "animales")
	if err != nil {
		t.Fatalf("DefaultWords: %v", err)
	}
	if len(words) != 5 {
		t.Fatalf("got %d default words, want 5", len(words))
	}

	for _, lang := range c.Languages {
		if lang.Messages.Welcome == "" || lang.Messages.PlayAgain == "" {
			t.Errorf("%s: missing messages", lang.ID)
		}
		for _, cat := range lang.Categories {
			if len(cat.Words) != 5 {
				t.Errorf("%s/%s: %d default words, want 5", lang.ID, cat.ID, len(cat.Words))
			}
		}
	}
}

func TestCategoryBelongsToLanguage(t *testing.T) {
	c := DefaultCatalog()
	en, err := c.Language("English")
	if err != nil {
		t.Fatalf("Language: %v", err)
	}
	if _, err := en.Category("animales"); !errors.Is(err, hangman.ErrUnknownCategory) {
		t.Fatalf("err=%v, want ErrUnknownCategory", err)
	}
	if _, err := c.Language("klingon"); !errors.Is(err, hangman.ErrUnknownLanguage) {
		t.Fatalf("err=%v, want ErrUnknownLanguage", err)
	}
}

func TestParseDifficultyLocalized(t *testing.T) {
	c := DefaultCatalog()
	es, _ := c.Language("spanish")
	en, _ := c.Language("english")

	tests := []struct {
		lang *Language
		in   string
		want hangman.Difficulty
	}{
		{es, "facil", hangman.DifficultyEasy},
		{es, "Fácil", hangman.DifficultyEasy},
		{es, "medio", hangman.DifficultyMedium},
		{es, "DIFÍCIL", hangman.DifficultyHard},
		{es, "hard", hangman.DifficultyHard},
		{en, "easy", hangman.DifficultyEasy},
	}
	for _, tt := range tests {
		got, err := tt.lang.ParseDifficulty(tt.in)
		if err != nil {
			t.Errorf("%s ParseDifficulty(%q): %v", tt.lang.ID, tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s ParseDifficulty(%q)=%q, want %q", tt.lang.ID, tt.in, got, tt.want)
		}
	}

	if _, err := en.ParseDifficulty("facil"); !errors.Is(err, hangman.ErrUnknownDifficulty) {
		t.Errorf("english should not accept spanish tokens, err=%v", err)
	}
}

func TestValidateRejectsBadIDs(t *testing.T) {
	bad := []string{
		"languages: []",
		"languages: [{id: 'a,b', categories: [{id: x}]}]",
		"languages: [{id: en, categories: [{id: '../x'}]}]",
		"languages: [{id: en, categories: []}]",
		"languages: [{id: en, categories: [{id: x}], difficulties: {easy: extreme}}]",
	}
	for _, doc := range bad {
		if _, err := ParseCatalog([]byte(doc)); err == nil {
			t.Errorf("ParseCatalog(%q) should fail", doc)
		}
	}
}

func TestLoadCatalogOrDefault(t *testing.T) {
	dir := t.TempDir()

	c, fromFile, err := LoadCatalogOrDefault(dir)
	if err != nil {
		t.Fatalf("LoadCatalogOrDefault: %v", err)
	}
	if fromFile {
		t.Fatalf("expected built-in catalog")
	}

	c.Languages = c.Languages[:1]
	c.Languages[0].Categories[0].Words = []string{"wolf"}
	out, err := yaml.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, CatalogFile), out, 0644); err != nil {
		t.Fatal(err)
	}

	got, fromFile, err := LoadCatalogOrDefault(dir)
	if err != nil {
		t.Fatalf("LoadCatalogOrDefault: %v", err)
	}
	if !fromFile {
		t.Fatalf("expected catalog from file")
	}
	words, _ := got.DefaultWords("english", "animals")
	if len(words) != 1 || words[0] != "wolf" {
		t.Fatalf("words=%v", words)
	}
}

func TestWriteDefaultCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), CatalogFile)

	written, err := WriteDefaultCatalog(path, false)
	if err != nil || !written {
		t.Fatalf("first write: written=%v err=%v", written, err)
	}
	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if len(c.Languages) != len(DefaultCatalog().Languages) {
		t.Fatalf("languages=%v", c.LanguageIDs())
	}

	if err := os.WriteFile(path, []byte("# edited\n"), 0644); err != nil {
		t.Fatal(err)
	}
	written, err = WriteDefaultCatalog(path, false)
	if err != nil || written {
		t.Fatalf("write over existing: written=%v err=%v", written, err)
	}
	if data, _ := os.ReadFile(path); string(data) != "# edited\n" {
		t.Fatalf("existing catalog overwritten: %q", data)
	}

	written, err = WriteDefaultCatalog(path, true)
	if err != nil || !written {
		t.Fatalf("forced write: written=%v err=%v", written, err)
	}
	if data, _ := os.ReadFile(path); !bytes.Equal(data, defaultCatalogYAML) {
		t.Fatalf("forced write did not restore the default catalog")
	}
}

func TestLoadCatalogBrokenFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, CatalogFile), []byte("languages: ["), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadCatalogOrDefault(dir); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestFromViper(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set(KeyConfigDir, "/cfg")

	s := FromViper(v)
	if s.DataDir != "/cfg" {
		t.Errorf("DataDir=%q, want /cfg", s.DataDir)
	}
	if s.ScoresBackend != BackendText || s.TopN != 5 || s.Placeholder != "_" {
		t.Errorf("unexpected defaults: %+v", s)
	}
	if s.ScoresPath() != filepath.Join("/cfg", "high_scores.txt") {
		t.Errorf("ScoresPath()=%q", s.ScoresPath())
	}
	if s.WordsDir() != filepath.Join("/cfg", "words") {
		t.Errorf("WordsDir()=%q", s.WordsDir())
	}
}
