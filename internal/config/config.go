// Package config handles the game catalog and runtime settings.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/f3rmion/hangman/internal/hangman"
	"github.com/f3rmion/hangman/internal/textnorm"
	"gopkg.in/yaml.v3"
)

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

// CatalogFile is the catalog file name inside the config directory.
const CatalogFile = "catalog.yaml"

// Catalog holds every language the game knows, with its categories,
// default words and player-facing messages. It is loaded once and not
// modified afterwards.
type Catalog struct {
	Languages []Language `yaml:"languages"`
}

// Language is one playable language.
type Language struct {
	ID         string     `yaml:"id"`
	Name       string     `yaml:"name"`
	Categories []Category `yaml:"categories"`
	// Difficulties maps localized input tokens to canonical levels.
	Difficulties map[string]hangman.Difficulty `yaml:"difficulties"`
	Messages     Messages                      `yaml:"messages"`
}

// Category is a word category with the default list used to seed its corpus.
type Category struct {
	ID    string   `yaml:"id"`
	Words []string `yaml:"words"`
}

// Messages is the localized message table handed to presenters.
type Messages struct {
	Welcome           string `yaml:"welcome"`
	ChooseLanguage    string `yaml:"choose_language"`
	ChooseCategory    string `yaml:"choose_category"`   // %s: category list
	ChooseDifficulty  string `yaml:"choose_difficulty"`
	InvalidLanguage   string `yaml:"invalid_language"`
	InvalidCategory   string `yaml:"invalid_category"`  // %s: category list
	InvalidDifficulty string `yaml:"invalid_difficulty"`
	TriesLeft         string `yaml:"tries_left"`        // %d
	GuessedLetters    string `yaml:"guessed_letters"`   // %s
	Word              string `yaml:"word"`              // %s
	GuessLetter       string `yaml:"guess_letter"`
	InvalidLetter     string `yaml:"invalid_letter"`
	AlreadyGuessed    string `yaml:"already_guessed"`
	CorrectGuess      string `yaml:"correct_guess"`
	IncorrectGuess    string `yaml:"incorrect_guess"`
	YouWon            string `yaml:"you_won"`  // %s
	YouLost           string `yaml:"you_lost"` // %s
	Score             string `yaml:"score"`    // %d
	HighScores        string `yaml:"high_scores"`
	NoScores          string `yaml:"no_scores"`
	PlayAgain         string `yaml:"play_again"`
	CorpusCreated     string `yaml:"corpus_created"` // %s: category
	NoWords           string `yaml:"no_words"`       // %d, %d
	StorageError      string `yaml:"storage_error"`  // %s
	Copied            string `yaml:"copied"`
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(defaultCatalogYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// ParseCatalog decodes and validates a catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadCatalog loads a catalog from a YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	return ParseCatalog(data)
}

// LoadCatalogOrDefault loads <dir>/catalog.yaml, or the built-in catalog
// when the file does not exist. The bool reports whether the file was used.
func LoadCatalogOrDefault(dir string) (*Catalog, bool, error) {
	path := filepath.Join(dir, CatalogFile)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DefaultCatalog(), false, nil
	}
	c, err := LoadCatalog(path)
	if err != nil {
		return nil, false, err
	}
	return c, true, nil
}

// WriteDefaultCatalog writes the built-in catalog, comments included, to
// path so it can be edited. An existing file is only replaced with force.
func WriteDefaultCatalog(path string, force bool) (bool, error) {
	if _, err := os.Stat(path); err == nil && !force {
		return false, nil
	}
	if err := os.WriteFile(path, defaultCatalogYAML, 0644); err != nil {
		return false, fmt.Errorf("writing catalog file: %w", err)
	}
	return true, nil
}

// Validate checks ids and difficulty mappings. Ids end up in file paths and
// in the comma-separated score log, so they are restricted.
func (c *Catalog) Validate() error {
	if len(c.Languages) == 0 {
		return errors.New("catalog: no languages")
	}
	seen := make(map[string]bool)
	for _, lang := range c.Languages {
		if err := validID(lang.ID); err != nil {
			return fmt.Errorf("catalog: language: %w", err)
		}
		if seen[lang.ID] {
			return fmt.Errorf("catalog: duplicate language %q", lang.ID)
		}
		seen[lang.ID] = true

		if len(lang.Categories) == 0 {
			return fmt.Errorf("catalog: language %q has no categories", lang.ID)
		}
		cats := make(map[string]bool)
		for _, cat := range lang.Categories {
			if err := validID(cat.ID); err != nil {
				return fmt.Errorf("catalog: %s category: %w", lang.ID, err)
			}
			if cats[cat.ID] {
				return fmt.Errorf("catalog: duplicate category %q in %q", cat.ID, lang.ID)
			}
			cats[cat.ID] = true
		}
		for token, d := range lang.Difficulties {
			if !d.IsValid() {
				return fmt.Errorf("catalog: %s difficulty %q maps to unknown level %q", lang.ID, token, d)
			}
		}
	}
	return nil
}

func validID(id string) error {
	if id == "" {
		return errors.New("empty id")
	}
	if strings.ContainsAny(id, ",\n\r/\\") || strings.TrimSpace(id) != id || id == "." || id == ".." {
		return fmt.Errorf("invalid id %q", id)
	}
	return nil
}

// LanguageIDs returns the language ids in catalog order.
func (c *Catalog) LanguageIDs() []string {
	ids := make([]string, len(c.Languages))
	for i, l := range c.Languages {
		ids[i] = l.ID
	}
	return ids
}

// Language looks up a language by id, ignoring case and surrounding space.
func (c *Catalog) Language(id string) (*Language, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	for i := range c.Languages {
		if strings.ToLower(c.Languages[i].ID) == id {
			return &c.Languages[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", hangman.ErrUnknownLanguage, id)
}

// DefaultWords returns the built-in words for a language/category pair.
func (c *Catalog) DefaultWords(language, category string) ([]string, error) {
	lang, err := c.Language(language)
	if err != nil {
		return nil, err
	}
	cat, err := lang.Category(category)
	if err != nil {
		return nil, err
	}
	words := make([]string, len(cat.Words))
	copy(words, cat.Words)
	return words, nil
}

// Category looks up a category within the language.
func (l *Language) Category(id string) (*Category, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	for i := range l.Categories {
		if strings.ToLower(l.Categories[i].ID) == id {
			return &l.Categories[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q is not a %s category", hangman.ErrUnknownCategory, id, l.ID)
}

// CategoryIDs returns the category ids in catalog order.
func (l *Language) CategoryIDs() []string {
	ids := make([]string, len(l.Categories))
	for i, c := range l.Categories {
		ids[i] = c.ID
	}
	return ids
}

// ParseDifficulty resolves a localized difficulty token. Accents and case
// are ignored, so "Fácil" and "facil" both map to easy.
func (l *Language) ParseDifficulty(input string) (hangman.Difficulty, error) {
	want := textnorm.Normalize(strings.TrimSpace(input))
	if want != "" {
		for token, d := range l.Difficulties {
			if textnorm.Normalize(token) == want {
				return d, nil
			}
		}
	}
	return hangman.ParseDifficulty(input)
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "hangman"), nil
}

// EnsureDir creates dir if it doesn't exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return nil
}
