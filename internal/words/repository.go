// Package words manages the per-language word corpora.
//
// Each (language, category) pair has one plain-text file, one word per line,
// under <root>/<language>/<category>.txt. A missing file is created from the
// catalog's default list the first time it is needed.
package words

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/f3rmion/hangman/internal/hangman"
	"github.com/f3rmion/hangman/internal/textnorm"
	"github.com/rs/zerolog"
)

// Defaults supplies the built-in word list for a language/category pair.
// It returns hangman.ErrUnknownLanguage or hangman.ErrUnknownCategory for
// pairs it does not know.
type Defaults interface {
	DefaultWords(language, category string) ([]string, error)
}

// CorpusStatus reports what EnsureCorpus did.
type CorpusStatus int

const (
	CorpusExisted CorpusStatus = iota
	CorpusCreated
)

func (s CorpusStatus) String() string {
	if s == CorpusCreated {
		return "created"
	}
	return "existed"
}

// Repository loads and filters word corpora.
type Repository struct {
	root     string
	defaults Defaults
	log      zerolog.Logger
}

// NewRepository creates a repository rooted at dir.
func NewRepository(dir string, defaults Defaults, log zerolog.Logger) *Repository {
	return &Repository{
		root:     dir,
		defaults: defaults,
		log:      log.With().Str("component", "words").Logger(),
	}
}

// Path returns the corpus file for a language/category pair.
func (r *Repository) Path(language, category string) string {
	return filepath.Join(r.root, language, category+".txt")
}

// EnsureCorpus creates the corpus file from the default list if it does not
// exist yet. An existing corpus is never overwritten.
func (r *Repository) EnsureCorpus(language, category string) (CorpusStatus, error) {
	defaults, err := r.defaults.DefaultWords(language, category)
	if err != nil {
		return CorpusExisted, err
	}

	path := r.Path(language, category)
	if _, err := os.Stat(path); err == nil {
		return CorpusExisted, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return CorpusExisted, &hangman.PersistenceError{Op: "stat corpus", Path: path, Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return CorpusExisted, &hangman.PersistenceError{Op: "create corpus dir", Path: filepath.Dir(path), Err: err}
	}

	// O_EXCL so a corpus created by someone else in the meantime is kept.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, os.ErrExist) {
		return CorpusExisted, nil
	}
	if err != nil {
		return CorpusExisted, &hangman.PersistenceError{Op: "create corpus", Path: path, Err: err}
	}
	if err := fillNew(f, path, defaults); err != nil {
		return CorpusExisted, &hangman.PersistenceError{Op: "write corpus", Path: path, Err: err}
	}

	r.log.Debug().Str("path", path).Int("words", len(defaults)).Msg("created default corpus")
	return CorpusCreated, nil
}

// fillNew writes lines to a file it just created and closes it. A file
// that could not be written completely is removed, otherwise it would be
// taken for an existing corpus from then on.
func fillNew(f io.WriteCloser, path string, lines []string) error {
	w := bufio.NewWriter(f)
	for _, line := range lines {
		w.WriteString(line)
		w.WriteByte('\n')
	}
	err := w.Flush()
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

// ReadCorpus returns every non-blank line of the corpus, trimmed, with the
// original casing and accents.
func (r *Repository) ReadCorpus(language, category string) ([]string, error) {
	path := r.Path(language, category)
	file, err := os.Open(path)
	if err != nil {
		return nil, &hangman.PersistenceError{Op: "open corpus", Path: path, Err: err}
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, &hangman.PersistenceError{Op: "read corpus", Path: path, Err: err}
	}

	r.log.Debug().Str("path", path).Strs("words", words).Msg("read corpus")
	return words, nil
}

// LoadWords returns the words of a corpus whose normalized length lies in
// [minLength, maxLength], creating the corpus first if needed.
//
// If nothing in the corpus qualifies, the default list is filtered with the
// same bounds instead. An empty result means no word qualifies at all; the
// caller decides how to report it.
func (r *Repository) LoadWords(language, category string, minLength, maxLength int) ([]string, error) {
	if _, err := r.EnsureCorpus(language, category); err != nil {
		return nil, err
	}

	all, err := r.ReadCorpus(language, category)
	if err != nil {
		return nil, err
	}

	filtered := Filter(all, minLength, maxLength)
	r.log.Debug().
		Int("min_length", minLength).
		Int("max_length", maxLength).
		Strs("words", filtered).
		Msg("filtered corpus")
	if len(filtered) > 0 {
		return filtered, nil
	}

	defaults, err := r.defaults.DefaultWords(language, category)
	if err != nil {
		return nil, err
	}
	fallback := Filter(defaults, minLength, maxLength)
	r.log.Debug().
		Str("language", language).
		Str("category", category).
		Strs("words", fallback).
		Msg("no corpus word qualifies, falling back to defaults")
	return fallback, nil
}

// Append adds words to a corpus, creating it first if needed. Words already
// present (compared on their normalized form) and blank entries are skipped.
// It returns how many words were written.
func (r *Repository) Append(language, category string, words []string) (int, error) {
	if _, err := r.EnsureCorpus(language, category); err != nil {
		return 0, err
	}
	existing, err := r.ReadCorpus(language, category)
	if err != nil {
		return 0, err
	}

	seen := make(map[string]bool, len(existing))
	for _, w := range existing {
		seen[textnorm.Normalize(w)] = true
	}

	var sb strings.Builder
	added := 0
	for _, w := range words {
		w = strings.TrimSpace(w)
		key := textnorm.Normalize(w)
		if w == "" || strings.ContainsAny(w, "\r\n") || seen[key] {
			continue
		}
		seen[key] = true
		sb.WriteString(w)
		sb.WriteByte('\n')
		added++
	}
	if added == 0 {
		return 0, nil
	}

	path := r.Path(language, category)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return 0, &hangman.PersistenceError{Op: "open corpus", Path: path, Err: err}
	}
	_, err = f.WriteString(sb.String())
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, &hangman.PersistenceError{Op: "append corpus", Path: path, Err: err}
	}
	return added, nil
}

// Filter keeps the words whose normalized length is within [minLength, maxLength].
func Filter(words []string, minLength, maxLength int) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		n := textnorm.Length(w)
		if n >= minLength && n <= maxLength {
			out = append(out, w)
		}
	}
	return out
}
