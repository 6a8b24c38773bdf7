// Package anki reads Anki .apkg decks so their notes can seed word corpora.
package anki

import (
	"archive/zip"
	"database/sql"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	_ "modernc.org/sqlite"
)

// Package is an opened .apkg file.
type Package struct {
	path    string
	tempDir string
	db      *sql.DB
	Models  map[int64]*Model
	Notes   []*Note
}

// Model is an Anki note type.
type Model struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Fields []Field `json:"flds"`
}

// Field is a field of a note type.
type Field struct {
	Name string `json:"name"`
	Ord  int    `json:"ord"`
}

// Note is an Anki note with its fields split out.
type Note struct {
	ID      int64
	ModelID int64
	Fields  []string
}

// OpenPackage extracts an .apkg into a temp dir and loads its notes.
func OpenPackage(path string) (*Package, error) {
	pkg := &Package{
		path:   path,
		Models: make(map[int64]*Model),
	}

	tempDir, err := os.MkdirTemp("", "hangman-anki-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	pkg.tempDir = tempDir

	if err := pkg.extract(); err != nil {
		pkg.Close()
		return nil, err
	}

	// Newer exports ship collection.anki21 next to a stub collection.anki2.
	dbPath := filepath.Join(tempDir, "collection.anki21")
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		dbPath = filepath.Join(tempDir, "collection.anki2")
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		pkg.Close()
		return nil, fmt.Errorf("opening database: %w", err)
	}
	pkg.db = db

	if err := pkg.loadModels(); err != nil {
		pkg.Close()
		return nil, err
	}
	if err := pkg.loadNotes(); err != nil {
		pkg.Close()
		return nil, err
	}
	return pkg, nil
}

func (p *Package) extract() error {
	r, err := zip.OpenReader(p.path)
	if err != nil {
		return fmt.Errorf("opening zip: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		// Only the collection is needed; media files are skipped.
		if !strings.HasPrefix(f.Name, "collection.anki2") || f.FileInfo().IsDir() {
			continue
		}
		fpath := filepath.Join(p.tempDir, f.Name)
		if !strings.HasPrefix(fpath, filepath.Clean(p.tempDir)+string(os.PathSeparator)) {
			return fmt.Errorf("illegal file path: %s", fpath)
		}
		if err := copyZipFile(f, fpath); err != nil {
			return fmt.Errorf("extracting %s: %w", f.Name, err)
		}
	}
	return nil
}

func copyZipFile(f *zip.File, dst string) error {
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer out.Close()

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	_, err = io.Copy(out, rc)
	return err
}

func (p *Package) loadModels() error {
	var models string
	if err := p.db.QueryRow("SELECT models FROM col").Scan(&models); err != nil {
		return fmt.Errorf("reading collection: %w", err)
	}

	var modelsMap map[string]json.RawMessage
	if err := json.Unmarshal([]byte(models), &modelsMap); err != nil {
		return fmt.Errorf("parsing models: %w", err)
	}
	for _, raw := range modelsMap {
		var model Model
		if err := json.Unmarshal(raw, &model); err != nil {
			continue // Skip malformed models
		}
		p.Models[model.ID] = &model
	}
	return nil
}

func (p *Package) loadNotes() error {
	rows, err := p.db.Query("SELECT id, mid, flds FROM notes ORDER BY id")
	if err != nil {
		return fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var note Note
		var flds string
		if err := rows.Scan(&note.ID, &note.ModelID, &flds); err != nil {
			return fmt.Errorf("scanning note: %w", err)
		}
		// Fields are separated by ASCII 31.
		note.Fields = strings.Split(flds, "\x1f")
		p.Notes = append(p.Notes, &note)
	}
	return rows.Err()
}

// FieldValue returns a note's field by name, or by position when name is empty.
func (p *Package) FieldValue(note *Note, name string) string {
	if name == "" {
		if len(note.Fields) > 0 {
			return note.Fields[0]
		}
		return ""
	}
	model := p.Models[note.ModelID]
	if model == nil {
		return ""
	}
	for _, field := range model.Fields {
		if strings.EqualFold(field.Name, name) && field.Ord < len(note.Fields) {
			return note.Fields[field.Ord]
		}
	}
	return ""
}

// FieldNames returns the distinct field names across all note types.
func (p *Package) FieldNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, model := range p.Models {
		for _, f := range model.Fields {
			if !seen[f.Name] {
				seen[f.Name] = true
				names = append(names, f.Name)
			}
		}
	}
	return names
}

// Words returns the plain-text value of field for every note, skipping
// empty values and values with more than one word. Order follows note ids
// and duplicates are dropped.
func (p *Package) Words(field string) []string {
	seen := make(map[string]bool)
	var words []string
	for _, note := range p.Notes {
		w := PlainText(p.FieldValue(note, field))
		if w == "" || strings.ContainsAny(w, " \t") || seen[w] {
			continue
		}
		seen[w] = true
		words = append(words, w)
	}
	return words
}

var (
	tagRe   = regexp.MustCompile(`<[^>]*>`)
	soundRe = regexp.MustCompile(`\[sound:[^\]]*\]`)
)

// PlainText strips HTML tags, sound references and entities from a field.
func PlainText(s string) string {
	s = soundRe.ReplaceAllString(s, "")
	s = tagRe.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}

// Close removes the extracted files.
func (p *Package) Close() error {
	if p.db != nil {
		p.db.Close()
	}
	if p.tempDir != "" {
		os.RemoveAll(p.tempDir)
	}
	return nil
}

// Summary describes the package contents.
func (p *Package) Summary() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Anki Package: %s\n", p.path))
	sb.WriteString(fmt.Sprintf("  Note types: %d\n", len(p.Models)))
	for _, model := range p.Models {
		sb.WriteString(fmt.Sprintf("    - %s (%d fields)\n", model.Name, len(model.Fields)))
	}
	sb.WriteString(fmt.Sprintf("  Notes: %d\n", len(p.Notes)))
	return sb.String()
}
