package scores

import (
	"bufio"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/f3rmion/hangman/internal/hangman"
	"github.com/rs/zerolog"
)

// TextLog stores one record per line as language,category,difficulty,score.
type TextLog struct {
	path string
	log  zerolog.Logger
}

// NewTextLog returns a text log at path. The file is created on first append.
func NewTextLog(path string, log zerolog.Logger) *TextLog {
	return &TextLog{
		path: path,
		log:  log.With().Str("component", "scores").Logger(),
	}
}

// Path returns the log file location.
func (t *TextLog) Path() string { return t.path }

// Append writes rec as a single line. The whole line goes out in one
// O_APPEND write so concurrent writers never interleave within a record.
func (t *TextLog) Append(ctx context.Context, rec hangman.ScoreRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := Validate(rec); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(t.path), 0755); err != nil {
		return &hangman.PersistenceError{Op: "create score dir", Path: filepath.Dir(t.path), Err: err}
	}
	f, err := os.OpenFile(t.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return &hangman.PersistenceError{Op: "open score log", Path: t.path, Err: err}
	}
	line := strings.Join([]string{
		rec.Language,
		rec.Category,
		string(rec.Difficulty),
		strconv.Itoa(rec.Score),
	}, ",") + "\n"
	_, err = f.WriteString(line)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return &hangman.PersistenceError{Op: "append score", Path: t.path, Err: err}
	}
	return nil
}

// Top returns the n best records. A missing log means no scores yet.
func (t *TextLog) Top(ctx context.Context, n int) ([]hangman.ScoreRecord, error) {
	recs, err := t.All(ctx)
	if err != nil {
		return nil, err
	}
	return Rank(recs, n), nil
}

// All returns every well-formed record in log order.
func (t *TextLog) All(ctx context.Context) ([]hangman.ScoreRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(t.path)
	if errors.Is(err, os.ErrNotExist) {
		return []hangman.ScoreRecord{}, nil
	}
	if err != nil {
		return nil, &hangman.PersistenceError{Op: "open score log", Path: t.path, Err: err}
	}
	defer f.Close()

	recs := []hangman.ScoreRecord{}
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		rec, ok := parseLine(line)
		if !ok {
			t.log.Warn().Str("path", t.path).Int("line", lineNo).Str("content", line).Msg("skipping malformed score line")
			continue
		}
		recs = append(recs, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, &hangman.PersistenceError{Op: "read score log", Path: t.path, Err: err}
	}
	return recs, nil
}

func parseLine(line string) (hangman.ScoreRecord, bool) {
	parts := strings.Split(line, ",")
	if len(parts) != 4 {
		return hangman.ScoreRecord{}, false
	}
	score, err := strconv.Atoi(strings.TrimSpace(parts[3]))
	if err != nil || score < 0 {
		return hangman.ScoreRecord{}, false
	}
	return hangman.ScoreRecord{
		Language:   parts[0],
		Category:   parts[1],
		Difficulty: hangman.Difficulty(parts[2]),
		Score:      score,
	}, true
}
