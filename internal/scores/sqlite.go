package scores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/f3rmion/hangman/internal/hangman"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS scores (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	round_id   TEXT    NOT NULL,
	language   TEXT    NOT NULL,
	category   TEXT    NOT NULL,
	difficulty TEXT    NOT NULL,
	score      INTEGER NOT NULL CHECK (score >= 0),
	played_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS scores_by_score ON scores (score DESC, id ASC);
`

// ErrNotEmpty means an import would land on top of existing scores.
var ErrNotEmpty = errors.New("score database already has records")

// SQLite stores scores in a SQLite database.
type SQLite struct {
	path string
	db   *sql.DB
	now  func() time.Time
}

// OpenSQLite opens (creating if needed) the database at path and migrates it.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, &hangman.PersistenceError{Op: "create score dir", Path: filepath.Dir(path), Err: err}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &hangman.PersistenceError{Op: "open score db", Path: path, Err: err}
	}
	// One writer is all SQLite supports anyway.
	db.SetMaxOpenConns(1)

	s := &SQLite{path: path, db: db, now: time.Now}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return &hangman.PersistenceError{Op: "migrate score db", Path: s.path, Err: err}
	}
	return nil
}

// Append inserts one record. Records without a round id get a fresh one.
func (s *SQLite) Append(ctx context.Context, rec hangman.ScoreRecord) error {
	if err := Validate(rec); err != nil {
		return err
	}
	if rec.RoundID == "" {
		rec.RoundID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scores (round_id, language, category, difficulty, score, played_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.RoundID, rec.Language, rec.Category, string(rec.Difficulty), rec.Score, s.now().Unix(),
	)
	if err != nil {
		return &hangman.PersistenceError{Op: "insert score", Path: s.path, Err: err}
	}
	return nil
}

// Top returns the n best records, earliest first among equal scores.
func (s *SQLite) Top(ctx context.Context, n int) ([]hangman.ScoreRecord, error) {
	if n <= 0 {
		n = DefaultTop
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT round_id, language, category, difficulty, score
		FROM scores
		ORDER BY score DESC, id ASC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, &hangman.PersistenceError{Op: "query scores", Path: s.path, Err: err}
	}
	defer rows.Close()

	recs := []hangman.ScoreRecord{}
	for rows.Next() {
		var rec hangman.ScoreRecord
		var difficulty string
		if err := rows.Scan(&rec.RoundID, &rec.Language, &rec.Category, &difficulty, &rec.Score); err != nil {
			return nil, &hangman.PersistenceError{Op: "scan score", Path: s.path, Err: err}
		}
		rec.Difficulty = hangman.Difficulty(difficulty)
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &hangman.PersistenceError{Op: "query scores", Path: s.path, Err: err}
	}
	return recs, nil
}

// Import copies records into the database, e.g. from a text log. Importing
// the same log twice would double every round, so unless force is set the
// import is refused with ErrNotEmpty when the table already has rows.
func (s *SQLite) Import(ctx context.Context, recs []hangman.ScoreRecord, force bool) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, &hangman.PersistenceError{Op: "begin import", Path: s.path, Err: err}
	}
	defer tx.Rollback()

	if !force {
		var existing int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM scores`).Scan(&existing); err != nil {
			return 0, &hangman.PersistenceError{Op: "count scores", Path: s.path, Err: err}
		}
		if existing > 0 {
			return 0, fmt.Errorf("%d records in %s: %w", existing, s.path, ErrNotEmpty)
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO scores (round_id, language, category, difficulty, score, played_at)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, &hangman.PersistenceError{Op: "prepare import", Path: s.path, Err: err}
	}
	defer stmt.Close()

	now := s.now().Unix()
	for i, rec := range recs {
		if err := Validate(rec); err != nil {
			return 0, fmt.Errorf("record %d: %w", i+1, err)
		}
		id := rec.RoundID
		if id == "" {
			id = uuid.NewString()
		}
		if _, err := stmt.ExecContext(ctx, id, rec.Language, rec.Category, string(rec.Difficulty), rec.Score, now); err != nil {
			return 0, &hangman.PersistenceError{Op: "import score", Path: s.path, Err: err}
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, &hangman.PersistenceError{Op: "commit import", Path: s.path, Err: err}
	}
	return len(recs), nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
