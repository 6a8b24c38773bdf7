// Package scores persists finished rounds and ranks them.
package scores

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/f3rmion/hangman/internal/hangman"
)

// DefaultTop is the leaderboard size used when n <= 0.
const DefaultTop = 5

// ErrInvalidRecord means a record cannot be stored without corrupting the log.
var ErrInvalidRecord = errors.New("invalid score record")

// Store is an append-only score log.
type Store interface {
	Append(ctx context.Context, rec hangman.ScoreRecord) error
	Top(ctx context.Context, n int) ([]hangman.ScoreRecord, error)
}

// Validate rejects records that the comma-separated log could not round-trip.
func Validate(rec hangman.ScoreRecord) error {
	for name, v := range map[string]string{
		"language":   rec.Language,
		"category":   rec.Category,
		"difficulty": string(rec.Difficulty),
	} {
		if v == "" || strings.ContainsAny(v, ",\r\n") {
			return fmt.Errorf("%w: %s %q", ErrInvalidRecord, name, v)
		}
	}
	if rec.Score < 0 {
		return fmt.Errorf("%w: negative score %d", ErrInvalidRecord, rec.Score)
	}
	return nil
}

// Rank sorts records by score, highest first, keeping log order among ties,
// and returns the first n.
func Rank(recs []hangman.ScoreRecord, n int) []hangman.ScoreRecord {
	if n <= 0 {
		n = DefaultTop
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})
	if len(recs) > n {
		recs = recs[:n]
	}
	return recs
}

// Line formats a record for the leaderboard, e.g. "english - animals (easy): 24".
func Line(rec hangman.ScoreRecord) string {
	return fmt.Sprintf("%s - %s (%s): %d", rec.Language, rec.Category, rec.Difficulty, rec.Score)
}
