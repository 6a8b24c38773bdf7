package game

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/f3rmion/hangman/internal/hangman"
	"github.com/rs/zerolog"
)

// Selector picks an index in [0, n).
type Selector interface {
	Choose(n int) int
}

// SelectorFunc adapts a function to Selector.
type SelectorFunc func(n int) int

func (f SelectorFunc) Choose(n int) int { return f(n) }

// RandomSelector picks uniformly at random.
func RandomSelector() Selector {
	return SelectorFunc(rand.IntN)
}

// WordSource returns the candidate words for a round.
type WordSource interface {
	LoadWords(language, category string, minLength, maxLength int) ([]string, error)
}

// ScoreStore persists finished rounds.
type ScoreStore interface {
	Append(ctx context.Context, rec hangman.ScoreRecord) error
	Top(ctx context.Context, n int) ([]hangman.ScoreRecord, error)
}

// Service starts rounds and records their results.
type Service struct {
	words  WordSource
	scores ScoreStore
	pick   Selector
	log    zerolog.Logger
}

// NewService wires a service. A nil selector means RandomSelector.
func NewService(words WordSource, scores ScoreStore, pick Selector, log zerolog.Logger) *Service {
	if pick == nil {
		pick = RandomSelector()
	}
	return &Service{
		words:  words,
		scores: scores,
		pick:   pick,
		log:    log.With().Str("component", "game").Logger(),
	}
}

// NewRound draws a word for the language, category and difficulty and
// starts a session. It returns hangman.ErrEmptyCorpus when no word
// qualifies.
func (s *Service) NewRound(ctx context.Context, language, category string, d hangman.Difficulty) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !d.IsValid() {
		return nil, fmt.Errorf("%w: %q", hangman.ErrUnknownDifficulty, d)
	}

	level := d.Level()
	candidates, err := s.words.LoadWords(language, category, level.MinLength, level.MaxLength)
	if err != nil {
		return nil, fmt.Errorf("loading words: %w", err)
	}
	if len(candidates) == 0 {
		return nil, hangman.ErrEmptyCorpus
	}

	// Skip entries without letters so one bad line cannot abort the round.
	for len(candidates) > 0 {
		i := s.pick.Choose(len(candidates))
		sess, err := NewSession(candidates[i], d)
		if err == nil {
			sess.Language = language
			sess.Category = category
			s.log.Debug().
				Str("round", sess.ID).
				Str("language", language).
				Str("category", category).
				Str("difficulty", d.String()).
				Int("candidates", len(candidates)).
				Msg("round started")
			return sess, nil
		}
		candidates = append(candidates[:i:i], candidates[i+1:]...)
	}
	return nil, hangman.ErrEmptyCorpus
}

// Finish records a finished round and returns its record.
func (s *Service) Finish(ctx context.Context, sess *Session) (hangman.ScoreRecord, error) {
	if !sess.Done() {
		return hangman.ScoreRecord{}, fmt.Errorf("finishing round %s: still in progress", sess.ID)
	}
	rec := sess.Record()
	if err := s.scores.Append(ctx, rec); err != nil {
		return rec, err
	}
	s.log.Debug().
		Str("round", sess.ID).
		Str("state", sess.State().String()).
		Int("score", rec.Score).
		Msg("round recorded")
	return rec, nil
}

// Leaderboard returns the n best records.
func (s *Service) Leaderboard(ctx context.Context, n int) ([]hangman.ScoreRecord, error) {
	return s.scores.Top(ctx, n)
}
