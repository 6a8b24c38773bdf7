// Package game implements a single hangman round and the service that
// starts and records rounds.
package game

import (
	"errors"
	"strings"

	"github.com/f3rmion/hangman/internal/hangman"
	"github.com/f3rmion/hangman/internal/textnorm"
	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// ErrNoLetters is returned by NewSession for a word without any guessable letter.
var ErrNoLetters = errors.New("word has no guessable letters")

// State is the lifecycle state of a session.
type State int

const (
	InProgress State = iota
	Won
	Lost
)

func (s State) String() string {
	switch s {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "in progress"
	}
}

// Outcome is the effect of an accepted guess.
type Outcome int

const (
	Hit Outcome = iota + 1
	Miss
)

func (o Outcome) String() string {
	if o == Hit {
		return "hit"
	}
	return "miss"
}

// Session is one round. Word keeps the original casing and accents;
// letters are compared on their normalized form.
type Session struct {
	ID         string
	Word       string
	Language   string
	Category   string
	Difficulty hangman.Difficulty
	MaxTries   int

	triesLeft int
	remaining map[rune]struct{}
	guessed   map[rune]struct{}
	order     []rune
	state     State
	score     int
}

// NewSession starts a round for word at difficulty d.
func NewSession(word string, d hangman.Difficulty) (*Session, error) {
	if !d.IsValid() {
		return nil, hangman.ErrUnknownDifficulty
	}
	word = norm.NFC.String(strings.TrimSpace(word))
	remaining := textnorm.Letters(word)
	if len(remaining) == 0 {
		return nil, ErrNoLetters
	}

	level := d.Level()
	return &Session{
		ID:         uuid.NewString(),
		Word:       word,
		Difficulty: d,
		MaxTries:   level.MaxTries,
		triesLeft:  level.MaxTries,
		remaining:  remaining,
		guessed:    make(map[rune]struct{}),
		state:      InProgress,
	}, nil
}

// Guess applies one guess. Invalid and repeated guesses leave the session
// untouched.
func (s *Session) Guess(input string) (Outcome, error) {
	if s.state != InProgress {
		return 0, hangman.ErrRoundOver
	}
	letter, ok := textnorm.Letter(input)
	if !ok {
		return 0, hangman.ErrInvalidInput
	}
	if _, dup := s.guessed[letter]; dup {
		return 0, hangman.ErrAlreadyGuessed
	}

	s.guessed[letter] = struct{}{}
	s.order = append(s.order, letter)

	if _, hit := s.remaining[letter]; hit {
		delete(s.remaining, letter)
		if len(s.remaining) == 0 {
			s.state = Won
			s.score = textnorm.DisplayLength(s.Word) * s.triesLeft * s.Difficulty.Level().Factor
		}
		return Hit, nil
	}

	s.triesLeft--
	if s.triesLeft == 0 {
		s.state = Lost
		s.score = 0
	}
	return Miss, nil
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Done reports whether the round has ended.
func (s *Session) Done() bool { return s.state != InProgress }

// TriesLeft returns the remaining attempts.
func (s *Session) TriesLeft() int { return s.triesLeft }

// Remaining returns how many distinct letters are still hidden.
func (s *Session) Remaining() int { return len(s.remaining) }

// Guessed returns the guessed letters in the order they were tried.
func (s *Session) Guessed() []string {
	out := make([]string, len(s.order))
	for i, r := range s.order {
		out[i] = string(r)
	}
	return out
}

// Score is 0 until the round is won.
func (s *Session) Score() int { return s.score }

// Mask renders the word with unguessed letters replaced by placeholder.
// Characters without a guessable letter (spaces, hyphens) are always shown.
func (s *Session) Mask(placeholder string) string {
	var sb strings.Builder
	for _, r := range s.Word {
		if s.revealed(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteString(placeholder)
		}
	}
	return sb.String()
}

// SpacedMask is Mask with a space between characters, as shown to players.
func (s *Session) SpacedMask(placeholder string) string {
	var parts []string
	for _, r := range s.Word {
		if s.revealed(r) {
			parts = append(parts, string(r))
		} else {
			parts = append(parts, placeholder)
		}
	}
	return strings.Join(parts, " ")
}

// revealed reports whether every letter r normalizes to has been guessed.
// A ligature such as "ﬁ" needs both F and I.
func (s *Session) revealed(r rune) bool {
	for _, n := range textnorm.Normalize(string(r)) {
		if !textnorm.IsLetter(n) {
			continue
		}
		if _, ok := s.guessed[n]; !ok {
			return false
		}
	}
	return true
}

// Record returns the score record for a finished round.
func (s *Session) Record() hangman.ScoreRecord {
	return hangman.ScoreRecord{
		Language:   s.Language,
		Category:   s.Category,
		Difficulty: s.Difficulty,
		Score:      s.score,
		RoundID:    s.ID,
	}
}
