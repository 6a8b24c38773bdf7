// Package hangman provides the core types shared by the word game engine.
package hangman

import (
	"fmt"
	"strings"
)

// Difficulty is the canonical (English) difficulty token.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists the levels in ascending order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Level holds the word-length bounds, attempt budget and score multiplier
// for a difficulty.
type Level struct {
	MinLength int
	MaxLength int
	MaxTries  int
	Factor    int
}

var levels = map[Difficulty]Level{
	DifficultyEasy:   {MinLength: 4, MaxLength: 6, MaxTries: 8, Factor: 1},
	DifficultyMedium: {MinLength: 7, MaxLength: 9, MaxTries: 6, Factor: 2},
	DifficultyHard:   {MinLength: 10, MaxLength: 15, MaxTries: 4, Factor: 3},
}

// IsValid reports whether d is one of the canonical levels.
func (d Difficulty) IsValid() bool {
	_, ok := levels[d]
	return ok
}

// Level returns the rules for d. Unknown difficulties return the zero Level.
func (d Difficulty) Level() Level {
	return levels[d]
}

func (d Difficulty) String() string { return string(d) }

// ParseDifficulty parses a canonical difficulty token, ignoring case and
// surrounding whitespace. Localized tokens are resolved by the catalog.
func ParseDifficulty(input string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(input)))
	if !d.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, input)
	}
	return d, nil
}

// ScoreRecord is one finished round as stored in the score log.
type ScoreRecord struct {
	Language   string     `json:"language"`
	Category   string     `json:"category"`
	Difficulty Difficulty `json:"difficulty"`
	Score      int        `json:"score"`

	// RoundID is kept by backends that have room for it. The text log drops it.
	RoundID string `json:"round_id,omitempty"`
}
