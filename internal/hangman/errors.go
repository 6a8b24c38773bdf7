package hangman

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput means a guess was not a single letter.
	ErrInvalidInput = errors.New("guess must be a single letter")
	// ErrAlreadyGuessed means the letter was guessed earlier in the round.
	ErrAlreadyGuessed = errors.New("letter already guessed")
	// ErrEmptyCorpus means no word qualified for the difficulty, even after
	// falling back to the default list.
	ErrEmptyCorpus = errors.New("no words available for this category and difficulty")
	// ErrRoundOver is returned for guesses after the round has ended.
	ErrRoundOver = errors.New("round is over")

	ErrUnknownLanguage   = errors.New("unknown language")
	ErrUnknownCategory   = errors.New("unknown category")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
)

// PersistenceError reports a storage failure for corpora or the score log.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
