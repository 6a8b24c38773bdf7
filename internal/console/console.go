// Package console runs the line-based game: prompts on one stream,
// answers from another.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/hangman/internal/art"
	"github.com/f3rmion/hangman/internal/config"
	"github.com/f3rmion/hangman/internal/game"
	"github.com/f3rmion/hangman/internal/hangman"
	"github.com/f3rmion/hangman/internal/scores"
	"github.com/f3rmion/hangman/internal/words"
	"github.com/rs/zerolog"
)

// errQuit signals that input ended.
var errQuit = errors.New("input closed")

// Corpora creates missing corpora so the player can be told about it.
type Corpora interface {
	EnsureCorpus(language, category string) (words.CorpusStatus, error)
}

// Preset holds answers given on the command line. Empty fields are asked.
type Preset struct {
	Language   string
	Category   string
	Difficulty string
}

// Options configures a Presenter.
type Options struct {
	Catalog     *config.Catalog
	Service     *game.Service
	Corpora     Corpora
	Placeholder string
	TopN        int
	Logger      zerolog.Logger
}

// Presenter drives rounds over a pair of text streams.
type Presenter struct {
	in          *bufio.Scanner
	out         io.Writer
	catalog     *config.Catalog
	svc         *game.Service
	corpora     Corpora
	placeholder string
	topN        int
	log         zerolog.Logger

	title   lipgloss.Style
	good    lipgloss.Style
	bad     lipgloss.Style
	muted   lipgloss.Style
	gallows lipgloss.Style
}

// New creates a presenter reading answers from in and writing to out.
func New(in io.Reader, out io.Writer, opts Options) *Presenter {
	r := lipgloss.NewRenderer(out)
	p := &Presenter{
		in:          bufio.NewScanner(in),
		out:         out,
		catalog:     opts.Catalog,
		svc:         opts.Service,
		corpora:     opts.Corpora,
		placeholder: opts.Placeholder,
		topN:        opts.TopN,
		log:         opts.Logger,

		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")),
		good:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#a8e6cf")),
		bad:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("#666666")),
		gallows: r.NewStyle().Foreground(lipgloss.Color("#ffe66d")),
	}
	if p.placeholder == "" {
		p.placeholder = "_"
	}
	if p.topN <= 0 {
		p.topN = scores.DefaultTop
	}
	return p
}

// Run plays rounds until the player declines another or input ends.
// The preset answers apply to the first round only.
func (p *Presenter) Run(ctx context.Context, preset Preset) error {
	first := &p.catalog.Languages[0]
	p.println(p.title.Render(first.Messages.Welcome))

	msgs := first.Messages
	for {
		lang, err := p.PlayRound(ctx, preset)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}
		if lang != nil {
			msgs = lang.Messages
		}
		preset = Preset{}

		answer, err := p.ask(msgs.PlayAgain)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}
		if !playAgain(answer) {
			return nil
		}
	}
}

// playAgain accepts yes in English or Spanish.
func playAgain(answer string) bool {
	a := strings.ToUpper(strings.TrimSpace(answer))
	return a == "Y" || a == "S"
}

// PlayRound runs one round: selection prompts, guesses, outcome and
// leaderboard. It returns the language played.
func (p *Presenter) PlayRound(ctx context.Context, preset Preset) (*config.Language, error) {
	lang, err := p.chooseLanguage(preset.Language)
	if err != nil {
		return nil, err
	}
	m := lang.Messages

	category, err := p.chooseCategory(lang, preset.Category)
	if err != nil {
		return lang, err
	}
	difficulty, err := p.chooseDifficulty(lang, preset.Difficulty)
	if err != nil {
		return lang, err
	}

	if p.corpora != nil {
		status, err := p.corpora.EnsureCorpus(lang.ID, category)
		if err != nil {
			p.println(p.bad.Render(fmt.Sprintf(m.StorageError, err)))
			return lang, nil
		}
		if status == words.CorpusCreated {
			p.println(p.muted.Render(fmt.Sprintf(m.CorpusCreated, category)))
		}
	}

	sess, err := p.svc.NewRound(ctx, lang.ID, category, difficulty)
	if errors.Is(err, hangman.ErrEmptyCorpus) {
		level := difficulty.Level()
		p.println(p.bad.Render(fmt.Sprintf(m.NoWords, level.MinLength, level.MaxLength)))
		return lang, nil
	}
	if err != nil {
		p.println(p.bad.Render(fmt.Sprintf(m.StorageError, err)))
		return lang, nil
	}

	if err := p.playGuesses(sess, m); err != nil {
		return lang, err
	}
	p.showOutcome(sess, m)

	if _, err := p.svc.Finish(ctx, sess); err != nil {
		p.log.Error().Err(err).Str("round", sess.ID).Msg("recording score")
		p.println(p.bad.Render(fmt.Sprintf(m.StorageError, err)))
	}
	p.showLeaderboard(ctx, m)
	return lang, nil
}

func (p *Presenter) chooseLanguage(preset string) (*config.Language, error) {
	// The language is not known yet, so the first catalog language speaks.
	first := &p.catalog.Languages[0]
	answer := preset
	for {
		if answer == "" {
			var err error
			if answer, err = p.ask(first.Messages.ChooseLanguage); err != nil {
				return nil, err
			}
		}
		lang, err := p.catalog.Language(answer)
		if err == nil {
			return lang, nil
		}
		p.println(first.Messages.InvalidLanguage)
		answer = ""
	}
}

func (p *Presenter) chooseCategory(lang *config.Language, preset string) (string, error) {
	list := strings.Join(lang.CategoryIDs(), ", ")
	answer := preset
	for {
		if answer == "" {
			var err error
			if answer, err = p.ask(fmt.Sprintf(lang.Messages.ChooseCategory, list)); err != nil {
				return "", err
			}
		}
		cat, err := lang.Category(answer)
		if err == nil {
			return cat.ID, nil
		}
		p.println(fmt.Sprintf(lang.Messages.InvalidCategory, list))
		answer = ""
	}
}

func (p *Presenter) chooseDifficulty(lang *config.Language, preset string) (hangman.Difficulty, error) {
	answer := preset
	for {
		if answer == "" {
			var err error
			if answer, err = p.ask(lang.Messages.ChooseDifficulty); err != nil {
				return "", err
			}
		}
		d, err := lang.ParseDifficulty(answer)
		if err == nil {
			return d, nil
		}
		p.println(lang.Messages.InvalidDifficulty)
		answer = ""
	}
}

func (p *Presenter) playGuesses(sess *game.Session, m config.Messages) error {
	for !sess.Done() {
		p.println(fmt.Sprintf(m.TriesLeft, sess.TriesLeft()))
		p.println(p.gallows.Render(art.Gallows(sess.TriesLeft(), sess.MaxTries)))
		p.println(fmt.Sprintf(m.GuessedLetters, strings.Join(sess.Guessed(), " ")))
		p.println(fmt.Sprintf(m.Word, sess.SpacedMask(p.placeholder)))

		answer, err := p.ask(m.GuessLetter)
		if err != nil {
			return err
		}
		outcome, err := sess.Guess(answer)
		switch {
		case errors.Is(err, hangman.ErrInvalidInput):
			p.println(m.InvalidLetter)
		case errors.Is(err, hangman.ErrAlreadyGuessed):
			p.println(m.AlreadyGuessed)
		case err != nil:
			return err
		case outcome == game.Hit:
			p.println(p.good.Render(m.CorrectGuess))
		default:
			p.println(p.bad.Render(m.IncorrectGuess))
		}
	}
	return nil
}

func (p *Presenter) showOutcome(sess *game.Session, m config.Messages) {
	if sess.State() == game.Lost {
		p.println(p.gallows.Render(art.Gallows(sess.TriesLeft(), sess.MaxTries)))
		p.println(p.bad.Render(fmt.Sprintf(m.YouLost, sess.Word)))
		return
	}
	p.println(p.good.Render(fmt.Sprintf(m.YouWon, sess.Word)))
	p.println(fmt.Sprintf(m.Score, sess.Score()))
}

func (p *Presenter) showLeaderboard(ctx context.Context, m config.Messages) {
	top, err := p.svc.Leaderboard(ctx, p.topN)
	if err != nil {
		p.log.Error().Err(err).Msg("loading leaderboard")
		p.println(p.bad.Render(fmt.Sprintf(m.StorageError, err)))
		return
	}
	p.println(p.title.Render(m.HighScores))
	if len(top) == 0 {
		p.println(p.muted.Render(m.NoScores))
		return
	}
	for _, rec := range top {
		p.println(scores.Line(rec))
	}
}

// ask prints a prompt and reads one line.
func (p *Presenter) ask(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		fmt.Fprintln(p.out)
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", errQuit
	}
	return strings.TrimSpace(p.in.Text()), nil
}

func (p *Presenter) println(s string) {
	fmt.Fprintln(p.out, s)
}
