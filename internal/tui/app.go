package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/hangman/internal/art"
	"github.com/f3rmion/hangman/internal/clipboard"
	"github.com/f3rmion/hangman/internal/config"
	"github.com/f3rmion/hangman/internal/game"
	"github.com/f3rmion/hangman/internal/hangman"
	"github.com/f3rmion/hangman/internal/scores"
	"github.com/f3rmion/hangman/internal/tui/banner"
	"github.com/f3rmion/hangman/internal/words"
	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog"
)

// Screen is the active step of the flow.
type Screen int

const (
	ScreenLanguage Screen = iota
	ScreenCategory
	ScreenDifficulty
	ScreenPlay
	ScreenOver
)

// Corpora creates missing corpora so the player can be told about it.
type Corpora interface {
	EnsureCorpus(language, category string) (words.CorpusStatus, error)
}

// Options configures the app.
type Options struct {
	Catalog     *config.Catalog
	Service     *game.Service
	Corpora     Corpora
	Banner      *banner.Renderer
	Placeholder string
	TopN        int
	Logger      zerolog.Logger
	// Copy writes to the clipboard. Defaults to clipboard.Write.
	Copy func(string) error
	// CanCopy reports whether Copy can work. Defaults to clipboard.Available.
	CanCopy func() bool
}

// RoundStartedMsg carries the result of starting a round.
type RoundStartedMsg struct {
	Session       *game.Session
	CorpusCreated bool
	Err           error
}

// RoundFinishedMsg carries the recorded score and the leaderboard.
type RoundFinishedMsg struct {
	Record hangman.ScoreRecord
	Top    []hangman.ScoreRecord
	Err    error
}

// CopiedMsg reports a clipboard write.
type CopiedMsg struct {
	Err error
}

// AppModel is the bubbletea model for the whole game.
type AppModel struct {
	opts Options
	log  zerolog.Logger

	width  int
	height int

	screen  Screen
	cursor  int
	options []string

	lang       *config.Language
	category   string
	difficulty hangman.Difficulty

	session *game.Session
	input   textinput.Model

	// feedback for the last action
	status    string
	statusErr bool

	record  hangman.ScoreRecord
	top     []hangman.ScoreRecord
	saveErr error
	copied  bool
	canCopy bool

	// a round is being started; menu input waits for RoundStartedMsg
	starting bool
}

// NewApp creates the app on the language screen.
func NewApp(opts Options) AppModel {
	if opts.Placeholder == "" {
		opts.Placeholder = "_"
	}
	if opts.TopN <= 0 {
		opts.TopN = scores.DefaultTop
	}
	if opts.Copy == nil {
		opts.Copy = clipboard.Write
	}
	if opts.CanCopy == nil {
		opts.CanCopy = clipboard.Available
	}
	if opts.Banner == nil {
		opts.Banner = banner.New(nil)
	}

	ti := textinput.New()
	ti.CharLimit = 1
	ti.Width = 3
	ti.Prompt = "› "
	ti.Cursor.SetMode(cursor.CursorStatic)

	m := AppModel{
		opts:    opts,
		log:     opts.Logger.With().Str("component", "tui").Logger(),
		input:   ti,
		canCopy: opts.CanCopy(),
	}
	m.enterLanguage()
	return m
}

// Screen returns the active screen.
func (m AppModel) Screen() Screen { return m.screen }

// Session returns the round in play, if any.
func (m AppModel) Session() *game.Session { return m.session }

// Init initializes the model
func (m AppModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case RoundStartedMsg:
		return m.handleRoundStarted(msg)

	case RoundFinishedMsg:
		m.record = msg.Record
		m.top = msg.Top
		m.saveErr = msg.Err
		if msg.Err != nil {
			m.log.Error().Err(msg.Err).Msg("recording round")
		}
		return m, nil

	case CopiedMsg:
		if msg.Err != nil {
			m.setStatus(msg.Err.Error(), true)
		} else {
			m.copied = true
			m.setStatus(m.lang.Messages.Copied, false)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.screen {
		case ScreenLanguage, ScreenCategory, ScreenDifficulty:
			return m.updateMenu(msg)
		case ScreenPlay:
			return m.updatePlay(msg)
		case ScreenOver:
			return m.updateOver(msg)
		}
	}
	return m, nil
}

func (m *AppModel) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m *AppModel) enterLanguage() {
	m.screen = ScreenLanguage
	m.options = m.opts.Catalog.LanguageIDs()
	m.cursor = 0
	if m.lang != nil {
		m.cursor = indexOf(m.options, m.lang.ID)
	}
}

func (m *AppModel) enterCategory() {
	m.screen = ScreenCategory
	m.options = m.lang.CategoryIDs()
	m.cursor = max(indexOf(m.options, m.category), 0)
}

func (m *AppModel) enterDifficulty() {
	m.screen = ScreenDifficulty
	m.options = make([]string, len(hangman.Difficulties))
	for i, d := range hangman.Difficulties {
		m.options[i] = localizedDifficulty(m.lang, d)
	}
	m.cursor = 0
	for i, d := range hangman.Difficulties {
		if d == m.difficulty {
			m.cursor = i
		}
	}
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return 0
}

// localizedDifficulty returns the language's own token for d, e.g. "facil".
func localizedDifficulty(lang *config.Language, d hangman.Difficulty) string {
	var tokens []string
	for token, level := range lang.Difficulties {
		if level == d && token != string(d) {
			tokens = append(tokens, token)
		}
	}
	if len(tokens) == 0 {
		return string(d)
	}
	sort.Strings(tokens)
	return tokens[0]
}

func (m AppModel) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.starting && msg.String() != "q" {
		return m, nil
	}
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "esc":
		switch m.screen {
		case ScreenCategory:
			m.enterLanguage()
		case ScreenDifficulty:
			m.enterCategory()
		default:
			return m, tea.Quit
		}
	case "enter":
		m.status = ""
		switch m.screen {
		case ScreenLanguage:
			lang, err := m.opts.Catalog.Language(m.options[m.cursor])
			if err != nil {
				m.setStatus(err.Error(), true)
				return m, nil
			}
			if m.lang == nil || m.lang.ID != lang.ID {
				m.category = ""
			}
			m.lang = lang
			m.enterCategory()
		case ScreenCategory:
			m.category = m.options[m.cursor]
			m.enterDifficulty()
		case ScreenDifficulty:
			m.difficulty = hangman.Difficulties[m.cursor]
			m.starting = true
			return m, m.startRound()
		}
	}
	return m, nil
}

// startRound ensures the corpus and draws a word.
func (m AppModel) startRound() tea.Cmd {
	svc, corpora := m.opts.Service, m.opts.Corpora
	language, category, d := m.lang.ID, m.category, m.difficulty
	return func() tea.Msg {
		created := false
		if corpora != nil {
			status, err := corpora.EnsureCorpus(language, category)
			if err != nil {
				return RoundStartedMsg{Err: err}
			}
			created = status == words.CorpusCreated
		}
		sess, err := svc.NewRound(context.Background(), language, category, d)
		return RoundStartedMsg{Session: sess, CorpusCreated: created, Err: err}
	}
}

func (m AppModel) handleRoundStarted(msg RoundStartedMsg) (tea.Model, tea.Cmd) {
	if !m.starting {
		return m, nil
	}
	m.starting = false
	msgs := m.lang.Messages
	if msg.Err != nil {
		if errors.Is(msg.Err, hangman.ErrEmptyCorpus) {
			level := m.difficulty.Level()
			m.setStatus(fmt.Sprintf(msgs.NoWords, level.MinLength, level.MaxLength), true)
		} else {
			m.setStatus(fmt.Sprintf(msgs.StorageError, msg.Err), true)
		}
		m.enterDifficulty()
		return m, nil
	}

	m.session = msg.Session
	m.screen = ScreenPlay
	m.copied = false
	m.saveErr = nil
	m.top = nil
	m.input.Reset()
	m.input.Focus()
	if msg.CorpusCreated {
		m.setStatus(fmt.Sprintf(msgs.CorpusCreated, m.category), false)
	} else {
		m.setStatus("", false)
	}
	return m, nil
}

func (m AppModel) updatePlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	msgs := m.lang.Messages
	switch msg.Type {
	case tea.KeyEsc:
		// Abandoned rounds are not recorded.
		m.session = nil
		m.input.Blur()
		m.setStatus("", false)
		m.enterDifficulty()
		return m, nil
	case tea.KeyEnter:
		guess := m.input.Value()
		m.input.Reset()
		outcome, err := m.session.Guess(guess)
		switch {
		case errors.Is(err, hangman.ErrInvalidInput):
			m.setStatus(msgs.InvalidLetter, true)
		case errors.Is(err, hangman.ErrAlreadyGuessed):
			m.setStatus(msgs.AlreadyGuessed, true)
		case err != nil:
			m.setStatus(err.Error(), true)
		case outcome == game.Hit:
			m.setStatus(msgs.CorrectGuess, false)
		default:
			m.setStatus(msgs.IncorrectGuess, true)
		}
		if m.session.Done() {
			m.input.Blur()
			m.screen = ScreenOver
			return m, m.finishRound()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// finishRound records the round and loads the leaderboard.
func (m AppModel) finishRound() tea.Cmd {
	svc, sess, n := m.opts.Service, m.session, m.opts.TopN
	return func() tea.Msg {
		ctx := context.Background()
		rec, err := svc.Finish(ctx, sess)
		top, topErr := svc.Leaderboard(ctx, n)
		if err == nil {
			err = topErr
		}
		return RoundFinishedMsg{Record: rec, Top: top, Err: err}
	}
}

func (m AppModel) updateOver(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "y":
		if !m.canCopy {
			return m, nil
		}
		text := m.summary()
		copyFn := m.opts.Copy
		return m, func() tea.Msg {
			return CopiedMsg{Err: copyFn(text)}
		}
	case "enter":
		m.session = nil
		m.setStatus("", false)
		m.enterLanguage()
	}
	return m, nil
}

// summary is the one-line result copied to the clipboard.
func (m AppModel) summary() string {
	if m.session == nil {
		return ""
	}
	return fmt.Sprintf("Hangman %s/%s (%s): %s %s, score %d",
		m.lang.ID, m.category, m.difficulty, m.session.Word, m.session.State(), m.session.Score())
}

// View renders the UI
func (m AppModel) View() string {
	var body string
	switch m.screen {
	case ScreenLanguage, ScreenCategory, ScreenDifficulty:
		body = m.viewMenu()
	case ScreenPlay:
		body = m.viewPlay()
	case ScreenOver:
		body = m.viewOver()
	}
	return ContentStyle.Render(body)
}

func (m AppModel) welcome() string {
	msgs := m.opts.Catalog.Languages[0].Messages
	if m.lang != nil {
		msgs = m.lang.Messages
	}
	return TitleStyle.Render(msgs.Welcome)
}

func (m AppModel) viewMenu() string {
	var prompt string
	switch m.screen {
	case ScreenLanguage:
		prompt = m.opts.Catalog.Languages[0].Messages.ChooseLanguage
	case ScreenCategory:
		prompt = fmt.Sprintf(m.lang.Messages.ChooseCategory, strings.Join(m.options, ", "))
	case ScreenDifficulty:
		prompt = m.lang.Messages.ChooseDifficulty
	}

	lines := []string{m.welcome(), "", SubtitleStyle.Render(strings.TrimSpace(prompt)), ""}
	for i, opt := range m.options {
		label := opt
		if m.screen == ScreenLanguage {
			if lang, err := m.opts.Catalog.Language(opt); err == nil && lang.Name != "" {
				label = lang.Name
			}
		}
		if i == m.cursor {
			lines = append(lines, ItemActiveStyle.Render("▸ "+label))
		} else {
			lines = append(lines, ItemStyle.Render("  "+label))
		}
	}
	lines = append(lines, "", m.viewStatus(), HelpStyle.Render("↑/↓ move · enter select · esc back · q quit"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m AppModel) viewPlay() string {
	msgs := m.lang.Messages
	s := m.session

	left := GallowsStyle.Render(art.Gallows(s.TriesLeft(), s.MaxTries))

	info := []string{
		LabelStyle.Render(m.lang.Name) + ValueStyle.Render(fmt.Sprintf("%s · %s", m.category, localizedDifficulty(m.lang, m.difficulty))),
		ValueStyle.Render(fmt.Sprintf(msgs.TriesLeft, s.TriesLeft())),
		ValueStyle.Render(fmt.Sprintf(msgs.GuessedLetters, strings.Join(s.Guessed(), " "))),
		WordStyle.Render(s.SpacedMask(m.opts.Placeholder)),
		strings.TrimSpace(msgs.GuessLetter),
		InputBoxStyle.Render(m.input.View()),
	}
	right := lipgloss.JoinVertical(lipgloss.Left, info...)

	board := lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)
	return lipgloss.JoinVertical(lipgloss.Left,
		m.welcome(), "", board, "", m.viewStatus(),
		HelpStyle.Render("enter guess · esc abandon round · ctrl+c quit"),
	)
}

func (m AppModel) viewOver() string {
	msgs := m.lang.Messages
	s := m.session

	var headline string
	if s.State() == game.Won {
		headline = HitStyle.Render(fmt.Sprintf(msgs.YouWon, s.Word))
	} else {
		headline = MissStyle.Render(fmt.Sprintf(msgs.YouLost, s.Word))
	}

	lines := []string{m.welcome(), "", headline}

	maxCols := m.width - 8
	if big := m.opts.Banner.Render(strings.ToUpper(s.Word), 5, maxCols); big != "" {
		lines = append(lines, BannerStyle.Render(big))
	} else {
		lines = append(lines, WordStyle.Render(s.Word))
	}

	if s.State() == game.Won {
		lines = append(lines, ValueStyle.Render(fmt.Sprintf(msgs.Score, s.Score())))
	} else {
		lines = append(lines, GallowsStyle.Render(art.Gallows(s.TriesLeft(), s.MaxTries)))
	}

	lines = append(lines, "", ScoreHeaderStyle.Render(msgs.HighScores))
	switch {
	case m.saveErr != nil:
		lines = append(lines, ErrorStyle.Render(fmt.Sprintf(msgs.StorageError, m.saveErr)))
	case m.top == nil:
		lines = append(lines, HelpStyle.Render("…"))
	case len(m.top) == 0:
		lines = append(lines, HelpStyle.Render(msgs.NoScores))
	default:
		lines = append(lines, m.viewLeaderboard())
	}

	help := "enter play again · q quit"
	if m.canCopy {
		help = "enter play again · y copy · q quit"
	}
	lines = append(lines, "", m.viewStatus(), HelpStyle.Render(help))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// viewLeaderboard lays the top scores out in aligned columns.
func (m AppModel) viewLeaderboard() string {
	langW, catW, diffW := 0, 0, 0
	for _, r := range m.top {
		langW = max(langW, runewidth.StringWidth(r.Language))
		catW = max(catW, runewidth.StringWidth(r.Category))
		diffW = max(diffW, runewidth.StringWidth(string(r.Difficulty)))
	}

	current := currentRow(m.top, m.record, m.opts.TopN)
	rows := make([]string, 0, len(m.top))
	for i, r := range m.top {
		line := fmt.Sprintf("%d. %s  %s  %s  %5d",
			i+1,
			runewidth.FillRight(r.Language, langW),
			runewidth.FillRight(r.Category, catW),
			runewidth.FillRight(string(r.Difficulty), diffW),
			r.Score,
		)
		style := ScoreRowStyle
		if i == current {
			style = ScoreRowCurrentStyle
		}
		rows = append(rows, style.Render(line))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m AppModel) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return ErrorStyle.Render(m.status)
	}
	if m.copied {
		return CopiedStyle.Render(m.status)
	}
	return HitStyle.Render(m.status)
}

// currentRow finds the round just played in top, or returns -1. Stores
// that keep round ids are matched on the id. The text log does not, so
// there the round is the last row with the same fields, since ranking
// keeps earlier rounds first among equal scores. If that row closes a full
// list, the round itself may have been cut off, so nothing is marked.
func currentRow(top []hangman.ScoreRecord, rec hangman.ScoreRecord, n int) int {
	if rec.Language == "" {
		return -1
	}
	if rec.RoundID != "" {
		for i, r := range top {
			if r.RoundID == rec.RoundID {
				return i
			}
		}
	}
	last := -1
	for i, r := range top {
		if r.RoundID == "" && r.Language == rec.Language && r.Category == rec.Category &&
			r.Difficulty == rec.Difficulty && r.Score == rec.Score {
			last = i
		}
	}
	if last == len(top)-1 && len(top) >= n {
		return -1
	}
	return last
}
