package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/f3rmion/hangman/internal/config"
	"github.com/f3rmion/hangman/internal/game"
	"github.com/f3rmion/hangman/internal/scores"
	"github.com/f3rmion/hangman/internal/words"
	"github.com/rs/zerolog"
)

// runtime bundles the components every game command needs.
type runtime struct {
	settings config.Settings
	catalog  *config.Catalog
	log      zerolog.Logger
	words    *words.Repository
	scores   scores.Store
	service  *game.Service
	closers  []io.Closer
}

// newLogger builds the process logger. color is for terminals.
func newLogger(w io.Writer, s config.Settings, color bool) zerolog.Logger {
	level, err := zerolog.ParseLevel(s.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: !color}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// newRuntime loads the catalog and wires the repository, score store and
// game service.
func newRuntime(ctx context.Context, s config.Settings, log zerolog.Logger) (*runtime, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	catalog, fromFile, err := config.LoadCatalogOrDefault(s.ConfigDir)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("config_dir", s.ConfigDir).
		Str("data_dir", s.DataDir).
		Bool("catalog_file", fromFile).
		Str("scores", s.ScoresBackend).
		Msg("starting")

	rt := &runtime{
		settings: s,
		catalog:  catalog,
		log:      log,
		words:    words.NewRepository(s.WordsDir(), catalog, log),
	}

	switch s.ScoresBackend {
	case config.BackendText:
		rt.scores = scores.NewTextLog(s.ScoresPath(), log)
	case config.BackendSQLite:
		db, err := scores.OpenSQLite(ctx, s.DBPath())
		if err != nil {
			return nil, err
		}
		rt.scores = db
		rt.closers = append(rt.closers, db)
	default:
		return nil, fmt.Errorf("unknown score backend %q (want %s or %s)", s.ScoresBackend, config.BackendText, config.BackendSQLite)
	}

	rt.service = game.NewService(rt.words, rt.scores, game.RandomSelector(), log)
	return rt, nil
}

// Close releases the score store.
func (rt *runtime) Close() error {
	var first error
	for _, c := range rt.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
