package config

import (
	"path/filepath"

	"github.com/spf13/viper"
)

// Settings keys understood by viper (flags, HANGMAN_* env, config.yaml).
const (
	KeyConfigDir     = "config_dir"
	KeyDataDir       = "data_dir"
	KeyScoresBackend = "scores.backend"
	KeyScoresTop     = "scores.top"
	KeyPlaceholder   = "placeholder"
	KeyVerbose       = "verbose"
	KeyLogLevel      = "log_level"
)

// Score store backends.
const (
	BackendText   = "text"
	BackendSQLite = "sqlite"
)

// Settings are the runtime options that do not change game rules.
type Settings struct {
	ConfigDir     string
	DataDir       string
	ScoresBackend string
	TopN          int
	Placeholder   string
	Verbose       bool
	LogLevel      string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyScoresBackend, BackendText)
	v.SetDefault(KeyScoresTop, 5)
	v.SetDefault(KeyPlaceholder, "_")
	v.SetDefault(KeyLogLevel, "info")
}

// FromViper reads Settings out of v. DataDir falls back to ConfigDir.
func FromViper(v *viper.Viper) Settings {
	s := Settings{
		ConfigDir:     v.GetString(KeyConfigDir),
		DataDir:       v.GetString(KeyDataDir),
		ScoresBackend: v.GetString(KeyScoresBackend),
		TopN:          v.GetInt(KeyScoresTop),
		Placeholder:   v.GetString(KeyPlaceholder),
		Verbose:       v.GetBool(KeyVerbose),
		LogLevel:      v.GetString(KeyLogLevel),
	}
	if s.DataDir == "" {
		s.DataDir = s.ConfigDir
	}
	if s.ScoresBackend == "" {
		s.ScoresBackend = BackendText
	}
	if s.TopN <= 0 {
		s.TopN = 5
	}
	if s.Placeholder == "" {
		s.Placeholder = "_"
	}
	if s.Verbose {
		s.LogLevel = "debug"
	}
	if s.LogLevel == "" {
		s.LogLevel = "info"
	}
	return s
}

// WordsDir is the root of the per-language corpora.
func (s Settings) WordsDir() string { return filepath.Join(s.DataDir, "words") }

// ScoresPath is the text score log.
func (s Settings) ScoresPath() string { return filepath.Join(s.DataDir, "high_scores.txt") }

// DBPath is the SQLite score database.
func (s Settings) DBPath() string { return filepath.Join(s.DataDir, "hangman.db") }

// LogPath is where the TUI writes its log.
func (s Settings) LogPath() string { return filepath.Join(s.DataDir, "hangman.log") }

// CatalogPath is the user catalog file.
func (s Settings) CatalogPath() string { return filepath.Join(s.ConfigDir, CatalogFile) }
