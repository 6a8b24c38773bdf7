// Package cmd contains all CLI commands for the hangman game.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/hangman/internal/config"
	"github.com/f3rmion/hangman/internal/tui"
	"github.com/f3rmion/hangman/internal/tui/banner"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hangman",
	Short: "Hangman - guess the word one letter at a time",
	Long: `Hangman is a word-guessing game for the terminal.

Pick a language, a category and a difficulty, then guess the hidden word
one letter at a time before the gallows is complete. Accented letters are
matched by their plain form, so guessing "o" reveals "ó".

Difficulty sets the word length and the number of misses allowed:
  easy    4-6 letters, 8 tries, score x1
  medium  7-9 letters, 6 tries, score x2
  hard    10-15 letters, 4 tries, score x3

Running 'hangman' without arguments launches the interactive TUI.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/hangman)")
	rootCmd.PersistentFlags().String("data", "", "data directory for word lists and scores (default is the config directory)")
	rootCmd.PersistentFlags().String("scores", "", "score store backend: text or sqlite")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output")

	viper.BindPFlag(config.KeyDataDir, rootCmd.PersistentFlags().Lookup("data"))
	viper.BindPFlag(config.KeyScoresBackend, rootCmd.PersistentFlags().Lookup("scores"))
	viper.BindPFlag(config.KeyVerbose, rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in .env, config file and ENV variables if set.
func initConfig() {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	viper.SetEnvPrefix("HANGMAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	config.SetDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.Set(config.KeyConfigDir, cfgFile)
	} else if dir := viper.GetString(config.KeyConfigDir); dir == "" {
		configDir, err := config.GetConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.Set(config.KeyConfigDir, configDir)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(viper.GetString(config.KeyConfigDir))
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "Error reading config.yaml:", err)
		}
	}
}

// settings returns the resolved runtime settings.
func settings() config.Settings {
	return config.FromViper(viper.GetViper())
}

// runTUI launches the interactive TUI.
func runTUI(cmd *cobra.Command, args []string) error {
	s := settings()
	if err := config.EnsureDir(s.DataDir); err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file.
	logFile, err := os.OpenFile(s.LogPath(), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	rt, err := newRuntime(cmd.Context(), s, newLogger(logFile, s, false))
	if err != nil {
		return err
	}
	defer rt.Close()

	p := tea.NewProgram(
		tui.NewApp(tui.Options{
			Catalog:     rt.catalog,
			Service:     rt.service,
			Corpora:     rt.words,
			Banner:      banner.LoadSystem(),
			Placeholder: s.Placeholder,
			TopN:        s.TopN,
			Logger:      rt.log,
		}),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
