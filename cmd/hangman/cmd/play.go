package cmd

import (
	"os"

	"github.com/f3rmion/hangman/internal/console"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in line-by-line console mode",
	Long: `Play hangman with plain prompts instead of the full-screen TUI.

Any of --language, --category and --difficulty skips the matching prompt
for the first round. Difficulty accepts localized names (facil, medio,
dificil) as well as easy, medium and hard.

Examples:
  hangman play
  hangman play --language spanish --category animales --difficulty facil`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().StringP("language", "l", "", "language id")
	playCmd.Flags().StringP("category", "c", "", "category id")
	playCmd.Flags().StringP("difficulty", "d", "", "difficulty")
}

func runPlay(cmd *cobra.Command, args []string) error {
	s := settings()
	rt, err := newRuntime(cmd.Context(), s, newLogger(os.Stderr, s, true))
	if err != nil {
		return err
	}
	defer rt.Close()

	language, _ := cmd.Flags().GetString("language")
	category, _ := cmd.Flags().GetString("category")
	difficulty, _ := cmd.Flags().GetString("difficulty")

	preset, err := resolvePreset(rt, language, category, difficulty)
	if err != nil {
		return err
	}

	p := console.New(os.Stdin, os.Stdout, console.Options{
		Catalog:     rt.catalog,
		Service:     rt.service,
		Corpora:     rt.words,
		Placeholder: s.Placeholder,
		TopN:        s.TopN,
		Logger:      rt.log,
	})
	return p.Run(cmd.Context(), preset)
}

// resolvePreset validates flag answers so a typo fails fast instead of
// turning into a prompt.
func resolvePreset(rt *runtime, language, category, difficulty string) (console.Preset, error) {
	preset := console.Preset{Language: language, Category: category, Difficulty: difficulty}
	if language == "" {
		return preset, nil
	}
	lang, err := rt.catalog.Language(language)
	if err != nil {
		return preset, err
	}
	preset.Language = lang.ID
	if category != "" {
		cat, err := lang.Category(category)
		if err != nil {
			return preset, err
		}
		preset.Category = cat.ID
	}
	if difficulty != "" {
		d, err := lang.ParseDifficulty(difficulty)
		if err != nil {
			return preset, err
		}
		preset.Difficulty = d.String()
	}
	return preset, nil
}
