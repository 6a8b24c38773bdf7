package cmd

import (
	"fmt"
	"os"

	"github.com/f3rmion/hangman/internal/textnorm"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

var wordsCmd = &cobra.Command{
	Use:   "words <language> <category>",
	Short: "List the words of a category",
	Long: `List the word list of a language and category, creating it from the
defaults if it does not exist yet.

With --difficulty only the words a round at that difficulty could draw are
shown, including the fallback to the default words.

Examples:
  hangman words english animals
  hangman words spanish comida -d medio`,
	Args: cobra.ExactArgs(2),
	RunE: runWords,
}

func init() {
	rootCmd.AddCommand(wordsCmd)
	wordsCmd.Flags().StringP("difficulty", "d", "", "only words playable at this difficulty")
}

func runWords(cmd *cobra.Command, args []string) error {
	s := settings()
	rt, err := newRuntime(cmd.Context(), s, newLogger(os.Stderr, s, true))
	if err != nil {
		return err
	}
	defer rt.Close()

	lang, err := rt.catalog.Language(args[0])
	if err != nil {
		return err
	}
	cat, err := lang.Category(args[1])
	if err != nil {
		return err
	}

	var list []string
	difficulty, _ := cmd.Flags().GetString("difficulty")
	if difficulty != "" {
		d, err := lang.ParseDifficulty(difficulty)
		if err != nil {
			return err
		}
		level := d.Level()
		if list, err = rt.words.LoadWords(lang.ID, cat.ID, level.MinLength, level.MaxLength); err != nil {
			return err
		}
	} else {
		if _, err := rt.words.EnsureCorpus(lang.ID, cat.ID); err != nil {
			return err
		}
		if list, err = rt.words.ReadCorpus(lang.ID, cat.ID); err != nil {
			return err
		}
	}

	for _, w := range list {
		fmt.Printf("%s %2d\n", runewidth.FillRight(w, 20), textnorm.Length(w))
	}
	fmt.Fprintf(os.Stderr, "%d words in %s\n", len(list), rt.words.Path(lang.ID, cat.ID))
	return nil
}
