package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/f3rmion/hangman/internal/anki"
	"github.com/f3rmion/hangman/internal/textnorm"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <deck.apkg>",
	Short: "Add words from an Anki deck to a word list",
	Long: `Read an Anki .apkg deck and append the single-word values of one note
field to a word list. HTML and sound tags are stripped and words already in
the list are skipped.

With --romanize, Chinese characters are converted to toneless pinyin so a
Chinese vocabulary deck becomes playable (中国 becomes zhongguo).

Examples:
  hangman import spanish.apkg -l spanish -c comida --field Front
  hangman import hsk1.apkg -l english -c food --field Hanzi --romanize
  hangman import deck.apkg -l english -c animals --list-fields`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringP("language", "l", "", "target language id (required)")
	importCmd.Flags().StringP("category", "c", "", "target category id (required)")
	importCmd.Flags().StringP("field", "f", "", "note field to read (default: first field)")
	importCmd.Flags().Bool("romanize", false, "convert Chinese characters to pinyin")
	importCmd.Flags().Bool("dry-run", false, "print the words without saving them")
	importCmd.Flags().Bool("list-fields", false, "print the deck's fields and exit")
	importCmd.MarkFlagRequired("language")
	importCmd.MarkFlagRequired("category")
}

func runImport(cmd *cobra.Command, args []string) error {
	field, _ := cmd.Flags().GetString("field")
	romanize, _ := cmd.Flags().GetBool("romanize")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	listFields, _ := cmd.Flags().GetBool("list-fields")
	language, _ := cmd.Flags().GetString("language")
	category, _ := cmd.Flags().GetString("category")

	s := settings()
	rt, err := newRuntime(cmd.Context(), s, newLogger(os.Stderr, s, true))
	if err != nil {
		return err
	}
	defer rt.Close()

	lang, err := rt.catalog.Language(language)
	if err != nil {
		return err
	}
	cat, err := lang.Category(category)
	if err != nil {
		return err
	}

	pkg, err := anki.OpenPackage(args[0])
	if err != nil {
		return fmt.Errorf("opening deck: %w", err)
	}
	defer pkg.Close()

	if listFields {
		fmt.Print(pkg.Summary())
		fmt.Printf("  Fields: %s\n", strings.Join(pkg.FieldNames(), ", "))
		return nil
	}

	candidates := importable(pkg.Words(field), romanize)
	rt.log.Debug().
		Str("deck", args[0]).
		Str("field", field).
		Int("notes", len(pkg.Notes)).
		Int("words", len(candidates)).
		Msg("read deck")

	if dryRun {
		for _, w := range candidates {
			fmt.Println(w)
		}
		fmt.Fprintf(os.Stderr, "%d words would be considered for %s/%s\n", len(candidates), lang.ID, cat.ID)
		return nil
	}

	added, err := rt.words.Append(lang.ID, cat.ID, candidates)
	if err != nil {
		return err
	}
	fmt.Printf("Added %d of %d words to %s\n", added, len(candidates), rt.words.Path(lang.ID, cat.ID))
	return nil
}

// importable romanizes Han words if asked and keeps words with at least
// one guessable letter.
func importable(words []string, romanize bool) []string {
	var r *textnorm.Romanizer
	if romanize {
		r = textnorm.NewRomanizer()
	}
	out := make([]string, 0, len(words))
	for _, w := range words {
		if r != nil && textnorm.ContainsHan(w) {
			w = r.Romanize(w)
		}
		if textnorm.ContainsHan(w) || len(textnorm.Letters(w)) == 0 {
			continue
		}
		out = append(out, w)
	}
	return out
}
