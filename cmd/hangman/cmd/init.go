package cmd

import (
	"fmt"
	"os"

	"github.com/f3rmion/hangman/internal/config"
	"github.com/f3rmion/hangman/internal/words"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the catalog and word lists",
	Long: `Write the default catalog to catalog.yaml in your config directory and
create a word list for every language and category.

The catalog defines languages, categories, the default words used to seed
each list, localized difficulty names and all player-facing messages.
Edit it to add categories or translations.

Existing word lists are never overwritten. An existing catalog.yaml is
kept unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite an existing catalog.yaml")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	s := settings()

	if err := config.EnsureDir(s.ConfigDir); err != nil {
		return err
	}

	fmt.Printf("Initializing hangman in %s\n\n", s.ConfigDir)

	path := s.CatalogPath()
	written, err := config.WriteDefaultCatalog(path, force)
	if err != nil {
		return err
	}
	if written {
		fmt.Printf("  Created  %s\n", path)
	} else {
		fmt.Printf("  Kept     %s (use --force to overwrite)\n", path)
	}

	rt, err := newRuntime(cmd.Context(), s, newLogger(os.Stderr, s, true))
	if err != nil {
		return err
	}
	defer rt.Close()

	for _, lang := range rt.catalog.Languages {
		for _, cat := range lang.Categories {
			status, err := rt.words.EnsureCorpus(lang.ID, cat.ID)
			if err != nil {
				return err
			}
			label := "Kept    "
			if status == words.CorpusCreated {
				label = "Created "
			}
			fmt.Printf("  %s %s\n", label, rt.words.Path(lang.ID, cat.ID))
		}
	}

	fmt.Println()
	fmt.Println("Ready!")
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Add words to the lists above, one per line")
	fmt.Println("  2. Run 'hangman' to play, or 'hangman play' for console mode")
	return nil
}
