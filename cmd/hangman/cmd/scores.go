package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/f3rmion/hangman/internal/config"
	"github.com/f3rmion/hangman/internal/scores"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the high score table",
	Long: `Show the best recorded rounds, highest score first.

With --migrate, every record of the text score log is copied into the
SQLite database (see --scores sqlite) before the table is shown. The
migration is refused when the database already has scores, so running it
twice does not count rounds twice. Add --force to import anyway.`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	rootCmd.AddCommand(scoresCmd)
	scoresCmd.Flags().IntP("top", "n", 0, "number of scores to show (default from scores.top)")
	scoresCmd.Flags().Bool("json", false, "output as JSON")
	scoresCmd.Flags().Bool("migrate", false, "copy the text score log into the SQLite database")
	scoresCmd.Flags().Bool("force", false, "with --migrate, import even if the database has scores")
	viper.BindPFlag(config.KeyScoresTop, scoresCmd.Flags().Lookup("top"))
}

func runScores(cmd *cobra.Command, args []string) error {
	s := settings()
	asJSON, _ := cmd.Flags().GetBool("json")
	migrate, _ := cmd.Flags().GetBool("migrate")
	force, _ := cmd.Flags().GetBool("force")
	log := newLogger(os.Stderr, s, true)
	ctx := cmd.Context()

	if migrate {
		s.ScoresBackend = config.BackendSQLite
	}
	rt, err := newRuntime(ctx, s, log)
	if err != nil {
		return err
	}
	defer rt.Close()

	if migrate {
		recs, err := scores.NewTextLog(s.ScoresPath(), log).All(ctx)
		if err != nil {
			return err
		}
		n, err := rt.scores.(*scores.SQLite).Import(ctx, recs, force)
		if errors.Is(err, scores.ErrNotEmpty) {
			return fmt.Errorf("%w (already migrated? use --force to import again)", err)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Imported %d scores into %s\n", n, s.DBPath())
	}

	top, err := rt.scores.Top(ctx, s.TopN)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(top)
	}

	msgs := rt.catalog.Languages[0].Messages
	fmt.Println(msgs.HighScores)
	if len(top) == 0 {
		fmt.Println(msgs.NoScores)
		return nil
	}
	for _, rec := range top {
		fmt.Println(scores.Line(rec))
	}
	return nil
}
