package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickstorm/internal/breakout"
	"github.com/vovakirdan/brickstorm/internal/storage"
)

var (
	flagLimit      int
	flagScoreLevel int
	flagClear      bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best runs",
	Long: `Display the best recorded runs, across all levels or for one level.

Examples:
  brickstorm scores
  brickstorm scores --limit 20
  brickstorm scores --level 2
  brickstorm scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().IntVar(&flagScoreLevel, "level", 0, "Only show runs started on this level")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded run")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(); err != nil {
			return fmt.Errorf("clearing scores: %w", err)
		}
		fmt.Println("All recorded runs deleted.")
		return nil
	}

	var scores []storage.ScoreEntry
	title := "High Scores"
	if flagScoreLevel > 0 {
		name := breakout.LevelName(flagScoreLevel)
		if name == "" {
			return fmt.Errorf("level %d out of range 1..%d", flagScoreLevel, breakout.LevelCount())
		}
		title = fmt.Sprintf("High Scores - %s", name)
		scores, err = store.TopScoresByLevel(flagScoreLevel, flagLimit)
	} else {
		scores, err = store.TopScores(flagLimit)
	}
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Println(title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'brickstorm play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-12s  %-10s  %-7s  %-7s  %s\n", "Rank", "Player", "Level", "Score", "Result", "Date")
	fmt.Printf("  %-4s  %-12s  %-10s  %-7s  %-7s  %s\n", "----", "------", "-----", "-----", "------", "----")

	for i, entry := range scores {
		result := "lost"
		if entry.Outcome == storage.OutcomeWin {
			result = "cleared"
		}
		fmt.Printf("  %-4d  %-12s  %-10s  %-7d  %-7s  %s\n",
			i+1, entry.Player, breakout.LevelName(entry.Level), entry.Score, result,
			entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if high, err := store.HighScore(); err == nil {
		fmt.Printf("Best: %d\n", high)
	}
	return nil
}
