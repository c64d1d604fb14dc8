package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickstorm/internal/breakout"
	"github.com/vovakirdan/brickstorm/internal/config"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the levels",
	Long:  `Shows every level with its brick count and boss position.`,
	RunE:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	bricks := config.DefaultBrickstormConfig().Bricks

	fmt.Println("Levels:")
	fmt.Println()
	fmt.Printf("  %-2s  %-12s  %-6s  %s\n", "#", "Name", "Bricks", "Boss at")
	fmt.Printf("  %-2s  %-12s  %-6s  %s\n", "-", "----", "------", "-------")

	for level := 1; level <= breakout.LevelCount(); level++ {
		layout, err := breakout.GenerateLevel(level, bricks)
		if err != nil {
			return err
		}
		x, y, _ := breakout.BossPosition(level)
		fmt.Printf("  %-2d  %-12s  %-6d  (%.0f, %.0f)\n", level, breakout.LevelName(level), len(layout)-1, x, y)
	}

	fmt.Println()
	fmt.Println("Run 'brickstorm play --level <n>' to start on a level.")
	return nil
}
