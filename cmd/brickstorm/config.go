package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickstorm/internal/config"
)

var (
	flagConfigPath  string
	flagConfigForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the game config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	Long: `Write the built-in configuration as a YAML file you can edit.

Without --path the file goes to ~/.brickstorm/brickstorm.yaml, which
'brickstorm play' and 'brickstorm serve' pick up automatically.

Examples:
  brickstorm config init
  brickstorm config init --path ./brickstorm.yaml
  brickstorm config init --force`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().StringVar(&flagConfigPath, "path", "", "Where to write the config (default ~/.brickstorm/brickstorm.yaml)")
	configInitCmd.Flags().BoolVar(&flagConfigForce, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	path := flagConfigPath
	if path == "" {
		p, err := config.UserConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	if err := config.WriteDefault(path, flagConfigForce); err != nil {
		return err
	}
	fmt.Printf("Wrote default config to %s\n", path)
	return nil
}
