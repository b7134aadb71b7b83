package cmd

import (
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "antennacheck",
	Short: "Detect antenna-effect rule violations in a placed and routed design",
}

// Execute runs the CLI's root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML run configuration")
	rootCmd.AddCommand(checkCmd)
}
