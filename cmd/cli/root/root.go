package root

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "minutes",
	Short: "Minutes Tracker CLI",
	Long:  "Command line interface for interacting with the Minutes Tracker API",
}

// GetRoot returns the root command so subcommand packages can register themselves.
func GetRoot() *cobra.Command {
	return rootCmd
}
