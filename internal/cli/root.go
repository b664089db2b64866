// Package cli implements the blogapi command line interface.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/bloghq/blogapi/internal/config"
	"github.com/bloghq/blogapi/internal/logger"
)

var settings *config.Settings

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "blogapi",
	Short: "Blog REST API server",
	Long: `Blogapi is a REST API for a blog platform with users, posts and
categories. Configuration is read from the environment and an optional
.env file in the working directory.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		settings, err = config.Load()
		if err != nil {
			return err
		}

		// Console writer for development, JSON lines for production.
		pretty := settings.Environment == config.EnvDevelopment
		logger.Init(logger.ParseLogLevel(settings.LogLevel), os.Stderr, pretty)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}
