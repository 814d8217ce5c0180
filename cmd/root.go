package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/killallgit/fieldguide-api/pkg/config"
	"github.com/killallgit/fieldguide-api/pkg/logging"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree. Each call returns fresh commands
// and flags, so nothing carries over between executions.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fieldguide",
		Short: "Field Guide API server",
		Long: `Field Guide API - backend for a personal map of bookmarked places

Signed-in users keep a list of places on a map, filter them by tag,
search for new places and add them with a name, color and notes.

Features:
  • Bookmarks with tags, colors and drag-to-reorder
  • Map markers, selection and point-of-interest popups
  • Place search via the Places API
  • Supabase sign-in (password or magic link)`,
		SilenceUsage:      true,
		PersistentPreRunE: preRun,
	}

	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().Bool("json-logs", false, "enable JSON formatted logs")

	root.AddCommand(newServeCmd(), newMigrateCmd(), newVersionCmd())
	return root
}

// Execute runs the CLI. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// preRun loads the configuration, except for commands that never read it,
// then sets up logging
func preRun(cmd *cobra.Command, args []string) error {
	if cmd.Name() != "version" {
		if err := config.Init(); err != nil {
			return fmt.Errorf("error initializing config: %w", err)
		}
	}
	return setupLogging(cmd, args)
}

// setupLogging configures zerolog from the flags, falling back to the
// logging section of the config when a flag was not given
func setupLogging(cmd *cobra.Command, _ []string) error {
	level, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json-logs")

	if !cmd.Flags().Changed("log-level") {
		if configured := config.GetString("logging.level"); configured != "" {
			level = configured
		}
	}
	if !cmd.Flags().Changed("json-logs") {
		jsonLogs = jsonLogs || strings.EqualFold(config.GetString("logging.format"), "json")
	}

	logging.Setup(level, jsonLogs)
	return nil
}
