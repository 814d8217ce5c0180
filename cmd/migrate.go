package cmd

import (
	"fmt"
	"strings"

	"github.com/killallgit/fieldguide-api/internal/database"
	"github.com/killallgit/fieldguide-api/pkg/config"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Manage database migrations for the Field Guide API.

Migrations create the bookmarks, bookmark_tags and preferences tables.
They only ever add tables, columns and indexes.

Available subcommands:
  up      - Create or update every table
  status  - Show which tables exist`,
	}

	migrateUpCmd := &cobra.Command{
		Use:   "up",
		Short: "Create or update every table",
		Long: `Apply the schema to the configured database.

Missing tables are created and missing columns and indexes are added.
Existing data is left alone.`,
		RunE: runMigrateUp,
	}

	migrateStatusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Long: `Display the current status of database migrations.

Each application table is listed with whether it exists.`,
		RunE: runMigrateStatus,
	}

	migrateCmd.AddCommand(migrateUpCmd, migrateStatusCmd)
	migrateCmd.PersistentFlags().Bool("dry-run", false, "show what would be done without making changes")
	return migrateCmd
}

func openDatabase() (*database.DB, error) {
	cfg, err := config.GetConfig()
	if err != nil {
		return nil, err
	}
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	out := cmd.OutOrStdout()
	if dryRun {
		fmt.Fprintln(out, "Dry run mode - no changes will be made")
		for _, s := range db.Status() {
			if !s.Exists {
				fmt.Fprintf(out, "  would create %s\n", s.Table)
			}
		}
		return nil
	}

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	fmt.Fprintln(out, "Migrations applied")
	return printStatus(cmd, db)
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()
	return printStatus(cmd, db)
}

func printStatus(cmd *cobra.Command, db *database.DB) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Database Migration Status")
	fmt.Fprintln(out, strings.Repeat("=", 40))
	pending := 0
	for _, s := range db.Status() {
		state := "applied"
		if !s.Exists {
			state = "pending"
			pending++
		}
		fmt.Fprintf(out, "  %-20s %s\n", s.Table, state)
	}
	fmt.Fprintf(out, "%d pending\n", pending)
	return nil
}
