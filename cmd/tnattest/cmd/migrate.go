package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trufnetwork/tnattest/internal/core/archive"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply archive schema migrations",
	RunE:  runMigrate,
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show applied and pending migrations",
	RunE:  runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	if archiveURL == "" {
		return fmt.Errorf("--archive-url required")
	}
	db, err := archive.Open(archiveURL)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer db.Close()

	if err := archive.MigrateUp(db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	fmt.Println("migrations applied")
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	if archiveURL == "" {
		return fmt.Errorf("--archive-url required")
	}
	db, err := archive.Open(archiveURL)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer db.Close()

	statuses, err := archive.MigrateStatus(db)
	if err != nil {
		return fmt.Errorf("failed to read migration status: %w", err)
	}
	for _, s := range statuses {
		state := "pending"
		if s.Applied {
			state = "applied"
		}
		fmt.Printf("%-40s %s\n", s.ID, state)
	}
	return nil
}
