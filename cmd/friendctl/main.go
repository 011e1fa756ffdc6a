package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/redmonkez12/friend-app/cmd/friendctl/ui"
	"github.com/redmonkez12/friend-app/internal/config"
	"github.com/redmonkez12/friend-app/internal/database"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "friendctl",
		Short:        "Operate the Friend App backend",
		Long:         "Administrative commands for the Friend App API, such as managing the database schema.",
		SilenceUsage: true,
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE:  runUp,
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE:  runDown,
	}
	downCmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		RunE:  runStatus,
	}

	migrateCmd.AddCommand(upCmd, downCmd, statusCmd)
	rootCmd.AddCommand(migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runUp(cmd *cobra.Command, args []string) error {
	m, closeDB, err := openMigrator(cmd.Context(), true)
	if err != nil {
		ui.PrintError(err.Error())
		return err
	}
	defer closeDB()

	results, err := m.Up(cmd.Context())
	if err != nil {
		ui.PrintError(err.Error())
		return err
	}

	ui.PrintApplied(results)
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	yes, _ := cmd.Flags().GetBool("yes")

	if !yes {
		ok, err := ui.Confirm("Roll back the latest migration?", "Tables created by it are dropped together with their rows.")
		if errors.Is(err, huh.ErrUserAborted) || (err == nil && !ok) {
			ui.PrintInfo("Aborted.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("confirm: %w", err)
		}
	}

	m, closeDB, err := openMigrator(cmd.Context(), false)
	if err != nil {
		ui.PrintError(err.Error())
		return err
	}
	defer closeDB()

	result, err := m.Down(cmd.Context())
	if err != nil {
		ui.PrintError(err.Error())
		return err
	}

	ui.PrintRolledBack(result)
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	m, closeDB, err := openMigrator(cmd.Context(), false)
	if err != nil {
		ui.PrintError(err.Error())
		return err
	}
	defer closeDB()

	statuses, err := m.Status(cmd.Context())
	if err != nil {
		ui.PrintError(err.Error())
		return err
	}

	ui.PrintStatus(statuses)
	return nil
}

// openMigrator connects using the same DB_* settings as the API server.
func openMigrator(ctx context.Context, createDir bool) (*database.Migrator, func(), error) {
	cfg, err := config.LoadDatabase()
	if err != nil {
		return nil, nil, fmt.Errorf("load database config: %w", err)
	}
	ui.PrintTarget(cfg)

	if createDir && cfg.UsesSQLiteFile() {
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := database.Open(ctx, cfg.Driver, cfg.ConnectionString())
	if err != nil {
		return nil, nil, err
	}

	m, err := database.NewMigrator(db.DB, cfg.Driver)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	return m, func() { db.Close() }, nil
}
