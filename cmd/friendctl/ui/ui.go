// Package ui renders friendctl output and prompts.
package ui

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/pressly/goose/v3"

	"github.com/redmonkez12/friend-app/internal/config"
)

// Confirm asks a yes/no question. It returns false when the prompt is aborted.
func Confirm(title, description string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		WithTheme(huh.ThemeCatppuccin()).
		Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}

// PrintTarget prints which database a command runs against.
func PrintTarget(cfg config.DatabaseConfig) {
	fmt.Println(titleStyle.Render("Friend App database"))
	fmt.Printf("  Driver: %s\n", cfg.Driver)
	if cfg.Driver == config.DriverSQLite {
		fmt.Printf("  Path:   %s\n", cfg.SQLitePath)
	} else {
		fmt.Printf("  Host:   %s:%s/%s\n", cfg.Host, cfg.Port, cfg.DBName)
	}
	fmt.Println()
}

// PrintApplied prints the migrations applied by an up run.
func PrintApplied(results []*goose.MigrationResult) {
	if len(results) == 0 {
		fmt.Println(subtleStyle.Render("No pending migrations."))
		return
	}
	for _, r := range results {
		fmt.Printf("  %s %s %s\n",
			successStyle.Render("applied"),
			filepath.Base(r.Source.Path),
			subtleStyle.Render(r.Duration.String()),
		)
	}
	fmt.Println()
	fmt.Println(successStyle.Render(fmt.Sprintf("%d migration(s) applied", len(results))))
}

// PrintRolledBack prints the result of a down run.
func PrintRolledBack(result *goose.MigrationResult) {
	fmt.Printf("  %s %s %s\n",
		pendingStyle.Render("rolled back"),
		filepath.Base(result.Source.Path),
		subtleStyle.Render(result.Duration.String()),
	)
}

// PrintStatus prints one line per known migration.
func PrintStatus(statuses []*goose.MigrationStatus) {
	for _, s := range statuses {
		state := pendingStyle.Render("pending")
		when := ""
		if s.State == goose.StateApplied {
			state = successStyle.Render("applied")
			when = subtleStyle.Render(s.AppliedAt.Format("2006-01-02 15:04:05"))
		}
		fmt.Printf("  %-7s %-24s %s\n", state, filepath.Base(s.Source.Path), when)
	}
}

// PrintInfo prints a dimmed informational line.
func PrintInfo(msg string) {
	fmt.Println(subtleStyle.Render(msg))
}

// PrintError prints an error message.
func PrintError(msg string) {
	fmt.Println(errorStyle.Render("Error: " + msg))
}
