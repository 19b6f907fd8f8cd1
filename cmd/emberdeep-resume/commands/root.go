package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/emberdeep/emberdeep-resume/internal/saves"
	"github.com/emberdeep/emberdeep-resume/internal/tui"
)

var (
	savesDir  string
	debugMode bool
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "emberdeep-resume",
		Short: "Browse and load recent Emberdeep save games",
		Long:  `emberdeep-resume is a TUI application for browsing Emberdeep save files and resuming a saved game.`,
		RunE:  runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&savesDir, "saves-dir", "", "Save directory (defaults to ~/.emberdeep/saves)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Run in debug mode (list saves without TUI)")
	rootCmd.AddCommand(NewShowCommand())
	rootCmd.AddCommand(NewHistoryCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resolveSaveDir honors the --saves-dir override, falling back to the
// conventional per-user directory.
func resolveSaveDir() (string, error) {
	if savesDir != "" {
		return savesDir, nil
	}
	return saves.DefaultSaveDir()
}

func runTUI(cmd *cobra.Command, args []string) error {
	dir, err := resolveSaveDir()
	if err != nil {
		return err
	}

	// Debug mode: just list saves without TUI
	if debugMode {
		return runDebugMode(dir)
	}

	selected, err := tui.ShowTUI(dir)
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	if selected == nil {
		// Cancelled: dismiss without loading anything.
		return nil
	}

	return saves.LaunchGame(selected.Path)
}

func runDebugMode(dir string) error {
	catalog := saves.Build(context.Background(), dir)
	if catalog.Len() == 0 {
		fmt.Println("No saves found")
		return nil
	}

	fmt.Println("=== Debug Mode: Saves ===")
	for i, rec := range catalog.Records() {
		fmt.Printf("\n%d. %s\n", i+1, rec.Filename)
		fmt.Printf("   Character: %s\n", rec.CharacterName)
		fmt.Printf("   Scene: %s\n", rec.Scene)
		fmt.Printf("   Saved: %s\n", rec.SavedAt)
		fmt.Printf("   Modified: %s\n", rec.ModTime.Format("2006-01-02 15:04"))
	}
	return nil
}
