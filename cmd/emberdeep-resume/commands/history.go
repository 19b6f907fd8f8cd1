package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emberdeep/emberdeep-resume/internal/saves"
)

// NewHistoryCommand creates the history command
func NewHistoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Update and show the save history database",
		Long: `Record the current catalog into the history database kept next to
the save files, then show recent saves and per-character totals.`,
		RunE: runHistory,
	}
}

func runHistory(cmd *cobra.Command, args []string) error {
	dir, err := resolveSaveDir()
	if err != nil {
		return err
	}

	catalog := saves.Build(context.Background(), dir)

	history, err := saves.OpenHistory(dir)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer history.Close()

	if err := history.Sync(catalog); err != nil {
		return fmt.Errorf("failed to record saves: %w", err)
	}

	entries, err := history.Recent(20)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No saves recorded")
		return nil
	}

	fmt.Println("Recent saves:")
	fmt.Println("=============")
	for i, rec := range entries {
		fmt.Printf("%d. %s\n", i+1, rec.Filename)
		fmt.Printf("   Character: %s\n", rec.CharacterName)
		fmt.Printf("   Scene: %s\n", rec.Scene)
		fmt.Printf("   Modified: %s\n", rec.ModTime.Format("2006-01-02 15:04"))
		fmt.Println()
	}

	counts, err := history.CharacterCounts()
	if err != nil {
		return err
	}

	fmt.Println("Saves per character:")
	for _, c := range counts {
		fmt.Printf("   %s: %d\n", c.Name, c.Saves)
	}

	return nil
}
