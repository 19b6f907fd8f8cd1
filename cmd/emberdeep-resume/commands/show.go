package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emberdeep/emberdeep-resume/internal/saves"
)

var showPayload bool

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [save-file]",
		Short: "Show saves or one save's details without TUI",
		Long: `Show save information in a non-interactive format.
Without arguments: lists all saves, newest first
With a save file (a path, or a filename inside the save directory):
verifies that save's integrity and shows its details`,
		RunE: runShow,
	}

	cmd.Flags().BoolVar(&showPayload, "payload", false, "Dump the full decoded payload as JSON")
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	switch len(args) {
	case 0:
		return showSaves()
	case 1:
		return showSave(args[0])
	default:
		return fmt.Errorf("too many arguments. Usage: emberdeep-resume show [save-file]")
	}
}

func showSaves() error {
	dir, err := resolveSaveDir()
	if err != nil {
		return err
	}

	catalog := saves.Build(context.Background(), dir)
	if catalog.Len() == 0 {
		fmt.Println("No saves found")
		return nil
	}

	fmt.Println("Saves:")
	fmt.Println("======")
	for i, rec := range catalog.Records() {
		fmt.Printf("%d. %s\n", i+1, rec.Filename)
		fmt.Printf("   Character: %s\n", rec.CharacterName)
		fmt.Printf("   Scene: %s\n", rec.Scene)
		fmt.Printf("   Saved: %s\n", rec.SavedAt)
		fmt.Println()
	}

	return nil
}

func showSave(name string) error {
	path := name
	if !strings.ContainsRune(name, os.PathSeparator) {
		dir, err := resolveSaveDir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, name)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read save file: %w", err)
	}

	dec, err := saves.Decode(raw)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}

	fmt.Printf("Save: %s\n", path)
	fmt.Println("==========================================")
	fmt.Printf("Character: %s\n", dec.CharacterName)
	fmt.Printf("Scene: %s\n", dec.Scene)
	fmt.Printf("Saved: %s\n", dec.SavedAt)

	// The strict load verifies the state checksum on top of the decode.
	if _, err := saves.Load(path); err != nil {
		fmt.Printf("Integrity: FAILED (%v)\n", err)
	} else {
		fmt.Println("Integrity: OK")
	}

	if showPayload {
		pretty, err := json.MarshalIndent(dec.Payload, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to render payload: %w", err)
		}
		fmt.Printf("\n%s\n", pretty)
	}

	return nil
}
