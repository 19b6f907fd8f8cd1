package saves

import (
	"fmt"
	"os"
	"path/filepath"
)

// SaveExtension is the fixed extension for Emberdeep save files.
const SaveExtension = ".sav"

// GameKindNarrative is the game_type tag of narrative saves. Files in the
// save directory carrying a different tag belong to other variants and are
// not listed.
const GameKindNarrative = "narrative"

// HistoryDBName is the filename of the save history sidecar database,
// kept next to the save files.
const HistoryDBName = "game.db"

// DefaultSaveDir returns the conventional save directory,
// ~/.emberdeep/saves. Callers pass the directory into Build explicitly so
// tests can point at a temporary one.
func DefaultSaveDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".emberdeep", "saves"), nil
}
