package saves

import (
	"os"
	"os/exec"
	"path/filepath"
)

// LaunchGame hands the selected save file to the Emberdeep binary for full
// game-state reconstruction.
func LaunchGame(savePath string) error {
	gamePath := "emberdeep"

	// Check if the game is in PATH
	if _, err := exec.LookPath("emberdeep"); err != nil {
		// Check common installation locations
		homeDir, _ := os.UserHomeDir()
		possiblePaths := []string{
			filepath.Join(homeDir, ".emberdeep", "bin", "emberdeep"),
			"/usr/local/bin/emberdeep",
			"/opt/homebrew/bin/emberdeep",
		}

		for _, path := range possiblePaths {
			if _, err := os.Stat(path); err == nil {
				gamePath = path
				break
			}
		}
	}

	cmd := exec.Command(gamePath, "--load", savePath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
