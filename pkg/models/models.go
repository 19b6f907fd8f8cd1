package models

import "time"

// SaveRecord represents one successfully decoded Emberdeep save file.
// A record is immutable once constructed; the catalog never builds a
// partial one — missing summary fields fall back to "Unknown" at decode
// time instead.
type SaveRecord struct {
	Path          string
	Filename      string
	ModTime       time.Time // filesystem mtime, used only for ordering
	SavedAt       string    // display string taken from the save document
	Scene         string
	CharacterName string
	Payload       map[string]interface{} // full decoded document, handed back on commit
}
