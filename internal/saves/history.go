package saves

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/emberdeep/emberdeep-resume/internal/db"
	"github.com/emberdeep/emberdeep-resume/pkg/models"
)

// History is the sidecar database kept next to the save files, recording
// every save the tool has catalogued. It answers recency and per-character
// queries without re-decoding any file.
type History struct {
	db *sql.DB
}

// CharacterCount aggregates how many saves a character has.
type CharacterCount struct {
	Name  string
	Saves int
}

// OpenHistory opens the history database under the given save directory.
func OpenHistory(dir string) (*History, error) {
	database, err := db.Open(filepath.Join(dir, HistoryDBName))
	if err != nil {
		return nil, err
	}
	return &History{db: database}, nil
}

// Close releases the database connection.
func (h *History) Close() error {
	return h.db.Close()
}

// Sync records every catalog entry, replacing any previous row for the
// same path.
func (h *History) Sync(catalog *Catalog) error {
	for _, rec := range catalog.Records() {
		if _, err := h.db.Exec(
			`DELETE FROM save_history WHERE path = ?`, rec.Path,
		); err != nil {
			return fmt.Errorf("failed to replace history row: %w", err)
		}
		if _, err := h.db.Exec(
			`INSERT INTO save_history (id, path, filename, character_name, scene, saved_at, modified_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), rec.Path, rec.Filename,
			rec.CharacterName, rec.Scene, rec.SavedAt, rec.ModTime,
		); err != nil {
			return fmt.Errorf("failed to record save: %w", err)
		}
	}
	return nil
}

// Recent returns the most recently modified recorded saves, newest first.
// Payloads are not stored in the sidecar, so the returned records carry
// summary fields only.
func (h *History) Recent(limit int) ([]models.SaveRecord, error) {
	rows, err := h.db.Query(`
		SELECT path, filename, character_name, scene, saved_at, modified_at
		FROM save_history
		ORDER BY modified_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var records []models.SaveRecord
	for rows.Next() {
		var rec models.SaveRecord
		var modifiedAt sql.NullTime
		if err := rows.Scan(
			&rec.Path, &rec.Filename, &rec.CharacterName,
			&rec.Scene, &rec.SavedAt, &modifiedAt,
		); err != nil {
			continue
		}
		if modifiedAt.Valid {
			rec.ModTime = modifiedAt.Time
		} else {
			rec.ModTime = time.Time{}
		}
		records = append(records, rec)
	}
	return records, nil
}

// CharacterCounts aggregates recorded saves per character, most saves
// first.
func (h *History) CharacterCounts() ([]CharacterCount, error) {
	rows, err := h.db.Query(`
		SELECT character_name, COUNT(*) AS saves
		FROM save_history
		GROUP BY character_name
		ORDER BY COUNT(*) DESC, character_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate history: %w", err)
	}
	defer rows.Close()

	var counts []CharacterCount
	for rows.Next() {
		var c CharacterCount
		if err := rows.Scan(&c.Name, &c.Saves); err != nil {
			continue
		}
		counts = append(counts, c)
	}
	return counts, nil
}
