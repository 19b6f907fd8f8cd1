package saves

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/emberdeep/emberdeep-resume/pkg/models"
)

// ErrNoSelection is returned by CommitSelection when the catalog holds no
// records. It is the only per-catalog error that crosses the package
// boundary; per-file decode failures never do.
var ErrNoSelection = errors.New("no save selected")

// Direction moves the selection cursor.
type Direction int

const (
	Previous Direction = iota
	Next
)

// Catalog is an ordered, cursor-selectable view over the narrative saves
// found in one directory at build time. It is a pure projection of the
// directory's contents: rebuilt on re-entry, never incrementally updated.
// A Catalog is not safe for concurrent use.
type Catalog struct {
	records []models.SaveRecord
	cursor  int
}

// Build enumerates *.sav files in dir (non-recursively), decodes each one,
// and returns the surviving records sorted by modification time, newest
// first. A missing or unreadable directory yields an empty catalog — the
// normal first-run outcome, not an error. Files that fail to decode or
// carry a foreign game_type tag are skipped silently; one corrupt save
// must never hide the others.
//
// Cancelling ctx stops the scan early; saves already decoded stay in the
// returned catalog.
func Build(ctx context.Context, dir string) *Catalog {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return &Catalog{}
	}

	var records []models.SaveRecord
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return newCatalog(records)
		default:
		}

		if entry.IsDir() || !strings.HasSuffix(entry.Name(), SaveExtension) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		dec, err := Decode(raw)
		if err != nil {
			// Corrupt or foreign file: skip, keep listing the rest.
			continue
		}

		records = append(records, models.SaveRecord{
			Path:          path,
			Filename:      entry.Name(),
			ModTime:       info.ModTime(),
			SavedAt:       dec.SavedAt,
			Scene:         dec.Scene,
			CharacterName: dec.CharacterName,
			Payload:       dec.Payload,
		})
	}

	return newCatalog(records)
}

// newCatalog sorts records newest-first, keeping enumeration order for
// equal timestamps, and places the cursor on the first record.
func newCatalog(records []models.SaveRecord) *Catalog {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ModTime.After(records[j].ModTime)
	})
	return &Catalog{records: records}
}

// Records returns the ordered save records.
func (c *Catalog) Records() []models.SaveRecord {
	return c.records
}

// Len returns the number of records in the catalog.
func (c *Catalog) Len() int {
	return len(c.records)
}

// Cursor returns the current selection index. Meaningless when the
// catalog is empty.
func (c *Catalog) Cursor() int {
	return c.cursor
}

// Selected returns the record under the cursor, or nil for an empty
// catalog.
func (c *Catalog) Selected() *models.SaveRecord {
	if len(c.records) == 0 {
		return nil
	}
	return &c.records[c.cursor]
}

// MoveSelection moves the cursor one position in the given direction,
// clamped to the record range with no wraparound. No-op on an empty
// catalog. Pure state mutation, no I/O.
func (c *Catalog) MoveSelection(d Direction) {
	if len(c.records) == 0 {
		return
	}
	switch d {
	case Previous:
		if c.cursor > 0 {
			c.cursor--
		}
	case Next:
		if c.cursor < len(c.records)-1 {
			c.cursor++
		}
	}
}

// CommitSelection returns the full decoded payload of the selected save,
// unchanged since decode, for downstream game-state reconstruction. The
// catalog itself is not mutated: if the caller aborts the load it can
// commit again or keep navigating. Returns ErrNoSelection when the
// catalog is empty.
func (c *Catalog) CommitSelection() (map[string]interface{}, error) {
	if len(c.records) == 0 {
		return nil, ErrNoSelection
	}
	return c.records[c.cursor].Payload, nil
}
