package saves

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func testState() map[string]interface{} {
	return map[string]interface{}{
		"current_scene": "Cave",
		"character": map[string]interface{}{
			"id":   "mira",
			"name": "Mira",
		},
		"turn": float64(12),
	}
}

func TestWriteThenLoad(t *testing.T) {
	dir := t.TempDir()

	path, err := Write(dir, testState(), "mira.sav")
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	payload, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if payload["game_type"] != GameKindNarrative {
		t.Errorf("game_type = %v, want %q", payload["game_type"], GameKindNarrative)
	}
	if payload["version"] != float64(SaveFormatVersion) {
		t.Errorf("version = %v, want %d", payload["version"], SaveFormatVersion)
	}

	state, ok := payload["narrative_state"].(map[string]interface{})
	if !ok {
		t.Fatal("narrative_state missing from payload")
	}
	if !reflect.DeepEqual(state, testState()) {
		t.Errorf("state diverged after round trip:\ngot  %#v\nwant %#v", state, testState())
	}
}

func TestWrittenSaveIsCatalogable(t *testing.T) {
	dir := t.TempDir()

	path, err := Write(dir, testState(), "")
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written save: %v", err)
	}
	dec, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if dec.CharacterName != "Mira" {
		t.Errorf("CharacterName = %q, want Mira", dec.CharacterName)
	}
	if dec.Scene != "Cave" {
		t.Errorf("Scene = %q, want Cave", dec.Scene)
	}
	if dec.SavedAt == "Unknown" {
		t.Error("SavedAt should be stamped by Write")
	}
}

func TestWriteDefaultFilename(t *testing.T) {
	dir := t.TempDir()

	path, err := Write(dir, testState(), "")
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	name := filepath.Base(path)
	if !strings.HasPrefix(name, "mira_") {
		t.Errorf("filename = %q, want mira_<timestamp> prefix", name)
	}
	if !strings.HasSuffix(name, SaveExtension) {
		t.Errorf("filename = %q, want %s extension", name, SaveExtension)
	}
}

func TestWriteCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "saves")

	if _, err := Write(dir, testState(), "mira.sav"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "mira.sav")); err != nil {
		t.Errorf("save file missing: %v", err)
	}
}

func TestLoadChecksumMismatch(t *testing.T) {
	dir := t.TempDir()

	// A tampered document: valid kind and structure, wrong checksum.
	plain, err := json.Marshal(map[string]interface{}{
		"game_type": GameKindNarrative,
		"version":   SaveFormatVersion,
		"checksum":  "bogus",
		"narrative_state": map[string]interface{}{
			"current_scene": "Cave",
		},
	})
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	raw, err := compress(plain)
	if err != nil {
		t.Fatalf("failed to compress: %v", err)
	}
	path := filepath.Join(dir, "tampered.sav")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("failed to write: %v", err)
	}

	if _, err := Load(path); !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("error = %v, want ErrChecksumMismatch", err)
	}
}

func TestLoadMissingChecksum(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nochecksum.sav")
	if err := os.WriteFile(path, encodeSave(t, narrativeDoc("Cave", "Mira")), 0o644); err != nil {
		t.Fatalf("failed to write: %v", err)
	}

	// The strict load rejects what the tolerant catalog decode accepts.
	if _, err := Load(path); !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("error = %v, want ErrChecksumMismatch", err)
	}
}

func TestLoadRejectsForeignKind(t *testing.T) {
	dir := t.TempDir()
	arena := narrativeDoc("Pit", "Brund")
	arena["game_type"] = "arena"
	path := filepath.Join(dir, "arena.sav")
	if err := os.WriteFile(path, encodeSave(t, arena), 0o644); err != nil {
		t.Fatalf("failed to write: %v", err)
	}

	if _, err := Load(path); !errors.Is(err, ErrWrongKind) {
		t.Errorf("error = %v, want ErrWrongKind", err)
	}
}
