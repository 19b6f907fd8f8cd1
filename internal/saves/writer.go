package saves

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zlib"
)

// SaveFormatVersion is stamped into every save document this tool writes.
const SaveFormatVersion = 1

// ErrChecksumMismatch means the save decoded but its narrative state does
// not match the recorded checksum. Load reports it; the tolerant summary
// decode used by the catalog does not verify checksums.
var ErrChecksumMismatch = errors.New("save checksum mismatch")

// Write serializes a narrative game state into a compressed save file
// under dir and returns the written path. The document is stamped with the
// narrative kind tag, the format version, a saved_at timestamp, and a
// sha256 checksum of the state. An empty filename derives
// <characterID>_<timestamp>.sav.
func Write(dir string, state map[string]interface{}, filename string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create save directory: %w", err)
	}

	if filename == "" {
		filename = defaultFilename(state)
	}

	doc := map[string]interface{}{
		"game_type": GameKindNarrative,
		"version":   SaveFormatVersion,
		"checksum":  stateChecksum(state),
		"metadata": map[string]interface{}{
			"saved_at": time.Now().UTC().Format(time.RFC3339),
		},
		"narrative_state": state,
	}

	plain, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize save: %w", err)
	}

	raw, err := compress(plain)
	if err != nil {
		return "", fmt.Errorf("failed to compress save: %w", err)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("failed to write save file: %w", err)
	}
	return path, nil
}

// Load reads, decodes, and integrity-checks one save file, returning its
// full payload. Unlike the catalog's summary decode it is strict: a
// missing or wrong checksum is an error.
func Load(path string) (map[string]interface{}, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read save file: %w", err)
	}

	dec, err := Decode(raw)
	if err != nil {
		return nil, err
	}

	state, _ := dec.Payload["narrative_state"].(map[string]interface{})
	want, _ := dec.Payload["checksum"].(string)
	if want == "" || stateChecksum(state) != want {
		return nil, fmt.Errorf("%s: %w", path, ErrChecksumMismatch)
	}
	return dec.Payload, nil
}

// compress deflates plain bytes as a zlib stream at level 6, matching the
// on-disk save format.
func compress(plain []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, 6)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(plain); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// stateChecksum hashes the canonical JSON encoding of the narrative state.
// encoding/json sorts map keys, so the encoding is stable across writes.
func stateChecksum(state map[string]interface{}) string {
	canonical, _ := json.Marshal(state)
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:])
}

// defaultFilename derives <characterID>_<timestamp>.sav, falling back to
// "game" when the state carries no character id.
func defaultFilename(state map[string]interface{}) string {
	id := "game"
	if character, ok := state["character"].(map[string]interface{}); ok {
		if s, ok := character["id"].(string); ok && s != "" {
			id = s
		}
	}
	return fmt.Sprintf("%s_%s%s", id, time.Now().Format("20060102_150405"), SaveExtension)
}
