package saves

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/tidwall/gjson"
)

// Decode failure reasons. ErrBadCompression and ErrBadStructure mean the
// file's bytes are unusable; ErrWrongKind means the file decoded fine but
// belongs to a different save variant and should be filtered out, not
// reported.
var (
	ErrBadCompression = errors.New("save data is not a valid zlib stream")
	ErrBadStructure   = errors.New("save data is not valid JSON")
	ErrWrongKind      = errors.New("save is not a narrative game save")
)

// unknownField is the display value for summary fields the save document
// does not carry.
const unknownField = "Unknown"

// DecodedSave bundles the parsed save document with the display summary
// extracted from it. The payload is the full document, untouched, so it
// can be handed to the game on commit without re-reading the file.
type DecodedSave struct {
	Payload       map[string]interface{}
	SavedAt       string
	Scene         string
	CharacterName string
}

// Decode decompresses and parses one save file's bytes. It is a pure
// function of its input: it either returns a complete payload+summary
// bundle or an error, never a partial record. Missing summary fields are
// not errors; they default to "Unknown".
func Decode(raw []byte) (*DecodedSave, error) {
	plain, err := decompress(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCompression, err)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(plain, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadStructure, err)
	}

	if kind, _ := payload["game_type"].(string); kind != GameKindNarrative {
		// Absent tag and mismatched tag are both "not ours".
		return nil, ErrWrongKind
	}

	return &DecodedSave{
		Payload:       payload,
		SavedAt:       summaryField(plain, "metadata.saved_at"),
		Scene:         summaryField(plain, "narrative_state.current_scene"),
		CharacterName: summaryField(plain, "narrative_state.character.name"),
	}, nil
}

// decompress inflates a zlib stream fully into memory.
func decompress(raw []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	plain, err := io.ReadAll(zr)
	if err != nil {
		return nil, err
	}
	return plain, nil
}

// summaryField reads a nested string field from the decompressed document,
// falling back to "Unknown" when the path is absent or not a string.
func summaryField(doc []byte, path string) string {
	if v := gjson.GetBytes(doc, path); v.Type == gjson.String && v.Str != "" {
		return v.Str
	}
	return unknownField
}
