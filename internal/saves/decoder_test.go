package saves

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

// encodeSave compresses a JSON document the way the game writes saves.
func encodeSave(t *testing.T, doc map[string]interface{}) []byte {
	t.Helper()
	plain, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("failed to marshal document: %v", err)
	}
	raw, err := compress(plain)
	if err != nil {
		t.Fatalf("failed to compress document: %v", err)
	}
	return raw
}

func narrativeDoc(scene, character string) map[string]interface{} {
	return map[string]interface{}{
		"game_type": "narrative",
		"metadata": map[string]interface{}{
			"saved_at": "2026-01-05 18:30",
		},
		"narrative_state": map[string]interface{}{
			"current_scene": scene,
			"character": map[string]interface{}{
				"name": character,
			},
		},
	}
}

func TestDecodeValidSave(t *testing.T) {
	dec, err := Decode(encodeSave(t, narrativeDoc("Cave", "Mira")))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if dec.Scene != "Cave" {
		t.Errorf("Scene = %q, want Cave", dec.Scene)
	}
	if dec.CharacterName != "Mira" {
		t.Errorf("CharacterName = %q, want Mira", dec.CharacterName)
	}
	if dec.SavedAt != "2026-01-05 18:30" {
		t.Errorf("SavedAt = %q, want the document timestamp", dec.SavedAt)
	}
	if dec.Payload == nil {
		t.Error("Payload should be retained")
	}
}

func TestDecodePayloadIntact(t *testing.T) {
	doc := narrativeDoc("Cave", "Mira")
	doc["narrative_state"].(map[string]interface{})["flags"] = map[string]interface{}{
		"met_hermit": true,
		"torches":    float64(3),
	}

	raw := encodeSave(t, doc)
	dec, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	// The payload must equal the document as JSON sees it.
	plain, _ := json.Marshal(doc)
	var want map[string]interface{}
	if err := json.Unmarshal(plain, &want); err != nil {
		t.Fatalf("failed to unmarshal reference document: %v", err)
	}
	if !reflect.DeepEqual(dec.Payload, want) {
		t.Errorf("Payload diverged from the decoded document:\ngot  %#v\nwant %#v", dec.Payload, want)
	}
}

func TestDecodeBadCompression(t *testing.T) {
	valid := encodeSave(t, narrativeDoc("Cave", "Mira"))

	cases := []struct {
		name string
		raw  []byte
	}{
		{"empty", nil},
		{"garbage", []byte("these bytes were never compressed")},
		{"truncated", valid[:len(valid)-5]},
	}

	for _, tc := range cases {
		_, err := Decode(tc.raw)
		if err == nil {
			t.Errorf("%s: Decode should fail", tc.name)
			continue
		}
		if !errors.Is(err, ErrBadCompression) {
			t.Errorf("%s: error = %v, want ErrBadCompression", tc.name, err)
		}
	}
}

func TestDecodeBadStructure(t *testing.T) {
	raw, err := compress([]byte("definitely not a JSON document"))
	if err != nil {
		t.Fatalf("failed to compress: %v", err)
	}

	_, err = Decode(raw)
	if !errors.Is(err, ErrBadStructure) {
		t.Errorf("error = %v, want ErrBadStructure", err)
	}
}

func TestDecodeWrongKind(t *testing.T) {
	arena := narrativeDoc("Pit", "Brund")
	arena["game_type"] = "arena"

	untagged := narrativeDoc("Cave", "Mira")
	delete(untagged, "game_type")

	// A mismatched tag and a missing tag are both "not ours".
	for name, doc := range map[string]map[string]interface{}{
		"mismatched": arena,
		"missing":    untagged,
	} {
		_, err := Decode(encodeSave(t, doc))
		if !errors.Is(err, ErrWrongKind) {
			t.Errorf("%s tag: error = %v, want ErrWrongKind", name, err)
		}
	}
}

func TestDecodeMissingSectionsDefault(t *testing.T) {
	dec, err := Decode(encodeSave(t, map[string]interface{}{
		"game_type": "narrative",
	}))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	for field, got := range map[string]string{
		"SavedAt":       dec.SavedAt,
		"Scene":         dec.Scene,
		"CharacterName": dec.CharacterName,
	} {
		if got != "Unknown" {
			t.Errorf("%s = %q, want Unknown", field, got)
		}
	}
}

func TestDecodeNamelessCharacterDefaults(t *testing.T) {
	doc := narrativeDoc("Cave", "Mira")
	delete(doc["narrative_state"].(map[string]interface{})["character"].(map[string]interface{}), "name")

	dec, err := Decode(encodeSave(t, doc))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if dec.CharacterName != "Unknown" {
		t.Errorf("CharacterName = %q, want Unknown", dec.CharacterName)
	}
	if dec.Scene != "Cave" {
		t.Errorf("Scene = %q, want Cave", dec.Scene)
	}
}
