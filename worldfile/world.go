// Package worldfile defines the JSON interchange formats: saved worlds,
// animation metadata, and per-model properties metadata.
package worldfile

import (
	"encoding/json"
	"fmt"
	"os"
)

// TypeStaticObject is the only placed-object record type
const TypeStaticObject = "staticObject"

// Vec3 is the on-disk vector representation
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Object is one persisted placed-object record
type Object struct {
	Type            string         `json:"type"`
	Model           string         `json:"model"`
	Path            string         `json:"path"`
	Position        Vec3           `json:"position"`
	Rotation        Vec3           `json:"rotation"`
	Scale           Vec3           `json:"scale"`
	InteractionID   string         `json:"interactionId,omitempty"`
	InteractionData map[string]any `json:"interactionData,omitempty"`
}

// World is a serialized editor world
type World struct {
	Objects []Object `json:"objects"`
}

// Encode renders the world as indented JSON
func (w World) Encode() ([]byte, error) {
	return json.MarshalIndent(w, "", "  ")
}

// Decode parses and validates world JSON. Records with an unknown type or
// an empty asset path make the whole document invalid: a malformed save
// must not half-load.
func Decode(data []byte) (World, error) {
	var w World
	if err := json.Unmarshal(data, &w); err != nil {
		return World{}, fmt.Errorf("parse world: %w", err)
	}
	for i, o := range w.Objects {
		if o.Type != TypeStaticObject {
			return World{}, fmt.Errorf("object %d: unknown type %q", i, o.Type)
		}
		if o.Path == "" {
			return World{}, fmt.Errorf("object %d: empty asset path", i)
		}
	}
	return w, nil
}

// LoadFile reads and decodes a world file
func LoadFile(path string) (World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return World{}, fmt.Errorf("read world file: %w", err)
	}
	return Decode(data)
}

// SaveFile writes the world to path
func SaveFile(path string, w World) error {
	data, err := w.Encode()
	if err != nil {
		return fmt.Errorf("encode world: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write world file: %w", err)
	}
	return nil
}
