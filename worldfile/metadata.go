package worldfile

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoopOnce and LoopRepeat are the recognized clip loop modes
const (
	LoopOnce   = "once"
	LoopRepeat = "repeat"
)

// AnimationClip describes one named clip of a model
type AnimationClip struct {
	Name     string  `json:"name"`
	Index    *int    `json:"index,omitempty"`
	Loop     string  `json:"loop,omitempty"` // "once" | "repeat", default repeat
	Enabled  *bool   `json:"enabled,omitempty"`
	Duration float64 `json:"duration,omitempty"`
}

// AnimationEntry holds the clips for one model
type AnimationEntry struct {
	Path       string          `json:"path"`
	Animations []AnimationClip `json:"animations"`
}

// AnimationMeta is category -> model name -> entry
type AnimationMeta map[string]map[string]AnimationEntry

// Lookup finds a model's animation entry in any category
func (m AnimationMeta) Lookup(model string) (AnimationEntry, bool) {
	for _, models := range m {
		if e, ok := models[model]; ok {
			return e, true
		}
	}
	return AnimationEntry{}, false
}

// LightSpec mirrors the properties-metadata light block
type LightSpec struct {
	Type       string  `json:"type"` // "point" | "spot" | "rectArea"
	Color      uint32  `json:"color"`
	Intensity  float64 `json:"intensity"`
	Distance   float64 `json:"distance"`
	Decay      float64 `json:"decay"`
	Angle      float64 `json:"angle,omitempty"`
	Penumbra   float64 `json:"penumbra,omitempty"`
	CastShadow bool    `json:"castShadow"`
}

// PropertiesEntry carries optional per-model defaults
type PropertiesEntry struct {
	Light           *LightSpec     `json:"light,omitempty"`
	InteractionID   string         `json:"interactionId,omitempty"`
	InteractionData map[string]any `json:"interactionData,omitempty"`
}

// PropertiesMeta is category -> model name -> entry
type PropertiesMeta map[string]map[string]PropertiesEntry

// Lookup finds a model's properties entry in any category
func (m PropertiesMeta) Lookup(model string) (PropertiesEntry, bool) {
	for _, models := range m {
		if e, ok := models[model]; ok {
			return e, true
		}
	}
	return PropertiesEntry{}, false
}

// LoadAnimationMeta reads animation metadata; a missing file is not an
// error, models simply have no clips
func LoadAnimationMeta(path string) (AnimationMeta, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return AnimationMeta{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read animation metadata: %w", err)
	}
	var m AnimationMeta
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse animation metadata: %w", err)
	}
	return m, nil
}

// LoadPropertiesMeta reads properties metadata; missing file = empty
func LoadPropertiesMeta(path string) (PropertiesMeta, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return PropertiesMeta{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read properties metadata: %w", err)
	}
	var m PropertiesMeta
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse properties metadata: %w", err)
	}
	return m, nil
}
