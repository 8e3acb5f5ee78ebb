package asset

import (
	"encoding/json"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/worldkit/scene"
)

// Class tags what a model occupies on the editor grid
type Class string

const (
	ClassFloor Class = "floor"
	ClassWall  Class = "wall"
	ClassProp  Class = "prop"
)

// NonFloor reports whether this class competes for the non-floor slot
func (c Class) NonFloor() bool { return c != ClassFloor }

// modelFile is the on-disk model descriptor. The real geometry lives with
// the renderer; the descriptor carries what the logic layer needs: part
// bounds, surface properties and the grid class.
type modelFile struct {
	Name  string     `json:"name"`
	Class Class      `json:"class,omitempty"`
	Parts []partFile `json:"parts"`
}

type partFile struct {
	Name        string     `json:"name,omitempty"`
	Min         [3]float64 `json:"min"`
	Max         [3]float64 `json:"max"`
	Color       uint32     `json:"color"`
	Map         string     `json:"map,omitempty"`
	Transparent bool       `json:"transparent,omitempty"`
	Opacity     *float64   `json:"opacity,omitempty"`
	Side        string     `json:"side,omitempty"` // "front" | "back" | "double"
}

func parseModel(key string, data []byte) (*modelFile, error) {
	var mf modelFile
	if err := json.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("parse model %s: %w", key, err)
	}
	if len(mf.Parts) == 0 {
		return nil, fmt.Errorf("model %s: no parts", key)
	}
	if mf.Class == "" {
		mf.Class = ClassProp
	}
	if mf.Name == "" {
		mf.Name = key
	}
	return &mf, nil
}

func sideFromString(s string) scene.Side {
	switch s {
	case "back":
		return scene.BackSide
	case "double":
		return scene.DoubleSide
	default:
		return scene.FrontSide
	}
}

// buildTemplate turns a descriptor into a scene subtree. Materials are
// routed through the pool so every instance of visually identical parts
// shares one pooled material.
func (l *Loader) buildTemplate(mf *modelFile) (*scene.Object, error) {
	root := scene.NewObject(mf.Name)
	for _, p := range mf.Parts {
		part := scene.NewObject(p.Name)
		geo := scene.NewGeometry(scene.Box{
			Min: mgl64.Vec3{p.Min[0], p.Min[1], p.Min[2]},
			Max: mgl64.Vec3{p.Max[0], p.Max[1], p.Max[2]},
		})
		// Clones share this geometry with the template; only the loader
		// may release it
		geo.Cached = true
		mat := scene.NewMaterial(p.Name, p.Color)
		mat.Transparent = p.Transparent
		if p.Opacity != nil {
			mat.Opacity = *p.Opacity
		}
		mat.Side = sideFromString(p.Side)
		if p.Map != "" {
			tex, err := l.texture(p.Map)
			if err != nil {
				return nil, fmt.Errorf("model %s: %w", mf.Name, err)
			}
			mat.Map = tex
		}
		part.Mesh = &scene.Mesh{
			Geometry:  geo,
			Materials: []*scene.Material{l.pool.GetOrCreateStandard(mat)},
		}
		root.Add(part)
	}
	return root, nil
}
