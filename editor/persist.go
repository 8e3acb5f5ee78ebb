package editor

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/worldkit/event"
	"github.com/lixenwraith/worldkit/worldfile"
)

// Serialize renders the placed objects as an ordered record list
func (ed *Editor) Serialize() worldfile.World {
	w := worldfile.World{Objects: make([]worldfile.Object, 0, len(ed.placed))}
	for _, p := range ed.placed {
		pos := p.Object.Position
		w.Objects = append(w.Objects, worldfile.Object{
			Type:            worldfile.TypeStaticObject,
			Model:           p.Model,
			Path:            p.Key,
			Position:        worldfile.Vec3{X: pos.X(), Y: pos.Y(), Z: pos.Z()},
			Rotation:        worldfile.Vec3{Y: p.RotationY},
			Scale:           worldfile.Vec3{X: p.Scale.X(), Y: p.Scale.Y(), Z: p.Scale.Z()},
			InteractionID:   p.InteractionID,
			InteractionData: p.InteractionData,
		})
	}
	return w
}

// SaveLocal writes the world into the store under name
func (ed *Editor) SaveLocal(name string) error {
	if name == "" {
		return fmt.Errorf("world name required")
	}
	if err := ed.store.Save(name, ed.Serialize()); err != nil {
		return err
	}
	ed.worldName = name
	ed.bus.Emit(event.TopicWorldSaved, name)
	ed.bus.Emit(event.TopicCue, event.CueSave)
	ed.bus.Emit(event.TopicNotify, "saved world "+name)
	return nil
}

// SaveFile writes the world to a standalone file
func (ed *Editor) SaveFile(path string) error {
	if err := worldfile.SaveFile(path, ed.Serialize()); err != nil {
		return err
	}
	ed.bus.Emit(event.TopicCue, event.CueSave)
	ed.bus.Emit(event.TopicNotify, "exported world to "+path)
	return nil
}

// LoadLocal replaces the session with the named stored world
func (ed *Editor) LoadLocal(name string) error {
	w, err := ed.store.Load(name)
	if err != nil {
		return err
	}
	ed.replay(w, name)
	return nil
}

// LoadFile replaces the session with a world file's contents
func (ed *Editor) LoadFile(path string) error {
	w, err := worldfile.LoadFile(path)
	if err != nil {
		return err
	}
	ed.replay(w, path)
	return nil
}

// replay clears the scene and re-places every record through the same
// placement path the stamp tool uses, bypassing occupancy: a saved layout
// was valid when written and must always load whole.
func (ed *Editor) replay(w worldfile.World, name string) {
	ed.clearSelection()
	for _, p := range ed.placed {
		ed.grid.Remove(p)
		p.Object.Dispose()
	}
	ed.placed = nil
	ed.preview = nil

	for _, rec := range w.Objects {
		cell := CellOf(rec.Position.X, rec.Position.Z)
		p, err := ed.placeAt(rec.Path, cell, true)
		if err != nil {
			ed.bus.Emit(event.TopicNotify, "missing asset "+rec.Path)
			continue
		}
		p.RotationY = rec.Rotation.Y
		p.Object.Rotation = mgl64.Vec3{rec.Rotation.X, rec.Rotation.Y, rec.Rotation.Z}
		if rec.Scale != (worldfile.Vec3{}) {
			p.Scale = mgl64.Vec3{rec.Scale.X, rec.Scale.Y, rec.Scale.Z}
			p.Object.Scale = p.Scale
		}
		if rec.InteractionID != "" {
			p.InteractionID = rec.InteractionID
			p.InteractionData = rec.InteractionData
		}
	}
	ed.SetWorldName(name)
	ed.bus.Emit(event.TopicNotify, fmt.Sprintf("loaded %s (%d objects)", name, len(ed.placed)))
}
