// Package editor implements the grid-based world editor: tool modes,
// pointer gestures, occupancy, selection, highlight, and persistence of
// placed objects.
package editor

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/lixenwraith/worldkit/asset"
	"github.com/lixenwraith/worldkit/parameter"
	"github.com/lixenwraith/worldkit/scene"
)

// ErrOccupied rejects placement into a cell whose slot is already taken
var ErrOccupied = errors.New("cell occupied")

// Cell is an integer-quantized floor position
type Cell struct {
	X, Z int
}

// CellOf snaps a world position to its nearest cell
func CellOf(x, z float64) Cell {
	return Cell{
		X: int(math.Round(x / parameter.CellSize)),
		Z: int(math.Round(z / parameter.CellSize)),
	}
}

// Center returns the cell's world-space center on the floor plane
func (c Cell) Center() mgl64.Vec3 {
	return mgl64.Vec3{float64(c.X) * parameter.CellSize, 0, float64(c.Z) * parameter.CellSize}
}

// Placed is one editable object record: the live scene subtree plus
// everything persistence needs to recreate it
type Placed struct {
	ID    uuid.UUID
	Key   string // asset path
	Model string
	Class asset.Class

	Object *scene.Object
	Cell   Cell

	RotationY float64
	Scale     mgl64.Vec3

	InteractionID   string
	InteractionData map[string]any

	// originals preserves per-mesh materials while highlighted
	originals map[*scene.Mesh][]*scene.Material
}

// slot holds at most one floor and one non-floor record per cell
type slot struct {
	floor  *Placed
	object *Placed
}

// Grid is the sparse occupancy map
type Grid struct {
	cells map[Cell]slot
}

// NewGrid creates an empty grid
func NewGrid() *Grid {
	return &Grid{cells: make(map[Cell]slot)}
}

// Free reports whether class can be placed into c
func (g *Grid) Free(c Cell, class asset.Class) bool {
	s := g.cells[c]
	if class.NonFloor() {
		return s.object == nil
	}
	return s.floor == nil
}

// Place inserts p at its cell, rejecting an occupied slot
func (g *Grid) Place(p *Placed) error {
	if !g.Free(p.Cell, p.Class) {
		return ErrOccupied
	}
	g.force(p)
	return nil
}

// ForcePlace inserts p unconditionally, evicting any slot holder. Used by
// the load path, where a saved layout is valid by construction.
func (g *Grid) ForcePlace(p *Placed) {
	g.force(p)
}

func (g *Grid) force(p *Placed) {
	s := g.cells[p.Cell]
	if p.Class.NonFloor() {
		s.object = p
	} else {
		s.floor = p
	}
	g.cells[p.Cell] = s
}

// Remove clears p from its cell slot if it is the current holder
func (g *Grid) Remove(p *Placed) {
	s, ok := g.cells[p.Cell]
	if !ok {
		return
	}
	switch {
	case s.object == p:
		s.object = nil
	case s.floor == p:
		s.floor = nil
	default:
		return
	}
	if s.object == nil && s.floor == nil {
		delete(g.cells, p.Cell)
	} else {
		g.cells[p.Cell] = s
	}
}

// ObjectAt returns the non-floor record at c, nil if none
func (g *Grid) ObjectAt(c Cell) *Placed { return g.cells[c].object }

// FloorAt returns the floor record at c, nil if none
func (g *Grid) FloorAt(c Cell) *Placed { return g.cells[c].floor }

// TopAt returns the topmost record at c: the non-floor object when
// present, otherwise the floor
func (g *Grid) TopAt(c Cell) *Placed {
	s := g.cells[c]
	if s.object != nil {
		return s.object
	}
	return s.floor
}

// Len counts occupied slots across all cells
func (g *Grid) Len() int {
	n := 0
	for _, s := range g.cells {
		if s.object != nil {
			n++
		}
		if s.floor != nil {
			n++
		}
	}
	return n
}
