package editor

import (
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/lixenwraith/worldkit/asset"
	"github.com/lixenwraith/worldkit/event"
	"github.com/lixenwraith/worldkit/input"
	"github.com/lixenwraith/worldkit/parameter"
)

// gesturePhase tracks the pointer state machine. Every gesture starts on
// pointer-down, mutates state while moving, and commits its side effect
// exactly once on pointer-up before returning to idle.
type gesturePhase uint8

const (
	phaseIdle gesturePhase = iota
	phasePanning
	phaseDragging
	phaseShaping
	phaseRectSelect
	phaseStamping
)

type gesture struct {
	phase gesturePhase

	anchorCell  Cell
	currentCell Cell

	// panning
	lastX, lastY int

	// stamping
	lastStamp Cell

	// dragging
	dragOrigin map[*Placed]dragState
	dragStart  mgl64.Vec3

	// rect-select: additive keeps the existing selection on commit
	additive bool
}

type dragState struct {
	cell Cell
	pos  mgl64.Vec3
}

func (ed *Editor) pointer(ev input.PointerEvent) {
	switch ev.Type {
	case input.PointerDown:
		ed.pointerDown(ev)
	case input.PointerMove:
		ed.pointerMove(ev)
	case input.PointerUp:
		ed.pointerUp(ev)
	}
}

func (ed *Editor) pointerDown(ev input.PointerEvent) {
	if ed.g.phase != phaseIdle {
		return
	}
	if ev.Secondary {
		ed.g.phase = phasePanning
		ed.g.lastX, ed.g.lastY = ev.X, ev.Y
		return
	}
	cell, ok := ed.cellAtScreen(ev.X, ev.Y)
	if !ok {
		return
	}

	switch ed.tool {
	case ToolStamp:
		ed.g.phase = phaseStamping
		ed.g.lastStamp = cell
		ed.stampAt(cell)

	case ToolLine, ToolSquare:
		ed.g.phase = phaseShaping
		ed.g.anchorCell = cell
		ed.g.currentCell = cell
		ed.refreshShapePreview()

	case ToolSelect:
		hit := ed.grid.TopAt(cell)
		if hit == nil {
			// Empty space begins a rectangular selection; without the
			// modifier the committed rect replaces the selection
			if !ev.Modifier {
				ed.clearSelection()
			}
			ed.g.phase = phaseRectSelect
			ed.g.anchorCell = cell
			ed.g.currentCell = cell
			ed.g.additive = ev.Modifier
			return
		}
		if ev.Modifier {
			ed.toggleSelection(hit)
			return
		}
		if !ed.isSelected(hit) {
			ed.selectOnly(hit)
		}
		ed.beginDrag(ev)
	}
}

// beginDrag lifts the selection off the grid so no object occupies two
// cells mid-drag and two selected objects may swap places
func (ed *Editor) beginDrag(ev input.PointerEvent) {
	start, ok := ed.cam.ScreenToFloor(float64(ev.X), float64(ev.Y))
	if !ok {
		return
	}
	ed.g.phase = phaseDragging
	ed.g.dragStart = start
	ed.g.dragOrigin = make(map[*Placed]dragState, len(ed.selection))
	for _, p := range ed.selection {
		ed.g.dragOrigin[p] = dragState{cell: p.Cell, pos: p.Object.Position}
		ed.grid.Remove(p)
	}
}

func (ed *Editor) pointerMove(ev input.PointerEvent) {
	switch ed.g.phase {
	case phasePanning:
		dx := float64(ev.X-ed.g.lastX) * parameter.EditorPanSpeed
		dz := float64(ev.Y-ed.g.lastY) * parameter.EditorPanSpeed
		shift := mgl64.Vec3{-dx, 0, -dz}
		ed.cam.Position = ed.cam.Position.Add(shift)
		ed.cam.Target = ed.cam.Target.Add(shift)
		ed.g.lastX, ed.g.lastY = ev.X, ev.Y

	case phaseDragging:
		point, ok := ed.cam.ScreenToFloor(float64(ev.X), float64(ev.Y))
		if !ok {
			return
		}
		delta := point.Sub(ed.g.dragStart)
		delta[1] = 0
		for p, origin := range ed.g.dragOrigin {
			p.Object.Position = origin.pos.Add(delta)
		}

	case phaseShaping:
		cell, ok := ed.cellAtScreen(ev.X, ev.Y)
		if !ok {
			// Lost the floor intersection: show nothing rather than a
			// stale shape
			ed.preview = nil
			return
		}
		if cell != ed.g.currentCell || len(ed.preview) == 0 {
			ed.g.currentCell = cell
			ed.refreshShapePreview()
		}

	case phaseRectSelect:
		if cell, ok := ed.cellAtScreen(ev.X, ev.Y); ok {
			ed.g.currentCell = cell
		}

	case phaseStamping:
		cell, ok := ed.cellAtScreen(ev.X, ev.Y)
		if !ok || cell == ed.g.lastStamp {
			return
		}
		ed.g.lastStamp = cell
		ed.stampAt(cell)
	}
}

func (ed *Editor) pointerUp(input.PointerEvent) {
	phase := ed.g.phase
	ed.g.phase = phaseIdle

	switch phase {
	case phaseDragging:
		ed.commitDrag()
	case phaseShaping:
		ed.commitShape()
	case phaseRectSelect:
		ed.commitRectSelect()
	}
	ed.g.dragOrigin = nil
}

// commitDrag snaps every dragged object back onto the grid, successful
// landings first. A blocked object returns to its drag origin; when a
// landed drag already claimed that origin it is displaced back in turn,
// so a blocked chain unwinds link by link and no grid holder is ever
// evicted.
func (ed *Editor) commitDrag() {
	var blocked []*Placed
	for p := range ed.g.dragOrigin {
		target := CellOf(p.Object.Position.X(), p.Object.Position.Z())
		p.Cell = target
		if err := ed.grid.Place(p); err != nil {
			blocked = append(blocked, p)
			continue
		}
		p.Object.Position = target.Center()
	}
	rejected := len(blocked) > 0

	for i := 0; i < len(blocked); i++ {
		p := blocked[i]
		origin := ed.g.dragOrigin[p]
		p.Cell = origin.cell
		p.Object.Position = origin.pos
		if ed.grid.Place(p) == nil {
			continue
		}
		// Origins were vacated at drag start, so the holder can only be
		// another dragged object that landed there; displace it back too
		holder := ed.holderAt(origin.cell, p.Class)
		if holder == nil {
			continue
		}
		if _, dragged := ed.g.dragOrigin[holder]; !dragged {
			ed.log.Warn("drag revert conflict", zap.String("model", p.Model))
			continue
		}
		ed.grid.Remove(holder)
		blocked = append(blocked, holder)
		if err := ed.grid.Place(p); err != nil {
			ed.log.Warn("drag revert conflict", zap.String("model", p.Model), zap.Error(err))
		}
	}

	if rejected {
		ed.bus.Emit(event.TopicCue, event.CueReject)
	}
}

// holderAt resolves the slot holder competing with class at c
func (ed *Editor) holderAt(c Cell, class asset.Class) *Placed {
	if class.NonFloor() {
		return ed.grid.ObjectAt(c)
	}
	return ed.grid.FloorAt(c)
}

// commitShape places the current asset into every free preview cell
func (ed *Editor) commitShape() {
	key := ed.CurrentAsset()
	placedAny, rejectedAny := false, false
	for _, pc := range ed.preview {
		if !pc.Free {
			rejectedAny = true
			continue
		}
		if _, err := ed.placeAt(key, pc.Cell, false); err != nil {
			rejectedAny = true
			continue
		}
		placedAny = true
	}
	ed.preview = nil
	if placedAny {
		ed.bus.Emit(event.TopicCue, event.CuePlace)
	}
	if rejectedAny {
		ed.bus.Emit(event.TopicCue, event.CueReject)
	}
}

// commitRectSelect resolves the floor-projected rectangle into selection
// membership
func (ed *Editor) commitRectSelect() {
	if !ed.g.additive {
		ed.clearSelection()
	}
	x0, x1 := ed.g.anchorCell.X, ed.g.currentCell.X
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	z0, z1 := ed.g.anchorCell.Z, ed.g.currentCell.Z
	if z0 > z1 {
		z0, z1 = z1, z0
	}
	for _, p := range ed.placed {
		if p.Cell.X >= x0 && p.Cell.X <= x1 && p.Cell.Z >= z0 && p.Cell.Z <= z1 {
			ed.addToSelection(p)
		}
	}
}

// refreshShapePreview recomputes the covered cells and their freeness for
// the current asset's class
func (ed *Editor) refreshShapePreview() {
	var cells []Cell
	if ed.tool == ToolLine {
		cells = lineCells(ed.g.anchorCell, ed.g.currentCell)
	} else {
		cells = rectCells(ed.g.anchorCell, ed.g.currentCell)
	}

	class := ed.classOf(ed.CurrentAsset())

	ed.preview = ed.preview[:0]
	for _, c := range cells {
		ed.preview = append(ed.preview, PreviewCell{Cell: c, Free: ed.grid.Free(c, class)})
	}
}
