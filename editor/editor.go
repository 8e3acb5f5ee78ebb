package editor

import (
	"fmt"
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lixenwraith/worldkit/asset"
	"github.com/lixenwraith/worldkit/event"
	"github.com/lixenwraith/worldkit/input"
	"github.com/lixenwraith/worldkit/parameter"
	"github.com/lixenwraith/worldkit/scene"
	"github.com/lixenwraith/worldkit/store"
)

// Tool is the active editor mode
type Tool uint8

const (
	ToolSelect Tool = iota
	ToolStamp
	ToolLine
	ToolSquare
)

func (t Tool) String() string {
	switch t {
	case ToolStamp:
		return "stamp"
	case ToolLine:
		return "line"
	case ToolSquare:
		return "square"
	default:
		return "select"
	}
}

// PreviewCell is one cell of a live shape preview; Free selects the
// green (placeable) or red (occupied) tint
type PreviewCell struct {
	Cell Cell
	Free bool
}

// Editor owns the placed-object collection and everything that mutates
// it. Placed objects live outside the entity/component model; the editor
// manipulates their scene subtrees directly.
type Editor struct {
	bus    *event.Bus
	in     *input.Service
	assets *asset.Loader
	store  *store.Store
	log    *zap.Logger

	root *scene.Object
	cam  *scene.Camera

	grid      *Grid
	placed    []*Placed
	selection []*Placed

	tool       Tool
	palette    []string
	paletteIdx int
	worldName  string

	highlightMat *scene.Material

	// classes caches asset key → grid class for preview freeness checks
	classes map[string]asset.Class

	g       gesture
	preview []PreviewCell
}

// New creates an editor choosing assets from palette (asset keys)
func New(bus *event.Bus, in *input.Service, assets *asset.Loader, st *store.Store, palette []string, log *zap.Logger) *Editor {
	return &Editor{
		bus:     bus,
		in:      in,
		assets:  assets,
		store:   st,
		palette: palette,
		log:     log,
	}
}

// Enter builds a fresh editing session: empty grid, top-down camera
func (ed *Editor) Enter() {
	ed.root = scene.NewObject("editor")
	ed.cam = &scene.Camera{
		Position: mgl64.Vec3{0, parameter.EditorCameraHeight, 6},
		Target:   mgl64.Vec3{0, 0, 0},
		Up:       mgl64.Vec3{0, 1, 0},
		FOV:      50,
		Near:     0.1,
		Far:      200,
	}
	ed.grid = NewGrid()
	ed.placed = nil
	ed.selection = nil
	ed.tool = ToolSelect
	ed.paletteIdx = 0
	ed.worldName = "untitled"
	ed.g = gesture{}
	ed.preview = nil
	ed.classes = make(map[string]asset.Class)

	ed.highlightMat = &scene.Material{
		Name:      "highlight",
		Color:     0x00ff66,
		Wireframe: true,
		Cached:    true, // owned here, never released by object disposal
	}
}

// Exit disposes every placed object and the session's resources
func (ed *Editor) Exit() {
	ed.clearSelection()
	for _, p := range ed.placed {
		ed.grid.Remove(p)
		p.Object.Dispose()
	}
	ed.placed = nil
	ed.preview = nil
	if ed.highlightMat != nil {
		ed.highlightMat.Cached = false
		ed.highlightMat.Dispose()
		ed.highlightMat = nil
	}
	if ed.root != nil {
		ed.root.Dispose()
		ed.root = nil
	}
}

// Scene returns the editor scene root
func (ed *Editor) Scene() *scene.Object { return ed.root }

// Camera returns the editor camera
func (ed *Editor) Camera() *scene.Camera { return ed.cam }

// Tool returns the active tool
func (ed *Editor) Tool() Tool { return ed.tool }

// WorldName returns the current world name
func (ed *Editor) WorldName() string { return ed.worldName }

// SetWorldName renames the world being edited
func (ed *Editor) SetWorldName(name string) {
	if name != "" {
		ed.worldName = name
	}
}

// Placed returns the live placed-object list in placement order
func (ed *Editor) Placed() []*Placed { return ed.placed }

// Selection returns the selected objects, last one primary
func (ed *Editor) Selection() []*Placed { return ed.selection }

// Preview returns the live shape preview cells
func (ed *Editor) Preview() []PreviewCell { return ed.preview }

// Palette returns the available asset keys
func (ed *Editor) Palette() []string { return ed.palette }

// CurrentAsset returns the palette key placements use
func (ed *Editor) CurrentAsset() string {
	if len(ed.palette) == 0 {
		return ""
	}
	return ed.palette[ed.paletteIdx]
}

// Thumbnail returns the preview image for a palette entry
func (ed *Editor) Thumbnail(key string) (*image.RGBA, error) {
	return ed.assets.Thumbnail(key)
}

// SetTool switches the active tool. Leaving select mode drops the
// selection; a selection only means something to select-mode gestures.
func (ed *Editor) SetTool(t Tool) {
	if t == ed.tool {
		return
	}
	ed.tool = t
	ed.preview = nil
	if t != ToolSelect {
		ed.clearSelection()
	}
}

// Update consumes this frame's editor input
func (ed *Editor) Update() {
	switch {
	case released(ed.in, input.ActionToolSelect):
		ed.SetTool(ToolSelect)
	case released(ed.in, input.ActionToolStamp):
		ed.SetTool(ToolStamp)
	case released(ed.in, input.ActionToolLine):
		ed.SetTool(ToolLine)
	case released(ed.in, input.ActionToolSquare):
		ed.SetTool(ToolSquare)
	case released(ed.in, input.ActionNextAsset):
		ed.cycleAsset()
	case released(ed.in, input.ActionRotate):
		ed.RotateSelection()
	case released(ed.in, input.ActionHighlight):
		ed.toggleSelectionHighlight()
	case released(ed.in, input.ActionDelete):
		ed.DeleteSelection()
	case released(ed.in, input.ActionSaveWorld):
		if err := ed.SaveLocal(ed.worldName); err != nil {
			ed.log.Error("world save failed", zap.Error(err))
			ed.bus.Emit(event.TopicNotify, "save failed: "+err.Error())
		}
	}

	for _, ev := range ed.in.PointerEvents() {
		ed.pointer(ev)
	}
}

func released(in *input.Service, a input.Action) bool {
	_, ok := in.Released(a)
	return ok
}

func (ed *Editor) cycleAsset() {
	if len(ed.palette) == 0 {
		return
	}
	ed.paletteIdx = (ed.paletteIdx + 1) % len(ed.palette)
	ed.bus.Emit(event.TopicNotify, "asset: "+ed.CurrentAsset())
}

// cellAtScreen maps a pointer position to a floor cell
func (ed *Editor) cellAtScreen(sx, sy int) (Cell, bool) {
	hit, ok := ed.cam.ScreenToFloor(float64(sx), float64(sy))
	if !ok {
		return Cell{}, false
	}
	return CellOf(hit.X(), hit.Z()), true
}

// placeAt instantiates the asset at cell. force bypasses occupancy (load
// path). The caller owns audio/notification feedback.
func (ed *Editor) placeAt(key string, cell Cell, force bool) (*Placed, error) {
	a, err := ed.assets.Get(key)
	if err != nil {
		ed.log.Warn("placement asset unavailable", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	p := &Placed{
		ID:     uuid.New(),
		Key:    key,
		Model:  a.Model,
		Class:  a.Class,
		Object: a.Object,
		Cell:   cell,
		Scale:  mgl64.Vec3{1, 1, 1},
	}
	if props, ok := ed.assets.Properties(a.Model); ok {
		p.InteractionID = props.InteractionID
		p.InteractionData = props.InteractionData
	}
	ed.classes[key] = a.Class
	if force {
		ed.grid.ForcePlace(p)
	} else if err := ed.grid.Place(p); err != nil {
		// Drop the rejected clone; geometry and materials stay with the
		// cached template and the pool
		return nil, err
	}
	a.Object.Position = cell.Center()
	ed.root.Add(a.Object)
	ed.placed = append(ed.placed, p)
	return p, nil
}

// classOf resolves an asset key's grid class, caching the answer
func (ed *Editor) classOf(key string) asset.Class {
	if c, ok := ed.classes[key]; ok {
		return c
	}
	a, err := ed.assets.Get(key)
	if err != nil {
		return asset.ClassProp
	}
	ed.classes[key] = a.Class
	return a.Class
}

// stampAt is the stamp tool's per-cell attempt with immediate feedback
func (ed *Editor) stampAt(cell Cell) {
	if ed.CurrentAsset() == "" {
		return
	}
	if _, err := ed.placeAt(ed.CurrentAsset(), cell, false); err != nil {
		ed.bus.Emit(event.TopicCue, event.CueReject)
		return
	}
	ed.bus.Emit(event.TopicCue, event.CuePlace)
}

// RotateSelection quarter-turns every selected object around Y
func (ed *Editor) RotateSelection() {
	for _, p := range ed.selection {
		p.RotationY = math.Mod(p.RotationY+parameter.EditorRotateStep, 360)
		p.Object.Rotation[1] = p.RotationY
	}
}

// DeleteSelection removes selected objects from grid and scene
func (ed *Editor) DeleteSelection() {
	if len(ed.selection) == 0 {
		return
	}
	doomed := make(map[*Placed]bool, len(ed.selection))
	for _, p := range ed.selection {
		ed.unhighlight(p)
		ed.grid.Remove(p)
		p.Object.Dispose()
		doomed[p] = true
	}
	kept := ed.placed[:0]
	for _, p := range ed.placed {
		if !doomed[p] {
			kept = append(kept, p)
		}
	}
	ed.placed = kept
	n := len(ed.selection)
	ed.selection = nil
	ed.bus.Emit(event.TopicNotify, fmt.Sprintf("deleted %d object(s)", n))
}

func (ed *Editor) isSelected(p *Placed) bool {
	for _, s := range ed.selection {
		if s == p {
			return true
		}
	}
	return false
}

func (ed *Editor) selectOnly(p *Placed) {
	ed.clearSelection()
	ed.addToSelection(p)
}

func (ed *Editor) addToSelection(p *Placed) {
	if ed.isSelected(p) {
		return
	}
	ed.selection = append(ed.selection, p)
	ed.highlight(p)
}

func (ed *Editor) toggleSelection(p *Placed) {
	for i, s := range ed.selection {
		if s == p {
			ed.unhighlight(p)
			ed.selection = append(ed.selection[:i], ed.selection[i+1:]...)
			return
		}
	}
	ed.addToSelection(p)
}

func (ed *Editor) clearSelection() {
	for _, p := range ed.selection {
		ed.unhighlight(p)
	}
	ed.selection = nil
}
