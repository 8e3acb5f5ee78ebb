package editor

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/lixenwraith/worldkit/asset"
	"github.com/lixenwraith/worldkit/event"
	"github.com/lixenwraith/worldkit/input"
	"github.com/lixenwraith/worldkit/scene"
	"github.com/lixenwraith/worldkit/store"
)

func writeModel(t *testing.T, dir, name, class string, color uint32) {
	t.Helper()
	data := fmt.Sprintf(
		`{"name":%q,"class":%q,"parts":[{"name":"body","min":[-0.5,0,-0.5],"max":[0.5,1,0.5],"color":%d}]}`,
		name, class, color)
	if err := os.WriteFile(filepath.Join(dir, name+".json"), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

type rig struct {
	ed    *Editor
	bus   *event.Bus
	store *store.Store
	dir   string
}

func newRig(t *testing.T) *rig {
	t.Helper()
	dir := t.TempDir()
	writeModel(t, dir, "wall", "wall", 0x888888)
	writeModel(t, dir, "floor", "floor", 0x336633)
	writeModel(t, dir, "crate", "prop", 0xaa6622)

	bus := event.NewBus()
	in := input.NewService(nil)
	loader := asset.NewLoader(dir, zap.NewNop())
	st := store.New(filepath.Join(dir, "worlds.json"))

	ed := New(bus, in, loader, st, []string{"wall.json", "floor.json", "crate.json"}, zap.NewNop())
	ed.Enter()
	ed.cam.Width = 80
	ed.cam.Height = 40
	return &rig{ed: ed, bus: bus, store: st, dir: dir}
}

// screenAt projects a cell center to pointer coordinates
func screenAt(t *testing.T, ed *Editor, c Cell) (int, int) {
	t.Helper()
	x, y, ok := ed.cam.WorldToScreen(c.Center())
	if !ok {
		t.Fatalf("Cell %v projects outside the viewport", c)
	}
	return int(math.Round(x)), int(math.Round(y))
}

func down(t *testing.T, ed *Editor, c Cell, modifier bool) {
	x, y := screenAt(t, ed, c)
	ed.pointer(input.PointerEvent{Type: input.PointerDown, X: x, Y: y, Modifier: modifier})
}

func move(t *testing.T, ed *Editor, c Cell) {
	x, y := screenAt(t, ed, c)
	ed.pointer(input.PointerEvent{Type: input.PointerMove, X: x, Y: y})
}

func up(t *testing.T, ed *Editor, c Cell) {
	x, y := screenAt(t, ed, c)
	ed.pointer(input.PointerEvent{Type: input.PointerUp, X: x, Y: y})
}

func TestStampGesturePlacesPerCell(t *testing.T) {
	r := newRig(t)
	r.ed.SetTool(ToolStamp)

	down(t, r.ed, Cell{0, 0}, false)
	move(t, r.ed, Cell{1, 0})
	move(t, r.ed, Cell{1, 0}) // same cell, no duplicate
	up(t, r.ed, Cell{1, 0})

	if len(r.ed.Placed()) != 2 {
		t.Fatalf("Expected 2 stamped objects, got %d", len(r.ed.Placed()))
	}
	if r.ed.Placed()[0].Cell != (Cell{0, 0}) || r.ed.Placed()[1].Cell != (Cell{1, 0}) {
		t.Errorf("Expected cells (0,0),(1,0), got %v, %v", r.ed.Placed()[0].Cell, r.ed.Placed()[1].Cell)
	}
}

func TestStampRespectsOccupancy(t *testing.T) {
	r := newRig(t)
	r.ed.SetTool(ToolStamp)

	down(t, r.ed, Cell{0, 0}, false)
	up(t, r.ed, Cell{0, 0})
	down(t, r.ed, Cell{0, 0}, false)
	up(t, r.ed, Cell{0, 0})

	if len(r.ed.Placed()) != 1 {
		t.Fatalf("Expected occupied cell to reject second stamp, got %d objects", len(r.ed.Placed()))
	}
}

func TestTwoWallSaveLoadRoundTrip(t *testing.T) {
	r := newRig(t)
	r.ed.SetTool(ToolStamp)
	down(t, r.ed, Cell{0, 0}, false)
	move(t, r.ed, Cell{1, 0})
	up(t, r.ed, Cell{1, 0})

	if err := r.ed.SaveLocal("two-walls"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Fresh session, same backing store
	r.ed.Exit()
	r.ed.Enter()
	r.ed.cam.Width, r.ed.cam.Height = 80, 40
	if err := r.ed.LoadLocal("two-walls"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	w := r.ed.Serialize()
	if len(w.Objects) != 2 {
		t.Fatalf("Expected 2 objects after reload, got %d", len(w.Objects))
	}
	wantPos := [][3]float64{{0, 0, 0}, {1, 0, 0}}
	for i, o := range w.Objects {
		if o.Path != "wall.json" {
			t.Errorf("Object %d: expected asset wall.json, got %q", i, o.Path)
		}
		if o.Position.X != wantPos[i][0] || o.Position.Y != wantPos[i][1] || o.Position.Z != wantPos[i][2] {
			t.Errorf("Object %d: expected position %v, got %+v", i, wantPos[i], o.Position)
		}
		if o.Rotation.X != 0 || o.Rotation.Y != 0 || o.Rotation.Z != 0 {
			t.Errorf("Object %d: expected identity rotation, got %+v", i, o.Rotation)
		}
		if o.Scale.X != 1 || o.Scale.Y != 1 || o.Scale.Z != 1 {
			t.Errorf("Object %d: expected identity scale, got %+v", i, o.Scale)
		}
	}
	if r.ed.WorldName() != "two-walls" {
		t.Errorf("Expected world name restored, got %q", r.ed.WorldName())
	}
}

func TestLineToolCommitsOnceOnPointerUp(t *testing.T) {
	r := newRig(t)
	r.ed.SetTool(ToolLine)

	down(t, r.ed, Cell{0, 0}, false)
	move(t, r.ed, Cell{2, 0})
	move(t, r.ed, Cell{3, 0})
	if len(r.ed.Placed()) != 0 {
		t.Fatal("Expected no placement before pointer-up")
	}
	if len(r.ed.Preview()) != 4 {
		t.Fatalf("Expected 4 preview cells, got %d", len(r.ed.Preview()))
	}
	up(t, r.ed, Cell{3, 0})

	if len(r.ed.Placed()) != 4 {
		t.Fatalf("Expected 4 placed cells after commit, got %d", len(r.ed.Placed()))
	}
	if len(r.ed.Preview()) != 0 {
		t.Error("Expected preview cleared after commit")
	}

	// The gesture must not commit a second time
	up(t, r.ed, Cell{3, 0})
	if len(r.ed.Placed()) != 4 {
		t.Error("Expected exactly one commit per gesture")
	}
}

func TestSquareToolPreviewMarksOccupied(t *testing.T) {
	r := newRig(t)
	r.ed.SetTool(ToolStamp)
	down(t, r.ed, Cell{1, 1}, false)
	up(t, r.ed, Cell{1, 1})

	r.ed.SetTool(ToolSquare)
	down(t, r.ed, Cell{0, 0}, false)
	move(t, r.ed, Cell{1, 1})

	free, occupied := 0, 0
	for _, pc := range r.ed.Preview() {
		if pc.Free {
			free++
		} else {
			occupied++
		}
	}
	if free != 3 || occupied != 1 {
		t.Errorf("Expected 3 free + 1 occupied preview cells, got %d free %d occupied", free, occupied)
	}
	up(t, r.ed, Cell{1, 1})
	if len(r.ed.Placed()) != 4 {
		t.Errorf("Expected square fill to add 3 and keep 1, got %d total", len(r.ed.Placed()))
	}
}

func TestSelectClickAndModifierToggle(t *testing.T) {
	r := newRig(t)
	r.ed.SetTool(ToolStamp)
	down(t, r.ed, Cell{0, 0}, false)
	up(t, r.ed, Cell{0, 0})
	down(t, r.ed, Cell{2, 0}, false)
	up(t, r.ed, Cell{2, 0})
	a, b := r.ed.Placed()[0], r.ed.Placed()[1]

	r.ed.SetTool(ToolSelect)
	down(t, r.ed, Cell{0, 0}, false)
	up(t, r.ed, Cell{0, 0})
	if len(r.ed.Selection()) != 1 || r.ed.Selection()[0] != a {
		t.Fatalf("Expected click to select first wall, got %v", r.ed.Selection())
	}

	down(t, r.ed, Cell{2, 0}, true)
	up(t, r.ed, Cell{2, 0})
	if len(r.ed.Selection()) != 2 {
		t.Fatalf("Expected modifier click to add, got %d selected", len(r.ed.Selection()))
	}

	down(t, r.ed, Cell{2, 0}, true)
	up(t, r.ed, Cell{2, 0})
	if len(r.ed.Selection()) != 1 || r.ed.Selection()[0] != a {
		t.Errorf("Expected modifier click to toggle b off, got %v", r.ed.Selection())
	}
	_ = b
}

func TestRectSelectOnFloorProjection(t *testing.T) {
	r := newRig(t)
	r.ed.SetTool(ToolStamp)
	for _, c := range []Cell{{0, 0}, {2, 0}, {5, 5}} {
		down(t, r.ed, c, false)
		up(t, r.ed, c)
	}

	r.ed.SetTool(ToolSelect)
	down(t, r.ed, Cell{-1, -1}, true)
	move(t, r.ed, Cell{3, 1})
	up(t, r.ed, Cell{3, 1})

	if len(r.ed.Selection()) != 2 {
		t.Fatalf("Expected rect to select the two near walls, got %d", len(r.ed.Selection()))
	}
}

func TestDragMovesAndSnapsSelection(t *testing.T) {
	r := newRig(t)
	r.ed.SetTool(ToolStamp)
	down(t, r.ed, Cell{0, 0}, false)
	up(t, r.ed, Cell{0, 0})
	p := r.ed.Placed()[0]

	r.ed.SetTool(ToolSelect)
	down(t, r.ed, Cell{0, 0}, false)
	move(t, r.ed, Cell{3, 2})
	// Mid-drag the object holds no grid cell
	if r.ed.grid.ObjectAt(Cell{0, 0}) != nil {
		t.Error("Expected origin cell vacated during drag")
	}
	up(t, r.ed, Cell{3, 2})

	if p.Cell != (Cell{3, 2}) {
		t.Errorf("Expected snap to (3,2), got %v", p.Cell)
	}
	if r.ed.grid.ObjectAt(Cell{3, 2}) != p {
		t.Error("Expected grid reinsert at landing cell")
	}
	if pos := p.Object.Position; pos != (Cell{3, 2}).Center() {
		t.Errorf("Expected snapped position, got %v", pos)
	}
}

func TestDragOntoOccupiedCellReverts(t *testing.T) {
	r := newRig(t)
	r.ed.SetTool(ToolStamp)
	down(t, r.ed, Cell{0, 0}, false)
	up(t, r.ed, Cell{0, 0})
	down(t, r.ed, Cell{1, 0}, false)
	up(t, r.ed, Cell{1, 0})
	a := r.ed.Placed()[0]

	r.ed.SetTool(ToolSelect)
	down(t, r.ed, Cell{0, 0}, false)
	move(t, r.ed, Cell{1, 0})
	up(t, r.ed, Cell{1, 0})

	if a.Cell != (Cell{0, 0}) {
		t.Errorf("Expected revert to origin on occupied landing, got %v", a.Cell)
	}
	if r.ed.grid.ObjectAt(Cell{0, 0}) != a {
		t.Error("Expected origin cell reoccupied after revert")
	}
}

func TestDragBlockedChainRevertsWithoutOrphans(t *testing.T) {
	r := newRig(t)
	r.ed.SetTool(ToolStamp)
	for _, c := range []Cell{{0, 0}, {1, 0}, {2, 0}} {
		down(t, r.ed, c, false)
		up(t, r.ed, c)
	}
	a, b, c := r.ed.Placed()[0], r.ed.Placed()[1], r.ed.Placed()[2]

	r.ed.SetTool(ToolSelect)
	down(t, r.ed, Cell{0, 0}, false)
	up(t, r.ed, Cell{0, 0})
	down(t, r.ed, Cell{1, 0}, true)
	up(t, r.ed, Cell{1, 0})

	// Shift the selected pair one cell +X into the blocker: the rear
	// object may land in the front object's origin before the front one
	// is rejected, so the revert has to displace it back as well
	down(t, r.ed, Cell{0, 0}, false)
	move(t, r.ed, Cell{1, 0})
	up(t, r.ed, Cell{1, 0})

	want := map[*Placed]Cell{a: {0, 0}, b: {1, 0}, c: {2, 0}}
	for p, cell := range want {
		if p.Cell != cell {
			t.Errorf("Expected revert to %v, got %v", cell, p.Cell)
		}
		if r.ed.grid.ObjectAt(cell) != p {
			t.Errorf("Expected the record at %v to hold its own grid slot", cell)
		}
		if p.Object.Position != cell.Center() {
			t.Errorf("Expected position %v, got %v", cell.Center(), p.Object.Position)
		}
	}
	if r.ed.grid.Len() != 3 {
		t.Fatalf("Expected 3 occupied slots, got %d", r.ed.grid.Len())
	}
}

func TestShapePreviewClearsOffFloor(t *testing.T) {
	r := newRig(t)
	// Level camera: the upper screen half looks above the horizon
	r.ed.cam.Position = mgl64.Vec3{0, 2, 12}
	r.ed.cam.Target = mgl64.Vec3{0, 2, 0}
	r.ed.SetTool(ToolLine)

	down(t, r.ed, Cell{0, 0}, false)
	if len(r.ed.Preview()) == 0 {
		t.Fatal("Expected a preview after pointer down")
	}

	r.ed.pointer(input.PointerEvent{Type: input.PointerMove, X: 40, Y: 0})
	if n := len(r.ed.Preview()); n != 0 {
		t.Fatalf("Expected preview cleared once the ray leaves the floor, got %d cells", n)
	}

	move(t, r.ed, Cell{1, 0})
	if len(r.ed.Preview()) == 0 {
		t.Fatal("Expected preview restored back over the floor")
	}

	up(t, r.ed, Cell{1, 0})
	if len(r.ed.Placed()) != 2 {
		t.Fatalf("Expected the regained preview to commit 2 objects, got %d", len(r.ed.Placed()))
	}
}

func TestRotateSelectionQuarterTurns(t *testing.T) {
	r := newRig(t)
	r.ed.SetTool(ToolStamp)
	down(t, r.ed, Cell{0, 0}, false)
	up(t, r.ed, Cell{0, 0})
	p := r.ed.Placed()[0]

	r.ed.SetTool(ToolSelect)
	down(t, r.ed, Cell{0, 0}, false)
	up(t, r.ed, Cell{0, 0})

	r.ed.RotateSelection()
	if p.RotationY != 90 || p.Object.Rotation.Y() != 90 {
		t.Errorf("Expected 90 degree turn, got %v", p.RotationY)
	}
	r.ed.RotateSelection()
	r.ed.RotateSelection()
	r.ed.RotateSelection()
	if p.RotationY != 0 {
		t.Errorf("Expected four turns to wrap to 0, got %v", p.RotationY)
	}
}

func TestHighlightCyclesPreserveMaterials(t *testing.T) {
	r := newRig(t)
	r.ed.SetTool(ToolStamp)
	down(t, r.ed, Cell{0, 0}, false)
	up(t, r.ed, Cell{0, 0})
	p := r.ed.Placed()[0]

	var mesh *scene.Mesh
	p.Object.Traverse(func(o *scene.Object) {
		if o.Mesh != nil {
			mesh = o.Mesh
		}
	})
	if mesh == nil {
		t.Fatal("Expected placed object to carry a mesh")
	}
	original := mesh.Materials[0]

	r.ed.SetTool(ToolSelect)
	for i := 0; i < 3; i++ {
		down(t, r.ed, Cell{0, 0}, false)
		up(t, r.ed, Cell{0, 0})
		if !p.Highlighted() {
			t.Fatalf("Cycle %d: expected highlight applied on select", i)
		}
		if mesh.Materials[0] == original {
			t.Fatalf("Cycle %d: expected overlay material while highlighted", i)
		}
		r.ed.clearSelection()
		if mesh.Materials[0] != original {
			t.Fatalf("Cycle %d: expected exact original material restored", i)
		}
	}
}

func TestDeleteSelectionReleasesEverything(t *testing.T) {
	r := newRig(t)
	r.ed.SetTool(ToolStamp)
	down(t, r.ed, Cell{0, 0}, false)
	up(t, r.ed, Cell{0, 0})
	p := r.ed.Placed()[0]

	r.ed.SetTool(ToolSelect)
	down(t, r.ed, Cell{0, 0}, false)
	up(t, r.ed, Cell{0, 0})
	r.ed.DeleteSelection()

	if len(r.ed.Placed()) != 0 || len(r.ed.Selection()) != 0 {
		t.Error("Expected placed list and selection cleared")
	}
	if r.ed.grid.ObjectAt(Cell{0, 0}) != nil {
		t.Error("Expected grid slot freed")
	}
	if !p.Object.Disposed() {
		t.Error("Expected scene subtree disposed")
	}
}

func TestToolSwitchDeselects(t *testing.T) {
	r := newRig(t)
	r.ed.SetTool(ToolStamp)
	down(t, r.ed, Cell{0, 0}, false)
	up(t, r.ed, Cell{0, 0})

	r.ed.SetTool(ToolSelect)
	down(t, r.ed, Cell{0, 0}, false)
	up(t, r.ed, Cell{0, 0})
	if len(r.ed.Selection()) != 1 {
		t.Fatal("Expected one selected object")
	}

	r.ed.SetTool(ToolLine)
	if len(r.ed.Selection()) != 0 {
		t.Error("Expected selection dropped on leaving select mode")
	}
}
