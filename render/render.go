// Package render draws the current world top-down onto the terminal:
// floor grid, scene objects, editor overlays, a status line and transient
// notifications. It never mutates game state.
package render

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/worldkit/editor"
	"github.com/lixenwraith/worldkit/event"
	"github.com/lixenwraith/worldkit/parameter"
	"github.com/lixenwraith/worldkit/scene"
)

// View is everything one frame needs drawn
type View struct {
	Scene  *scene.Object
	Camera *scene.Camera

	// Status is the bottom status line (state, tool, world name)
	Status string

	// Editor overlays, nil outside the editor
	Preview   []editor.PreviewCell
	Selection []*editor.Placed
}

type note struct {
	text    string
	expires time.Time
}

// Renderer owns the screen surface and the notification queue
type Renderer struct {
	screen tcell.Screen
	notes  []note
	sub    *event.Subscription
	now    func() time.Time
}

// New wraps screen and starts collecting notifications from bus
func New(screen tcell.Screen, bus *event.Bus) *Renderer {
	r := &Renderer{screen: screen, now: time.Now}
	r.sub = bus.Subscribe(event.TopicNotify, func(payload any) {
		if text, ok := payload.(string); ok {
			r.push(text)
		}
	})
	return r
}

// Close detaches from the bus; the screen belongs to the caller
func (r *Renderer) Close() {
	if r.sub != nil {
		r.sub.Cancel()
		r.sub = nil
	}
}

func (r *Renderer) push(text string) {
	lifetime := time.Duration(parameter.NotifyLifetimeSeconds * float64(time.Second))
	r.notes = append(r.notes, note{text: text, expires: r.now().Add(lifetime)})
	if len(r.notes) > 5 {
		r.notes = r.notes[len(r.notes)-5:]
	}
}

// Frame draws one complete frame. A view without a scene (state still
// loading) renders the chrome only.
func (r *Renderer) Frame(v View) {
	r.screen.Clear()
	w, h := r.screen.Size()

	if v.Scene != nil && v.Camera != nil {
		v.Camera.Width, v.Camera.Height = w, h-1
		r.drawFloorGrid(v.Camera)
		r.drawPreview(v)
		r.drawScene(v)
	}
	r.drawNotes(w)
	r.drawStatus(v.Status, w, h)
	r.screen.Show()
}

var (
	styleGrid      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleStatus    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkBlue)
	styleNote      = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	stylePlayer    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleSelected  = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleFreeCell  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleTakenCell = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

func (r *Renderer) drawFloorGrid(cam *scene.Camera) {
	for gx := -parameter.FloorHalfExtent; gx <= parameter.FloorHalfExtent; gx++ {
		for gz := -parameter.FloorHalfExtent; gz <= parameter.FloorHalfExtent; gz++ {
			p := mgl64.Vec3{float64(gx) * parameter.CellSize, 0, float64(gz) * parameter.CellSize}
			x, y, ok := cam.WorldToScreen(p)
			if !ok {
				continue
			}
			r.screen.SetContent(int(x), int(y), '.', nil, styleGrid)
		}
	}
}

func (r *Renderer) drawPreview(v View) {
	for _, pc := range v.Preview {
		x, y, ok := v.Camera.WorldToScreen(pc.Cell.Center())
		if !ok {
			continue
		}
		if pc.Free {
			r.screen.SetContent(int(x), int(y), '+', nil, styleFreeCell)
		} else {
			r.screen.SetContent(int(x), int(y), 'x', nil, styleTakenCell)
		}
	}
}

func (r *Renderer) drawScene(v View) {
	selected := make(map[*scene.Object]bool, len(v.Selection))
	for _, p := range v.Selection {
		selected[p.Object] = true
	}
	v.Scene.Traverse(func(o *scene.Object) {
		if o.Mesh == nil && o.Light == nil {
			return
		}
		x, y, ok := v.Camera.WorldToScreen(o.WorldPosition())
		if !ok {
			return
		}
		ch, style := glyphFor(o)
		if root := placedRoot(o, selected); root != nil {
			style = styleSelected
		}
		r.screen.SetContent(int(x), int(y), ch, nil, style)
	})
}

// placedRoot walks o's ancestry for a selected subtree root
func placedRoot(o *scene.Object, selected map[*scene.Object]bool) *scene.Object {
	for n := o; n != nil; n = n.Parent() {
		if selected[n] {
			return n
		}
	}
	return nil
}

// glyphFor picks a rune and color for one scene node
func glyphFor(o *scene.Object) (rune, tcell.Style) {
	if isPlayerNode(o) {
		return '@', stylePlayer
	}
	if o.Light != nil && o.Mesh == nil {
		return '*', styleNote
	}
	ch := '#'
	color := tcell.ColorSilver
	if o.Mesh != nil && len(o.Mesh.Materials) > 0 && o.Mesh.Materials[0] != nil {
		m := o.Mesh.Materials[0]
		color = tcell.NewHexColor(int32(m.Color))
		if m.Wireframe {
			ch = '%'
		}
	}
	return ch, tcell.StyleDefault.Foreground(color)
}

func isPlayerNode(o *scene.Object) bool {
	for n := o; n != nil; n = n.Parent() {
		if n.Name == "player" {
			return true
		}
	}
	return false
}

func (r *Renderer) drawNotes(w int) {
	now := r.now()
	live := r.notes[:0]
	for _, n := range r.notes {
		if now.Before(n.expires) {
			live = append(live, n)
		}
	}
	r.notes = live
	for i, n := range r.notes {
		r.print(0, i, n.text, styleNote, w)
	}
}

func (r *Renderer) drawStatus(status string, w, h int) {
	line := fmt.Sprintf(" %s", status)
	for len(line) < w {
		line += " "
	}
	r.print(0, h-1, line, styleStatus, w)
}

func (r *Renderer) print(x, y int, text string, style tcell.Style, maxW int) {
	for i, ch := range text {
		if x+i >= maxW {
			return
		}
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}
