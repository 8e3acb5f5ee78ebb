package editor

import (
	"github.com/lixenwraith/worldkit/scene"
)

// highlight swaps every mesh's materials for the wireframe overlay,
// remembering the exact originals per mesh. Highlighting an already
// highlighted object is a no-op, so repeated cycles never lose or
// duplicate materials.
func (ed *Editor) highlight(p *Placed) {
	if p.originals != nil {
		return
	}
	p.originals = make(map[*scene.Mesh][]*scene.Material)
	p.Object.Traverse(func(o *scene.Object) {
		if o.Mesh == nil {
			return
		}
		p.originals[o.Mesh] = o.Mesh.Materials
		overlay := make([]*scene.Material, len(o.Mesh.Materials))
		for i := range overlay {
			overlay[i] = ed.highlightMat
		}
		o.Mesh.Materials = overlay
	})
}

// unhighlight restores the preserved per-submesh materials
func (ed *Editor) unhighlight(p *Placed) {
	if p.originals == nil {
		return
	}
	p.Object.Traverse(func(o *scene.Object) {
		if o.Mesh == nil {
			return
		}
		if mats, ok := p.originals[o.Mesh]; ok {
			o.Mesh.Materials = mats
		}
	})
	p.originals = nil
}

// Highlighted reports whether p currently wears the overlay
func (p *Placed) Highlighted() bool { return p.originals != nil }

// toggleSelectionHighlight flips the overlay on the whole selection
func (ed *Editor) toggleSelectionHighlight() {
	for _, p := range ed.selection {
		if p.Highlighted() {
			ed.unhighlight(p)
		} else {
			ed.highlight(p)
		}
	}
}
