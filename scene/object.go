// Package scene models the slice of the rendering collaborator the game
// logic owns: an object tree with transforms, mesh resources with explicit
// disposal, lights as data, and a camera that can map between screen and
// the floor plane. Drawing is someone else's job.
package scene

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Object is a scene-graph node. An entity owns exactly one Object group
// for its lifetime; placed editor objects own one each as well.
type Object struct {
	ID   uuid.UUID
	Name string

	// Position in world units, Rotation as Euler degrees (XYZ), Scale per axis
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Scale    mgl64.Vec3

	Mesh  *Mesh
	Light *Light

	parent   *Object
	children []*Object
	disposed bool
}

// NewObject creates a detached node with identity scale
func NewObject(name string) *Object {
	return &Object{
		ID:    uuid.New(),
		Name:  name,
		Scale: mgl64.Vec3{1, 1, 1},
	}
}

// Add attaches child to o, detaching it from any previous parent first
func (o *Object) Add(child *Object) {
	if child == nil || child == o {
		return
	}
	child.Detach()
	child.parent = o
	o.children = append(o.children, child)
}

// Detach removes o from its parent, if any
func (o *Object) Detach() {
	p := o.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == o {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	o.parent = nil
}

// Parent returns the current parent node or nil
func (o *Object) Parent() *Object { return o.parent }

// Children returns the live child slice; callers must not mutate it
func (o *Object) Children() []*Object { return o.children }

// Traverse visits o and every descendant in depth-first order
func (o *Object) Traverse(fn func(*Object)) {
	fn(o)
	for _, c := range o.children {
		c.Traverse(fn)
	}
}

// WorldPosition accumulates positions up the parent chain
// Rotation/scale of ancestors is not compounded; groups in this game
// translate but do not rotate their children
func (o *Object) WorldPosition() mgl64.Vec3 {
	pos := o.Position
	for p := o.parent; p != nil; p = p.parent {
		pos = pos.Add(p.Position)
	}
	return pos
}

// Clone deep-copies the node tree with fresh IDs. Geometry and material
// pointers are shared, matching template semantics: instantiating a cached
// asset must not duplicate GPU-side resources.
func (o *Object) Clone() *Object {
	c := &Object{
		ID:       uuid.New(),
		Name:     o.Name,
		Position: o.Position,
		Rotation: o.Rotation,
		Scale:    o.Scale,
		Light:    o.Light.clone(),
	}
	if o.Mesh != nil {
		mats := make([]*Material, len(o.Mesh.Materials))
		copy(mats, o.Mesh.Materials)
		c.Mesh = &Mesh{Geometry: o.Mesh.Geometry, Materials: mats}
	}
	for _, child := range o.children {
		c.Add(child.Clone())
	}
	return c
}

// Disposed reports whether Dispose already ran on this node
func (o *Object) Disposed() bool { return o.disposed }

// Dispose releases the subtree's geometry and non-cached materials and
// detaches the node from its parent. Safe to call more than once;
// repeated calls are no-ops. Materials flagged Cached belong to the
// material pool and geometry flagged Cached belongs to the loader's
// templates; both are left alone.
func (o *Object) Dispose() {
	if o.disposed {
		return
	}
	o.disposed = true
	for _, c := range o.children {
		c.parent = nil
		c.Dispose()
	}
	o.children = nil
	if o.Mesh != nil {
		if g := o.Mesh.Geometry; g != nil && !g.Cached {
			g.Dispose()
		}
		for _, m := range o.Mesh.Materials {
			if m != nil && !m.Cached {
				m.Dispose()
			}
		}
	}
	o.Detach()
}

// Bounds returns the world-space bounding box of the subtree, derived from
// mesh geometry bounds scaled and offset by node transforms. Nodes without
// geometry contribute a point at their world position.
func (o *Object) Bounds() Box {
	box := emptyBox()
	o.Traverse(func(n *Object) {
		wp := n.WorldPosition()
		if n.Mesh != nil && n.Mesh.Geometry != nil {
			gb := n.Mesh.Geometry.Bounds
			box = box.Union(Box{
				Min: wp.Add(mulVec(gb.Min, n.Scale)),
				Max: wp.Add(mulVec(gb.Max, n.Scale)),
			})
		} else {
			box = box.Union(Box{Min: wp, Max: wp})
		}
	})
	return box
}

func mulVec(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}
