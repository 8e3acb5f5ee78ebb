package entity

import (
	"testing"
	"time"

	"github.com/lixenwraith/worldkit/scene"
)

// stubComponent counts lifecycle calls for contract verification
type stubComponent struct {
	kind     Kind
	owner    *Entity
	updates  int
	destroys int
}

func (s *stubComponent) Kind() Kind           { return s.kind }
func (s *stubComponent) SetOwner(e *Entity)   { s.owner = e }
func (s *stubComponent) Update(time.Duration) { s.updates++ }
func (s *stubComponent) Destroy()             { s.destroys++ }

func TestAddComponentSetsOwner(t *testing.T) {
	e := New("test", nil)
	c := &stubComponent{kind: KindPhysics}
	e.AddComponent(c)

	if c.owner != e {
		t.Error("Expected component owner back-reference to be set")
	}
	got, ok := e.Component(KindPhysics)
	if !ok || got != Component(c) {
		t.Error("Expected typed lookup to return the added component")
	}
}

func TestComponentLookupSoftFails(t *testing.T) {
	e := New("test", nil)
	if _, ok := e.Component(KindPortal); ok {
		t.Error("Expected missing component lookup to report not found")
	}
}

func TestUpdateRunsInInsertionOrder(t *testing.T) {
	e := New("test", nil)
	var order []Kind
	a := &orderComponent{kind: KindPlayerInput, order: &order}
	b := &orderComponent{kind: KindPhysics, order: &order}
	e.AddComponent(a)
	e.AddComponent(b)

	e.Update(16 * time.Millisecond)

	if len(order) != 2 || order[0] != KindPlayerInput || order[1] != KindPhysics {
		t.Errorf("Expected insertion-order update, got %v", order)
	}
}

type orderComponent struct {
	kind  Kind
	order *[]Kind
	owner *Entity
}

func (o *orderComponent) Kind() Kind           { return o.kind }
func (o *orderComponent) SetOwner(e *Entity)   { o.owner = e }
func (o *orderComponent) Update(time.Duration) { *o.order = append(*o.order, o.kind) }
func (o *orderComponent) Destroy()             {}

func TestDestroyReleasesOwnedResources(t *testing.T) {
	group := scene.NewObject("group")
	geo := scene.NewGeometry(scene.Box{})
	mat := scene.NewMaterial("m", 0xff0000)
	child := scene.NewObject("mesh")
	child.Mesh = &scene.Mesh{Geometry: geo, Materials: []*scene.Material{mat}}
	group.Add(child)

	root := scene.NewObject("root")
	root.Add(group)

	e := New("test", group)
	c := &stubComponent{kind: KindRender}
	e.AddComponent(c)
	e.Destroy()

	if !geo.Disposed() {
		t.Error("Expected geometry released on destroy")
	}
	if !mat.Disposed() {
		t.Error("Expected non-cached material released on destroy")
	}
	if group.Parent() != nil {
		t.Error("Expected group detached from scene root")
	}
	if c.destroys != 1 {
		t.Errorf("Expected component destroyed once, got %d", c.destroys)
	}
}

func TestDestroySkipsPooledMaterials(t *testing.T) {
	group := scene.NewObject("group")
	pooled := scene.NewMaterial("pooled", 0x00ff00)
	pooled.Cached = true
	group.Mesh = &scene.Mesh{Geometry: scene.NewGeometry(scene.Box{}), Materials: []*scene.Material{pooled}}

	e := New("test", group)
	e.Destroy()

	if pooled.Disposed() {
		t.Error("Expected pool-owned material to survive entity destruction")
	}
}

func TestDestroySkipsCachedGeometry(t *testing.T) {
	group := scene.NewObject("group")
	shared := scene.NewGeometry(scene.Box{})
	shared.Cached = true
	group.Mesh = &scene.Mesh{Geometry: shared, Materials: nil}

	e := New("test", group)
	e.Destroy()

	if shared.Disposed() {
		t.Error("Expected loader-owned geometry to survive entity destruction")
	}
}

func TestDestroyIsIdempotent(t *testing.T) {
	e := New("test", nil)
	c := &stubComponent{kind: KindRender}
	e.AddComponent(c)

	e.Destroy()
	e.Destroy()

	if c.destroys != 1 {
		t.Errorf("Expected exactly one component destroy, got %d", c.destroys)
	}
}

func TestUpdateAfterDestroyIsNoOp(t *testing.T) {
	e := New("test", nil)
	c := &stubComponent{kind: KindRender}
	e.AddComponent(c)
	e.Destroy()

	e.Update(16 * time.Millisecond) // Must not panic or tick components

	if c.updates != 0 {
		t.Errorf("Expected no updates after destroy, got %d", c.updates)
	}
}

func TestAddComponentAfterDestroyIgnored(t *testing.T) {
	e := New("test", nil)
	e.Destroy()
	e.AddComponent(&stubComponent{kind: KindRender})

	if _, ok := e.Component(KindRender); ok {
		t.Error("Expected component additions after destroy to be ignored")
	}
}
