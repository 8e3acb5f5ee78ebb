// Package entity implements the component-container game object. An
// entity exclusively owns one scene group for its whole lifetime and
// updates its components in insertion order every frame.
package entity

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/lixenwraith/worldkit/scene"
)

// Entity is a container of components plus the owned scene group
type Entity struct {
	id    uuid.UUID
	name  string
	group *scene.Object

	// Insertion order drives update order; byKind serves typed lookup.
	// First component of a kind wins lookup; later duplicates still update.
	components []Component
	byKind     map[Kind]Component

	destroyed bool
}

// New creates an entity owning group. A nil group gets a fresh empty one,
// so an entity always holds exactly one group.
func New(name string, group *scene.Object) *Entity {
	if group == nil {
		group = scene.NewObject(name)
	}
	return &Entity{
		id:     uuid.New(),
		name:   name,
		group:  group,
		byKind: make(map[Kind]Component),
	}
}

// ID returns the opaque entity identity
func (e *Entity) ID() uuid.UUID { return e.id }

// Name returns the construction name, for logs
func (e *Entity) Name() string { return e.name }

// Group returns the owned scene group
func (e *Entity) Group() *scene.Object { return e.group }

// Destroyed reports whether Destroy has run
func (e *Entity) Destroyed() bool { return e.destroyed }

// Position returns the group's world position
func (e *Entity) Position() mgl64.Vec3 { return e.group.WorldPosition() }

// AddComponent appends c and wires the back-reference. O(1).
func (e *Entity) AddComponent(c Component) {
	if c == nil || e.destroyed {
		return
	}
	c.SetOwner(e)
	e.components = append(e.components, c)
	if _, exists := e.byKind[c.Kind()]; !exists {
		e.byKind[c.Kind()] = c
	}
}

// Component returns the first component of kind k. Absence is a normal
// soft-fail case; callers log and continue.
func (e *Entity) Component(k Kind) (Component, bool) {
	c, ok := e.byKind[k]
	return c, ok
}

// Update ticks components in insertion order. A destroyed entity ignores
// further updates rather than touching released resources.
func (e *Entity) Update(dt time.Duration) {
	if e.destroyed {
		return
	}
	for _, c := range e.components {
		c.Update(dt)
	}
}

// Destroy releases the components, then walks the owned group releasing
// geometry and non-pooled materials, and detaches it from the scene.
// Repeated calls are no-ops.
func (e *Entity) Destroy() {
	if e.destroyed {
		return
	}
	e.destroyed = true
	for _, c := range e.components {
		c.Destroy()
	}
	e.components = nil
	e.byKind = nil
	e.group.Dispose()
}
