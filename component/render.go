// Package component implements the behavior units attached to entities:
// render model holder, kinematic physics, player input mapping, animation
// playback, portal triggers and player interaction scanning.
package component

import (
	"time"

	"github.com/lixenwraith/worldkit/entity"
	"github.com/lixenwraith/worldkit/scene"
)

// Render holds the instantiated model subtree under the owner's group.
// The group owns the resources; this component only tracks the root so
// states and other components can reach the visual without re-traversing.
type Render struct {
	owner     *entity.Entity
	model     *scene.Object
	destroyed bool
}

// NewRender wraps an instantiated model root
func NewRender(model *scene.Object) *Render {
	return &Render{model: model}
}

func (r *Render) Kind() entity.Kind { return entity.KindRender }

func (r *Render) SetOwner(e *entity.Entity) {
	r.owner = e
	if r.model != nil && e != nil {
		e.Group().Add(r.model)
	}
}

// Model returns the held model root, nil after destroy
func (r *Render) Model() *scene.Object { return r.model }

func (r *Render) Update(time.Duration) {}

// Destroy drops the model reference; the owner's group disposal releases
// the actual resources. Idempotent.
func (r *Render) Destroy() {
	if r.destroyed {
		return
	}
	r.destroyed = true
	r.model = nil
}
