package component

import (
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/worldkit/entity"
	"github.com/lixenwraith/worldkit/input"
)

// PlayerInput maps held movement keys to a cardinal direction and a
// facing rotation, forwarding both to the owner's physics component every
// tick. Diagonals are excluded: the mapping table sets one axis at a time.
type PlayerInput struct {
	owner *entity.Entity
	in    *input.Service
	log   *zap.Logger

	lastDX, lastDZ float64
	lastRotation   float64

	warnedNoPhysics bool
	destroyed       bool
}

// NewPlayerInput creates the mapper reading from in
func NewPlayerInput(in *input.Service, log *zap.Logger) *PlayerInput {
	return &PlayerInput{in: in, log: log, lastRotation: 0}
}

func (c *PlayerInput) Kind() entity.Kind         { return entity.KindPlayerInput }
func (c *PlayerInput) SetOwner(e *entity.Entity) { c.owner = e }

// Moving reports whether any movement key is currently held
func (c *PlayerInput) Moving() bool {
	return c.in.Held(input.ActionMoveForward) || c.in.Held(input.ActionMoveBack) ||
		c.in.Held(input.ActionMoveLeft) || c.in.Held(input.ActionMoveRight)
}

func (c *PlayerInput) Update(time.Duration) {
	if c.destroyed || c.owner == nil {
		return
	}

	// Mapping table: first matching cardinal wins, one axis only
	dx, dz := 0.0, 0.0
	rotation := c.lastRotation
	switch {
	case c.in.Held(input.ActionMoveForward):
		dz, rotation = -1, 180
	case c.in.Held(input.ActionMoveBack):
		dz, rotation = 1, 0
	case c.in.Held(input.ActionMoveLeft):
		dx, rotation = -1, -90
	case c.in.Held(input.ActionMoveRight):
		dx, rotation = 1, 90
	}
	c.lastDX, c.lastDZ = dx, dz
	c.lastRotation = rotation

	p, ok := c.owner.Component(entity.KindPhysics)
	if !ok {
		if !c.warnedNoPhysics {
			c.log.Warn("player input without physics component", zap.String("entity", c.owner.Name()))
			c.warnedNoPhysics = true
		}
		return
	}
	phys := p.(*Physics)
	phys.SetMovementDirection(dx, dz)
	phys.SetRotation(rotation)
}

func (c *PlayerInput) Destroy() { c.destroyed = true }
