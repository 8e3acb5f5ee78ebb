package component

import (
	"time"

	"github.com/lixenwraith/worldkit/entity"
	"github.com/lixenwraith/worldkit/input"
	"github.com/lixenwraith/worldkit/interaction"
	"github.com/lixenwraith/worldkit/parameter"
	"github.com/lixenwraith/worldkit/scene"
)

// Candidate is one interactable scene object offered to the scanner
type Candidate struct {
	Object *scene.Object
	ID     string
	Data   map[string]any
}

// CandidateProvider supplies the current interactable set; states refresh
// it as objects come and go
type CandidateProvider func() []Candidate

// PlayerInteraction scans candidates every tick for the closest one
// within the interaction radius and fires interactions on key release:
// change-world immediately regardless of press duration, otherwise a tap
// fires the candidate's own interaction and a hold fires the selection
// interaction instead.
type PlayerInteraction struct {
	owner *entity.Entity
	in    *input.Service
	reg   *interaction.Registry

	candidates CandidateProvider
	closest    *Candidate

	destroyed bool
}

// NewPlayerInteraction wires the scanner to input and the registry
func NewPlayerInteraction(in *input.Service, reg *interaction.Registry, candidates CandidateProvider) *PlayerInteraction {
	return &PlayerInteraction{in: in, reg: reg, candidates: candidates}
}

func (c *PlayerInteraction) Kind() entity.Kind         { return entity.KindPlayerInteraction }
func (c *PlayerInteraction) SetOwner(e *entity.Entity) { c.owner = e }

// Closest returns the current nearest candidate within range, nil if none
func (c *PlayerInteraction) Closest() *Candidate { return c.closest }

func (c *PlayerInteraction) Update(time.Duration) {
	if c.destroyed || c.owner == nil {
		return
	}
	c.scan()

	dur, released := c.in.Released(input.ActionInteract)
	if !released || c.closest == nil {
		return
	}
	switch {
	case c.closest.ID == interaction.ChangeWorld:
		// World changes fire immediately, press duration is irrelevant
		c.reg.Fire(c.closest.ID, c.closest.Data)
	case dur >= parameter.InteractionHoldThreshold:
		c.reg.Fire(interaction.ShowAnimSelection, c.closest.Data)
	case c.closest.ID != "":
		c.reg.Fire(c.closest.ID, c.closest.Data)
	}
}

// scan tracks the single closest candidate within the fixed radius.
// Nearest wins; at exactly equal distance the earlier candidate keeps
// the slot (stable scan order).
func (c *PlayerInteraction) scan() {
	c.closest = nil
	if c.candidates == nil {
		return
	}
	pos := c.owner.Position()
	best := parameter.InteractionRadius
	list := c.candidates()
	for i := range list {
		cand := &list[i]
		if cand.Object == nil {
			continue
		}
		d := cand.Object.WorldPosition().Sub(pos).Len()
		if d < best {
			best = d
			c.closest = cand
		}
	}
}

func (c *PlayerInteraction) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.closest = nil
}
