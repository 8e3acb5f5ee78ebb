package component

import (
	"time"

	"github.com/lixenwraith/worldkit/entity"
	"github.com/lixenwraith/worldkit/event"
	"github.com/lixenwraith/worldkit/parameter"
)

// Portal fires a state change when the target entity comes within the
// trigger radius. A cooldown suppresses re-trigger storms while the
// target keeps overlapping.
type Portal struct {
	owner *entity.Entity
	bus   *event.Bus

	target      *entity.Entity
	targetState string
	params      any

	cooldown  time.Duration
	destroyed bool
}

// NewPortal creates a portal tracking target and switching to targetState
func NewPortal(bus *event.Bus, target *entity.Entity, targetState string, params any) *Portal {
	return &Portal{bus: bus, target: target, targetState: targetState, params: params}
}

func (p *Portal) Kind() entity.Kind         { return entity.KindPortal }
func (p *Portal) SetOwner(e *entity.Entity) { p.owner = e }

func (p *Portal) Update(dt time.Duration) {
	if p.destroyed || p.owner == nil || p.target == nil {
		return
	}
	if p.cooldown > 0 {
		p.cooldown -= dt
		return
	}
	dist := p.owner.Position().Sub(p.target.Position()).Len()
	if dist < parameter.PortalTriggerRadius {
		p.bus.Emit(event.TopicChangeState, event.ChangeState{Target: p.targetState, Params: p.params})
		p.cooldown = parameter.PortalCooldown
	}
}

func (p *Portal) Destroy() { p.destroyed = true }
