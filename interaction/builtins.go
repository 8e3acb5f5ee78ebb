package interaction

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/lixenwraith/worldkit/entity"
	"github.com/lixenwraith/worldkit/event"
)

// PlayerLocator resolves the current player entity; states swap the
// player across transitions so builtins resolve lazily
type PlayerLocator func() *entity.Entity

// RegisterBuiltins installs the stock handlers
func RegisterBuiltins(r *Registry, bus *event.Bus, player PlayerLocator, log *zap.Logger) {
	r.Register(ShowMessage, func(data map[string]any) {
		text, _ := data["text"].(string)
		if text == "" {
			text = "..."
		}
		bus.Emit(event.TopicNotify, text)
	})

	r.Register(TeleportPlayer, func(data map[string]any) {
		p := player()
		if p == nil {
			log.Warn("teleport with no player present")
			return
		}
		g := p.Group()
		pos := mgl64.Vec3{num(data["x"]), num(data["y"]), num(data["z"])}
		if keep, _ := data["keepHeight"].(bool); keep {
			pos[1] = g.Position.Y()
		}
		g.Position = pos
	})

	r.Register(ToggleAnimation, func(data map[string]any) {
		anim := playerAnimation(player, log)
		if anim == nil {
			return
		}
		name, _ := data["animation"].(string)
		if name == "" {
			return
		}
		if anim.CurrentClip() == name {
			anim.Stop()
		} else {
			anim.PlayClip(name)
		}
	})

	r.Register(ShowAnimSelection, func(data map[string]any) {
		anim := playerAnimation(player, log)
		if anim == nil {
			return
		}
		bus.Emit(event.TopicNotify, fmt.Sprintf("animations: %v", anim.ClipNames()))
	})

	r.Register(ChangeWorld, func(data map[string]any) {
		target, _ := data["state"].(string)
		if target == "" {
			log.Warn("change-world interaction without target state")
			return
		}
		var params any
		if world, ok := data["world"].(string); ok {
			params = world
		}
		bus.Emit(event.TopicChangeState, event.ChangeState{Target: target, Params: params})
	})
}

// AnimationControl is the slice of the animation component builtins need;
// declared here to keep the dependency arrow pointing at interaction
type AnimationControl interface {
	CurrentClip() string
	PlayClip(name string)
	Stop()
	ClipNames() []string
}

func playerAnimation(player PlayerLocator, log *zap.Logger) AnimationControl {
	p := player()
	if p == nil {
		return nil
	}
	c, ok := p.Component(entity.KindAnimation)
	if !ok {
		log.Warn("animation interaction on player without animation component")
		return nil
	}
	anim, ok := c.(AnimationControl)
	if !ok {
		return nil
	}
	return anim
}

// num coerces JSON numbers (always float64) with a zero fallback
func num(v any) float64 {
	f, _ := v.(float64)
	return f
}
