package entity

import "time"

// Kind discriminates component variants for O(1) typed lookup
type Kind uint8

const (
	KindRender Kind = iota
	KindPhysics
	KindPlayerInput
	KindAnimation
	KindPortal
	KindPlayerInteraction
)

func (k Kind) String() string {
	switch k {
	case KindRender:
		return "render"
	case KindPhysics:
		return "physics"
	case KindPlayerInput:
		return "player-input"
	case KindAnimation:
		return "animation"
	case KindPortal:
		return "portal"
	case KindPlayerInteraction:
		return "player-interaction"
	default:
		return "unknown"
	}
}

// Component is the per-frame behavior unit attached to exactly one entity.
// SetOwner is called once by AddComponent; Destroy must be idempotent and
// tolerate resources that were never acquired.
type Component interface {
	Kind() Kind
	SetOwner(*Entity)
	Update(dt time.Duration)
	Destroy()
}
