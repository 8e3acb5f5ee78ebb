package component

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/worldkit/entity"
	"github.com/lixenwraith/worldkit/parameter"
	"github.com/lixenwraith/worldkit/worldfile"
)

// Action is one playable clip instance. Curve evaluation belongs to the
// renderer; the logic layer tracks activity, elapsed time and loop mode.
type Action struct {
	Name     string
	Loop     string // worldfile.LoopOnce | worldfile.LoopRepeat
	Duration time.Duration

	playing bool
	elapsed time.Duration
}

// Playing reports whether the action is currently active
func (a *Action) Playing() bool { return a.playing }

func (a *Action) start() {
	a.playing = true
	a.elapsed = 0
}

func (a *Action) stop() {
	a.playing = false
	a.elapsed = 0
}

// Animation owns the clip-name to action mapping built from animation
// metadata. Player-owned instances auto-select walk vs idle from the
// movement keys when both clips exist.
type Animation struct {
	owner *entity.Entity
	log   *zap.Logger

	actions map[string]*Action
	current *Action

	// autoSelect drives walk/idle from the PlayerInput component
	autoSelect bool

	destroyed bool
}

// NewAnimation builds actions from a model's animation metadata entry
func NewAnimation(entry worldfile.AnimationEntry, log *zap.Logger) *Animation {
	a := &Animation{actions: make(map[string]*Action), log: log}
	for _, clip := range entry.Animations {
		if clip.Enabled != nil && !*clip.Enabled {
			continue
		}
		loop := clip.Loop
		if loop == "" {
			loop = worldfile.LoopRepeat
		}
		a.actions[clip.Name] = &Action{
			Name:     clip.Name,
			Loop:     loop,
			Duration: time.Duration(clip.Duration * float64(time.Second)),
		}
	}
	return a
}

// EnableAutoSelect turns on walk/idle auto-selection (player entities)
func (a *Animation) EnableAutoSelect() { a.autoSelect = true }

func (a *Animation) Kind() entity.Kind         { return entity.KindAnimation }
func (a *Animation) SetOwner(e *entity.Entity) { a.owner = e }

// Current returns the active clip name, or "" when none plays
func (a *Animation) Current() string {
	if a.current == nil {
		return ""
	}
	return a.current.Name
}

// Has reports whether a clip exists
func (a *Animation) Has(name string) bool {
	_, ok := a.actions[name]
	return ok
}

// Play activates the named clip. Re-playing the active clip is a no-op
// unless force is set. Switching stops the previous action outright; the
// original design has no cross-fade.
func (a *Animation) Play(name string, force bool) {
	if a.destroyed {
		return
	}
	next, ok := a.actions[name]
	if !ok {
		a.log.Warn("unknown animation clip", zap.String("clip", name))
		return
	}
	if a.current == next && !force {
		return
	}
	if a.current != nil {
		a.current.stop()
	}
	next.start()
	a.current = next
}

// Stop halts the active clip, if any
func (a *Animation) Stop() {
	if a.current != nil {
		a.current.stop()
		a.current = nil
	}
}

// CurrentClip, PlayClip and ClipNames satisfy the interaction layer's
// animation control surface

func (a *Animation) CurrentClip() string { return a.Current() }

func (a *Animation) PlayClip(name string) { a.Play(name, false) }

func (a *Animation) ClipNames() []string {
	names := make([]string, 0, len(a.actions))
	for name := range a.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (a *Animation) Update(dt time.Duration) {
	if a.destroyed {
		return
	}
	if a.autoSelect {
		a.autoSelectClip()
	}
	cur := a.current
	if cur == nil || !cur.playing {
		return
	}
	cur.elapsed += dt
	if cur.Loop == worldfile.LoopOnce && cur.Duration > 0 && cur.elapsed >= cur.Duration {
		// Play-once clips clamp at the end and release the current slot so
		// the next per-tick decision (idle/walk) can take over
		cur.elapsed = cur.Duration
		cur.playing = false
		a.current = nil
	}
}

func (a *Animation) autoSelectClip() {
	if !a.Has(parameter.ClipIdle) || !a.Has(parameter.ClipWalk) {
		return
	}
	if a.owner == nil {
		return
	}
	c, ok := a.owner.Component(entity.KindPlayerInput)
	if !ok {
		return
	}
	if c.(*PlayerInput).Moving() {
		a.Play(parameter.ClipWalk, false)
	} else {
		a.Play(parameter.ClipIdle, false)
	}
}

func (a *Animation) Destroy() {
	if a.destroyed {
		return
	}
	a.destroyed = true
	for _, act := range a.actions {
		act.stop()
	}
	a.current = nil
}
