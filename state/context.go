package state

import (
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/worldkit/asset"
	"github.com/lixenwraith/worldkit/component"
	"github.com/lixenwraith/worldkit/entity"
	"github.com/lixenwraith/worldkit/event"
	"github.com/lixenwraith/worldkit/input"
	"github.com/lixenwraith/worldkit/interaction"
	"github.com/lixenwraith/worldkit/parameter"
	"github.com/lixenwraith/worldkit/scene"
	"github.com/lixenwraith/worldkit/store"
	"github.com/lixenwraith/worldkit/worldfile"
)

// Asset keys shared by the built-in worlds
const (
	keyFloor   = "models/floor.json"
	keyPlayer  = "models/player.json"
	keyPortal  = "models/portal.json"
	keyTree    = "models/tree.json"
	keyCrystal = "models/crystal.json"
	keyPlanet  = "models/planet.json"
	keySun     = "models/sun.json"
)

// Built-in state names, shared with portals and the editor toggle
const (
	NameHub         = "hub"
	NameMiniGame    = "mini-game"
	NameCustomWorld = "custom-world"
	NameSolarSystem = "solar-system"
	NameEditor      = "editor"
)

// Context bundles the services every state needs
type Context struct {
	Bus      *event.Bus
	Input    *input.Service
	Assets   *asset.Loader
	Registry *interaction.Registry
	Store    *store.Store
	Log      *zap.Logger

	// DefaultWorld is the saved world the hub's custom-world portal opens
	DefaultWorld string
}

// prefetch warms the asset cache in the background. States poll ready and
// then build their scene with plain cache-hit Gets on the main goroutine.
type prefetch struct {
	done chan struct{}
	err  error
}

func startPrefetch(loader *asset.Loader, keys ...string) *prefetch {
	p := &prefetch{done: make(chan struct{})}
	g := new(errgroup.Group)
	for _, key := range keys {
		g.Go(func() error {
			_, err := loader.Get(key)
			return err
		})
	}
	go func() {
		p.err = g.Wait()
		close(p.done)
	}()
	return p
}

func (p *prefetch) ready() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// world is the scaffolding shared by the built-in states: scene root,
// follow camera, entity list, interaction candidates and the player.
type world struct {
	ctx *Context

	root     *scene.Object
	cam      *scene.Camera
	entities []*entity.Entity
	player   *entity.Entity

	// candidates is rebuilt as interactables are placed; read every tick
	// by the player's interaction scanner
	mu         sync.RWMutex
	candidates []component.Candidate

	pre   *prefetch
	built bool
}

func newWorld(ctx *Context, name string) *world {
	return &world{ctx: ctx, root: scene.NewObject(name), cam: newFollowCamera()}
}

func newFollowCamera() *scene.Camera {
	return &scene.Camera{
		Position: mgl64.Vec3{0, parameter.CameraFollowHeight, parameter.CameraFollowBack},
		Up:       mgl64.Vec3{0, 1, 0},
		FOV:      50,
		Near:     0.1,
		Far:      200,
	}
}

func (w *world) Scene() *scene.Object  { return w.root }
func (w *world) Camera() *scene.Camera { return w.cam }
func (w *world) Player() *entity.Entity {
	return w.player
}

func (w *world) Candidates() []component.Candidate {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]component.Candidate, len(w.candidates))
	copy(out, w.candidates)
	return out
}

func (w *world) addCandidate(c component.Candidate) {
	w.mu.Lock()
	w.candidates = append(w.candidates, c)
	w.mu.Unlock()
}

func (w *world) removeCandidate(obj *scene.Object) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, c := range w.candidates {
		if c.Object == obj {
			w.candidates = append(w.candidates[:i], w.candidates[i+1:]...)
			return
		}
	}
}

// addEntity tracks e for teardown and returns it unchanged
func (w *world) addEntity(e *entity.Entity) *entity.Entity {
	w.entities = append(w.entities, e)
	return e
}

// spawnPlayer builds the player entity at pos: render model, input
// mapping, kinematics, auto-selecting animation and interaction scanning
func (w *world) spawnPlayer(pos mgl64.Vec3) error {
	a, err := w.ctx.Assets.Get(keyPlayer)
	if err != nil {
		return err
	}
	group := scene.NewObject("player")
	group.Position = pos
	e := entity.New("player", group)
	e.AddComponent(component.NewRender(a.Object))
	e.AddComponent(component.NewPlayerInput(w.ctx.Input, w.ctx.Log))
	e.AddComponent(component.NewPhysics(parameter.PlayerMoveSpeed))
	if entry, ok := w.ctx.Assets.Animations(a.Model); ok {
		anim := component.NewAnimation(entry, w.ctx.Log)
		anim.EnableAutoSelect()
		e.AddComponent(anim)
	}
	e.AddComponent(component.NewPlayerInteraction(w.ctx.Input, w.ctx.Registry, w.Candidates))

	w.root.Add(group)
	w.player = w.addEntity(e)
	return nil
}

// addFloor lays a floor slab scaled to the walkable extent
func (w *world) addFloor() {
	a, err := w.ctx.Assets.Get(keyFloor)
	if err != nil {
		w.ctx.Log.Warn("floor asset unavailable", zap.Error(err))
		return
	}
	group := scene.NewObject("floor")
	group.Scale = mgl64.Vec3{parameter.FloorHalfExtent * 2, 1, parameter.FloorHalfExtent * 2}
	e := entity.New("floor", group)
	e.AddComponent(component.NewRender(a.Object))
	w.root.Add(group)
	w.addEntity(e)
}

// addStatic places one model instance, applying properties metadata
// (light, default interaction) and any explicit interaction override
func (w *world) addStatic(key string, pos mgl64.Vec3, interactionID string, data map[string]any) *entity.Entity {
	a, err := w.ctx.Assets.Get(key)
	if err != nil {
		w.ctx.Log.Warn("static asset unavailable", zap.String("key", key), zap.Error(err))
		return nil
	}
	group := scene.NewObject(a.Model)
	group.Position = pos
	e := entity.New(a.Model, group)
	e.AddComponent(component.NewRender(a.Object))
	w.root.Add(group)
	w.addEntity(e)

	if props, ok := w.ctx.Assets.Properties(a.Model); ok {
		if props.Light != nil {
			group.Light = lightFromSpec(props.Light)
		}
		if interactionID == "" {
			interactionID = props.InteractionID
			data = props.InteractionData
		}
	}
	if interactionID != "" {
		w.addCandidate(component.Candidate{Object: group, ID: interactionID, Data: data})
	}
	return e
}

// addPortal places a portal model that switches to target on contact
func (w *world) addPortal(pos mgl64.Vec3, target string, params any) {
	e := w.addStatic(keyPortal, pos, "", nil)
	if e == nil {
		return
	}
	e.AddComponent(component.NewPortal(w.ctx.Bus, w.player, target, params))
}

func lightFromSpec(spec *worldfile.LightSpec) *scene.Light {
	return &scene.Light{
		Type:       scene.LightType(spec.Type),
		Color:      spec.Color,
		Intensity:  spec.Intensity,
		Distance:   spec.Distance,
		Decay:      spec.Decay,
		Angle:      spec.Angle,
		Penumbra:   spec.Penumbra,
		CastShadow: spec.CastShadow,
	}
}

// followCamera eases the camera toward its offset behind the player
func (w *world) followCamera() {
	if w.player == nil {
		return
	}
	target := w.player.Position()
	want := target.Add(mgl64.Vec3{0, parameter.CameraFollowHeight, parameter.CameraFollowBack})
	w.cam.Position = w.cam.Position.Add(want.Sub(w.cam.Position).Mul(parameter.CameraLerpFactor))
	w.cam.Target = target
}

// update ticks every entity then the camera
func (w *world) update(dt time.Duration) {
	for _, e := range w.entities {
		e.Update(dt)
	}
	w.followCamera()
}

// teardown destroys entities and the scene root. Safe to call on a world
// that never finished building.
func (w *world) teardown() {
	for _, e := range w.entities {
		e.Destroy()
	}
	w.entities = nil
	w.player = nil
	w.mu.Lock()
	w.candidates = nil
	w.mu.Unlock()
	if w.root != nil {
		w.root.Dispose()
	}
	w.pre = nil
	w.built = false
}
