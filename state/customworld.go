package state

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/lixenwraith/worldkit/parameter"
	"github.com/lixenwraith/worldkit/worldfile"
)

// CustomWorld loads a saved world from the store and replays its records
// as static objects, then drops the player in with a portal home.
type CustomWorld struct {
	*world

	name    string
	records []worldfile.Object
}

// NewCustomWorld creates the custom-world state
func NewCustomWorld(ctx *Context) *CustomWorld {
	return &CustomWorld{world: newWorld(ctx, NameCustomWorld)}
}

func (c *CustomWorld) Name() string { return NameCustomWorld }

// Enter loads the named world (params: world name string, empty falls
// back to the configured default) and starts prefetching its models
func (c *CustomWorld) Enter(params any) error {
	name, _ := params.(string)
	if name == "" {
		name = c.ctx.DefaultWorld
	}
	if name == "" {
		return fmt.Errorf("no world selected")
	}
	w, err := c.ctx.Store.Load(name)
	if err != nil {
		return fmt.Errorf("load world %q: %w", name, err)
	}
	c.world = newWorld(c.ctx, NameCustomWorld)
	c.name = name
	c.records = w.Objects

	keys := []string{keyFloor, keyPlayer, keyPortal}
	seen := map[string]bool{}
	for _, rec := range c.records {
		if rec.Path != "" && !seen[rec.Path] {
			seen[rec.Path] = true
			keys = append(keys, rec.Path)
		}
	}
	c.pre = startPrefetch(c.ctx.Assets, keys...)
	return nil
}

func (c *CustomWorld) Ready() bool {
	if c.built {
		return true
	}
	if c.pre == nil || !c.pre.ready() {
		return false
	}
	if c.pre.err != nil {
		c.ctx.Log.Error("custom world asset prefetch failed",
			zap.String("world", c.name), zap.Error(c.pre.err))
	}
	c.build()
	return c.built
}

func (c *CustomWorld) build() {
	c.addFloor()
	if err := c.spawnPlayer(mgl64.Vec3{0, parameter.PlayerSpawnHeight, 0}); err != nil {
		c.ctx.Log.Error("player spawn failed", zap.Error(err))
	}
	c.addPortal(mgl64.Vec3{0, 0, parameter.FloorHalfExtent - 2}, NameHub, nil)

	for _, rec := range c.records {
		e := c.addStatic(rec.Path, mgl64.Vec3{rec.Position.X, rec.Position.Y, rec.Position.Z},
			rec.InteractionID, rec.InteractionData)
		if e == nil {
			continue
		}
		g := e.Group()
		g.Rotation = mgl64.Vec3{rec.Rotation.X, rec.Rotation.Y, rec.Rotation.Z}
		if rec.Scale != (worldfile.Vec3{}) {
			g.Scale = mgl64.Vec3{rec.Scale.X, rec.Scale.Y, rec.Scale.Z}
		}
	}
	c.built = true
}

// WorldName returns the loaded world's name
func (c *CustomWorld) WorldName() string { return c.name }

func (c *CustomWorld) Update(dt time.Duration) { c.update(dt) }

func (c *CustomWorld) Exit() {
	c.records = nil
	c.teardown()
}
