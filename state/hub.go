package state

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/lixenwraith/worldkit/interaction"
	"github.com/lixenwraith/worldkit/parameter"
)

// Hub is the home world: floor, player, a ring of props and the portals
// into the other worlds.
type Hub struct {
	*world
}

// NewHub creates the hub state
func NewHub(ctx *Context) *Hub {
	return &Hub{world: newWorld(ctx, NameHub)}
}

func (h *Hub) Name() string { return NameHub }

func (h *Hub) Enter(any) error {
	h.world = newWorld(h.ctx, NameHub)
	h.pre = startPrefetch(h.ctx.Assets, keyFloor, keyPlayer, keyPortal, keyTree, keyCrystal)
	return nil
}

// Ready finalizes scene assembly on the caller's goroutine once the
// prefetched loads have landed
func (h *Hub) Ready() bool {
	if h.built {
		return true
	}
	if h.pre == nil || !h.pre.ready() {
		return false
	}
	if h.pre.err != nil {
		h.ctx.Log.Error("hub asset prefetch failed", zap.Error(h.pre.err))
	}
	h.build()
	return h.built
}

func (h *Hub) build() {
	h.addFloor()
	if err := h.spawnPlayer(mgl64.Vec3{0, parameter.PlayerSpawnHeight, 0}); err != nil {
		h.ctx.Log.Error("player spawn failed", zap.Error(err))
	}

	// Portals line the north edge; the custom-world portal carries the
	// world name it opens
	h.addPortal(mgl64.Vec3{-8, 0, -10}, NameMiniGame, nil)
	h.addPortal(mgl64.Vec3{0, 0, -10}, NameSolarSystem, nil)
	h.addPortal(mgl64.Vec3{8, 0, -10}, NameCustomWorld, h.ctx.DefaultWorld)

	// Scenery with metadata-driven lights and interactions
	h.addStatic(keyTree, mgl64.Vec3{-6, 0, 4}, "", nil)
	h.addStatic(keyTree, mgl64.Vec3{6, 0, 4}, "", nil)
	h.addStatic(keyCrystal, mgl64.Vec3{0, 0, 6}, interaction.ShowMessage,
		map[string]any{"text": "welcome to the hub"})

	h.built = true
}

func (h *Hub) Update(dt time.Duration) { h.update(dt) }

func (h *Hub) Exit() { h.teardown() }
