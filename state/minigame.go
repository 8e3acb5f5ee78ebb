package state

import (
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/lixenwraith/worldkit/entity"
	"github.com/lixenwraith/worldkit/event"
	"github.com/lixenwraith/worldkit/parameter"
)

// MiniGame is a timed collect round: crystals scatter across the floor,
// walking into one collects it, the clock announces the score when it
// runs out. The return portal is always available.
type MiniGame struct {
	*world

	crystals  []*entity.Entity
	score     int
	remaining time.Duration
	announced bool
}

// NewMiniGame creates the mini-game state
func NewMiniGame(ctx *Context) *MiniGame {
	return &MiniGame{world: newWorld(ctx, NameMiniGame)}
}

func (m *MiniGame) Name() string { return NameMiniGame }

func (m *MiniGame) Enter(any) error {
	m.world = newWorld(m.ctx, NameMiniGame)
	m.crystals = nil
	m.score = 0
	m.remaining = parameter.MiniGameDuration
	m.announced = false
	m.pre = startPrefetch(m.ctx.Assets, keyFloor, keyPlayer, keyPortal, keyCrystal)
	return nil
}

func (m *MiniGame) Ready() bool {
	if m.built {
		return true
	}
	if m.pre == nil || !m.pre.ready() {
		return false
	}
	if m.pre.err != nil {
		m.ctx.Log.Error("mini-game asset prefetch failed", zap.Error(m.pre.err))
	}
	m.build()
	return m.built
}

func (m *MiniGame) build() {
	m.addFloor()
	if err := m.spawnPlayer(mgl64.Vec3{0, parameter.PlayerSpawnHeight, 8}); err != nil {
		m.ctx.Log.Error("player spawn failed", zap.Error(err))
	}
	m.addPortal(mgl64.Vec3{0, 0, 12}, NameHub, nil)

	// Crystals on a ring, deterministic layout
	for i := 0; i < parameter.MiniGameCrystalCount; i++ {
		angle := 2 * math.Pi * float64(i) / parameter.MiniGameCrystalCount
		pos := mgl64.Vec3{8 * math.Cos(angle), 0, 8 * math.Sin(angle)}
		if e := m.addStatic(keyCrystal, pos, "", nil); e != nil {
			m.crystals = append(m.crystals, e)
		}
	}
	m.built = true
}

func (m *MiniGame) Update(dt time.Duration) {
	m.update(dt)
	m.collect()

	if m.remaining > 0 {
		m.remaining -= dt
		if m.remaining <= 0 && !m.announced {
			m.announced = true
			m.ctx.Bus.Emit(event.TopicNotify,
				fmt.Sprintf("time up! collected %d of %d", m.score, parameter.MiniGameCrystalCount))
		}
	}
}

// collect takes any live crystal the player overlaps
func (m *MiniGame) collect() {
	if m.player == nil || m.announced {
		return
	}
	pos := m.player.Position()
	for i, c := range m.crystals {
		if c == nil || c.Destroyed() {
			continue
		}
		if c.Position().Sub(pos).Len() < parameter.MiniGamePickupRadius {
			c.Destroy()
			m.crystals[i] = nil
			m.score++
			m.ctx.Bus.Emit(event.TopicNotify,
				fmt.Sprintf("collected %d/%d", m.score, parameter.MiniGameCrystalCount))
		}
	}
}

// Score reports crystals collected this round
func (m *MiniGame) Score() int { return m.score }

func (m *MiniGame) Exit() {
	m.crystals = nil
	m.teardown()
}
