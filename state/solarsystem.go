package state

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/lixenwraith/worldkit/entity"
	"github.com/lixenwraith/worldkit/parameter"
)

// orbit is one body circling the sun on the floor plane
type orbit struct {
	body   *entity.Entity
	radius float64
	speed  float64 // radians per second
	angle  float64
}

// SolarSystem is a walkable diorama: a sun at the center and planets on
// circular orbits, advanced analytically every frame.
type SolarSystem struct {
	*world

	orbits []orbit
}

// NewSolarSystem creates the solar-system state
func NewSolarSystem(ctx *Context) *SolarSystem {
	return &SolarSystem{world: newWorld(ctx, NameSolarSystem)}
}

func (s *SolarSystem) Name() string { return NameSolarSystem }

func (s *SolarSystem) Enter(any) error {
	s.world = newWorld(s.ctx, NameSolarSystem)
	s.orbits = nil
	s.pre = startPrefetch(s.ctx.Assets, keyFloor, keyPlayer, keyPortal, keySun, keyPlanet)
	return nil
}

func (s *SolarSystem) Ready() bool {
	if s.built {
		return true
	}
	if s.pre == nil || !s.pre.ready() {
		return false
	}
	if s.pre.err != nil {
		s.ctx.Log.Error("solar system asset prefetch failed", zap.Error(s.pre.err))
	}
	s.build()
	return s.built
}

func (s *SolarSystem) build() {
	s.addFloor()
	if err := s.spawnPlayer(mgl64.Vec3{0, parameter.PlayerSpawnHeight, 14}); err != nil {
		s.ctx.Log.Error("player spawn failed", zap.Error(err))
	}
	s.addPortal(mgl64.Vec3{0, 0, 18}, NameHub, nil)

	s.addStatic(keySun, mgl64.Vec3{0, 1, 0}, "", nil)

	// Inner bodies orbit fast, outer ones slow; phases staggered so the
	// diorama never starts in a straight line
	plan := []struct {
		radius, speed, phase float64
	}{
		{3, 0.9, 0},
		{5, 0.6, math.Pi / 2},
		{7, 0.4, math.Pi},
		{10, 0.25, 3 * math.Pi / 2},
	}
	for _, p := range plan {
		e := s.addStatic(keyPlanet, mgl64.Vec3{p.radius, 1, 0}, "", nil)
		if e == nil {
			continue
		}
		s.orbits = append(s.orbits, orbit{body: e, radius: p.radius, speed: p.speed, angle: p.phase})
	}
	s.built = true
}

func (s *SolarSystem) Update(dt time.Duration) {
	s.update(dt)
	for i := range s.orbits {
		o := &s.orbits[i]
		o.angle += o.speed * dt.Seconds()
		g := o.body.Group()
		g.Position = mgl64.Vec3{o.radius * math.Cos(o.angle), g.Position.Y(), o.radius * math.Sin(o.angle)}
		g.Rotation[1] += 45 * dt.Seconds()
	}
}

func (s *SolarSystem) Exit() {
	s.orbits = nil
	s.teardown()
}
