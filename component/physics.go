package component

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/worldkit/entity"
)

// Physics integrates kinematic motion directly on the owner's group.
// No collision, no forces: velocity = direction * speed, position +=
// velocity * dt.
type Physics struct {
	owner *entity.Entity

	Speed     float64
	velocity  mgl64.Vec3
	direction mgl64.Vec3
	rotationY float64

	destroyed bool
}

// NewPhysics creates a kinematic mover with the given speed
func NewPhysics(speed float64) *Physics {
	return &Physics{Speed: speed}
}

func (p *Physics) Kind() entity.Kind         { return entity.KindPhysics }
func (p *Physics) SetOwner(e *entity.Entity) { p.owner = e }

// SetMovementDirection normalizes (x, z) into the movement direction.
// A zero vector stays zero rather than producing NaN.
func (p *Physics) SetMovementDirection(x, z float64) {
	v := mgl64.Vec3{x, 0, z}
	if l := v.Len(); l > 1e-12 {
		p.direction = v.Mul(1 / l)
	} else {
		p.direction = mgl64.Vec3{}
	}
}

// SetRotation sets the facing rotation in degrees around Y
func (p *Physics) SetRotation(degrees float64) { p.rotationY = degrees }

// Direction returns the normalized movement direction
func (p *Physics) Direction() mgl64.Vec3 { return p.direction }

// Velocity returns the last integrated velocity
func (p *Physics) Velocity() mgl64.Vec3 { return p.velocity }

func (p *Physics) Update(dt time.Duration) {
	if p.destroyed || p.owner == nil {
		return
	}
	p.velocity = p.direction.Mul(p.Speed)
	g := p.owner.Group()
	g.Position = g.Position.Add(p.velocity.Mul(dt.Seconds()))
	g.Rotation[1] = p.rotationY
}

func (p *Physics) Destroy() { p.destroyed = true }
