package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective camera with a pixel/cell viewport. Screen
// coordinates use the terminal convention: origin top-left, y down.
type Camera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3

	// FOV is vertical field of view in degrees
	FOV  float64
	Near float64
	Far  float64

	Width  int
	Height int
}

// NewCamera creates a camera looking at the origin from pos
func NewCamera(pos mgl64.Vec3, width, height int) *Camera {
	return &Camera{
		Position: pos,
		Up:       mgl64.Vec3{0, 1, 0},
		FOV:      60,
		Near:     0.1,
		Far:      500,
		Width:    width,
		Height:   height,
	}
}

// LookAt retargets the camera
func (c *Camera) LookAt(target mgl64.Vec3) { c.Target = target }

func (c *Camera) view() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.Target, c.Up)
}

func (c *Camera) projection() mgl64.Mat4 {
	aspect := 1.0
	if c.Height > 0 {
		aspect = float64(c.Width) / float64(c.Height)
	}
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// WorldToScreen projects p into screen coordinates. ok is false when p is
// behind the near plane or outside the viewport.
func (c *Camera) WorldToScreen(p mgl64.Vec3) (x, y float64, ok bool) {
	win := mgl64.Project(p, c.view(), c.projection(), 0, 0, c.Width, c.Height)
	if win.Z() < 0 || win.Z() > 1 {
		return 0, 0, false
	}
	x = win.X()
	y = float64(c.Height) - win.Y() // flip to y-down
	ok = x >= 0 && x < float64(c.Width) && y >= 0 && y < float64(c.Height)
	return x, y, ok
}

// ScreenToFloor casts the pointer ray through (sx, sy) and intersects it
// with the y=0 floor plane. ok is false for rays parallel to or pointing
// away from the plane.
func (c *Camera) ScreenToFloor(sx, sy float64) (mgl64.Vec3, bool) {
	wy := float64(c.Height) - sy // back to y-up
	near, errN := mgl64.UnProject(mgl64.Vec3{sx, wy, 0}, c.view(), c.projection(), 0, 0, c.Width, c.Height)
	far, errF := mgl64.UnProject(mgl64.Vec3{sx, wy, 1}, c.view(), c.projection(), 0, 0, c.Width, c.Height)
	if errN != nil || errF != nil {
		return mgl64.Vec3{}, false
	}
	dir := far.Sub(near)
	if math.Abs(dir.Y()) < 1e-9 {
		return mgl64.Vec3{}, false
	}
	t := -near.Y() / dir.Y()
	if t < 0 {
		return mgl64.Vec3{}, false
	}
	return near.Add(dir.Mul(t)), true
}
