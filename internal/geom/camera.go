package geom

import "math"

// nearPlane is the minimum view depth; points closer than this to the camera
// plane are culled rather than projected.
const nearPlane = 0.1

// Camera is a minimal perspective projector. It sits on the +Z axis at
// Distance from the origin, looking at the origin, with Y up in world space
// and Y down on screen.
type Camera struct {
	Width    float64 // viewport width in pixels
	Height   float64 // viewport height in pixels
	FOV      float64 // vertical field of view in radians
	Distance float64 // camera distance from the origin
}

// NewCamera returns a camera for the given viewport with a standard field of
// view, placed far enough back that the unit stage fills most of the frame.
func NewCamera(width, height int) Camera {
	return Camera{
		Width:    float64(width),
		Height:   float64(height),
		FOV:      60 * math.Pi / 180,
		Distance: 3,
	}
}

// focal returns the focal length in pixels for the camera's field of view.
func (c Camera) focal() float64 {
	return (c.Height / 2) / math.Tan(c.FOV/2)
}

// Project maps a world point to screen coordinates. The second return value
// is false when the point lies on or behind the near plane.
func (c Camera) Project(v Vec3) (Vec2, bool) {
	depth := c.Distance - v.Z
	if depth < nearPlane {
		return Vec2{}, false
	}
	f := c.focal() / depth
	return Vec2{
		X: c.Width/2 + v.X*f,
		Y: c.Height/2 - v.Y*f,
	}, true
}

// Aspect returns the viewport width to height ratio.
func (c Camera) Aspect() float64 {
	if c.Height == 0 {
		return 1
	}
	return c.Width / c.Height
}
