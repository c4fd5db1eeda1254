package simulation

import (
	"math"

	"github.com/lao-tseu-is-alive/go-text-swarm/pkg/geometry"
)

// Camera is a pinhole camera on the +Z axis looking at the origin, Y up.
// Screen coordinates have their origin top-left, Y down.
type Camera struct {
	Distance      float64 // camera z
	FieldOfView   float64 // vertical, degrees
	Width, Height float64 // viewport, pixels
}

// NewCamera builds the camera described by cfg.
func NewCamera(cfg *Config) Camera {
	return Camera{
		Distance:    cfg.CameraDistance,
		FieldOfView: cfg.FieldOfView,
		Width:       float64(cfg.WindowWidth),
		Height:      float64(cfg.WindowHeight),
	}
}

// focal is the distance, in pixels, from the eye to the image plane.
func (c Camera) focal() float64 {
	return c.Height / 2 / math.Tan(c.FieldOfView*math.Pi/360)
}

// Project maps a world point to the screen. scale is the on-screen size of
// one world unit at that depth; ok is false behind the camera.
func (c Camera) Project(p geometry.Vector3D) (x, y, scale float64, ok bool) {
	depth := c.Distance - p.Z
	if depth <= 0 {
		return 0, 0, 0, false
	}
	scale = c.focal() / depth
	return c.Width/2 + p.X*scale, c.Height/2 - p.Y*scale, scale, true
}

// Unproject casts the ray through a screen pixel and intersects it with
// the plane z = planeZ, which must lie in front of the camera.
func (c Camera) Unproject(sx, sy, planeZ float64) (geometry.Vector3D, bool) {
	depth := c.Distance - planeZ
	if depth <= 0 {
		return geometry.Zero, false
	}
	scale := depth / c.focal()
	return geometry.Vector3D{
		X: (sx - c.Width/2) * scale,
		Y: (c.Height/2 - sy) * scale,
		Z: planeZ,
	}, true
}
