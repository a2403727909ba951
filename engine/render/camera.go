package render

import (
	"math"

	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
)

// Camera is a top-down view of the sea. World X runs right and world Z runs
// up the screen; Zoom is pixels per world unit.
type Camera struct {
	X, Z       float64 // world position at the centre of the screen
	Zoom       float64
	MinZoom    float64
	MaxZoom    float64
	ScreenW    int
	ScreenH    int
	Speed      float64 // pan speed (pixels per second)
	EdgeScroll bool
	EdgeSize   int

	// GlideRate is how quickly Glide closes on its target, per second
	GlideRate float64
}

// NewCamera creates a camera with default settings
func NewCamera(screenW, screenH int) *Camera {
	return &Camera{
		Zoom:      1,
		MinZoom:   0.2,
		MaxZoom:   8,
		ScreenW:   screenW,
		ScreenH:   screenH,
		Speed:     500,
		EdgeSize:  20,
		GlideRate: 4,
	}
}

// Pan moves the camera by a pixel delta
func (c *Camera) Pan(dx, dy float64) {
	c.X += dx / c.Zoom
	c.Z -= dy / c.Zoom
}

// SetZoom sets zoom level with clamping
func (c *Camera) SetZoom(z float64) {
	c.Zoom = core.Clamp(z, c.MinZoom, c.MaxZoom)
}

// ZoomAt zooms by delta keeping the world point under the screen point still
func (c *Camera) ZoomAt(delta float64, screenX, screenY int) {
	before := c.ScreenToWorld(screenX, screenY)
	c.SetZoom(c.Zoom * (1 + delta))
	after := c.ScreenToWorld(screenX, screenY)
	c.X += before.X - after.X
	c.Z += before.Z - after.Z
}

// CenterOn centres the camera on a world position
func (c *Camera) CenterOn(p core.Vec3) {
	c.X = p.X
	c.Z = p.Z
}

// Glide moves the camera a step of dt seconds toward shot
func (c *Camera) Glide(shot Shot, dt float64) {
	t := 1 - math.Exp(-c.GlideRate*dt)
	c.X = core.Lerp(c.X, shot.Center.X, t)
	c.Z = core.Lerp(c.Z, shot.Center.Z, t)
	c.SetZoom(core.Lerp(c.Zoom, shot.Zoom, t))
}

// WorldToScreen converts a world position to screen pixels. Height is ignored.
func (c *Camera) WorldToScreen(p core.Vec3) (float32, float32) {
	sx := (p.X-c.X)*c.Zoom + float64(c.ScreenW)/2
	sy := -(p.Z-c.Z)*c.Zoom + float64(c.ScreenH)/2
	return float32(sx), float32(sy)
}

// ScreenToWorld converts a screen pixel to a sea-level world position
func (c *Camera) ScreenToWorld(sx, sy int) core.Vec3 {
	x := (float64(sx)-float64(c.ScreenW)/2)/c.Zoom + c.X
	z := -(float64(sy)-float64(c.ScreenH)/2)/c.Zoom + c.Z
	return core.V3(x, 0, z)
}

// FitZoom is the zoom that shows a square of side world units on the
// shorter screen axis
func (c *Camera) FitZoom(side float64) float64 {
	if side <= 0 {
		return c.Zoom
	}
	short := math.Min(float64(c.ScreenW), float64(c.ScreenH))
	return core.Clamp(short/side, c.MinZoom, c.MaxZoom)
}
