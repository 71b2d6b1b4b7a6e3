// Package renderer draws schematic sheets with Gio. It provides the
// graphics backend placed symbols create their proxies on, plus the camera
// and color themes the viewer uses.
package renderer

import (
	"math"

	"github.com/jeffwheeler/LibrePCB/pkg/geometry"
)

// Camera is a viewport onto a sheet. World coordinates are millimeters
// with Y increasing upward; screen coordinates are pixels with Y
// increasing downward.
type Camera struct {
	// Center position in world coordinates (mm)
	Center geometry.Point

	// Zoom level (pixels per mm)
	Zoom float64

	// Screen dimensions (pixels)
	ScreenWidth  int
	ScreenHeight int
}

// NewCamera creates a camera with a reasonable default zoom.
func NewCamera(screenWidth, screenHeight int) *Camera {
	return &Camera{
		Zoom:         10.0,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

// WorldToScreen converts world coordinates (mm) to screen coordinates
// (pixels).
func (c *Camera) WorldToScreen(pos geometry.Point) (float64, float64) {
	x := (pos.X - c.Center.X) * c.Zoom
	y := (pos.Y - c.Center.Y) * c.Zoom

	x += float64(c.ScreenWidth) / 2.0
	y += float64(c.ScreenHeight) / 2.0

	// Sheets have Y increasing upward, screens downward
	y = float64(c.ScreenHeight) - y

	return x, y
}

// ScreenToWorld converts screen coordinates (pixels) to world coordinates
// (mm).
func (c *Camera) ScreenToWorld(screenX, screenY float64) geometry.Point {
	y := float64(c.ScreenHeight) - screenY

	x := screenX - float64(c.ScreenWidth)/2.0
	y = y - float64(c.ScreenHeight)/2.0

	x /= c.Zoom
	y /= c.Zoom

	return geometry.Point{X: x + c.Center.X, Y: y + c.Center.Y}
}

// Pan moves the camera by screen pixel offsets.
func (c *Camera) Pan(deltaX, deltaY float64) {
	c.Center.X -= deltaX / c.Zoom
	c.Center.Y += deltaY / c.Zoom
}

// ZoomAt zooms in or out at a specific screen position. factor > 1 zooms
// in, factor < 1 zooms out. The world point under the cursor stays put.
func (c *Camera) ZoomAt(screenX, screenY, factor float64) {
	before := c.ScreenToWorld(screenX, screenY)

	c.Zoom *= factor
	if c.Zoom < 0.1 {
		c.Zoom = 0.1
	}
	if c.Zoom > 1000.0 {
		c.Zoom = 1000.0
	}

	after := c.ScreenToWorld(screenX, screenY)
	c.Center.X += before.X - after.X
	c.Center.Y += before.Y - after.Y
}

// Fit adjusts the camera so the given content fills 90% of the screen.
func (c *Camera) Fit(bbox geometry.BoundingBox) {
	width := bbox.Width()
	height := bbox.Height()
	if width <= 0 && height <= 0 {
		return
	}

	c.Center = geometry.Point{
		X: (bbox.Min.X + bbox.Max.X) / 2.0,
		Y: (bbox.Min.Y + bbox.Max.Y) / 2.0,
	}

	zoomX := math.Inf(1)
	zoomY := math.Inf(1)
	if width > 0 {
		zoomX = float64(c.ScreenWidth) * 0.9 / width
	}
	if height > 0 {
		zoomY = float64(c.ScreenHeight) * 0.9 / height
	}
	c.Zoom = math.Min(zoomX, zoomY)
	if math.IsInf(c.Zoom, 1) {
		c.Zoom = 10.0
	}
}

// UpdateScreenSize updates the camera when the window is resized.
func (c *Camera) UpdateScreenSize(width, height int) {
	c.ScreenWidth = width
	c.ScreenHeight = height
}

// VisibleBounds returns the bounding box of the visible area in world
// coordinates. Useful for culling off-screen items.
func (c *Camera) VisibleBounds() geometry.BoundingBox {
	topLeft := c.ScreenToWorld(0, 0)
	bottomRight := c.ScreenToWorld(float64(c.ScreenWidth), float64(c.ScreenHeight))

	bb := geometry.NewBoundingBox()
	bb.Expand(topLeft)
	bb.Expand(bottomRight)
	return bb
}
