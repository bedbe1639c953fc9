package stitchboard

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Zoom limits applied by every zoom operation.
const (
	MinZoom = 0.1
	MaxZoom = 5.0
)

// cameraAnim holds active tweens for camera X, Y and Zoom. A nil tween is
// not animating.
type cameraAnim struct {
	tweenX    *gween.Tween
	tweenY    *gween.Tween
	tweenZoom *gween.Tween
}

// Camera controls the view onto the board: pan position, zoom, and viewport.
//
// The world point (X, Y) is drawn at the centre of Viewport, and one world
// unit spans Zoom screen units. Conversions are pure functions of these
// fields.
type Camera struct {
	// X and Y are the world-space position shown at the viewport centre.
	X, Y float64
	// Zoom is the scale factor, kept within [MinZoom, MaxZoom].
	Zoom float64
	// Viewport is the screen-space rectangle the board renders into.
	Viewport Rect

	anim cameraAnim
}

// NewCamera creates a Camera centred on the world origin at zoom 1.
func NewCamera(viewport Rect) *Camera {
	return &Camera{Zoom: 1, Viewport: viewport}
}

// clampZoom restricts z to [MinZoom, MaxZoom].
func clampZoom(z float64) float64 {
	return math.Max(MinZoom, math.Min(MaxZoom, z))
}

// viewMatrix returns the world-to-screen matrix.
//
// viewMatrix = Translate(cx, cy) * Scale(zoom) * Translate(-X, -Y)
// where cx, cy = viewport center.
func (c *Camera) viewMatrix() [6]float64 {
	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2
	z := c.Zoom
	return [6]float64{z, 0, 0, z, cx - z*c.X, cy - z*c.Y}
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return transformPoint(c.viewMatrix(), wx, wy)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	return transformPoint(invertAffine(c.viewMatrix()), sx, sy)
}

// ScreenToWorldDist converts a screen-space length to world units.
func (c *Camera) ScreenToWorldDist(d float64) float64 {
	return d / c.Zoom
}

// VisibleBounds returns the world-space rectangle covered by the viewport.
func (c *Camera) VisibleBounds() Rect {
	x0, y0 := c.ScreenToWorld(c.Viewport.X, c.Viewport.Y)
	x1, y1 := c.ScreenToWorld(c.Viewport.X+c.Viewport.Width, c.Viewport.Y+c.Viewport.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Pan moves the view so content follows a screen-space drag of (dsx, dsy).
func (c *Camera) Pan(dsx, dsy float64) {
	c.X -= dsx / c.Zoom
	c.Y -= dsy / c.Zoom
}

// ZoomAt multiplies the zoom by factor while keeping the world point under
// the screen point (sx, sy) fixed.
func (c *Camera) ZoomAt(sx, sy, factor float64) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.Zoom = clampZoom(c.Zoom * factor)
	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2
	c.X = wx - (sx-cx)/c.Zoom
	c.Y = wy - (sy-cy)/c.Zoom
}

// ScrollTo animates the camera centre to (x, y) over duration seconds.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.anim.tweenX = gween.New(float32(c.X), float32(x), duration, easeFn)
	c.anim.tweenY = gween.New(float32(c.Y), float32(y), duration, easeFn)
}

// ZoomTo animates the zoom to z (clamped) over duration seconds.
func (c *Camera) ZoomTo(z float64, duration float32, easeFn ease.TweenFunc) {
	c.anim.tweenZoom = gween.New(float32(c.Zoom), float32(clampZoom(z)), duration, easeFn)
}

// FrameRect animates the camera so r fills the viewport with a margin of
// 10% on each side.
func (c *Camera) FrameRect(r Rect, duration float32, easeFn ease.TweenFunc) {
	if r.Width <= 0 || r.Height <= 0 || c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return
	}
	z := math.Min(c.Viewport.Width/r.Width, c.Viewport.Height/r.Height) * 0.8
	center := r.Center()
	c.ScrollTo(center.X, center.Y, duration, easeFn)
	c.ZoomTo(z, duration, easeFn)
}

// Animating reports whether a ScrollTo, ZoomTo or FrameRect is in progress.
func (c *Camera) Animating() bool {
	return c.anim.tweenX != nil || c.anim.tweenY != nil || c.anim.tweenZoom != nil
}

// StopAnimation cancels any running camera animation in place.
func (c *Camera) StopAnimation() {
	c.anim = cameraAnim{}
}

// Update advances camera animations by dt seconds.
func (c *Camera) Update(dt float32) {
	if c.anim.tweenX != nil {
		val, done := c.anim.tweenX.Update(dt)
		c.X = float64(val)
		if done {
			c.anim.tweenX = nil
		}
	}
	if c.anim.tweenY != nil {
		val, done := c.anim.tweenY.Update(dt)
		c.Y = float64(val)
		if done {
			c.anim.tweenY = nil
		}
	}
	if c.anim.tweenZoom != nil {
		val, done := c.anim.tweenZoom.Update(dt)
		c.Zoom = clampZoom(float64(val))
		if done {
			c.anim.tweenZoom = nil
		}
	}
}
