package stitchboard

import (
	"image"
	"math"
)

// ID identifies a Picture for the lifetime of its Board. IDs are assigned
// from a per-board counter and never reused.
type ID uint32

// Picture is one placed image instance on a Board.
//
// X and Y locate the top-left corner of the undeformed rectangle in world
// units. Corners and Edges hold deform offsets: Corners[i] displaces the
// rectangle corner i (see Corner), Edges[i] displaces the midpoint of side i
// (see Edge) relative to the midpoint of its two deformed corners.
type Picture struct {
	ID ID

	// Source is the decoded pixel data. It is owned by the caller and
	// never modified.
	Source image.Image

	X, Y float64
	W, H float64

	// OrigW and OrigH are the fitted size at creation time.
	OrigW, OrigH float64

	Corners [4]Vec2
	Edges   [4]Vec2
}

// newPicture creates a picture for src at (x, y), fitting its natural size
// into MaxInitialSize.
func newPicture(id ID, src image.Image, x, y float64) *Picture {
	b := src.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	if w <= 0 || h <= 0 {
		w, h = 1, 1
	}
	if w > MaxInitialSize || h > MaxInitialSize {
		scale := MaxInitialSize / math.Max(w, h)
		w *= scale
		h *= scale
	}
	return &Picture{
		ID:     id,
		Source: src,
		X:      x,
		Y:      y,
		W:      w,
		H:      h,
		OrigW:  w,
		OrigH:  h,
	}
}

// Bounds returns the undeformed rectangle.
func (p *Picture) Bounds() Rect {
	return Rect{X: p.X, Y: p.Y, Width: p.W, Height: p.H}
}

// CornerPoints returns the deformed corner positions in world space,
// ordered TL, TR, BR, BL.
func (p *Picture) CornerPoints() [4]Vec2 {
	return [4]Vec2{
		{p.X + p.Corners[0].X, p.Y + p.Corners[0].Y},
		{p.X + p.W + p.Corners[1].X, p.Y + p.Corners[1].Y},
		{p.X + p.W + p.Corners[2].X, p.Y + p.H + p.Corners[2].Y},
		{p.X + p.Corners[3].X, p.Y + p.H + p.Corners[3].Y},
	}
}

// EdgeMidpoints returns the deformed edge midpoints in world space, ordered
// top, right, bottom, left. Each is the midpoint of its two deformed corners
// plus the edge offset.
func (p *Picture) EdgeMidpoints() [4]Vec2 {
	c := p.CornerPoints()
	return [4]Vec2{
		midpoint(c[0], c[1]).Add(p.Edges[0]),
		midpoint(c[1], c[2]).Add(p.Edges[1]),
		midpoint(c[2], c[3]).Add(p.Edges[2]),
		midpoint(c[3], c[0]).Add(p.Edges[3]),
	}
}

// HasDeform reports whether any corner or edge offset is non-zero.
func (p *Picture) HasDeform() bool {
	for i := range p.Corners {
		if !p.Corners[i].IsZero() || !p.Edges[i].IsZero() {
			return true
		}
	}
	return false
}

// ResetDeform clears all deform offsets.
func (p *Picture) ResetDeform() {
	p.Corners = [4]Vec2{}
	p.Edges = [4]Vec2{}
}

// Surface evaluates the deformed surface at (u, v) in [0,1]².
func (p *Picture) Surface(u, v float64) Vec2 {
	return Surface(p.CornerPoints(), p.EdgeMidpoints(), u, v)
}

// DeformedBounds returns the undeformed rectangle expanded to cover the
// deformed surface sampled on a divisions×divisions grid.
func (p *Picture) DeformedBounds(divisions int) Rect {
	r := p.Bounds()
	if !p.HasDeform() {
		return r
	}
	return r.Union(boundsOf(gridPoints(p, divisions)))
}

// sourceSize returns the natural pixel size of Source. An empty source
// counts as 1×1, matching the size newPicture gives it.
func (p *Picture) sourceSize() (float64, float64) {
	b := p.Source.Bounds()
	if b.Empty() {
		return 1, 1
	}
	return float64(b.Dx()), float64(b.Dy())
}
