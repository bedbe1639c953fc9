package stitchboard

import "math"

// HitRect is an axis-aligned rectangular hit area in world coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle, edges included.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in world coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies strictly inside the circle.
func (c HitCircle) Contains(x, y float64) bool {
	return math.Hypot(x-c.CenterX, y-c.CenterY) < c.Radius
}

// DeformControl identifies one draggable deform point of a picture: a
// corner when IsEdge is false, otherwise an edge midpoint.
type DeformControl struct {
	IsEdge bool
	Index  int
}

// Corner returns the control as a Corner. Only meaningful when !IsEdge.
func (d DeformControl) Corner() Corner { return Corner(d.Index) }

// Edge returns the control as an Edge. Only meaningful when IsEdge.
func (d DeformControl) Edge() Edge { return Edge(d.Index) }

// offset returns a pointer to the picture's offset vector for this control.
func (d DeformControl) offset(p *Picture) *Vec2 {
	if d.IsEdge {
		return &p.Edges[d.Index]
	}
	return &p.Corners[d.Index]
}

// HitPicture returns the draw index of the topmost picture whose undeformed
// rectangle contains the world point. Deformation is ignored.
func (b *Board) HitPicture(wx, wy float64) (int, bool) {
	for i := len(b.pictures) - 1; i >= 0; i-- {
		p := b.pictures[i]
		if (HitRect{p.X, p.Y, p.W, p.H}).Contains(wx, wy) {
			return i, true
		}
	}
	return -1, false
}

// resizeHandles returns the hit areas of the four corner handles of p in
// TL, TR, BR, BL order, sized for the current zoom.
func (b *Board) resizeHandles(p *Picture) [4]HitRect {
	hs := b.Camera.ScreenToWorldDist(ResizeHandleSize)
	slop := b.Camera.ScreenToWorldDist(ResizeHandleSlop)
	side := hs + 2*slop
	at := func(cx, cy float64) HitRect {
		return HitRect{cx - hs/2 - slop, cy - hs/2 - slop, side, side}
	}
	return [4]HitRect{
		at(p.X, p.Y),
		at(p.X+p.W, p.Y),
		at(p.X+p.W, p.Y+p.H),
		at(p.X, p.Y+p.H),
	}
}

// HitResizeHandle tests the corner handles of the picture at index.
func (b *Board) HitResizeHandle(wx, wy float64, index int) (Corner, bool) {
	if index < 0 || index >= len(b.pictures) {
		return 0, false
	}
	for i, h := range b.resizeHandles(b.pictures[index]) {
		if h.Contains(wx, wy) {
			return Corner(i), true
		}
	}
	return 0, false
}

// HitDeformControl tests the warped corners, then the warped edge
// midpoints, of the picture at index.
func (b *Board) HitDeformControl(wx, wy float64, index int) (DeformControl, bool) {
	if index < 0 || index >= len(b.pictures) {
		return DeformControl{}, false
	}
	p := b.pictures[index]
	r := b.Camera.ScreenToWorldDist(DeformControlRadius)
	for i, c := range p.CornerPoints() {
		if (HitCircle{c.X, c.Y, r}).Contains(wx, wy) {
			return DeformControl{Index: i}, true
		}
	}
	for i, m := range p.EdgeMidpoints() {
		if (HitCircle{m.X, m.Y, r}).Contains(wx, wy) {
			return DeformControl{IsEdge: true, Index: i}, true
		}
	}
	return DeformControl{}, false
}
