package stitchboard

import "math"

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// midpoint returns the point halfway between a and b.
func midpoint(a, b Vec2) Vec2 {
	return Vec2{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	minX := math.Min(r.X, other.X)
	minY := math.Min(r.Y, other.Y)
	maxX := math.Max(r.X+r.Width, other.X+other.Width)
	maxY := math.Max(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Center returns the centre point of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// boundsOf returns the axis-aligned bounding box of pts.
func boundsOf(pts []Vec2) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Corner identifies one of the four corners of a picture's rectangle.
// The order matches the corner offset array: clockwise from top-left.
type Corner uint8

const (
	CornerTopLeft     Corner = iota // top-left
	CornerTopRight                  // top-right
	CornerBottomRight               // bottom-right
	CornerBottomLeft                // bottom-left
)

func (c Corner) String() string {
	switch c {
	case CornerTopLeft:
		return "tl"
	case CornerTopRight:
		return "tr"
	case CornerBottomRight:
		return "br"
	case CornerBottomLeft:
		return "bl"
	default:
		return "unknown"
	}
}

// Edge identifies the midpoint of one side of a picture's rectangle.
type Edge uint8

const (
	EdgeTop    Edge = iota // top side midpoint
	EdgeRight              // right side midpoint
	EdgeBottom             // bottom side midpoint
	EdgeLeft               // left side midpoint
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Has reports whether all bits of m are set.
func (k KeyModifiers) Has(m KeyModifiers) bool { return k&m == m }

// Board-wide geometry constants. Tolerances expressed in screen units are
// divided by the camera zoom before being compared against world positions.
const (
	// MinSize is the smallest width or height a resize may produce.
	MinSize = 30.0
	// MaxInitialSize bounds the larger side of a newly added picture.
	MaxInitialSize = 400.0
	// SnapDistance is the edge snapping threshold in screen units.
	SnapDistance = 12.0
	// DeformSnap collapses deform offsets shorter than this (screen units) to zero.
	DeformSnap = 8.0
	// ResizeHandleSize is the side of a resize handle square in screen units.
	ResizeHandleSize = 12.0
	// ResizeHandleSlop widens the resize handle hit area on every side.
	ResizeHandleSlop = 2.0
	// DeformControlRadius is the hit radius of a deform control in screen units.
	DeformControlRadius = 10.0
	// PreviewDivisions is the mesh grid size used for interactive rendering.
	PreviewDivisions = 12
	// ExportDivisions is the mesh grid size used when exporting.
	ExportDivisions = 20
	// UndoCapacity is the number of snapshots kept by a History.
	UndoCapacity = 50
)
