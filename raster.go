package stitchboard

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// toAff3 converts a [a, b, c, d, tx, ty] matrix to the row-major form used
// by golang.org/x/image/draw.
func toAff3(m [6]float64) f64.Aff3 {
	return f64.Aff3{m[0], m[2], m[4], m[1], m[3], m[5]}
}

// sourceOffset maps absolute Source coordinates to texel coordinates
// relative to the Source's top-left.
func sourceOffset(p *Picture) [6]float64 {
	o := p.Source.Bounds().Min
	return [6]float64{1, 0, 0, 1, -float64(o.X), -float64(o.Y)}
}

// pictureMatrix maps texel coordinates of an undeformed picture to world
// coordinates.
func pictureMatrix(p *Picture) [6]float64 {
	texW, texH := p.sourceSize()
	return [6]float64{p.W / texW, 0, 0, p.H / texH, p.X, p.Y}
}

// rasterizer draws pictures onto an NRGBA canvas with bilinear sampling.
// The mask buffer is reused between triangles.
type rasterizer struct {
	dst  *image.NRGBA
	view [6]float64
	mask *image.Alpha
}

func newRasterizer(dst *image.NRGBA, view [6]float64) *rasterizer {
	return &rasterizer{dst: dst, view: view}
}

// drawPicture composites p over the canvas. Deformed pictures are drawn as
// a divisions×divisions triangle mesh; the number of zero-area triangles
// that were skipped is returned.
func (r *rasterizer) drawPicture(p *Picture, divisions int) int {
	if !p.HasDeform() {
		m := multiplyAffine(r.view, multiplyAffine(pictureMatrix(p), sourceOffset(p)))
		draw.BiLinear.Transform(r.dst, toAff3(m), p.Source, p.Source.Bounds(), draw.Over, nil)
		return 0
	}

	skipped := 0
	off := sourceOffset(p)
	for _, t := range BuildMesh(p, divisions) {
		a, ok := t.Affine()
		if !ok {
			skipped++
			continue
		}
		var d [3]Vec2
		for i, v := range t.Dst {
			x, y := transformPoint(r.view, v.X, v.Y)
			d[i] = Vec2{x, y}
		}
		mask, ok := r.triangleMask(d)
		if !ok {
			continue
		}
		sub := r.dst.SubImage(mask.Rect).(*image.NRGBA)
		m := multiplyAffine(r.view, multiplyAffine(a, off))
		draw.BiLinear.Transform(sub, toAff3(m), p.Source, p.Source.Bounds(), draw.Over, &draw.Options{
			DstMask: mask,
		})
	}
	return skipped
}

// triangleMask builds a binary coverage mask for the triangle d, given in
// canvas pixels. A pixel belongs to the triangle when its centre is inside;
// centres exactly on an edge go to one side only, so triangles sharing an
// edge never both draw a pixel and never both skip it. ok is false when the
// triangle covers no pixel of the canvas.
func (r *rasterizer) triangleMask(d [3]Vec2) (*image.Alpha, bool) {
	area := cross(d[1].Sub(d[0]), d[2].Sub(d[0]))
	if area == 0 {
		return nil, false
	}
	if area < 0 {
		d[1], d[2] = d[2], d[1]
	}

	bb := boundsOf(d[:])
	rect := image.Rect(
		int(math.Floor(bb.X)), int(math.Floor(bb.Y)),
		int(math.Ceil(bb.X+bb.Width)), int(math.Ceil(bb.Y+bb.Height)),
	).Intersect(r.dst.Rect)
	if rect.Empty() {
		return nil, false
	}

	n := rect.Dx() * rect.Dy()
	if r.mask == nil || cap(r.mask.Pix) < n {
		r.mask = &image.Alpha{Pix: make([]uint8, n)}
	}
	r.mask.Pix = r.mask.Pix[:n]
	r.mask.Stride = rect.Dx()
	r.mask.Rect = rect

	covered := false
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		row := r.mask.Pix[(y-rect.Min.Y)*r.mask.Stride:]
		for x := rect.Min.X; x < rect.Max.X; x++ {
			c := Vec2{float64(x) + 0.5, float64(y) + 0.5}
			in := edgeCovers(d[0], d[1], c) && edgeCovers(d[1], d[2], c) && edgeCovers(d[2], d[0], c)
			if in {
				row[x-rect.Min.X] = 0xff
				covered = true
			} else {
				row[x-rect.Min.X] = 0
			}
		}
	}
	return r.mask, covered
}

// edgeCovers reports whether c is on the inner side of the edge a→b for a
// triangle with positive orientation. Points exactly on the edge are owned
// by edges running down, or running left when horizontal.
func edgeCovers(a, b, c Vec2) bool {
	e := cross(b.Sub(a), c.Sub(a))
	if e != 0 {
		return e > 0
	}
	dy := b.Y - a.Y
	return dy > 0 || (dy == 0 && b.X < a.X)
}

func cross(a, b Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}
