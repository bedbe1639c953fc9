package stitchboard

import "github.com/hajimehoshi/ebiten/v2"

// Surface maps (u, v) in [0,1]² onto the deformed picture surface described
// by its four deformed corners (TL, TR, BR, BL) and four deformed edge
// midpoints (top, right, bottom, left).
//
// The result is the bilinear interpolation of the corners plus, for each
// edge, the midpoint's displacement from the straight midpoint of its two
// corners weighted by a bump that peaks on that edge and vanishes on the
// opposite edge and at both of its ends. The surface passes exactly through
// all eight control points and reduces to plain bilinear interpolation when
// every edge offset is zero.
func Surface(corners, mids [4]Vec2, u, v float64) Vec2 {
	tl, tr, br, bl := corners[0], corners[1], corners[2], corners[3]

	topOff := mids[EdgeTop].Sub(midpoint(tl, tr))
	rightOff := mids[EdgeRight].Sub(midpoint(tr, br))
	bottomOff := mids[EdgeBottom].Sub(midpoint(br, bl))
	leftOff := mids[EdgeLeft].Sub(midpoint(bl, tl))

	w00 := (1 - u) * (1 - v)
	w10 := u * (1 - v)
	w11 := u * v
	w01 := (1 - u) * v
	x := tl.X*w00 + tr.X*w10 + br.X*w11 + bl.X*w01
	y := tl.Y*w00 + tr.Y*w10 + br.Y*w11 + bl.Y*w01

	bumpU := 4 * u * (1 - u)
	bumpV := 4 * v * (1 - v)
	topW := (1 - v) * bumpU
	bottomW := v * bumpU
	leftW := (1 - u) * bumpV
	rightW := u * bumpV

	x += topOff.X*topW + bottomOff.X*bottomW + leftOff.X*leftW + rightOff.X*rightW
	y += topOff.Y*topW + bottomOff.Y*bottomW + leftOff.Y*leftW + rightOff.Y*rightW
	return Vec2{x, y}
}

// gridPoints samples the picture's surface on a (divisions+1)² lattice,
// row-major with v varying slowest.
func gridPoints(p *Picture, divisions int) []Vec2 {
	if divisions < 1 {
		divisions = 1
	}
	corners := p.CornerPoints()
	mids := p.EdgeMidpoints()
	n := divisions + 1
	pts := make([]Vec2, n*n)
	for gy := 0; gy < n; gy++ {
		v := float64(gy) / float64(divisions)
		for gx := 0; gx < n; gx++ {
			u := float64(gx) / float64(divisions)
			pts[gy*n+gx] = Surface(corners, mids, u, v)
		}
	}
	return pts
}

// Triangle is one textured piece of a deformed picture. Src holds texel
// coordinates relative to the top-left of the picture's Source; Dst holds
// the warped world positions.
type Triangle struct {
	Src [3]Vec2
	Dst [3]Vec2
}

// Affine returns the matrix mapping Src onto Dst. ok is false for
// zero-area triangles, which must not be drawn.
func (t Triangle) Affine() ([6]float64, bool) {
	return solveTriangleAffine(t.Src, t.Dst)
}

// BuildMesh subdivides the picture into a divisions×divisions grid and
// returns two triangles per cell: (p00, p10, p01) and (p10, p11, p01).
func BuildMesh(p *Picture, divisions int) []Triangle {
	if divisions < 1 {
		divisions = 1
	}
	pts := gridPoints(p, divisions)
	texW, texH := p.sourceSize()
	n := divisions + 1
	tris := make([]Triangle, 0, divisions*divisions*2)
	for gy := 0; gy < divisions; gy++ {
		sy0 := float64(gy) / float64(divisions) * texH
		sy1 := float64(gy+1) / float64(divisions) * texH
		for gx := 0; gx < divisions; gx++ {
			sx0 := float64(gx) / float64(divisions) * texW
			sx1 := float64(gx+1) / float64(divisions) * texW

			p00 := pts[gy*n+gx]
			p10 := pts[gy*n+gx+1]
			p01 := pts[(gy+1)*n+gx]
			p11 := pts[(gy+1)*n+gx+1]

			tris = append(tris,
				Triangle{
					Src: [3]Vec2{{sx0, sy0}, {sx1, sy0}, {sx0, sy1}},
					Dst: [3]Vec2{p00, p10, p01},
				},
				Triangle{
					Src: [3]Vec2{{sx1, sy0}, {sx1, sy1}, {sx0, sy1}},
					Dst: [3]Vec2{p10, p11, p01},
				},
			)
		}
	}
	return tris
}

// appendMeshVertices builds an ebiten vertex grid for the deformed picture,
// mapping world positions through view. Indices split every cell along the
// same diagonal as BuildMesh. The buffers are reused when large enough.
func appendMeshVertices(verts []ebiten.Vertex, inds []uint16, p *Picture, divisions int, view [6]float64) ([]ebiten.Vertex, []uint16) {
	if divisions < 1 {
		divisions = 1
	}
	pts := gridPoints(p, divisions)
	texW, texH := p.sourceSize()
	n := divisions + 1

	verts = verts[:0]
	for gy := 0; gy < n; gy++ {
		v := float64(gy) / float64(divisions)
		for gx := 0; gx < n; gx++ {
			u := float64(gx) / float64(divisions)
			sx, sy := transformPoint(view, pts[gy*n+gx].X, pts[gy*n+gx].Y)
			verts = append(verts, ebiten.Vertex{
				DstX:   float32(sx),
				DstY:   float32(sy),
				SrcX:   float32(u * texW),
				SrcY:   float32(v * texH),
				ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
			})
		}
	}

	inds = inds[:0]
	for gy := 0; gy < divisions; gy++ {
		for gx := 0; gx < divisions; gx++ {
			tl := uint16(gy*n + gx)
			tr := tl + 1
			bl := uint16((gy+1)*n + gx)
			br := bl + 1
			inds = append(inds, tl, tr, bl, tr, br, bl)
		}
	}
	return verts, inds
}
