package stitchboard

import (
	"image/color"
	"testing"
)

func testPicture(w, h int) *Picture {
	return newPicture(1, solidImage(w, h, color.White), 10, 20)
}

func bilinear(c [4]Vec2, u, v float64) Vec2 {
	return Vec2{
		c[0].X*(1-u)*(1-v) + c[1].X*u*(1-v) + c[2].X*u*v + c[3].X*(1-u)*v,
		c[0].Y*(1-u)*(1-v) + c[1].Y*u*(1-v) + c[2].Y*u*v + c[3].Y*(1-u)*v,
	}
}

func TestSurfaceIdentity(t *testing.T) {
	p := testPicture(200, 100)
	c := p.CornerPoints()
	for i := 0; i <= 10; i++ {
		for j := 0; j <= 10; j++ {
			u, v := float64(i)/10, float64(j)/10
			got := p.Surface(u, v)
			want := bilinear(c, u, v)
			if !vecNear(got, want, 1e-9) {
				t.Errorf("Surface(%v,%v) = %v, want %v", u, v, got, want)
			}
		}
	}
}

func TestSurfaceIdentityWithCornerOffsets(t *testing.T) {
	p := testPicture(200, 100)
	p.Corners = [4]Vec2{{-10, 5}, {20, -8}, {3, 30}, {-7, -2}}
	c := p.CornerPoints()
	for _, uv := range [][2]float64{{0.25, 0.75}, {0.5, 0.5}, {0.9, 0.1}} {
		got := p.Surface(uv[0], uv[1])
		want := bilinear(c, uv[0], uv[1])
		if !vecNear(got, want, 1e-9) {
			t.Errorf("Surface(%v) = %v, want bilinear %v", uv, got, want)
		}
	}
}

func TestSurfaceInterpolatesControls(t *testing.T) {
	p := testPicture(200, 100)
	p.Corners = [4]Vec2{{-10, 5}, {20, -8}, {3, 30}, {-7, -2}}
	p.Edges = [4]Vec2{{0, -25}, {15, 4}, {-6, 18}, {-30, 0}}

	corners := p.CornerPoints()
	cornerUV := [4][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	for i, uv := range cornerUV {
		if got := p.Surface(uv[0], uv[1]); !vecNear(got, corners[i], 1e-9) {
			t.Errorf("corner %v: Surface = %v, want %v", Corner(i), got, corners[i])
		}
	}

	mids := p.EdgeMidpoints()
	midUV := [4][2]float64{{0.5, 0}, {1, 0.5}, {0.5, 1}, {0, 0.5}}
	for i, uv := range midUV {
		if got := p.Surface(uv[0], uv[1]); !vecNear(got, mids[i], 1e-9) {
			t.Errorf("edge %d: Surface = %v, want %v", i, got, mids[i])
		}
	}
}

func TestEdgeMidpointsFollowCorners(t *testing.T) {
	p := testPicture(100, 100)
	p.Corners[CornerTopRight] = Vec2{40, 0}
	mids := p.EdgeMidpoints()
	want := Vec2{X: 10 + 70, Y: 20}
	if !vecNear(mids[EdgeTop], want, epsilon) {
		t.Errorf("top midpoint = %v, want %v", mids[EdgeTop], want)
	}
}

func TestBuildMeshCounts(t *testing.T) {
	p := testPicture(64, 32)
	for _, n := range []int{1, PreviewDivisions, ExportDivisions} {
		if got := len(BuildMesh(p, n)); got != 2*n*n {
			t.Errorf("BuildMesh(%d) = %d triangles, want %d", n, got, 2*n*n)
		}
	}
}

func TestBuildMeshUndeformedIsAffine(t *testing.T) {
	p := testPicture(64, 32)
	p.W, p.H = 128, 96
	for i, tri := range BuildMesh(p, 4) {
		m, ok := tri.Affine()
		if !ok {
			t.Fatalf("triangle %d degenerate", i)
		}
		want := [6]float64{2, 0, 0, 3, 10, 20}
		for k := range m {
			if !approxEqual(m[k], want[k], 1e-9) {
				t.Fatalf("triangle %d affine = %v, want %v", i, m, want)
			}
		}
	}
}

func TestBuildMeshTexelCoverage(t *testing.T) {
	p := testPicture(60, 40)
	tris := BuildMesh(p, 3)
	var area float64
	for _, tri := range tris {
		a := tri.Src[1].Sub(tri.Src[0])
		b := tri.Src[2].Sub(tri.Src[0])
		area += cross(a, b) / 2
	}
	if !approxEqual(area, 60*40, 1e-6) {
		t.Errorf("source area = %f, want %d", area, 60*40)
	}
}

func TestBuildMeshCollapsedPictureIsDegenerate(t *testing.T) {
	p := testPicture(50, 50)
	// Fold the right side onto the left side.
	p.Corners[CornerTopRight] = Vec2{-50, 0}
	p.Corners[CornerBottomRight] = Vec2{-50, 0}
	for i, tri := range BuildMesh(p, 2) {
		if _, ok := tri.Affine(); ok {
			t.Errorf("triangle %d: ok = true for zero-area destination", i)
		}
	}
}

func TestAppendMeshVertices(t *testing.T) {
	p := testPicture(40, 20)
	p.Edges[EdgeBottom] = Vec2{0, 10}
	view := [6]float64{2, 0, 0, 2, 5, 5}
	verts, inds := appendMeshVertices(nil, nil, p, 4, view)
	if len(verts) != 25 {
		t.Fatalf("len(verts) = %d, want 25", len(verts))
	}
	if len(inds) != 4*4*6 {
		t.Fatalf("len(inds) = %d, want %d", len(inds), 4*4*6)
	}
	last := verts[len(verts)-1]
	if last.SrcX != 40 || last.SrcY != 20 {
		t.Errorf("last vertex src = (%f,%f), want (40,20)", last.SrcX, last.SrcY)
	}
	// Bottom midpoint: world (30, 50) -> screen (65, 105).
	mid := verts[4*5+2]
	if !approxEqual(float64(mid.DstX), 65, 1e-3) || !approxEqual(float64(mid.DstY), 105, 1e-3) {
		t.Errorf("bottom midpoint at (%f,%f), want (65,105)", mid.DstX, mid.DstY)
	}
	for _, i := range inds {
		if int(i) >= len(verts) {
			t.Fatalf("index %d out of range", i)
		}
	}

	// Buffers are reused.
	verts2, _ := appendMeshVertices(verts, inds, p, 2, view)
	if len(verts2) != 9 || &verts2[0] != &verts[0] {
		t.Error("vertex buffer was not reused")
	}
}
