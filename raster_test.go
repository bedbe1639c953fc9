package stitchboard

import (
	"image"
	"testing"
)

// coverage accumulates how many triangles own each pixel of a w×h canvas.
func coverage(t *testing.T, w, h int, tris [][3]Vec2) []int {
	t.Helper()
	r := newRasterizer(image.NewNRGBA(image.Rect(0, 0, w, h)), identityTransform)
	counts := make([]int, w*h)
	for _, tri := range tris {
		mask, ok := r.triangleMask(tri)
		if !ok {
			continue
		}
		for y := mask.Rect.Min.Y; y < mask.Rect.Max.Y; y++ {
			for x := mask.Rect.Min.X; x < mask.Rect.Max.X; x++ {
				if mask.AlphaAt(x, y).A != 0 {
					counts[y*w+x]++
				}
			}
		}
	}
	return counts
}

func TestTriangleMaskPartitionsSquare(t *testing.T) {
	// Diagonal passes exactly through pixel centres.
	tris := [][3]Vec2{
		{{0, 0}, {10, 0}, {0, 10}},
		{{10, 0}, {10, 10}, {0, 10}},
	}
	for i, c := range coverage(t, 10, 10, tris) {
		if c != 1 {
			t.Fatalf("pixel (%d,%d) covered %d times", i%10, i/10, c)
		}
	}
}

func TestTriangleMaskPartitionsFan(t *testing.T) {
	// Eight triangles around an interior vertex, with edges through pixel
	// centres in several directions.
	centre := Vec2{8.5, 8.5}
	ring := []Vec2{{0, 0}, {8.5, 0}, {16, 0}, {16, 8.5}, {16, 16}, {8.5, 16}, {0, 16}, {0, 8.5}}
	var tris [][3]Vec2
	for i := range ring {
		tris = append(tris, [3]Vec2{centre, ring[i], ring[(i+1)%len(ring)]})
	}
	for i, c := range coverage(t, 16, 16, tris) {
		if c != 1 {
			t.Fatalf("pixel (%d,%d) covered %d times", i%16, i/16, c)
		}
	}
}

func TestTriangleMaskWindingIndependent(t *testing.T) {
	cw := coverage(t, 12, 12, [][3]Vec2{{{1, 1}, {11, 2}, {3, 10}}})
	ccw := coverage(t, 12, 12, [][3]Vec2{{{1, 1}, {3, 10}, {11, 2}}})
	for i := range cw {
		if cw[i] != ccw[i] {
			t.Fatalf("pixel %d differs by winding", i)
		}
	}
}

func TestTriangleMaskOffCanvas(t *testing.T) {
	r := newRasterizer(image.NewNRGBA(image.Rect(0, 0, 10, 10)), identityTransform)
	if _, ok := r.triangleMask([3]Vec2{{20, 20}, {30, 20}, {20, 30}}); ok {
		t.Error("off-canvas triangle reported coverage")
	}
	if _, ok := r.triangleMask([3]Vec2{{1, 1}, {5, 5}, {9, 9}}); ok {
		t.Error("zero-area triangle reported coverage")
	}
}

func TestToAff3(t *testing.T) {
	m := [6]float64{1, 2, 3, 4, 5, 6}
	a := toAff3(m)
	// x' = a*x + c*y + tx, y' = b*x + d*y + ty
	x, y := 7.0, 11.0
	gx := a[0]*x + a[1]*y + a[2]
	gy := a[3]*x + a[4]*y + a[5]
	wx, wy := transformPoint(m, x, y)
	if gx != wx || gy != wy {
		t.Errorf("Aff3 maps to (%v,%v), want (%v,%v)", gx, gy, wx, wy)
	}
}
