package stitchboard

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestCameraDefaults(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	if cam.Zoom != 1.0 {
		t.Errorf("Zoom = %f, want 1.0", cam.Zoom)
	}
	sx, sy := cam.WorldToScreen(0, 0)
	if !approxEqual(sx, 400, epsilon) || !approxEqual(sy, 300, epsilon) {
		t.Errorf("WorldToScreen(0,0) = (%f,%f), want (400,300)", sx, sy)
	}
}

func TestCameraInverse(t *testing.T) {
	cams := []Camera{
		{X: 0, Y: 0, Zoom: 1, Viewport: Rect{Width: 800, Height: 600}},
		{X: 123.5, Y: -40, Zoom: 2.5, Viewport: Rect{Width: 1280, Height: 720}},
		{X: -900, Y: 300, Zoom: MinZoom, Viewport: Rect{X: 10, Y: 20, Width: 640, Height: 480}},
		{X: 7, Y: 7, Zoom: MaxZoom, Viewport: Rect{Width: 300, Height: 300}},
	}
	pts := []Vec2{{0, 0}, {400, 300}, {-50, 999}, {12.25, 0.5}}
	for _, cam := range cams {
		for _, p := range pts {
			sx, sy := cam.WorldToScreen(p.X, p.Y)
			wx, wy := cam.ScreenToWorld(sx, sy)
			if !approxEqual(wx, p.X, 1e-7) || !approxEqual(wy, p.Y, 1e-7) {
				t.Errorf("cam %+v: round trip %v -> (%f,%f)", cam, p, wx, wy)
			}
		}
	}
}

func TestCameraZoomScale(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	cam.Zoom = 2
	sx1, _ := cam.WorldToScreen(1, 0)
	sx0, _ := cam.WorldToScreen(0, 0)
	if !approxEqual(sx1-sx0, 2, epsilon) {
		t.Errorf("zoom 2x: 1 world unit = %f screen pixels, want 2", sx1-sx0)
	}
	if got := cam.ScreenToWorldDist(12); !approxEqual(got, 6, epsilon) {
		t.Errorf("ScreenToWorldDist(12) = %f, want 6", got)
	}
}

func TestCameraZoomAtKeepsCursorPoint(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	cam.X, cam.Y = 30, -20
	wx, wy := cam.ScreenToWorld(650, 120)
	cam.ZoomAt(650, 120, 1.7)
	if !approxEqual(cam.Zoom, 1.7, epsilon) {
		t.Errorf("Zoom = %f, want 1.7", cam.Zoom)
	}
	wx2, wy2 := cam.ScreenToWorld(650, 120)
	if !approxEqual(wx, wx2, 1e-9) || !approxEqual(wy, wy2, 1e-9) {
		t.Errorf("world under cursor moved from (%f,%f) to (%f,%f)", wx, wy, wx2, wy2)
	}
}

func TestCameraZoomClamp(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	cam.ZoomAt(400, 300, 100)
	if cam.Zoom != MaxZoom {
		t.Errorf("Zoom = %f, want %f", cam.Zoom, MaxZoom)
	}
	cam.ZoomAt(400, 300, 0.0001)
	if cam.Zoom != MinZoom {
		t.Errorf("Zoom = %f, want %f", cam.Zoom, MinZoom)
	}
}

func TestCameraPanFollowsDrag(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	cam.Zoom = 2
	wx, wy := cam.ScreenToWorld(100, 100)
	cam.Pan(40, -10)
	sx, sy := cam.WorldToScreen(wx, wy)
	if !approxEqual(sx, 140, epsilon) || !approxEqual(sy, 90, epsilon) {
		t.Errorf("grabbed point at (%f,%f), want (140,90)", sx, sy)
	}
}

func TestCameraVisibleBounds(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	cam.X, cam.Y, cam.Zoom = 100, 50, 2
	b := cam.VisibleBounds()
	want := Rect{X: -100, Y: -100, Width: 400, Height: 300}
	if !approxEqual(b.X, want.X, epsilon) || !approxEqual(b.Y, want.Y, epsilon) ||
		!approxEqual(b.Width, want.Width, epsilon) || !approxEqual(b.Height, want.Height, epsilon) {
		t.Errorf("VisibleBounds = %+v, want %+v", b, want)
	}
}

func TestCameraScrollToCompletes(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	cam.ScrollTo(200, -100, 0.5, ease.Linear)
	if !cam.Animating() {
		t.Fatal("Animating = false after ScrollTo")
	}
	for i := 0; i < 60 && cam.Animating(); i++ {
		cam.Update(1.0 / 60)
	}
	if cam.Animating() {
		t.Fatal("animation did not finish")
	}
	if !approxEqual(cam.X, 200, 1e-3) || !approxEqual(cam.Y, -100, 1e-3) {
		t.Errorf("camera at (%f,%f), want (200,-100)", cam.X, cam.Y)
	}
}

func TestCameraFrameRect(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	cam.FrameRect(Rect{X: 0, Y: 0, Width: 400, Height: 100}, 0.1, ease.Linear)
	for i := 0; i < 30 && cam.Animating(); i++ {
		cam.Update(1.0 / 60)
	}
	if !approxEqual(cam.Zoom, 1.6, 1e-3) {
		t.Errorf("Zoom = %f, want 1.6", cam.Zoom)
	}
	if !approxEqual(cam.X, 200, 1e-3) || !approxEqual(cam.Y, 50, 1e-3) {
		t.Errorf("centre = (%f,%f), want (200,50)", cam.X, cam.Y)
	}
}

func TestCameraStopAnimation(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	cam.ZoomTo(3, 1, ease.Linear)
	cam.StopAnimation()
	cam.Update(0.5)
	if cam.Zoom != 1 {
		t.Errorf("Zoom = %f after StopAnimation, want 1", cam.Zoom)
	}
}
