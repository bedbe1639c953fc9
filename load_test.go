package stitchboard

import (
	"bytes"
	"errors"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := EncodePNG(&buf, solidImage(w, h, color.RGBA{G: 0xff, A: 0xff})); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecodeImage(t *testing.T) {
	img, format, err := DecodeImage(bytes.NewReader(pngBytes(t, 7, 3)))
	if err != nil {
		t.Fatal(err)
	}
	if format != "png" || img.Bounds().Dx() != 7 || img.Bounds().Dy() != 3 {
		t.Errorf("decoded %s %v", format, img.Bounds())
	}
	if _, _, err := DecodeImage(bytes.NewReader([]byte("nope"))); err == nil {
		t.Error("expected error for garbage input")
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"a.png":      {Data: pngBytes(t, 10, 20)},
		"broken.png": {Data: []byte("not an image")},
		"notes.txt":  {Data: []byte("hello")},
		"sub/B.PNG":  {Data: pngBytes(t, 30, 40)},
	}
	b := newTestBoard()
	var log noticeLog
	b.SetNotifier(&log)

	pics, err := b.LoadFS(fsys)
	if err != nil {
		t.Fatal(err)
	}
	if len(pics) != 2 || b.Len() != 2 {
		t.Fatalf("loaded %d pictures, board has %d, want 2", len(pics), b.Len())
	}
	if pics[0].W != 10 || pics[1].W != 30 {
		t.Errorf("sizes = %v, %v", pics[0].W, pics[1].W)
	}
	// One batch: the second image is offset diagonally from the first.
	if pics[1].X-pics[0].X != 30 || pics[1].Y-pics[0].Y != 30 {
		t.Errorf("batch offset = (%v,%v)", pics[1].X-pics[0].X, pics[1].Y-pics[0].Y)
	}
	if len(log) != 2 || log[0] != NoticeLoadFailed || log[1] != NoticeLoaded {
		t.Errorf("notices = %v", log)
	}
}

func TestLoadFSEmpty(t *testing.T) {
	b := newTestBoard()
	pics, err := b.LoadFS(fstest.MapFS{"readme.md": {Data: []byte("#")}})
	if err != nil || pics != nil || b.Len() != 0 {
		t.Errorf("LoadFS = (%v, %v), len %d", pics, err, b.Len())
	}
}

func TestLoadFilesBatch(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.png")
	c := filepath.Join(dir, "c.png")
	bad := filepath.Join(dir, "bad.png")
	for name, data := range map[string][]byte{a: pngBytes(t, 10, 20), c: pngBytes(t, 30, 40), bad: []byte("nope")} {
		if err := os.WriteFile(name, data, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	b := newTestBoard()
	var log noticeLog
	b.SetNotifier(&log)
	pics, err := b.LoadFiles(a, filepath.Join(dir, "missing.png"), bad, c)
	if err == nil || !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want one wrapping fs.ErrNotExist", err)
	}
	if len(pics) != 2 || b.Len() != 2 {
		t.Fatalf("loaded %d pictures, want 2", len(pics))
	}
	// Placed as one batch: the second is offset diagonally from the first.
	if pics[0].X != -200 || pics[0].Y != -150 {
		t.Errorf("first at (%v,%v), want (-200,-150)", pics[0].X, pics[0].Y)
	}
	if pics[1].X-pics[0].X != 30 || pics[1].Y-pics[0].Y != 30 {
		t.Errorf("batch offset = (%v,%v)", pics[1].X-pics[0].X, pics[1].Y-pics[0].Y)
	}
	if log.last() != NoticeLoaded || len(log) != 3 {
		t.Errorf("notices = %v", log)
	}
}

func TestLoadFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "one.png")
	if err := os.WriteFile(name, pngBytes(t, 12, 8), 0o644); err != nil {
		t.Fatal(err)
	}
	b := newTestBoard()
	p, err := b.LoadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if p.W != 12 || p.H != 8 {
		t.Errorf("size = %vx%v", p.W, p.H)
	}
	if _, err := b.LoadFile(name + ".missing"); err == nil {
		t.Error("expected error for a missing file")
	}
}
