package stitchboard

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"strings"
	"time"
)

// ErrNothingToExport is returned by Export when the board is empty.
var ErrNothingToExport = errors.New("stitchboard: nothing to export")

// Export flattens every picture into one image. The output covers the union
// of all deformed bounds, and pictures are drawn in draw order with the
// export mesh resolution.
func (b *Board) Export() (*image.NRGBA, error) {
	bounds, ok := b.Bounds(ExportDivisions)
	if !ok {
		b.notify(NoticeNothingToExport)
		return nil, ErrNothingToExport
	}

	w := int(math.Ceil(bounds.Width))
	h := int(math.Ceil(bounds.Height))
	dst := image.NewNRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	view := [6]float64{1, 0, 0, 1, -bounds.X, -bounds.Y}

	r := newRasterizer(dst, view)
	skipped := 0
	for _, p := range b.pictures {
		skipped += r.drawPicture(p, ExportDivisions)
	}
	logger.Info("exported", "width", w, "height", h, "pictures", len(b.pictures))
	if skipped > 0 {
		logger.Debug("export skipped degenerate triangles", "count", skipped)
	}
	b.notify(NoticeExported)
	return dst, nil
}

// EncodePNG writes img to w as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// WritePNG encodes an image to a PNG file at the given path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := EncodePNG(f, img); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// ExportFileName returns a timestamped PNG file name for label.
func ExportFileName(label string, t time.Time) string {
	return fmt.Sprintf("%s_%s.png", sanitizeLabel(label), t.Format("20060102_150405"))
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "stitch" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "stitch"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
