package stitchboard

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// imageExts lists the file extensions LoadFS attempts to decode.
var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".webp": true, ".bmp": true, ".tif": true, ".tiff": true,
}

// DecodeImage decodes a PNG, JPEG, GIF, WebP, BMP or TIFF image.
func DecodeImage(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, format, nil
}

// LoadFile decodes the image at path and adds it to the board.
func (b *Board) LoadFile(name string) (*Picture, error) {
	img, err := decodeFile(name)
	if err != nil {
		b.notify(NoticeLoadFailed)
		return nil, err
	}
	p := b.AddImage(img)
	b.notify(NoticeLoaded)
	return p, nil
}

// LoadFiles decodes every named file and adds the images as one placement
// batch. Files that cannot be opened or decoded are skipped with a warning;
// the joined errors are returned alongside the pictures that were added.
func (b *Board) LoadFiles(names ...string) ([]*Picture, error) {
	var imgs []image.Image
	var errs []error
	for _, name := range names {
		img, err := decodeFile(name)
		if err != nil {
			logger.Warn("skipping file", "file", name, "err", err)
			b.notify(NoticeLoadFailed)
			errs = append(errs, err)
			continue
		}
		imgs = append(imgs, img)
	}
	var pics []*Picture
	if len(imgs) > 0 {
		pics = b.AddImages(imgs)
		b.notify(NoticeLoaded)
	}
	return pics, errors.Join(errs...)
}

func decodeFile(name string) (image.Image, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()
	img, format, err := DecodeImage(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	logger.Info("loaded", "file", name, "format", format)
	return img, nil
}

// LoadFS adds every image file found in fsys as one placement batch.
// Files that are not images, or fail to decode, are skipped with a warning.
func (b *Board) LoadFS(fsys fs.FS) ([]*Picture, error) {
	var imgs []image.Image
	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !imageExts[strings.ToLower(path.Ext(name))] {
			return nil
		}
		f, err := fsys.Open(name)
		if err != nil {
			logger.Warn("skipping file", "file", name, "err", err)
			return nil
		}
		defer f.Close()
		img, format, err := DecodeImage(f)
		if err != nil {
			logger.Warn("skipping file", "file", name, "err", err)
			b.notify(NoticeLoadFailed)
			return nil
		}
		logger.Info("loaded", "file", name, "format", format)
		imgs = append(imgs, img)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load files: %w", err)
	}
	if len(imgs) == 0 {
		return nil, nil
	}
	pics := b.AddImages(imgs)
	b.notify(NoticeLoaded)
	return pics, nil
}
