package stitchboard

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Overlay colours.
var (
	colorBackground = color.RGBA{0x1e, 0x1e, 0x24, 0xff}
	colorSelection  = color.RGBA{0x6c, 0x5c, 0xe7, 0xff}
	colorCorner     = color.RGBA{0xfd, 0x79, 0xa8, 0xff}
	colorEdge       = color.RGBA{0x00, 0xce, 0xc9, 0xff}
	colorGuide      = color.RGBA{0x00, 0xce, 0xc9, 0xb3}
	colorWireframe  = color.RGBA{0xfd, 0x79, 0xa8, 0x80}
	colorMenu       = color.RGBA{0x2d, 0x2d, 0x36, 0xf0}
)

// Renderer draws a Board onto an ebiten image. It caches one GPU texture
// per picture; drawing never mutates the board.
type Renderer struct {
	textures map[ID]*ebiten.Image
	verts    []ebiten.Vertex
	inds     []uint16
	op       ebiten.DrawImageOptions
	triOp    ebiten.DrawTrianglesOptions
}

// NewRenderer creates a renderer with an empty texture cache.
func NewRenderer() *Renderer {
	return &Renderer{textures: make(map[ID]*ebiten.Image)}
}

// texture returns the cached texture for p, uploading it on first use. An
// empty source gets a 1×1 transparent texture.
func (r *Renderer) texture(p *Picture) *ebiten.Image {
	if t, ok := r.textures[p.ID]; ok {
		return t
	}
	var t *ebiten.Image
	if p.Source.Bounds().Empty() {
		t = ebiten.NewImage(1, 1)
	} else {
		t = ebiten.NewImageFromImage(p.Source)
	}
	r.textures[p.ID] = t
	return t
}

// prune disposes textures of pictures that are no longer on the board.
func (r *Renderer) prune(b *Board) {
	for id, t := range r.textures {
		if b.IndexOf(id) < 0 {
			t.Deallocate()
			delete(r.textures, id)
		}
	}
}

// Draw renders pictures, selection, handles and snap guides.
func (r *Renderer) Draw(screen *ebiten.Image, b *Board) {
	r.prune(b)
	screen.Fill(colorBackground)

	view := b.Camera.viewMatrix()
	for _, p := range b.pictures {
		r.drawPicture(screen, p, view)
	}
	for _, p := range b.pictures {
		if b.IsSelected(p.ID) {
			r.drawSelection(screen, b, p)
		}
	}
	r.drawGuides(screen, b)
}

func (r *Renderer) drawPicture(screen *ebiten.Image, p *Picture, view [6]float64) {
	tex := r.texture(p)
	if !p.HasDeform() {
		b := tex.Bounds()
		texW, texH := float64(b.Dx()), float64(b.Dy())
		r.op.GeoM.Reset()
		r.op.GeoM.Scale(p.W/texW, p.H/texH)
		r.op.GeoM.Translate(p.X, p.Y)
		r.op.GeoM.Concat(geoM(view))
		r.op.Filter = ebiten.FilterLinear
		screen.DrawImage(tex, &r.op)
		return
	}
	r.verts, r.inds = appendMeshVertices(r.verts, r.inds, p, PreviewDivisions, view)
	r.triOp.Filter = ebiten.FilterLinear
	screen.DrawTriangles(r.verts, r.inds, tex, &r.triOp)
}

// geoM converts a [6]float64 transform into an ebiten.GeoM.
func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

func (r *Renderer) drawSelection(screen *ebiten.Image, b *Board, p *Picture) {
	cam := b.Camera
	x0, y0 := cam.WorldToScreen(p.X, p.Y)
	x1, y1 := cam.WorldToScreen(p.X+p.W, p.Y+p.H)
	strokeDashedRect(screen, x0-2, y0-2, x1+2, y1+2, 6, 4, 2, colorSelection)

	if !b.deformMode {
		hs := float32(8)
		for _, c := range [4][2]float64{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}} {
			x, y := float32(c[0])-hs/2, float32(c[1])-hs/2
			vector.DrawFilledRect(screen, x, y, hs, hs, color.White, true)
			vector.StrokeRect(screen, x, y, hs, hs, 2, colorSelection, true)
		}
		return
	}

	var pts [4][2]float64
	for i, c := range p.CornerPoints() {
		pts[i][0], pts[i][1] = cam.WorldToScreen(c.X, c.Y)
	}
	for i := range pts {
		j := (i + 1) % 4
		strokeDashedLine(screen, pts[i][0], pts[i][1], pts[j][0], pts[j][1], 3, 3, 1, colorWireframe)
	}
	for _, c := range pts {
		vector.DrawFilledCircle(screen, float32(c[0]), float32(c[1]), 6, colorCorner, true)
		vector.StrokeCircle(screen, float32(c[0]), float32(c[1]), 6, 1.5, color.White, true)
	}
	for _, m := range p.EdgeMidpoints() {
		sx, sy := cam.WorldToScreen(m.X, m.Y)
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), 5, colorEdge, true)
		vector.StrokeCircle(screen, float32(sx), float32(sy), 5, 1.5, color.White, true)
	}
}

func (r *Renderer) drawGuides(screen *ebiten.Image, b *Board) {
	bounds := screen.Bounds()
	w, h := float64(bounds.Dx()), float64(bounds.Dy())
	for _, g := range b.guides {
		if g.Vertical {
			sx, _ := b.Camera.WorldToScreen(g.Pos, 0)
			strokeDashedLine(screen, sx, 0, sx, h, 4, 4, 1, colorGuide)
		} else {
			_, sy := b.Camera.WorldToScreen(0, g.Pos)
			strokeDashedLine(screen, 0, sy, w, sy, 4, 4, 1, colorGuide)
		}
	}
}

// strokeDashedLine draws a dashed line of dash on, gap off pixels.
func strokeDashedLine(dst *ebiten.Image, x0, y0, x1, y1, dash, gap float64, width float32, clr color.Color) {
	length := math.Hypot(x1-x0, y1-y0)
	if length == 0 {
		return
	}
	ux, uy := (x1-x0)/length, (y1-y0)/length
	for s := 0.0; s < length; s += dash + gap {
		e := math.Min(s+dash, length)
		vector.StrokeLine(dst,
			float32(x0+ux*s), float32(y0+uy*s),
			float32(x0+ux*e), float32(y0+uy*e),
			width, clr, true)
	}
}

func strokeDashedRect(dst *ebiten.Image, x0, y0, x1, y1, dash, gap float64, width float32, clr color.Color) {
	strokeDashedLine(dst, x0, y0, x1, y0, dash, gap, width, clr)
	strokeDashedLine(dst, x1, y0, x1, y1, dash, gap, width, clr)
	strokeDashedLine(dst, x1, y1, x0, y1, dash, gap, width, clr)
	strokeDashedLine(dst, x0, y1, x0, y0, dash, gap, width, clr)
}
