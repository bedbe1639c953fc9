package stitchboard

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/kelseyhightower/envconfig"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// RunConfig configures the window opened by Run. Fields can be loaded from
// STITCHBOARD_* environment variables with LoadRunConfig.
type RunConfig struct {
	Title   string `envconfig:"TITLE" default:"stitchboard"`
	Width   int    `envconfig:"WIDTH" default:"1280"`
	Height  int    `envconfig:"HEIGHT" default:"800"`
	ShowFPS bool   `envconfig:"SHOW_FPS" default:"false"`
	// ExportDir receives PNG exports.
	ExportDir string `envconfig:"EXPORT_DIR" default:"."`
	// ScreenshotDir receives preview screenshots.
	ScreenshotDir string `envconfig:"SCREENSHOT_DIR" default:"screenshots"`
	// Script is an optional script file replayed one step per tick.
	Script string `envconfig:"SCRIPT"`
	// Toast is how long notices stay on screen, in seconds.
	Toast float32 `envconfig:"TOAST_SECONDS" default:"2.5"`
}

// LoadRunConfig reads a RunConfig from the environment.
func LoadRunConfig() (RunConfig, error) {
	var cfg RunConfig
	if err := envconfig.Process("STITCHBOARD", &cfg); err != nil {
		return RunConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// Run opens a window and runs b until the window is closed.
func Run(b *Board, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("run: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	g := newGame(b, cfg)
	if cfg.Script != "" {
		s, err := LoadScript(cfg.Script)
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
		g.script = s
	}
	b.SetNotifier(NotifierFunc(g.showNotice))

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// toast is a fading notice line.
type toast struct {
	text  string
	fade  *gween.Tween
	alpha float32
}

type game struct {
	board *Board
	in    *Interaction
	rend  *Renderer
	cfg   RunConfig

	script      *Script
	screenshots []string

	toast toast
	menu  ContextMenu

	mouseInside  bool
	lastX, lastY int
}

func newGame(b *Board, cfg RunConfig) *game {
	return &game{
		board: b,
		in:    NewInteraction(b),
		rend:  NewRenderer(),
		cfg:   cfg,
	}
}

func (g *game) showNotice(n Notice) {
	g.toast.text = n.String()
	g.toast.alpha = 1
	g.toast.fade = gween.New(1, 0, g.cfg.Toast, ease.InQuad)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.board.Camera.Viewport = Rect{Width: float64(outsideWidth), Height: float64(outsideHeight)}
	return outsideWidth, outsideHeight
}

func (g *game) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))
	g.board.Camera.Update(dt)
	if g.toast.fade != nil {
		a, done := g.toast.fade.Update(dt)
		g.toast.alpha = a
		if done {
			g.toast = toast{}
		}
	}

	if dropped := ebiten.DroppedFiles(); dropped != nil {
		if _, err := g.board.LoadFS(dropped); err != nil {
			logger.Warn("dropped files", "err", err)
		}
	}

	if g.script != nil && !g.script.Done() {
		g.script.Step(g)
	}

	g.processKeys()
	g.processPointer()
	return nil
}

// processKeys maps key presses to commands.
func (g *game) processKeys() {
	mods := readModifiers()
	cmdKey := mods.Has(ModCtrl) || mods.Has(ModMeta)
	pressed := inpututil.IsKeyJustPressed

	switch {
	case pressed(ebiten.KeyEscape):
		if g.menu.IsOpen() {
			g.menu.Close()
			return
		}
		g.in.Cancel()
	case pressed(ebiten.KeyDelete), pressed(ebiten.KeyBackspace):
		g.Exec(CmdDeleteSelected)
	case cmdKey && pressed(ebiten.KeyA):
		g.Exec(CmdSelectAll)
	case cmdKey && !mods.Has(ModShift) && pressed(ebiten.KeyZ):
		g.Exec(CmdUndo)
	case cmdKey:
	case pressed(ebiten.KeyD):
		g.Exec(CmdToggleDeformMode)
	case pressed(ebiten.KeyH):
		g.Exec(CmdStitchHorizontal)
	case pressed(ebiten.KeyV):
		g.Exec(CmdStitchVertical)
	case pressed(ebiten.KeyBracketLeft):
		g.Exec(CmdSendToBack)
	case pressed(ebiten.KeyBracketRight):
		g.Exec(CmdBringToFront)
	case pressed(ebiten.KeyR):
		g.Exec(CmdResetDeform)
	case pressed(ebiten.KeyF):
		g.Exec(CmdFitToView)
	case pressed(ebiten.KeyHome):
		g.Exec(CmdFrameAll)
	case pressed(ebiten.KeyE):
		g.export()
	case pressed(ebiten.KeyF12):
		g.Capture("board")
	}
}

// processPointer converts mouse state into pointer events.
func (g *game) processPointer() {
	mx, my := ebiten.CursorPosition()
	mods := readModifiers()
	x, y := float64(mx), float64(my)

	vp := g.board.Camera.Viewport
	inside := vp.Contains(x, y)
	if g.mouseInside && !inside {
		g.HandlePointer(PointerEvent{Kind: PointerLeave, X: x, Y: y, Modifiers: mods})
	}
	g.mouseInside = inside

	buttons := [...]struct {
		eb ebiten.MouseButton
		mb MouseButton
	}{
		{ebiten.MouseButtonLeft, MouseButtonLeft},
		{ebiten.MouseButtonRight, MouseButtonRight},
		{ebiten.MouseButtonMiddle, MouseButtonMiddle},
	}
	for _, btn := range buttons {
		if inpututil.IsMouseButtonJustPressed(btn.eb) && inside {
			g.HandlePointer(PointerEvent{Kind: PointerDown, X: x, Y: y, Button: btn.mb, Modifiers: mods})
		}
	}
	if mx != g.lastX || my != g.lastY {
		g.HandlePointer(PointerEvent{Kind: PointerMove, X: x, Y: y, Modifiers: mods})
		g.lastX, g.lastY = mx, my
	}
	for _, btn := range buttons {
		if inpututil.IsMouseButtonJustReleased(btn.eb) {
			g.HandlePointer(PointerEvent{Kind: PointerUp, X: x, Y: y, Button: btn.mb, Modifiers: mods})
		}
	}

	if _, dy := ebiten.Wheel(); dy != 0 && inside {
		g.Wheel(x, y, dy)
	}
}

// HandlePointer feeds ev through the context menu to the state machine and
// applies the cursor hint.
func (g *game) HandlePointer(ev PointerEvent) {
	res := g.menu.Route(g.board, g.in, ev)
	ebiten.SetCursorShape(cursorShape(res.Cursor))
}

func (g *game) Wheel(x, y, dy float64) { g.in.Wheel(x, y, dy) }

func (g *game) Exec(cmd Command) { g.board.Exec(cmd) }

// Capture queues a screenshot of the next drawn frame.
func (g *game) Capture(label string) {
	g.screenshots = append(g.screenshots, label)
}

func (g *game) export() {
	img, err := g.board.Export()
	if err != nil {
		return
	}
	path := filepath.Join(g.cfg.ExportDir, ExportFileName("stitch", time.Now()))
	if err := WritePNG(path, img); err != nil {
		logger.Warn("export failed", "err", err)
		return
	}
	logger.Info("export written", "path", path)
}

func cursorShape(c Cursor) ebiten.CursorShapeType {
	switch c {
	case CursorGrab, CursorGrabbing:
		return ebiten.CursorShapeMove
	case CursorResizeNWSE:
		return ebiten.CursorShapeNWSEResize
	case CursorResizeNESW:
		return ebiten.CursorShapeNESWResize
	case CursorCrosshair:
		return ebiten.CursorShapeCrosshair
	default:
		return ebiten.CursorShapeDefault
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	g.rend.Draw(screen, g.board)

	mode := "resize mode"
	if g.board.DeformMode() {
		mode = "deform mode"
	}
	status := fmt.Sprintf("%d images | %s | zoom %.0f%%", g.board.Len(), mode, g.board.Camera.Zoom*100)
	if g.cfg.ShowFPS {
		status += fmt.Sprintf(" | FPS %.1f", ebiten.ActualFPS())
	}
	ebitenutil.DebugPrintAt(screen, status, 8, 8)

	if g.toast.text != "" && g.toast.alpha > 0 {
		w := float32(len(g.toast.text)*6 + 16)
		h := screen.Bounds().Dy()
		x := float32(screen.Bounds().Dx())/2 - w/2
		a := uint8(200 * g.toast.alpha)
		vector.DrawFilledRect(screen, x, float32(h-48), w, 24, color.RGBA{0, 0, 0, a}, false)
		ebitenutil.DebugPrintAt(screen, g.toast.text, int(x)+8, h-44)
	}

	g.drawMenu(screen)
	g.flushScreenshots(screen)
}

// drawMenu draws the context menu with the item under the cursor
// highlighted. A menu whose picture is gone is closed instead.
func (g *game) drawMenu(screen *ebiten.Image) {
	if !g.menu.IsOpen() {
		return
	}
	if g.board.Picture(g.menu.Target) == nil {
		g.menu.Close()
		return
	}
	r := g.menu.Bounds()
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), colorMenu, false)
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), 1, colorSelection, false)

	mx, my := ebiten.CursorPosition()
	hover, hovering := g.menu.ItemAt(float64(mx), float64(my))
	for item := MenuBringToFront; item < menuItemCount; item++ {
		ir := g.menu.ItemRect(item)
		if hovering && item == hover {
			vector.DrawFilledRect(screen, float32(ir.X), float32(ir.Y), float32(ir.Width), float32(ir.Height), colorSelection, false)
		}
		ebitenutil.DebugPrintAt(screen, item.String(), int(ir.X)+8, int(ir.Y)+3)
	}
}

// flushScreenshots writes the rendered frame for every queued label.
func (g *game) flushScreenshots(screen *ebiten.Image) {
	if len(g.screenshots) == 0 {
		return
	}
	defer func() { g.screenshots = g.screenshots[:0] }()

	if err := os.MkdirAll(g.cfg.ScreenshotDir, 0o755); err != nil {
		logger.Warn("screenshot", "err", err)
		return
	}
	img := screenImage(screen)
	stamp := time.Now()
	for _, label := range g.screenshots {
		path := filepath.Join(g.cfg.ScreenshotDir, ExportFileName(label, stamp))
		if err := WritePNG(path, img); err != nil {
			logger.Warn("screenshot", "err", err)
		}
	}
}

// screenImage reads back an ebiten image as straight-alpha NRGBA.
func screenImage(screen *ebiten.Image) *image.NRGBA {
	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)
	return unpremultiply(pixels, w, h)
}

// unpremultiply converts premultiplied RGBA bytes to an NRGBA image.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}
