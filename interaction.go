package stitchboard

import "math"

// GestureKind is the state of the interaction state machine.
type GestureKind uint8

const (
	GestureIdle      GestureKind = iota // no pointer gesture in progress
	GesturePanning                      // dragging the camera
	GestureMoving                       // dragging the selected pictures
	GestureResizing                     // dragging a corner handle
	GestureDeforming                    // dragging a deform control
)

func (g GestureKind) String() string {
	switch g {
	case GestureIdle:
		return "idle"
	case GesturePanning:
		return "panning"
	case GestureMoving:
		return "moving"
	case GestureResizing:
		return "resizing"
	case GestureDeforming:
		return "deforming"
	default:
		return "unknown"
	}
}

// PointerEventKind is the kind of a PointerEvent.
type PointerEventKind uint8

const (
	PointerDown  PointerEventKind = iota // a button was pressed
	PointerMove                         // the pointer moved
	PointerUp                           // a button was released
	PointerLeave                        // the pointer left the board surface
)

// PointerEvent is one pointer input in screen coordinates.
type PointerEvent struct {
	Kind      PointerEventKind
	X, Y      float64
	Button    MouseButton
	Modifiers KeyModifiers
}

// Cursor is the pointer shape a host should display.
type Cursor uint8

const (
	CursorDefault    Cursor = iota // arrow
	CursorGrab                     // over a picture
	CursorGrabbing                 // panning
	CursorResizeNWSE               // over a TL or BR handle
	CursorResizeNESW               // over a TR or BL handle
	CursorCrosshair                // over a deform control
)

// Result describes the effect of one handled event.
type Result struct {
	// State is the gesture state after the event.
	State GestureKind
	// Redraw is true when visible state changed.
	Redraw bool
	// Cursor is the suggested pointer shape.
	Cursor Cursor
	// ContextTarget is the picture under a secondary click, or zero.
	ContextTarget ID
}

// SnapGuide is an edge line matched while moving. When Vertical is true
// the guide is the line x = Pos, otherwise y = Pos.
type SnapGuide struct {
	Vertical bool
	Pos      float64
}

type moveStart struct {
	p    *Picture
	x, y float64
}

// Interaction turns pointer events into board mutations. It holds only the
// state of the gesture in progress; everything persistent lives on the
// Board.
type Interaction struct {
	board *Board
	state GestureKind

	// last screen position while panning
	lastX, lastY float64
	// world position at pointer-down
	startWX, startWY float64

	moves []moveStart

	target      *Picture
	corner      Corner
	startRect   Rect
	control     DeformControl
	startOffset Vec2
}

// NewInteraction creates an idle state machine driving b.
func NewInteraction(b *Board) *Interaction {
	return &Interaction{board: b}
}

// State returns the current gesture state.
func (in *Interaction) State() GestureKind {
	return in.state
}

// Handle is the transition function: it applies ev to the board and
// returns the resulting state.
func (in *Interaction) Handle(ev PointerEvent) Result {
	switch ev.Kind {
	case PointerDown:
		return in.down(ev)
	case PointerMove:
		return in.move(ev)
	case PointerUp:
		return in.up()
	case PointerLeave:
		if in.state == GesturePanning {
			in.reset()
			return Result{State: GestureIdle}
		}
		return Result{State: in.state}
	}
	return Result{State: in.state}
}

func (in *Interaction) down(ev PointerEvent) Result {
	b := in.board
	if in.state != GestureIdle {
		return Result{State: in.state, Cursor: in.activeCursor()}
	}
	if ev.Button == MouseButtonMiddle || (ev.Button == MouseButtonLeft && ev.Modifiers.Has(ModAlt)) {
		return in.startPan(ev)
	}
	wx, wy := b.Camera.ScreenToWorld(ev.X, ev.Y)

	if ev.Button == MouseButtonRight {
		i, ok := b.HitPicture(wx, wy)
		if !ok {
			return Result{State: GestureIdle}
		}
		id := b.pictures[i].ID
		if !b.IsSelected(id) {
			b.Select(id)
		}
		return Result{State: GestureIdle, Redraw: true, ContextTarget: id}
	}
	if ev.Button != MouseButtonLeft {
		return Result{State: GestureIdle}
	}

	in.startWX, in.startWY = wx, wy

	if b.deformMode {
		for _, i := range b.Selected() {
			if c, ok := b.HitDeformControl(wx, wy, i); ok {
				b.Snapshot()
				in.target = b.pictures[i]
				in.control = c
				in.startOffset = *c.offset(in.target)
				in.state = GestureDeforming
				return Result{State: in.state, Cursor: CursorCrosshair}
			}
		}
	} else {
		for _, i := range b.Selected() {
			if c, ok := b.HitResizeHandle(wx, wy, i); ok {
				b.Snapshot()
				in.target = b.pictures[i]
				in.corner = c
				in.startRect = in.target.Bounds()
				in.state = GestureResizing
				return Result{State: in.state, Cursor: resizeCursor(c)}
			}
		}
	}

	if i, ok := b.HitPicture(wx, wy); ok {
		p := b.pictures[i]
		if ev.Modifiers.Has(ModShift) {
			b.Toggle(p.ID)
			return Result{State: GestureIdle, Redraw: true, Cursor: CursorGrab}
		}
		if !b.IsSelected(p.ID) {
			b.Select(p.ID)
		}
		b.Snapshot()
		if len(b.selected) == 1 {
			b.BringToFront(p.ID)
		}
		in.moves = in.moves[:0]
		for _, si := range b.Selected() {
			sp := b.pictures[si]
			in.moves = append(in.moves, moveStart{p: sp, x: sp.X, y: sp.Y})
		}
		in.state = GestureMoving
		return Result{State: in.state, Redraw: true, Cursor: CursorGrabbing}
	}

	if ev.Modifiers.Has(ModShift) {
		return Result{State: GestureIdle}
	}
	b.ClearSelection()
	res := in.startPan(ev)
	res.Redraw = true
	return res
}

func (in *Interaction) startPan(ev PointerEvent) Result {
	in.state = GesturePanning
	in.lastX, in.lastY = ev.X, ev.Y
	return Result{State: in.state, Cursor: CursorGrabbing}
}

func (in *Interaction) move(ev PointerEvent) Result {
	b := in.board
	if in.state == GesturePanning {
		b.Camera.Pan(ev.X-in.lastX, ev.Y-in.lastY)
		in.lastX, in.lastY = ev.X, ev.Y
		return Result{State: in.state, Redraw: true, Cursor: CursorGrabbing}
	}

	wx, wy := b.Camera.ScreenToWorld(ev.X, ev.Y)
	if in.state == GestureIdle {
		return Result{State: GestureIdle, Cursor: in.hoverCursor(wx, wy)}
	}

	dx, dy := wx-in.startWX, wy-in.startWY
	switch in.state {
	case GestureMoving:
		in.applyMove(dx, dy)
	case GestureResizing:
		in.applyResize(dx)
	case GestureDeforming:
		in.applyDeform(dx, dy)
	}
	return Result{State: in.state, Redraw: true, Cursor: in.activeCursor()}
}

func (in *Interaction) up() Result {
	redraw := in.state != GestureIdle || len(in.board.guides) > 0
	in.reset()
	return Result{State: GestureIdle, Redraw: redraw}
}

// Cancel aborts the gesture in progress. A move, resize or deform is rolled
// back to its state at pointer-down and its undo entry is consumed.
func (in *Interaction) Cancel() Result {
	switch in.state {
	case GestureIdle:
		return Result{State: GestureIdle}
	case GestureMoving, GestureResizing, GestureDeforming:
		if s, ok := in.board.history.Pop(); ok {
			in.board.restore(s)
		}
	}
	in.reset()
	return Result{State: GestureIdle, Redraw: true}
}

// Wheel zooms about the screen point (sx, sy). Positive dy zooms in.
func (in *Interaction) Wheel(sx, sy, dy float64) Result {
	if dy == 0 {
		return Result{State: in.state}
	}
	in.board.Camera.StopAnimation()
	in.board.Camera.ZoomAt(sx, sy, 1+0.1*dy)
	return Result{State: in.state, Redraw: true}
}

func (in *Interaction) reset() {
	in.state = GestureIdle
	in.target = nil
	clear(in.moves)
	in.moves = in.moves[:0]
	in.board.guides = in.board.guides[:0]
}

// applyMove positions every moving picture at its start plus (dx, dy),
// then snaps the group so the closest edge pair on each axis coincides.
func (in *Interaction) applyMove(dx, dy float64) {
	b := in.board
	moving := make(map[*Picture]struct{}, len(in.moves))
	for _, m := range in.moves {
		m.p.X = m.x + dx
		m.p.Y = m.y + dy
		moving[m.p] = struct{}{}
	}

	threshold := b.Camera.ScreenToWorldDist(SnapDistance)
	bestX, bestY := threshold, threshold
	var snapX, snapY *SnapGuide
	var corrX, corrY float64
	for _, m := range in.moves {
		mx := [2]float64{m.p.X, m.p.X + m.p.W}
		my := [2]float64{m.p.Y, m.p.Y + m.p.H}
		for _, o := range b.pictures {
			if _, ok := moving[o]; ok {
				continue
			}
			ox := [2]float64{o.X, o.X + o.W}
			oy := [2]float64{o.Y, o.Y + o.H}
			for _, me := range mx {
				for _, oe := range ox {
					if d := math.Abs(me - oe); d < bestX {
						bestX, corrX = d, oe-me
						snapX = &SnapGuide{Vertical: true, Pos: oe}
					}
				}
			}
			for _, me := range my {
				for _, oe := range oy {
					if d := math.Abs(me - oe); d < bestY {
						bestY, corrY = d, oe-me
						snapY = &SnapGuide{Pos: oe}
					}
				}
			}
		}
	}

	b.guides = b.guides[:0]
	if snapX != nil {
		for _, m := range in.moves {
			m.p.X += corrX
		}
		b.guides = append(b.guides, *snapX)
	}
	if snapY != nil {
		for _, m := range in.moves {
			m.p.Y += corrY
		}
		b.guides = append(b.guides, *snapY)
	}
}

// applyResize scales the target from the corner opposite the dragged
// handle. The horizontal delta drives the width and the aspect ratio at
// pointer-down is kept.
func (in *Interaction) applyResize(dx float64) {
	s := in.startRect
	aspect := s.Width / s.Height
	w := s.Width + dx
	if in.corner == CornerTopLeft || in.corner == CornerBottomLeft {
		w = s.Width - dx
	}
	w = max(w, MinSize, MinSize*aspect)
	h := w / aspect

	x, y := s.X, s.Y
	if in.corner == CornerTopLeft || in.corner == CornerBottomLeft {
		x = s.X + s.Width - w
	}
	if in.corner == CornerTopLeft || in.corner == CornerTopRight {
		y = s.Y + s.Height - h
	}
	p := in.target
	p.X, p.Y, p.W, p.H = x, y, w, h
}

// applyDeform sets the dragged offset to its start value plus the world
// delta, collapsing it to zero near the undeformed position.
func (in *Interaction) applyDeform(dx, dy float64) {
	v := in.startOffset.Add(Vec2{dx, dy})
	snap := in.board.Camera.ScreenToWorldDist(DeformSnap)
	if math.Abs(v.X) < snap && math.Abs(v.Y) < snap {
		v = Vec2{}
	}
	*in.control.offset(in.target) = v
}

func (in *Interaction) activeCursor() Cursor {
	switch in.state {
	case GesturePanning, GestureMoving:
		return CursorGrabbing
	case GestureResizing:
		return resizeCursor(in.corner)
	case GestureDeforming:
		return CursorCrosshair
	}
	return CursorDefault
}

func (in *Interaction) hoverCursor(wx, wy float64) Cursor {
	b := in.board
	for _, i := range b.Selected() {
		if b.deformMode {
			if _, ok := b.HitDeformControl(wx, wy, i); ok {
				return CursorCrosshair
			}
		} else if c, ok := b.HitResizeHandle(wx, wy, i); ok {
			return resizeCursor(c)
		}
	}
	if _, ok := b.HitPicture(wx, wy); ok {
		return CursorGrab
	}
	return CursorDefault
}

func resizeCursor(c Corner) Cursor {
	if c == CornerTopLeft || c == CornerBottomRight {
		return CursorResizeNWSE
	}
	return CursorResizeNESW
}
