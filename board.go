package stitchboard

import (
	"image"
	"slices"

	"github.com/tanema/gween/ease"
)

// Board is the scene store: an ordered set of pictures, the selection, the
// camera, and the transient state shared by interaction and commands.
//
// Board is not safe for concurrent use. All mutation happens on the caller's
// goroutine, one event at a time.
type Board struct {
	// Camera controls the view onto the board.
	Camera *Camera

	pictures []*Picture
	selected map[ID]struct{}
	nextID   ID

	deformMode bool
	// lastStitch remembers the ids laid out by the previous horizontal (0)
	// and vertical (1) stitch.
	lastStitch [2][]ID
	guides     []SnapGuide

	history  *History
	notifier Notifier
}

// NewBoard creates an empty board whose camera renders into viewport.
func NewBoard(viewport Rect) *Board {
	return &Board{
		Camera:   NewCamera(viewport),
		selected: make(map[ID]struct{}),
		history:  NewHistory(UndoCapacity),
	}
}

// SetNotifier sets the receiver of user-facing notices. nil disables them.
func (b *Board) SetNotifier(n Notifier) {
	b.notifier = n
}

func (b *Board) notify(n Notice) {
	if b.notifier != nil {
		b.notifier.Notify(n)
	}
}

// History returns the board's undo history.
func (b *Board) History() *History {
	return b.history
}

// AddImage places img on top of the board and returns the new picture.
// The placement follows the loading hint for a single image.
func (b *Board) AddImage(img image.Image) *Picture {
	return b.AddImages([]image.Image{img})[0]
}

// AddImages places a batch of images on top of the board. Image k of the
// batch is offset diagonally so a batch never stacks exactly.
func (b *Board) AddImages(imgs []image.Image) []*Picture {
	out := make([]*Picture, 0, len(imgs))
	n := float64(len(b.pictures))
	for k, img := range imgs {
		x := n*50 - 200 + float64(k)*30
		y := -150 + float64(k)*30
		out = append(out, b.AddImageAt(img, x, y))
	}
	return out
}

// AddImageAt places img with its top-left corner at (x, y).
func (b *Board) AddImageAt(img image.Image, x, y float64) *Picture {
	b.nextID++
	p := newPicture(b.nextID, img, x, y)
	b.pictures = append(b.pictures, p)
	logger.Debug("picture added", "id", p.ID, "w", p.W, "h", p.H)
	return p
}

// Pictures returns the pictures in draw order (index 0 is the bottom). The
// slice is owned by the board and must not be modified.
func (b *Board) Pictures() []*Picture {
	return b.pictures
}

// Len returns the number of pictures.
func (b *Board) Len() int {
	return len(b.pictures)
}

// Picture returns the picture with the given id, or nil.
func (b *Board) Picture(id ID) *Picture {
	if i := b.IndexOf(id); i >= 0 {
		return b.pictures[i]
	}
	return nil
}

// IndexOf returns the draw index of id, or -1 if it is not on the board.
func (b *Board) IndexOf(id ID) int {
	for i, p := range b.pictures {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// DeformMode reports whether deform mode is active.
func (b *Board) DeformMode() bool {
	return b.deformMode
}

// SetDeformMode switches between resize handles and deform controls.
func (b *Board) SetDeformMode(on bool) {
	b.deformMode = on
}

// ToggleDeformMode flips deform mode and reports the new state.
func (b *Board) ToggleDeformMode() bool {
	b.deformMode = !b.deformMode
	if b.deformMode {
		b.notify(NoticeDeformOn)
	} else {
		b.notify(NoticeDeformOff)
	}
	return b.deformMode
}

// Guides returns the snap guides of the move in progress.
func (b *Board) Guides() []SnapGuide {
	return b.guides
}

// --- selection ---

// Selected returns the draw indices of the selected pictures in ascending
// order. Indices are derived on every call.
func (b *Board) Selected() []int {
	if len(b.selected) == 0 {
		return nil
	}
	out := make([]int, 0, len(b.selected))
	for i, p := range b.pictures {
		if _, ok := b.selected[p.ID]; ok {
			out = append(out, i)
		}
	}
	return out
}

// SelectedIDs returns the selected ids in draw order.
func (b *Board) SelectedIDs() []ID {
	idx := b.Selected()
	ids := make([]ID, len(idx))
	for k, i := range idx {
		ids[k] = b.pictures[i].ID
	}
	return ids
}

// IsSelected reports whether id is selected.
func (b *Board) IsSelected(id ID) bool {
	_, ok := b.selected[id]
	return ok
}

// Select replaces the selection with the given ids. Unknown ids are ignored.
func (b *Board) Select(ids ...ID) {
	next := make(map[ID]struct{}, len(ids))
	for _, id := range ids {
		if b.IndexOf(id) >= 0 {
			next[id] = struct{}{}
		}
	}
	b.setSelection(next)
}

// Toggle adds id to the selection or removes it.
func (b *Board) Toggle(id ID) {
	if b.IndexOf(id) < 0 {
		return
	}
	if _, ok := b.selected[id]; ok {
		delete(b.selected, id)
	} else {
		b.selected[id] = struct{}{}
	}
	b.forgetStitch()
}

// SelectAll selects every picture.
func (b *Board) SelectAll() {
	next := make(map[ID]struct{}, len(b.pictures))
	for _, p := range b.pictures {
		next[p.ID] = struct{}{}
	}
	b.setSelection(next)
}

// ClearSelection deselects everything.
func (b *Board) ClearSelection() {
	b.setSelection(map[ID]struct{}{})
}

// setSelection installs next as the selection, dropping the stitch memory
// when the id set changes.
func (b *Board) setSelection(next map[ID]struct{}) {
	if !sameIDSet(b.selected, next) {
		b.forgetStitch()
	}
	b.selected = next
}

func sameIDSet(a, b map[ID]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for id := range a {
		if _, ok := b[id]; !ok {
			return false
		}
	}
	return true
}

func (b *Board) forgetStitch() {
	b.lastStitch = [2][]ID{}
}

// pruneSelection drops ids that are no longer on the board.
func (b *Board) pruneSelection() {
	for id := range b.selected {
		if b.IndexOf(id) < 0 {
			delete(b.selected, id)
		}
	}
}

// --- structure ---

// Delete removes the picture with the given id. Deletion is not undoable.
func (b *Board) Delete(id ID) bool {
	i := b.IndexOf(id)
	if i < 0 {
		return false
	}
	b.pictures = slices.Delete(b.pictures, i, i+1)
	if _, ok := b.selected[id]; ok {
		delete(b.selected, id)
		b.forgetStitch()
	}
	logger.Debug("picture removed", "id", id)
	b.notify(NoticeDeleted)
	return true
}

// DeleteSelected removes every selected picture and reports how many were
// removed.
func (b *Board) DeleteSelected() int {
	if len(b.selected) == 0 {
		return 0
	}
	kept := b.pictures[:0]
	removed := 0
	for _, p := range b.pictures {
		if _, ok := b.selected[p.ID]; ok {
			removed++
			logger.Debug("picture removed", "id", p.ID)
			continue
		}
		kept = append(kept, p)
	}
	clear(b.pictures[len(kept):])
	b.pictures = kept
	b.selected = make(map[ID]struct{})
	b.forgetStitch()
	b.notify(NoticeDeleted)
	return removed
}

// BringToFront moves the picture to the top of the draw order.
func (b *Board) BringToFront(id ID) {
	i := b.IndexOf(id)
	if i < 0 || i == len(b.pictures)-1 {
		return
	}
	p := b.pictures[i]
	copy(b.pictures[i:], b.pictures[i+1:])
	b.pictures[len(b.pictures)-1] = p
}

// SendToBack moves the picture to the bottom of the draw order.
func (b *Board) SendToBack(id ID) {
	i := b.IndexOf(id)
	if i <= 0 {
		return
	}
	p := b.pictures[i]
	copy(b.pictures[1:i+1], b.pictures[:i])
	b.pictures[0] = p
}

// --- per-picture geometry commands ---

// ResetDeform clears the deform offsets of one picture.
func (b *Board) ResetDeform(id ID) {
	p := b.Picture(id)
	if p == nil {
		return
	}
	b.Snapshot()
	p.ResetDeform()
}

// FitToView resizes a picture to fill 60% of the viewport, centres it on
// the camera and clears its deformation.
func (b *Board) FitToView(id ID) {
	p := b.Picture(id)
	if p == nil || p.W <= 0 || p.H <= 0 {
		return
	}
	b.Snapshot()
	vp := b.Camera.Viewport
	vw := vp.Width / b.Camera.Zoom * 0.6
	vh := vp.Height / b.Camera.Zoom * 0.6
	scale := min(vw/p.W, vh/p.H)
	if vw <= 0 || vh <= 0 {
		scale = 1
	}
	p.W *= scale
	p.H *= scale
	p.X = b.Camera.X - p.W/2
	p.Y = b.Camera.Y - p.H/2
	p.ResetDeform()
}

// Bounds returns the union of every picture's deformed bounds sampled at
// divisions. ok is false for an empty board.
func (b *Board) Bounds(divisions int) (r Rect, ok bool) {
	for i, p := range b.pictures {
		pb := p.DeformedBounds(divisions)
		if i == 0 {
			r = pb
		} else {
			r = r.Union(pb)
		}
	}
	return r, len(b.pictures) > 0
}

// FrameAll animates the camera to show every picture.
func (b *Board) FrameAll(duration float32) {
	r, ok := b.Bounds(PreviewDivisions)
	if !ok {
		return
	}
	b.Camera.FrameRect(r, duration, ease.InOutQuad)
}

// --- undo ---

// Snapshot records the current geometry and selection in the history.
func (b *Board) Snapshot() {
	b.history.Push(b.capture())
}

// Undo restores the most recent snapshot. It reports false, with a notice,
// when there is nothing to undo. The stitch memory is dropped, so the next
// stitch after an undo is always a full layout.
func (b *Board) Undo() bool {
	s, ok := b.history.Pop()
	if !ok {
		b.notify(NoticeNothingToUndo)
		return false
	}
	b.restore(s)
	b.forgetStitch()
	b.notify(NoticeUndone)
	return true
}

func (b *Board) capture() Snapshot {
	s := Snapshot{
		Pictures: make([]PictureState, len(b.pictures)),
		Selected: b.SelectedIDs(),
	}
	for i, p := range b.pictures {
		s.Pictures[i] = stateOf(p)
	}
	return s
}

func (b *Board) restore(s Snapshot) {
	for _, st := range s.Pictures {
		if p := b.Picture(st.ID); p != nil {
			st.apply(p)
		}
	}
	b.Select(s.Selected...)
}
