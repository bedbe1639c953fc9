package stitchboard

// PictureState is the recorded geometry of one picture.
type PictureState struct {
	ID      ID
	X, Y    float64
	W, H    float64
	Corners [4]Vec2
	Edges   [4]Vec2
}

func stateOf(p *Picture) PictureState {
	return PictureState{
		ID:      p.ID,
		X:       p.X,
		Y:       p.Y,
		W:       p.W,
		H:       p.H,
		Corners: p.Corners,
		Edges:   p.Edges,
	}
}

func (s PictureState) apply(p *Picture) {
	p.X, p.Y = s.X, s.Y
	p.W, p.H = s.W, s.H
	p.Corners = s.Corners
	p.Edges = s.Edges
}

// Snapshot is one undo entry. It records geometry and deform offsets of the
// pictures present when it was taken and the selected ids. Picture
// existence and draw order are not recorded.
type Snapshot struct {
	Pictures []PictureState
	Selected []ID
}

// History is a bounded undo stack. When full, pushing discards the oldest
// snapshot.
type History struct {
	stack []Snapshot
	limit int
}

// NewHistory creates a history holding at most limit snapshots.
func NewHistory(limit int) *History {
	if limit < 1 {
		limit = 1
	}
	return &History{limit: limit}
}

// Push appends s, dropping the oldest entry on overflow.
func (h *History) Push(s Snapshot) {
	if len(h.stack) == h.limit {
		copy(h.stack, h.stack[1:])
		h.stack = h.stack[:len(h.stack)-1]
	}
	h.stack = append(h.stack, s)
}

// Pop removes and returns the most recent snapshot.
func (h *History) Pop() (Snapshot, bool) {
	if len(h.stack) == 0 {
		return Snapshot{}, false
	}
	s := h.stack[len(h.stack)-1]
	h.stack[len(h.stack)-1] = Snapshot{}
	h.stack = h.stack[:len(h.stack)-1]
	return s, true
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return len(h.stack)
}

// Clear drops every snapshot.
func (h *History) Clear() {
	clear(h.stack)
	h.stack = h.stack[:0]
}
