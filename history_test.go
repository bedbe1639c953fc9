package stitchboard

import (
	"slices"
	"testing"
)

func TestHistoryCapacity(t *testing.T) {
	h := NewHistory(UndoCapacity)
	for i := 0; i < UndoCapacity+10; i++ {
		h.Push(Snapshot{Selected: []ID{ID(i)}})
	}
	if h.Len() != UndoCapacity {
		t.Fatalf("Len = %d, want %d", h.Len(), UndoCapacity)
	}
	s, _ := h.Pop()
	if s.Selected[0] != UndoCapacity+9 {
		t.Errorf("newest = %d, want %d", s.Selected[0], UndoCapacity+9)
	}
	for h.Len() > 1 {
		h.Pop()
	}
	s, _ = h.Pop()
	if s.Selected[0] != 10 {
		t.Errorf("oldest kept = %d, want 10", s.Selected[0])
	}
	if _, ok := h.Pop(); ok {
		t.Error("Pop on empty history returned ok")
	}
}

func TestHistoryClear(t *testing.T) {
	h := NewHistory(3)
	h.Push(Snapshot{})
	h.Push(Snapshot{})
	h.Clear()
	if h.Len() != 0 {
		t.Errorf("Len = %d after Clear", h.Len())
	}
}

func TestUndoRoundTrip(t *testing.T) {
	b := newTestBoard()
	p0 := addRect(b, 0, 0, 100, 50)
	p1 := addRect(b, 200, 0, 80, 40)
	b.Select(p0.ID)
	before := []PictureState{stateOf(p0), stateOf(p1)}

	b.Snapshot()
	p0.X, p0.Y = 33, 44
	p0.W, p0.H = 10, 5
	p0.Corners[CornerBottomLeft] = Vec2{-4, 9}
	p1.Edges[EdgeRight] = Vec2{12, 0}
	b.Select(p1.ID)

	if !b.Undo() {
		t.Fatal("Undo returned false")
	}
	if got := stateOf(p0); got != before[0] {
		t.Errorf("p0 = %+v, want %+v", got, before[0])
	}
	if got := stateOf(p1); got != before[1] {
		t.Errorf("p1 = %+v, want %+v", got, before[1])
	}
	if got := b.SelectedIDs(); !slices.Equal(got, []ID{p0.ID}) {
		t.Errorf("selection = %v, want [%d]", got, p0.ID)
	}
}

func TestUndoSnapshotIsDeepCopy(t *testing.T) {
	b := newTestBoard()
	p := addRect(b, 0, 0, 100, 50)
	b.Snapshot()
	p.Corners[CornerTopLeft].X = 99
	b.Undo()
	if p.Corners[CornerTopLeft].X != 0 {
		t.Errorf("corner offset = %v, want restored to 0", p.Corners[CornerTopLeft])
	}
}

func TestUndoSkipsDeletedPictures(t *testing.T) {
	b := newTestBoard()
	p0 := addRect(b, 0, 0, 100, 50)
	p1 := addRect(b, 200, 0, 80, 40)
	b.Select(p0.ID, p1.ID)
	b.Snapshot()

	p0.X = 500
	b.Delete(p1.ID)
	if !b.Undo() {
		t.Fatal("Undo returned false")
	}
	if p0.X != 0 {
		t.Errorf("p0.X = %v, want 0", p0.X)
	}
	if b.Len() != 1 {
		t.Errorf("Len = %d, want 1 (delete is not undone)", b.Len())
	}
	if got := b.SelectedIDs(); !slices.Equal(got, []ID{p0.ID}) {
		t.Errorf("selection = %v, want only live ids", got)
	}
}

func TestUndoEmptyNotifies(t *testing.T) {
	b := newTestBoard()
	var log noticeLog
	b.SetNotifier(&log)
	if b.Undo() {
		t.Error("Undo on empty history returned true")
	}
	if log.last() != NoticeNothingToUndo {
		t.Errorf("notice = %v, want %v", log.last(), NoticeNothingToUndo)
	}
}
