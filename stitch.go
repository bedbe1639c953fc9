package stitchboard

// Axis selects the stitch direction.
type Axis uint8

const (
	Horizontal Axis = iota // left to right, equal heights
	Vertical               // top to bottom, equal widths
)

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// StitchHorizontal lays the selection out left to right at a common height.
func (b *Board) StitchHorizontal() bool { return b.Stitch(Horizontal) }

// StitchVertical lays the selection out top to bottom at a common width.
func (b *Board) StitchVertical() bool { return b.Stitch(Vertical) }

// Stitch arranges the selected pictures edge to edge along axis, in draw
// order, starting at the selection's minimum x and y. Every picture is
// scaled uniformly to the largest height (Horizontal) or width (Vertical)
// and loses its deformation.
//
// Stitching the same two pictures again on the same axis swaps them
// instead, and a third time swaps them back. It reports false, with a
// notice, when fewer than two pictures are selected.
func (b *Board) Stitch(axis Axis) bool {
	sel := b.Selected()
	if len(sel) < 2 {
		b.notify(NoticeSelectMore)
		return false
	}
	b.Snapshot()

	ids := make([]ID, len(sel))
	for k, i := range sel {
		ids[k] = b.pictures[i].ID
	}

	if len(sel) == 2 && sameIDs(ids, b.lastStitch[axis]) {
		b.swapPair(b.pictures[sel[0]], b.pictures[sel[1]], axis)
		b.lastStitch[axis] = []ID{ids[1], ids[0]}
		logger.Debug("stitch swapped", "axis", axis, "ids", ids)
		b.notify(NoticeSwapped)
		return true
	}

	pics := make([]*Picture, len(sel))
	for k, i := range sel {
		pics[k] = b.pictures[i]
	}
	layoutStitch(pics, axis)

	b.lastStitch[axis] = ids
	b.lastStitch[1-axis] = nil
	logger.Debug("stitched", "axis", axis, "count", len(ids))
	b.notify(NoticeStitched)
	return true
}

// layoutStitch places pics consecutively along axis.
func layoutStitch(pics []*Picture, axis Axis) {
	minX, minY := pics[0].X, pics[0].Y
	var maxExtent float64
	for _, p := range pics {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		if axis == Horizontal {
			maxExtent = max(maxExtent, p.H)
		} else {
			maxExtent = max(maxExtent, p.W)
		}
	}

	cur := minX
	if axis == Vertical {
		cur = minY
	}
	for _, p := range pics {
		if axis == Horizontal {
			p.W *= maxExtent / p.H
			p.H = maxExtent
			p.X, p.Y = cur, minY
			cur += p.W
		} else {
			p.H *= maxExtent / p.W
			p.W = maxExtent
			p.X, p.Y = minX, cur
			cur += p.H
		}
		p.ResetDeform()
	}
}

// swapPair exchanges the order of a and c along axis, anchored at their
// common minimum corner.
func (b *Board) swapPair(a, c *Picture, axis Axis) {
	baseX := min(a.X, c.X)
	baseY := min(a.Y, c.Y)
	first, second := a, c
	if axis == Horizontal && a.X <= c.X || axis == Vertical && a.Y <= c.Y {
		first, second = c, a
	}
	first.X, first.Y = baseX, baseY
	if axis == Horizontal {
		second.X, second.Y = baseX+first.W, baseY
	} else {
		second.X, second.Y = baseX, baseY+first.H
	}
}

// sameIDs reports whether a and b hold the same ids, ignoring order.
func sameIDs(a, b []ID) bool {
	if len(a) == 0 || len(a) != len(b) {
		return false
	}
	for _, id := range a {
		found := false
		for _, o := range b {
			if o == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
