package stitchboard

// MenuItem is one entry of the picture context menu.
type MenuItem uint8

const (
	MenuBringToFront MenuItem = iota
	MenuSendToBack
	MenuResetDeform
	MenuFitToView
	MenuDelete

	menuItemCount
)

func (m MenuItem) String() string {
	switch m {
	case MenuBringToFront:
		return "Bring to front"
	case MenuSendToBack:
		return "Send to back"
	case MenuResetDeform:
		return "Reset deform"
	case MenuFitToView:
		return "Fit to view"
	case MenuDelete:
		return "Delete"
	default:
		return "unknown"
	}
}

// Context menu item size in screen units.
const (
	MenuItemWidth  = 120.0
	MenuItemHeight = 20.0
)

// ContextMenu is the per-picture menu opened by a secondary click. It holds
// only screen-space layout and the target id; the host draws it and feeds it
// pointer-downs.
type ContextMenu struct {
	// Target is the picture the menu acts on. Zero when closed.
	Target ID
	// X and Y are the screen position of the top-left corner.
	X, Y float64
}

// Open shows the menu for target at the screen point (x, y), shifted so it
// stays inside viewport.
func (m *ContextMenu) Open(target ID, x, y float64, viewport Rect) {
	w, h := MenuItemWidth, MenuItemHeight*float64(menuItemCount)
	if x+w > viewport.X+viewport.Width {
		x = viewport.X + viewport.Width - w
	}
	if y+h > viewport.Y+viewport.Height {
		y = viewport.Y + viewport.Height - h
	}
	m.Target = target
	m.X = max(x, viewport.X)
	m.Y = max(y, viewport.Y)
}

// Close hides the menu.
func (m *ContextMenu) Close() {
	m.Target = 0
}

// IsOpen reports whether the menu is showing.
func (m *ContextMenu) IsOpen() bool {
	return m.Target != 0
}

// Bounds returns the screen rectangle covered by the menu.
func (m *ContextMenu) Bounds() Rect {
	return Rect{X: m.X, Y: m.Y, Width: MenuItemWidth, Height: MenuItemHeight * float64(menuItemCount)}
}

// ItemRect returns the screen rectangle of item.
func (m *ContextMenu) ItemRect(item MenuItem) Rect {
	return Rect{X: m.X, Y: m.Y + MenuItemHeight*float64(item), Width: MenuItemWidth, Height: MenuItemHeight}
}

// ItemAt returns the item under the screen point (x, y). Item rows are
// half-open so a point on a shared border belongs to the lower row.
func (m *ContextMenu) ItemAt(x, y float64) (MenuItem, bool) {
	if !m.IsOpen() {
		return 0, false
	}
	r := m.Bounds()
	if x < r.X || x >= r.X+r.Width || y < r.Y || y >= r.Y+r.Height {
		return 0, false
	}
	return MenuItem((y - r.Y) / MenuItemHeight), true
}

// Click handles a primary pointer-down at (x, y). On an item it applies the
// item to b and reports true; the event is consumed. Anywhere else it only
// closes the menu and reports false. The menu is closed either way.
func (m *ContextMenu) Click(b *Board, x, y float64) bool {
	item, ok := m.ItemAt(x, y)
	target := m.Target
	m.Close()
	if !ok {
		return false
	}
	m.apply(b, item, target)
	return true
}

// Route delivers ev to the menu and then to in. While the menu is open a
// pointer-down on an item is consumed; any other pointer-down closes the
// menu and continues to in. A result carrying a ContextTarget opens the menu
// at the event position.
func (m *ContextMenu) Route(b *Board, in *Interaction, ev PointerEvent) Result {
	if ev.Kind == PointerDown && m.IsOpen() {
		if ev.Button == MouseButtonLeft && m.Click(b, ev.X, ev.Y) {
			return Result{State: in.State(), Redraw: true}
		}
		m.Close()
	}
	res := in.Handle(ev)
	if res.ContextTarget != 0 {
		m.Open(res.ContextTarget, ev.X, ev.Y, b.Camera.Viewport)
	}
	if m.IsOpen() && m.Bounds().Contains(ev.X, ev.Y) {
		res.Cursor = CursorDefault
	}
	return res
}

func (m *ContextMenu) apply(b *Board, item MenuItem, id ID) {
	if b.Picture(id) == nil {
		return
	}
	logger.Debug("context menu", "item", item.String(), "id", id)
	switch item {
	case MenuBringToFront:
		b.BringToFront(id)
	case MenuSendToBack:
		b.SendToBack(id)
	case MenuResetDeform:
		b.ResetDeform(id)
	case MenuFitToView:
		b.FitToView(id)
	case MenuDelete:
		b.Snapshot()
		b.Delete(id)
	}
}
