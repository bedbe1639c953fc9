package stitchboard

import "fmt"

// Command is a board operation that is not a pointer gesture. Commands are
// bound to keys by Run and to script steps by Script.
type Command uint8

const (
	CmdNone Command = iota
	CmdSelectAll
	CmdClearSelection
	CmdDeleteSelected
	CmdUndo
	CmdToggleDeformMode
	CmdStitchHorizontal
	CmdStitchVertical
	CmdBringToFront
	CmdSendToBack
	CmdResetDeform
	CmdFitToView
	CmdFrameAll
)

var commandNames = [...]string{
	CmdNone:             "none",
	CmdSelectAll:        "select-all",
	CmdClearSelection:   "clear-selection",
	CmdDeleteSelected:   "delete",
	CmdUndo:             "undo",
	CmdToggleDeformMode: "deform",
	CmdStitchHorizontal: "stitch-h",
	CmdStitchVertical:   "stitch-v",
	CmdBringToFront:     "front",
	CmdSendToBack:       "back",
	CmdResetDeform:      "reset-deform",
	CmdFitToView:        "fit",
	CmdFrameAll:         "frame-all",
}

func (c Command) String() string {
	if int(c) < len(commandNames) {
		return commandNames[c]
	}
	return fmt.Sprintf("Command(%d)", c)
}

// ParseCommand returns the command named s.
func ParseCommand(s string) (Command, error) {
	for i, name := range commandNames {
		if name == s && Command(i) != CmdNone {
			return Command(i), nil
		}
	}
	return CmdNone, fmt.Errorf("unknown command %q", s)
}

// frameDuration is the camera animation length used by CmdFrameAll.
const frameDuration = 0.35

// Exec runs cmd against the board. Per-picture commands apply to every
// selected picture. It reports whether anything visible may have changed.
func (b *Board) Exec(cmd Command) bool {
	switch cmd {
	case CmdSelectAll:
		b.SelectAll()
	case CmdClearSelection:
		b.ClearSelection()
	case CmdDeleteSelected:
		if len(b.selected) == 0 {
			return false
		}
		b.Snapshot()
		b.DeleteSelected()
	case CmdUndo:
		return b.Undo()
	case CmdToggleDeformMode:
		b.ToggleDeformMode()
	case CmdStitchHorizontal:
		return b.StitchHorizontal()
	case CmdStitchVertical:
		return b.StitchVertical()
	case CmdBringToFront:
		for _, id := range b.SelectedIDs() {
			b.BringToFront(id)
		}
	case CmdSendToBack:
		ids := b.SelectedIDs()
		for i := len(ids) - 1; i >= 0; i-- {
			b.SendToBack(ids[i])
		}
	case CmdResetDeform:
		ids := b.SelectedIDs()
		if len(ids) == 0 {
			return false
		}
		b.Snapshot()
		for _, id := range ids {
			b.Picture(id).ResetDeform()
		}
	case CmdFitToView:
		ids := b.SelectedIDs()
		if len(ids) != 1 {
			return false
		}
		b.FitToView(ids[0])
	case CmdFrameAll:
		b.FrameAll(frameDuration)
	default:
		return false
	}
	return true
}
