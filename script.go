package stitchboard

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
)

// scriptStep represents a single action in a script.
type scriptStep struct {
	Action  string   `json:"action"`
	Label   string   `json:"label,omitempty"`
	Command string   `json:"command,omitempty"`
	Button  string   `json:"button,omitempty"`
	Mods    []string `json:"mods,omitempty"`
	X       float64  `json:"x,omitempty"`
	Y       float64  `json:"y,omitempty"`
	FromX   float64  `json:"fromX,omitempty"`
	FromY   float64  `json:"fromY,omitempty"`
	ToX     float64  `json:"toX,omitempty"`
	ToY     float64  `json:"toY,omitempty"`
	DY      float64  `json:"dy,omitempty"`
	Frames  int      `json:"frames,omitempty"`
}

// scriptFile is the top-level JSON structure for a script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptHost executes the actions of a Script.
type ScriptHost interface {
	HandlePointer(ev PointerEvent)
	Wheel(x, y, dy float64)
	Exec(cmd Command)
	// Capture records the current board under label.
	Capture(label string)
}

// Script sequences pointer events, commands and captures across frames.
// Actions: "click", "drag", "wheel", "command", "capture" and "wait".
// Pointer coordinates are in screen space.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	pending   []PointerEvent
	done      bool
}

// ParseScript parses a JSON script. Every step is validated up front.
func ParseScript(jsonData []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range f.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse script: step %d: %w", i, err)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// LoadScript reads and parses the script file at path.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load script: %w", err)
	}
	return ParseScript(data)
}

func (st scriptStep) validate() error {
	switch st.Action {
	case "click", "drag", "wheel", "capture", "wait":
	case "command":
		if _, err := ParseCommand(st.Command); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	if _, err := parseButton(st.Button); err != nil {
		return err
	}
	_, err := parseMods(st.Mods)
	return err
}

func parseButton(s string) (MouseButton, error) {
	switch s {
	case "", "left":
		return MouseButtonLeft, nil
	case "right":
		return MouseButtonRight, nil
	case "middle":
		return MouseButtonMiddle, nil
	}
	return 0, fmt.Errorf("unknown button %q", s)
}

func parseMods(names []string) (KeyModifiers, error) {
	var m KeyModifiers
	for _, n := range names {
		switch n {
		case "shift":
			m |= ModShift
		case "ctrl":
			m |= ModCtrl
		case "alt":
			m |= ModAlt
		case "meta":
			m |= ModMeta
		default:
			return 0, fmt.Errorf("unknown modifier %q", n)
		}
	}
	return m, nil
}

// Done reports whether every step has been executed.
func (s *Script) Done() bool {
	return s.done
}

// Step advances the script by one frame: it delivers one queued pointer
// event, counts down a wait, or starts the next step.
func (s *Script) Step(h ScriptHost) {
	if s.done {
		return
	}
	if len(s.pending) > 0 {
		ev := s.pending[0]
		s.pending = s.pending[1:]
		h.HandlePointer(ev)
		s.checkDone()
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		s.checkDone()
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	s.cursor++

	// Validated by ParseScript.
	button, _ := parseButton(st.Button)
	mods, _ := parseMods(st.Mods)

	switch st.Action {
	case "click":
		s.pending = append(s.pending, ClickEvents(st.X, st.Y, button, mods)...)
	case "drag":
		s.pending = append(s.pending, DragEvents(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames, button, mods)...)
	case "wheel":
		h.Wheel(st.X, st.Y, st.DY)
	case "command":
		cmd, _ := ParseCommand(st.Command)
		h.Exec(cmd)
	case "capture":
		h.Capture(st.Label)
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	}
	s.checkDone()
}

func (s *Script) checkDone() {
	if s.cursor >= len(s.steps) && s.waitCount == 0 && len(s.pending) == 0 {
		s.done = true
	}
}

// ClickEvents returns a press followed by a release at (x, y).
func ClickEvents(x, y float64, button MouseButton, mods KeyModifiers) []PointerEvent {
	return []PointerEvent{
		{Kind: PointerDown, X: x, Y: y, Button: button, Modifiers: mods},
		{Kind: PointerUp, X: x, Y: y, Button: button, Modifiers: mods},
	}
}

// DragEvents returns a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, a move to
// and a release at (toX, toY). Minimum frames is 2.
func DragEvents(fromX, fromY, toX, toY float64, frames int, button MouseButton, mods KeyModifiers) []PointerEvent {
	if frames < 2 {
		frames = 2
	}
	evs := make([]PointerEvent, 0, frames+1)
	evs = append(evs, PointerEvent{Kind: PointerDown, X: fromX, Y: fromY, Button: button, Modifiers: mods})
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		evs = append(evs, PointerEvent{
			Kind:      PointerMove,
			X:         fromX + (toX-fromX)*t,
			Y:         fromY + (toY-fromY)*t,
			Button:    button,
			Modifiers: mods,
		})
	}
	evs = append(evs,
		PointerEvent{Kind: PointerMove, X: toX, Y: toY, Button: button, Modifiers: mods},
		PointerEvent{Kind: PointerUp, X: toX, Y: toY, Button: button, Modifiers: mods},
	)
	return evs
}

// boardHost runs a script directly against a board with no window.
// Captures are exports.
type boardHost struct {
	board    *Board
	in       *Interaction
	menu     ContextMenu
	captures map[string]*image.NRGBA
}

func (h *boardHost) HandlePointer(ev PointerEvent) { h.menu.Route(h.board, h.in, ev) }
func (h *boardHost) Wheel(x, y, dy float64)        { h.in.Wheel(x, y, dy) }
func (h *boardHost) Exec(cmd Command)              { h.board.Exec(cmd) }

func (h *boardHost) Capture(label string) {
	img, err := h.board.Export()
	if err != nil {
		return
	}
	h.captures[label] = img
}

// Replay runs the whole script against b immediately. Waits take no time.
// Each "capture" step exports the board; the results are returned by label.
func (s *Script) Replay(b *Board, in *Interaction) map[string]*image.NRGBA {
	h := &boardHost{board: b, in: in, captures: make(map[string]*image.NRGBA)}
	for !s.done {
		s.Step(h)
	}
	return h.captures
}
