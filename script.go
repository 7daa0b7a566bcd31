package graphview

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in a script.
type scriptStep struct {
	Action string   `json:"action"`
	Label  string   `json:"label,omitempty"`
	X      float64  `json:"x,omitempty"`
	Y      float64  `json:"y,omitempty"`
	FromX  float64  `json:"fromX,omitempty"`
	FromY  float64  `json:"fromY,omitempty"`
	ToX    float64  `json:"toX,omitempty"`
	ToY    float64  `json:"toY,omitempty"`
	Frames int      `json:"frames,omitempty"`
	IDs    []string `json:"ids,omitempty"`
	Zoom   float64  `json:"zoom,omitempty"`
}

// scriptFile is the top-level JSON structure of a script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

var scriptActions = map[string]bool{
	"screenshot":   true,
	"click":        true,
	"drag":         true,
	"move":         true,
	"wait":         true,
	"select_nodes": true,
	"select_edges": true,
	"center":       true,
	"zoom":         true,
}

// Script sequences injected pointer input, view commands and screenshots
// across frames for automated visual testing. Attach it with SetScript; the
// view's renderer must implement PointerInjector for pointer actions.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON script.
func LoadScript(jsonData []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range f.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// SetScript attaches s; its next step runs at the start of every frame.
// Pass nil to detach.
func (gv *GraphView) SetScript(s *Script) {
	gv.script = s
}

// Done reports whether every step has run.
func (s *Script) Done() bool {
	return s.done
}

// Len returns the number of steps.
func (s *Script) Len() int { return len(s.steps) }

func pendingInjections(gv *GraphView) int {
	if inj, ok := gv.renderer.(PointerInjector); ok {
		return inj.PendingInjections()
	}
	return 0
}

// step advances the script by one frame.
func (s *Script) step(gv *GraphView) {
	if s.done {
		return
	}
	// Let queued pointer events drain before the next step.
	if pendingInjections(gv) > 0 {
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	s.cursor++

	inj, _ := gv.renderer.(PointerInjector)
	switch st.Action {
	case "screenshot":
		if sc, ok := gv.renderer.(Screenshotter); ok {
			sc.Screenshot(st.Label)
		} else {
			gv.logger.Warn("script: renderer cannot take screenshots", "label", st.Label)
		}
	case "click":
		if inj != nil {
			inj.InjectClick(st.X, st.Y)
		}
	case "move":
		if inj != nil {
			inj.InjectRelease(st.X, st.Y)
		}
	case "drag":
		if inj != nil {
			inj.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
		}
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "select_nodes":
		gv.SelectNodes(st.IDs...)
	case "select_edges":
		gv.SelectEdges(st.IDs...)
	case "center":
		gv.Center()
	case "zoom":
		if err := gv.SetZoom(st.Zoom); err != nil {
			gv.logger.Warn("script: zoom", "err", err)
		}
	}
	if inj == nil && isPointerAction(st.Action) {
		gv.logger.Warn("script: renderer does not accept pointer input", "action", st.Action)
	}

	if s.cursor >= len(s.steps) && s.waitCount == 0 && pendingInjections(gv) == 0 {
		s.done = true
	}
}

func isPointerAction(action string) bool {
	return action == "click" || action == "move" || action == "drag"
}
