package graphview

import (
	"slices"
	"strings"
	"testing"
)

func TestLoadScriptErrors(t *testing.T) {
	for name, src := range map[string]string{
		"bad json":       `{`,
		"no steps":       `{"steps": []}`,
		"unknown action": `{"steps": [{"action": "teleport"}]}`,
	} {
		if _, err := LoadScript([]byte(src)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadScriptStepError(t *testing.T) {
	_, err := LoadScript([]byte(`{"steps": [{"action": "wait"}, {"action": "jump"}]}`))
	if err == nil || !strings.Contains(err.Error(), "step 1") {
		t.Errorf("err = %v, want a step 1 error", err)
	}
}

func runScript(t *testing.T, gv *GraphView, s *Script, limit int) int {
	t.Helper()
	gv.SetScript(s)
	for i := range limit {
		gv.RenderFrame()
		if s.Done() {
			return i + 1
		}
	}
	t.Fatalf("script not done after %d frames", limit)
	return 0
}

func TestScriptClickAndScreenshot(t *testing.T) {
	gv, r, _ := twoNodeView(t)
	s, err := LoadScript([]byte(`{"steps": [
		{"action": "screenshot", "label": "before"},
		{"action": "click", "x": 100, "y": 100},
		{"action": "screenshot", "label": "after"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 3 {
		t.Errorf("Len = %d, want 3", s.Len())
	}
	runScript(t, gv, s, 20)

	if got := r.Screenshots(); !slices.Equal(got, []string{"before", "after"}) {
		t.Errorf("Screenshots = %v", got)
	}
	if got := gv.SelectedNodes(); !slices.Equal(got, []string{"a"}) {
		t.Errorf("SelectedNodes = %v, want [a]", got)
	}
}

func TestScriptDrag(t *testing.T) {
	gv, _, _ := twoNodeView(t)
	s, _ := LoadScript([]byte(`{"steps": [
		{"action": "drag", "fromX": 100, "fromY": 100, "toX": 140, "toY": 100, "frames": 3}
	]}`))
	runScript(t, gv, s, 20)
	p, _ := gv.NodePosition("a")
	assertNear(t, "a.x", p.X, 120)
}

func TestScriptWait(t *testing.T) {
	gv, _, _ := twoNodeView(t)
	s, _ := LoadScript([]byte(`{"steps": [{"action": "wait", "frames": 5}]}`))
	if n := runScript(t, gv, s, 20); n != 6 {
		t.Errorf("done after %d frames, want 6", n)
	}
}

func TestScriptViewCommands(t *testing.T) {
	gv, _, _ := twoNodeView(t)
	s, _ := LoadScript([]byte(`{"steps": [
		{"action": "select_nodes", "ids": ["a", "b"]},
		{"action": "select_edges", "ids": ["ab"]},
		{"action": "zoom", "zoom": 2},
		{"action": "center"}
	]}`))
	runScript(t, gv, s, 20)
	if got := gv.SelectedNodes(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("SelectedNodes = %v", got)
	}
	if got := gv.SelectedEdges(); !slices.Equal(got, []string{"ab"}) {
		t.Errorf("SelectedEdges = %v", got)
	}
	if gv.Zoom() != 1 {
		t.Errorf("Zoom = %v, want 1 after center", gv.Zoom())
	}
}
