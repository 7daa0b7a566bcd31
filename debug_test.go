package graphview

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestDebugModeLogsFrames(t *testing.T) {
	gv, _ := newTestView(t, pathGraph(t), pathLayout())
	var buf bytes.Buffer
	gv.logger = log.New(&buf)
	gv.cfg.Graph.DebugInterval = 2

	gv.SetDebugMode(true)
	if !gv.DebugMode() {
		t.Fatal("DebugMode = false after SetDebugMode(true)")
	}
	frames(gv, 4)
	if n := strings.Count(buf.String(), "frame"); n != 2 {
		t.Errorf("frame lines = %d, want 2:\n%s", n, buf.String())
	}

	buf.Reset()
	gv.SetDebugMode(false)
	frames(gv, 4)
	if buf.Len() != 0 {
		t.Errorf("logged with debug mode off:\n%s", buf.String())
	}
}

func TestDebugCheckLayerSize(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(&buf)
	layer := newLayer("nodes", KindNode, false)
	for range debugMaxLayerSize + 1 {
		layer.Attach(NewContainer("h"))
	}
	debugCheckLayerSize(l, layer)
	if !strings.Contains(buf.String(), "large layer") {
		t.Errorf("no warning for %d handles", layer.Len())
	}
}
