package graphview

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestGraphConfigValidate(t *testing.T) {
	for name, mutate := range map[string]func(*GraphConfig){
		"zero frame step":     func(c *GraphConfig) { c.FrameStep = 0 },
		"NaN frame step":      func(c *GraphConfig) { c.FrameStep = math.NaN() },
		"negative dead zone":  func(c *GraphConfig) { c.DragDeadZone = -1 },
		"negative interval":   func(c *GraphConfig) { c.DebugInterval = -1 },
		"zero node width":     func(c *GraphConfig) { c.DefaultNode.Width = 0 },
		"unknown node shape":  func(c *GraphConfig) { c.DefaultNode.Shape = "hexagon" },
		"image without image": func(c *GraphConfig) { c.DefaultNode.Shape = ShapeImage },
		"zero edge width":     func(c *GraphConfig) { c.DefaultEdge.Width = 0 },
		"negative arrow":      func(c *GraphConfig) { c.DefaultEdge.Arrow.Size = -2 },
	} {
		c := DefaultGraphConfig()
		mutate(&c)
		if err := c.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: err = %v, want ErrInvalidConfig", name, err)
		}
	}
}

func TestConfigValidatePerEntityStyle(t *testing.T) {
	cfg := DefaultConfig()
	bad := DefaultEdgeStyle()
	bad.Width = math.Inf(1)
	cfg.EdgeStyles = map[string]EdgeStyle{"e1": bad}

	err := cfg.Validate()
	var ee *EntityError
	if !errors.As(err, &ee) {
		t.Fatalf("err = %v, want *EntityError", err)
	}
	if ee.Kind != KindEdge || ee.ID != "e1" {
		t.Errorf("EntityError = %+v", ee)
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Error("EntityError should unwrap to ErrInvalidConfig")
	}
}

func TestWithDefaults(t *testing.T) {
	c := Config{}.withDefaults()
	if c.Graph.FrameStep != DefaultFrameStep {
		t.Errorf("FrameStep = %v, want %v", c.Graph.FrameStep, DefaultFrameStep)
	}
	if c.Rand == nil || c.Logger == nil || c.NodeFactory == nil || c.EdgeFactory == nil {
		t.Error("withDefaults left a collaborator nil")
	}
	if c.Events != nil || c.Metrics != nil {
		t.Error("optional collaborators should stay nil")
	}
}

func TestWithDefaultsPartialGraph(t *testing.T) {
	cfg := Config{Graph: GraphConfig{ClickToSelect: true, DragDeadZone: 9}}
	c := cfg.withDefaults()
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	def := DefaultGraphConfig()
	if c.Graph.DefaultNode != def.DefaultNode {
		t.Errorf("DefaultNode = %+v, want %+v", c.Graph.DefaultNode, def.DefaultNode)
	}
	if c.Graph.DefaultEdge != def.DefaultEdge {
		t.Errorf("DefaultEdge = %+v, want %+v", c.Graph.DefaultEdge, def.DefaultEdge)
	}
	if c.Graph.Background != def.Background {
		t.Errorf("Background = %v, want %v", c.Graph.Background, def.Background)
	}
	if c.Graph.DebugInterval != def.DebugInterval {
		t.Errorf("DebugInterval = %d, want %d", c.Graph.DebugInterval, def.DebugInterval)
	}
	if c.Graph.DragDeadZone != 9 {
		t.Errorf("DragDeadZone = %v, want 9 (caller value)", c.Graph.DragDeadZone)
	}

	if _, err := New(NewMemGraph(), NewHeadlessRenderer(80, 60), cfg); err != nil {
		t.Errorf("New with partial GraphConfig: %v", err)
	}
}
