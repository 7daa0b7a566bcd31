package graphview

import (
	"math"
	"math/rand/v2"
	"os"

	"github.com/charmbracelet/log"
)

// DefaultFrameStep is the animation time step of one frame, in seconds.
const DefaultFrameStep = 1.0 / 60

// defaultDragDeadZone is the pointer travel, in stage pixels, before a
// press becomes a drag.
const defaultDragDeadZone = 4.0

// GraphConfig holds the view-wide settings.
type GraphConfig struct {
	DefaultNode   NodeStyle `toml:"default_node"`
	DefaultEdge   EdgeStyle `toml:"default_edge"`
	Background    Color     `toml:"background"`
	FrameStep     float64   `toml:"frame_step"`
	ClickToSelect bool      `toml:"click_to_select"`
	DragDeadZone  float64   `toml:"drag_dead_zone"`
	// DebugInterval is the number of frames between debug stat lines.
	// Zero takes the default.
	DebugInterval int `toml:"debug_interval"`
}

// DefaultGraphConfig returns the settings used when none are given.
func DefaultGraphConfig() GraphConfig {
	return GraphConfig{
		DefaultNode:   DefaultNodeStyle(),
		DefaultEdge:   DefaultEdgeStyle(),
		Background:    Color{0.97, 0.97, 0.98, 1},
		FrameStep:     DefaultFrameStep,
		ClickToSelect: true,
		DragDeadZone:  defaultDragDeadZone,
		DebugInterval: 60,
	}
}

// Validate checks the default styles and numeric settings.
func (c GraphConfig) Validate() error {
	if err := c.DefaultNode.Validate(); err != nil {
		return err
	}
	if err := c.DefaultEdge.Validate(); err != nil {
		return err
	}
	if math.IsNaN(c.FrameStep) || math.IsInf(c.FrameStep, 0) || c.FrameStep <= 0 {
		return invalidConfig("frame_step must be > 0, got %g", c.FrameStep)
	}
	if !finiteNonNegative(c.DragDeadZone) {
		return invalidConfig("drag_dead_zone must be >= 0, got %g", c.DragDeadZone)
	}
	if c.DebugInterval < 0 {
		return invalidConfig("debug_interval must be >= 0, got %d", c.DebugInterval)
	}
	return nil
}

// Config is everything New needs besides the graph and the renderer.
// Nil collaborators are replaced with defaults.
type Config struct {
	Graph GraphConfig
	// NodeStyles and EdgeStyles override the defaults per entity id.
	NodeStyles map[string]NodeStyle
	EdgeStyles map[string]EdgeStyle
	// Layout places the initial nodes. Nodes it omits get a random position.
	Layout  Layout
	Filters FilterConfig

	// Rand picks fallback positions. Inject a seeded source for
	// reproducible placement.
	Rand      *rand.Rand
	Scheduler FrameScheduler
	Logger    *log.Logger
	Metrics   *FrameMetrics

	NodeFactory NodeStyleFactory
	EdgeFactory EdgeStyleFactory
	// Behaviors run on every new node handle, in order.
	Behaviors []Behavior
	Events    EventSink
}

// DefaultConfig returns a config with default graph settings and the
// default factories and behaviors.
func DefaultConfig() Config {
	return Config{
		Graph:     DefaultGraphConfig(),
		Behaviors: []Behavior{InteractionBehavior},
	}
}

// NewLogger creates the default logger: stderr, warn level, "graphview"
// prefix.
func NewLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "graphview",
		Level:  log.WarnLevel,
	})
}

// Validate checks the graph settings, the filters and every per-entity style.
func (c Config) Validate() error {
	if err := c.Graph.Validate(); err != nil {
		return err
	}
	if err := c.Filters.Validate(); err != nil {
		return err
	}
	for id, s := range c.NodeStyles {
		if err := s.Validate(); err != nil {
			return &EntityError{Op: "config", Kind: KindNode, ID: id, Err: err}
		}
	}
	for id, s := range c.EdgeStyles {
		if err := s.Validate(); err != nil {
			return &EntityError{Op: "config", Kind: KindEdge, ID: id, Err: err}
		}
	}
	return nil
}

// withDefaults fills unset settings and collaborators. A fully zero
// GraphConfig takes every default; otherwise only zero styles, background,
// frame step and debug interval are filled, leaving the booleans and the
// dead zone as given.
func (c Config) withDefaults() Config {
	def := DefaultGraphConfig()
	if c.Graph == (GraphConfig{}) {
		c.Graph = def
	}
	if c.Graph.DefaultNode == (NodeStyle{}) {
		c.Graph.DefaultNode = def.DefaultNode
	}
	if c.Graph.DefaultEdge == (EdgeStyle{}) {
		c.Graph.DefaultEdge = def.DefaultEdge
	}
	if c.Graph.Background == (Color{}) {
		c.Graph.Background = def.Background
	}
	if c.Graph.FrameStep == 0 {
		c.Graph.FrameStep = def.FrameStep
	}
	if c.Graph.DebugInterval == 0 {
		c.Graph.DebugInterval = def.DebugInterval
	}
	if c.Rand == nil {
		c.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if c.Logger == nil {
		c.Logger = NewLogger()
	}
	if c.NodeFactory == nil {
		c.NodeFactory = NewBoxNodeFactory()
	}
	if c.EdgeFactory == nil {
		c.EdgeFactory = LineEdgeFactory{}
	}
	return c
}
