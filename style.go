package graphview

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// NodeShape selects how the default node factory draws a node.
type NodeShape string

const (
	ShapeBox   NodeShape = "box"
	ShapeImage NodeShape = "image"
)

// LabelStyle describes the text drawn on a node.
type LabelStyle struct {
	Text   string  `toml:"text"`
	Size   float64 `toml:"size"`
	Color  Color   `toml:"color"`
	Offset Vec2    `toml:"offset"`
}

// ShadowStyle describes a drop shadow behind a box node.
type ShadowStyle struct {
	Enabled bool  `toml:"enabled"`
	Offset  Vec2  `toml:"offset"`
	Color   Color `toml:"color"`
}

// NodeStyle configures the visual of one node. Width and Height are in
// stage pixels; the handle itself stays at unit scale so distortion can
// scale it freely.
type NodeStyle struct {
	Shape       NodeShape   `toml:"shape"`
	Width       float64     `toml:"width"`
	Height      float64     `toml:"height"`
	Fill        Color       `toml:"fill"`
	Border      Color       `toml:"border"`
	BorderWidth float64     `toml:"border_width"`
	Label       LabelStyle  `toml:"label"`
	Image       string      `toml:"image"`
	Shadow      ShadowStyle `toml:"shadow"`
	Draggable   bool        `toml:"draggable"`
	Selectable  bool        `toml:"selectable"`

	// ImageData, when set, is drawn instead of loading Image from disk.
	ImageData *ebiten.Image `toml:"-"`
}

func finiteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// Validate reports an ErrInvalidConfig for sizes that cannot be drawn.
func (s NodeStyle) Validate() error {
	switch s.Shape {
	case ShapeBox:
		if !finiteNonNegative(s.Width) || !finiteNonNegative(s.Height) || s.Width == 0 || s.Height == 0 {
			return invalidConfig("box node needs a positive size, got %gx%g", s.Width, s.Height)
		}
	case ShapeImage:
		if s.Image == "" && s.ImageData == nil {
			return invalidConfig("image node has no image")
		}
		if !finiteNonNegative(s.Width) || !finiteNonNegative(s.Height) {
			return invalidConfig("image node size %gx%g", s.Width, s.Height)
		}
	default:
		return invalidConfig("unknown node shape %q", s.Shape)
	}
	if !finiteNonNegative(s.BorderWidth) {
		return invalidConfig("border width %g", s.BorderWidth)
	}
	if !finiteNonNegative(s.Label.Size) {
		return invalidConfig("label size %g", s.Label.Size)
	}
	return nil
}

// ArrowStyle describes the head drawn at an edge's target end.
type ArrowStyle struct {
	Enabled bool    `toml:"enabled"`
	Size    float64 `toml:"size"`
	// Inset pulls the tip back from the target position so it stays
	// outside the target node.
	Inset float64 `toml:"inset"`
}

// DecalStyle describes the marker drawn at an edge's midpoint.
type DecalStyle struct {
	Enabled bool    `toml:"enabled"`
	Size    float64 `toml:"size"`
	Color   Color   `toml:"color"`
}

// EdgeStyle configures the visual of one edge.
type EdgeStyle struct {
	Width float64    `toml:"width"`
	Color Color      `toml:"color"`
	Arrow ArrowStyle `toml:"arrow"`
	Decal DecalStyle `toml:"decal"`
}

// Validate reports an ErrInvalidConfig for sizes that cannot be drawn.
func (s EdgeStyle) Validate() error {
	if !finiteNonNegative(s.Width) || s.Width == 0 {
		return invalidConfig("edge width %g", s.Width)
	}
	if !finiteNonNegative(s.Arrow.Size) || !finiteNonNegative(s.Arrow.Inset) {
		return invalidConfig("arrow size %g inset %g", s.Arrow.Size, s.Arrow.Inset)
	}
	if !finiteNonNegative(s.Decal.Size) {
		return invalidConfig("decal size %g", s.Decal.Size)
	}
	return nil
}

// NodeStyleFactory builds the handle of a node. The returned node is a
// detached subtree; the view positions it and attaches it to a layer.
type NodeStyleFactory interface {
	NewNodeVisual(style NodeStyle) (*Node, error)
}

// EdgeStyleFactory builds the handle of an edge between two stage positions.
type EdgeStyleFactory interface {
	NewEdgeVisual(style EdgeStyle, from, to Vec2) (*Node, error)
}

// Behavior attaches interaction capabilities to a freshly built node handle.
type Behavior interface {
	Attach(h *Node, style NodeStyle)
}

// BehaviorFunc adapts a function to Behavior.
type BehaviorFunc func(h *Node, style NodeStyle)

// Attach calls f.
func (f BehaviorFunc) Attach(h *Node, style NodeStyle) { f(h, style) }
