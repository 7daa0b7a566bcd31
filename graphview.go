package graphview

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is opaque black.
var ColorBlack = Color{0, 0, 0, 1}

// RGBA returns the color as a premultiplied color.RGBA.
func (c Color) RGBA() color.RGBA {
	clamp := func(v float64) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
	}
	return color.RGBA{
		R: clamp(c.R * c.A),
		G: clamp(c.G * c.A),
		B: clamp(c.B * c.A),
		A: clamp(c.A),
	}
}

// Hex formats the color as "#rrggbbaa".
func (c Color) Hex() string {
	to := func(v float64) int {
		return int(math.Round(math.Max(0, math.Min(1, v)) * 255))
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", to(c.R), to(c.G), to(c.B), to(c.A))
}

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa". The leading '#' is optional.
func ParseColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return Color{}, fmt.Errorf("graphview: invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("graphview: invalid color %q: %w", s, err)
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

// UnmarshalText lets colors be written as hex strings in TOML documents.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalText writes the color as "#rrggbbaa".
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Lerp returns the point t of the way from v to o.
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// EmptyRect is the sentinel returned for a bounding rectangle over nothing.
// Its origin is +Inf and its extent -Inf, so any extension replaces it.
var EmptyRect = Rect{
	X:      math.Inf(1),
	Y:      math.Inf(1),
	Width:  math.Inf(-1),
	Height: math.Inf(-1),
}

// IsEmpty reports whether r is the EmptyRect sentinel (or otherwise has no
// finite extent).
func (r Rect) IsEmpty() bool {
	return math.IsInf(r.X, 0) || math.IsInf(r.Y, 0) ||
		math.IsInf(r.Width, 0) || math.IsInf(r.Height, 0) ||
		math.IsNaN(r.Width) || math.IsNaN(r.Height)
}

// Center returns the rectangle's midpoint.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Union returns the smallest rectangle containing both r and other.
// An empty operand is ignored.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	minX := math.Min(r.X, other.X)
	minY := math.Min(r.Y, other.Y)
	maxX := math.Max(r.X+r.Width, other.X+other.Width)
	maxY := math.Max(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// EntityKind distinguishes the two families of graph entities. Registry,
// selection and layers are kept separately per kind.
type EntityKind uint8

const (
	KindNode EntityKind = iota // graph vertex
	KindEdge                   // graph edge
)

// String returns "node" or "edge".
func (k EntityKind) String() string {
	switch k {
	case KindNode:
		return "node"
	case KindEdge:
		return "edge"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeSprite                    // renders an image scaled by ScaleX/ScaleY
	NodeTypeMesh                      // renders arbitrary triangles via DrawTriangles
	NodeTypeText                      // renders a label via text/v2
)

// WhitePixel is a 1x1 white image used by default for solid color sprites.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(color.White)
}
