package graphview

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// DefaultNodeStyle returns the style used when a node has no overrides: a
// light box with a dark border, a soft shadow and a dark label.
func DefaultNodeStyle() NodeStyle {
	return NodeStyle{
		Shape:       ShapeBox,
		Width:       48,
		Height:      48,
		Fill:        Color{0.93, 0.95, 0.98, 1},
		Border:      Color{0.2, 0.24, 0.3, 1},
		BorderWidth: 2,
		Label: LabelStyle{
			Size:  14,
			Color: Color{0.1, 0.1, 0.12, 1},
		},
		Shadow: ShadowStyle{
			Enabled: true,
			Offset:  Vec2{3, 3},
			Color:   Color{0, 0, 0, 0.25},
		},
		Draggable:  true,
		Selectable: true,
	}
}

// DefaultEdgeStyle returns a thin grey edge with an arrow head and no decal.
func DefaultEdgeStyle() EdgeStyle {
	return EdgeStyle{
		Width: 2,
		Color: Color{0.45, 0.5, 0.58, 1},
		Arrow: ArrowStyle{Enabled: true, Size: 10, Inset: 26},
		Decal: DecalStyle{Size: 8, Color: Color{0.95, 0.6, 0.2, 1}},
	}
}

// BoxNodeFactory is the default NodeStyleFactory. It draws boxes and images
// and caches images loaded from disk by path.
type BoxNodeFactory struct {
	images map[string]*ebiten.Image
	// LoadImage loads an image file. Defaults to ebitenutil.NewImageFromFile.
	LoadImage func(path string) (*ebiten.Image, error)
}

// NewBoxNodeFactory creates the default node factory.
func NewBoxNodeFactory() *BoxNodeFactory {
	return &BoxNodeFactory{images: make(map[string]*ebiten.Image)}
}

func loadImageFile(path string) (*ebiten.Image, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	return img, err
}

func (f *BoxNodeFactory) image(path string) (*ebiten.Image, error) {
	if img, ok := f.images[path]; ok {
		return img, nil
	}
	load := f.LoadImage
	if load == nil {
		load = loadImageFile
	}
	img, err := load(path)
	if err != nil {
		return nil, fmt.Errorf("graphview: load node image %q: %w", path, err)
	}
	if f.images == nil {
		f.images = make(map[string]*ebiten.Image)
	}
	f.images[path] = img
	return img, nil
}

// rectSprite returns a WhitePixel sprite covering the given local rectangle.
func rectSprite(name string, r Rect, c Color) *Node {
	s := NewSprite(name, WhitePixel)
	s.SetPosition(r.X, r.Y)
	s.SetScale(r.Width, r.Height)
	s.Color = c
	return s
}

// NewNodeVisual builds a container centered on its origin.
func (f *BoxNodeFactory) NewNodeVisual(style NodeStyle) (*Node, error) {
	if err := style.Validate(); err != nil {
		return nil, err
	}
	h := NewContainer("node")

	var w, ht float64
	switch style.Shape {
	case ShapeImage:
		img := style.ImageData
		if img == nil {
			var err error
			if img, err = f.image(style.Image); err != nil {
				return nil, err
			}
		}
		b := img.Bounds()
		iw, ih := float64(b.Dx()), float64(b.Dy())
		w, ht = style.Width, style.Height
		if w == 0 {
			w = iw
		}
		if ht == 0 {
			ht = ih
		}
		sp := NewSprite("image", img)
		sp.SetPosition(-w/2, -ht/2)
		if iw > 0 && ih > 0 {
			sp.SetScale(w/iw, ht/ih)
		}
		h.AddChild(sp)
	default:
		w, ht = style.Width, style.Height
		bw := style.BorderWidth
		outer := Rect{X: -w/2 - bw, Y: -ht/2 - bw, Width: w + 2*bw, Height: ht + 2*bw}
		if style.Shadow.Enabled {
			sr := outer
			sr.X += style.Shadow.Offset.X
			sr.Y += style.Shadow.Offset.Y
			h.AddChild(rectSprite("shadow", sr, style.Shadow.Color))
		}
		if bw > 0 {
			h.AddChild(rectSprite("border", outer, style.Border))
		}
		h.AddChild(rectSprite("fill", Rect{X: -w / 2, Y: -ht / 2, Width: w, Height: ht}, style.Fill))
		w += 2 * bw
		ht += 2 * bw
	}

	if style.Label.Text != "" {
		size := style.Label.Size
		if size == 0 {
			size = DefaultNodeStyle().Label.Size
		}
		label := NewLabel(style.Label.Text, DefaultFont(size), style.Label.Color)
		ls := label.Size()
		t := NewText("label", label)
		t.SetPosition(-ls.X/2+style.Label.Offset.X, -ls.Y/2+style.Label.Offset.Y)
		h.AddChild(t)
	}

	h.Size = Vec2{w, ht}
	h.HitShape = HitRect{X: -w / 2, Y: -ht / 2, Width: w, Height: ht}
	return h, nil
}

// LineEdgeFactory is the default EdgeStyleFactory: a line from source to
// target with an optional arrow head and midpoint decal.
type LineEdgeFactory struct{}

// NewEdgeVisual builds an edge container at the stage origin whose parts
// are laid out in stage coordinates.
func (LineEdgeFactory) NewEdgeVisual(style EdgeStyle, from, to Vec2) (*Node, error) {
	if err := style.Validate(); err != nil {
		return nil, err
	}
	h := NewContainer("edge")
	h.Geometry = &EdgeGeometry{Source: from, Target: to}

	line := NewLine("line", from, to, style.Width)
	line.Color = style.Color
	h.AddChild(line)

	if style.Arrow.Enabled && style.Arrow.Size > 0 {
		tip := to
		if d := to.Sub(from).Len(); d > 0 {
			inset := min(style.Arrow.Inset, d)
			tip = to.Lerp(from, inset/d)
		}
		arrow := NewArrowHead("arrow", style.Arrow.Size)
		arrow.SetPosition(tip.X, tip.Y)
		arrow.SetRotation(segmentAngle(from, to))
		arrow.Color = style.Color
		h.AddChild(arrow)
		h.Arrow = arrow
	}

	if style.Decal.Enabled && style.Decal.Size > 0 {
		mid := h.Geometry.Midpoint()
		// The decal is a container so distortion can scale it around the
		// midpoint while the sprite keeps its pixel size.
		decal := NewContainer("decal")
		decal.SetPosition(mid.X, mid.Y)
		s := style.Decal.Size
		decal.AddChild(rectSprite("marker", Rect{X: -s / 2, Y: -s / 2, Width: s, Height: s}, style.Decal.Color))
		h.AddChild(decal)
		h.Decal = decal
	}
	return h, nil
}

// InteractionBehavior enables pointer interaction on node handles according
// to the style's Draggable and Selectable flags.
var InteractionBehavior Behavior = BehaviorFunc(func(h *Node, style NodeStyle) {
	h.Draggable = style.Draggable
	h.Selectable = style.Selectable
	h.Interactable = style.Draggable || style.Selectable
})
