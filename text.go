package graphview

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face   *text.GoTextFace
	source *text.GoTextFaceSource
	size   float64
	lh     float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("graphview: failed to parse TTF data: %w", err)
	}
	return newTTFFont(source, size), nil
}

func newTTFFont(source *text.GoTextFaceSource, size float64) *TTFFont {
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &TTFFont{
		face:   face,
		source: source,
		size:   size,
		lh:     m.HAscent + m.HDescent + m.HLineGap,
	}
}

// WithSize returns a font sharing the same source at another size.
func (f *TTFFont) WithSize(size float64) *TTFFont {
	if size == f.size {
		return f
	}
	return newTTFFont(f.source, size)
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Size returns the font size in pixels.
func (f *TTFFont) Size() float64 {
	return f.size
}

// Face returns the underlying text/v2 face.
func (f *TTFFont) Face() *text.GoTextFace {
	return f.face
}

var defaultFontSource *text.GoTextFaceSource

// DefaultFont returns the Go Regular font at size. The face source is
// parsed once.
func DefaultFont(size float64) *TTFFont {
	if defaultFontSource == nil {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			panic("graphview: failed to parse default font: " + err.Error())
		}
		defaultFontSource = src
	}
	return newTTFFont(defaultFontSource, size)
}

// Label is the content of a text node. The text is rendered once into a
// cached image and redrawn only when the content, font or color changes.
type Label struct {
	content string
	font    *TTFFont
	color   Color

	measuredW, measuredH float64
	dirty                bool
	image                *ebiten.Image
}

// NewLabel creates a label. A nil font means DefaultFont(14).
func NewLabel(content string, font *TTFFont, c Color) *Label {
	if font == nil {
		font = DefaultFont(14)
	}
	l := &Label{content: content, font: font, color: c, dirty: true}
	l.measure()
	return l
}

func (l *Label) measure() {
	l.measuredW, l.measuredH = l.font.MeasureString(l.content)
}

// Content returns the label text.
func (l *Label) Content() string { return l.content }

// SetContent replaces the label text.
func (l *Label) SetContent(s string) {
	if s == l.content {
		return
	}
	l.content = s
	l.measure()
	l.dirty = true
}

// SetColor changes the text color.
func (l *Label) SetColor(c Color) {
	if c == l.color {
		return
	}
	l.color = c
	l.dirty = true
}

// Color returns the text color.
func (l *Label) Color() Color { return l.color }

// Font returns the label's font.
func (l *Label) Font() *TTFFont { return l.font }

// Size returns the measured extent of the text.
func (l *Label) Size() Vec2 {
	return Vec2{l.measuredW, l.measuredH}
}

// rendered returns the cached text image, re-rendering it when dirty.
// Returns nil for empty text.
func (l *Label) rendered() *ebiten.Image {
	if l.measuredW == 0 || l.measuredH == 0 {
		return nil
	}
	if !l.dirty && l.image != nil {
		return l.image
	}
	l.dirty = false

	w := int(l.measuredW) + 1
	h := int(l.measuredH) + 1
	if l.image != nil {
		b := l.image.Bounds()
		if b.Dx() != w || b.Dy() != h {
			l.image.Deallocate()
			l.image = ebiten.NewImage(w, h)
		} else {
			l.image.Clear()
		}
	} else {
		l.image = ebiten.NewImage(w, h)
	}

	op := &text.DrawOptions{}
	op.ColorScale.Scale(
		float32(l.color.R),
		float32(l.color.G),
		float32(l.color.B),
		float32(l.color.A),
	)
	op.LineSpacing = l.font.lh
	text.Draw(l.image, l.content, l.font.face, op)
	return l.image
}
