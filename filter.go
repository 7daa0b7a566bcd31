package graphview

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Filter is the interface for visual effects applied to a node's rendered output.
type Filter interface {
	// Apply renders src into dst with the filter effect.
	Apply(src, dst *ebiten.Image)
	// Padding returns the extra pixels needed around the source to accommodate
	// the effect. Zero means no padding.
	Padding() int
}

// --- Kage shader sources ---
// Both fisheye shaders map each destination pixel back to its source pixel
// with the inverse of the Sarkar-Brown transform g(t) = (d+1)t / (dt+1).

const cartesianFisheyeShaderSrc = `//kage:unit pixels
package main

var Focus vec2
var Strength vec2

func unwarp(u float, d float) float {
	return u / (d + 1 - d*u)
}

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	origin := imageSrc0Origin()
	size := imageSrc0Size()
	p := (src - origin) / size
	f := clamp(Focus, vec2(0.0001), vec2(0.9999))
	q := p
	if p.x > f.x {
		q.x = f.x + unwarp((p.x-f.x)/(1-f.x), Strength.x)*(1-f.x)
	} else {
		q.x = f.x - unwarp((f.x-p.x)/f.x, Strength.x)*f.x
	}
	if p.y > f.y {
		q.y = f.y + unwarp((p.y-f.y)/(1-f.y), Strength.y)*(1-f.y)
	} else {
		q.y = f.y - unwarp((f.y-p.y)/f.y, Strength.y)*f.y
	}
	return imageSrc0At(q*size + origin)
}
`

const polarFisheyeShaderSrc = `//kage:unit pixels
package main

var Focus vec2
var Strength float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	origin := imageSrc0Origin()
	size := imageSrc0Size()
	fp := Focus * size
	delta := (src - origin) - fp
	r := length(delta)
	far := max(max(length(fp), length(vec2(size.x, 0)-fp)), max(length(vec2(0, size.y)-fp), length(size-fp)))
	if r == 0 || far == 0 {
		return imageSrc0At(src)
	}
	u := r / far
	t := u / (Strength + 1 - Strength*u)
	return imageSrc0At(fp + delta*(t/u) + origin)
}
`

// --- Lazy shader compilation (single-threaded, no sync.Once) ---

var (
	cartesianFisheyeShader *ebiten.Shader
	polarFisheyeShader     *ebiten.Shader
)

func ensureCartesianFisheyeShader() *ebiten.Shader {
	if cartesianFisheyeShader == nil {
		s, err := ebiten.NewShader([]byte(cartesianFisheyeShaderSrc))
		if err != nil {
			panic("graphview: failed to compile cartesian fisheye shader: " + err.Error())
		}
		cartesianFisheyeShader = s
	}
	return cartesianFisheyeShader
}

func ensurePolarFisheyeShader() *ebiten.Shader {
	if polarFisheyeShader == nil {
		s, err := ebiten.NewShader([]byte(polarFisheyeShaderSrc))
		if err != nil {
			panic("graphview: failed to compile polar fisheye shader: " + err.Error())
		}
		polarFisheyeShader = s
	}
	return polarFisheyeShader
}

// --- CartesianFisheyeFilter ---

// CartesianFisheyeFilter magnifies the region around Focus independently
// along each axis. Focus is relative to the filtered area ([0,1] per axis).
type CartesianFisheyeFilter struct {
	Focus     Vec2
	StrengthX float64
	StrengthY float64

	uniforms    map[string]any
	focusF32    [2]float32
	strengthF32 [2]float32
	shaderOp    ebiten.DrawRectShaderOptions
}

// NewCartesianFisheyeFilter creates a filter focused on the center.
func NewCartesianFisheyeFilter(strengthX, strengthY float64) *CartesianFisheyeFilter {
	f := &CartesianFisheyeFilter{
		Focus:     Vec2{0.5, 0.5},
		StrengthX: strengthX,
		StrengthY: strengthY,
		uniforms:  make(map[string]any, 2),
	}
	f.uniforms["Focus"] = f.focusF32[:]
	f.uniforms["Strength"] = f.strengthF32[:]
	return f
}

// Active reports whether the filter has any effect.
func (f *CartesianFisheyeFilter) Active() bool {
	return f.StrengthX != 0 || f.StrengthY != 0
}

// Apply renders the distorted src into dst.
func (f *CartesianFisheyeFilter) Apply(src, dst *ebiten.Image) {
	shader := ensureCartesianFisheyeShader()
	f.focusF32[0], f.focusF32[1] = float32(f.Focus.X), float32(f.Focus.Y)
	f.strengthF32[0], f.strengthF32[1] = float32(f.StrengthX), float32(f.StrengthY)
	bounds := src.Bounds()
	f.shaderOp.Images[0] = src
	f.shaderOp.Uniforms = f.uniforms
	dst.DrawRectShader(bounds.Dx(), bounds.Dy(), shader, &f.shaderOp)
}

// Padding returns 0; the distortion stays within the source bounds.
func (f *CartesianFisheyeFilter) Padding() int { return 0 }

// --- PolarFisheyeFilter ---

// PolarFisheyeFilter magnifies radially around Focus.
type PolarFisheyeFilter struct {
	Focus    Vec2
	Strength float64

	uniforms map[string]any
	focusF32 [2]float32
	shaderOp ebiten.DrawRectShaderOptions
}

// NewPolarFisheyeFilter creates a filter focused on the center.
func NewPolarFisheyeFilter(strength float64) *PolarFisheyeFilter {
	f := &PolarFisheyeFilter{
		Focus:    Vec2{0.5, 0.5},
		Strength: strength,
		uniforms: make(map[string]any, 2),
	}
	f.uniforms["Focus"] = f.focusF32[:]
	return f
}

// Active reports whether the filter has any effect.
func (f *PolarFisheyeFilter) Active() bool {
	return f.Strength != 0
}

// Apply renders the distorted src into dst.
func (f *PolarFisheyeFilter) Apply(src, dst *ebiten.Image) {
	shader := ensurePolarFisheyeShader()
	f.focusF32[0], f.focusF32[1] = float32(f.Focus.X), float32(f.Focus.Y)
	f.uniforms["Strength"] = float32(f.Strength)
	bounds := src.Bounds()
	f.shaderOp.Images[0] = src
	f.shaderOp.Uniforms = f.uniforms
	dst.DrawRectShader(bounds.Dx(), bounds.Dy(), shader, &f.shaderOp)
}

// Padding returns 0; the distortion stays within the source bounds.
func (f *PolarFisheyeFilter) Padding() int { return 0 }

// --- Filter chain helpers ---

func filterChainPadding(filters []Filter) int {
	pad := 0
	for _, f := range filters {
		pad += f.Padding()
	}
	return pad
}

// applyFilters runs a filter chain on src, ping-ponging between two images.
// Returns the image containing the final result (either src or a pooled
// scratch image). The caller releases whichever images it acquired.
func applyFilters(filters []Filter, src *ebiten.Image, pool *renderTexturePool) *ebiten.Image {
	if len(filters) == 0 {
		return src
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	current := src
	var scratch *ebiten.Image

	for _, f := range filters {
		if scratch == nil {
			scratch = pool.Acquire(w, h)
		} else {
			scratch.Clear()
		}
		f.Apply(current, scratch)
		current, scratch = scratch, current
	}
	if scratch != nil && scratch != src {
		pool.Release(scratch)
	}
	return current
}

// --- Offscreen pool ---

// renderTexturePool manages reusable offscreen images keyed by exact
// dimensions. Shaders normalize by the source size, so images are never
// rounded up.
type renderTexturePool struct {
	buckets map[uint64][]*ebiten.Image
}

func poolKey(w, h int) uint64 {
	return uint64(w)<<32 | uint64(h)
}

// Acquire returns a cleared offscreen image of (w, h) pixels.
func (p *renderTexturePool) Acquire(w, h int) *ebiten.Image {
	key := poolKey(w, h)

	if p.buckets != nil {
		if stack := p.buckets[key]; len(stack) > 0 {
			img := stack[len(stack)-1]
			p.buckets[key] = stack[:len(stack)-1]
			img.Clear()
			return img
		}
	}

	return ebiten.NewImageWithOptions(
		image.Rect(0, 0, w, h),
		&ebiten.NewImageOptions{Unmanaged: true},
	)
}

// Release returns an image to the pool for reuse.
func (p *renderTexturePool) Release(img *ebiten.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	if p.buckets == nil {
		p.buckets = make(map[uint64][]*ebiten.Image)
	}
	key := poolKey(b.Dx(), b.Dy())
	p.buckets[key] = append(p.buckets[key], img)
}
