package graphview

import (
	"math"
)

// FilterConfig configures the fisheye distortion. A zero strength removes
// the corresponding filter from the active chain.
type FilterConfig struct {
	CartesianFisheyeStrengthX float64 `toml:"cartesian_fisheye_strength_x"`
	CartesianFisheyeStrengthY float64 `toml:"cartesian_fisheye_strength_y"`
	PolarFisheyeStrength      float64 `toml:"polar_fisheye_strength"`
	ScaleEdgeArrows           bool    `toml:"scale_edge_arrows"`
	ScaleEdgeDecals           bool    `toml:"scale_edge_decals"`
	ScaleNodes                bool    `toml:"scale_nodes"`
}

// Validate rejects negative or non-finite strengths.
func (c FilterConfig) Validate() error {
	for _, s := range []struct {
		name string
		v    float64
	}{
		{"cartesian_fisheye_strength_x", c.CartesianFisheyeStrengthX},
		{"cartesian_fisheye_strength_y", c.CartesianFisheyeStrengthY},
		{"polar_fisheye_strength", c.PolarFisheyeStrength},
	} {
		if !finiteNonNegative(s.v) {
			return invalidConfig("%s must be finite and >= 0, got %g", s.name, s.v)
		}
	}
	return nil
}

// Falloff maps a normalized pointer distance to a scale factor:
// (1 - clamp(d, 0, 1))². It is 1 at the pointer and 0 a viewport diagonal away.
func Falloff(d float64) float64 {
	if math.IsNaN(d) || d > 1 {
		d = 1
	} else if d < 0 {
		d = 0
	}
	f := 1 - d
	return f * f
}

// Distortion owns the fisheye filters and the per-frame scaling of node
// handles, edge decals and edge arrows.
type Distortion struct {
	cfg       FilterConfig
	cartesian *CartesianFisheyeFilter
	polar     *PolarFisheyeFilter
	chain     []Filter
}

// NewDistortion creates a pipeline for cfg. cfg must already be valid.
func NewDistortion(cfg FilterConfig) *Distortion {
	d := &Distortion{
		cartesian: NewCartesianFisheyeFilter(0, 0),
		polar:     NewPolarFisheyeFilter(0),
	}
	d.Configure(cfg)
	return d
}

// Configure replaces the configuration and rebuilds the active chain.
func (d *Distortion) Configure(cfg FilterConfig) {
	d.cfg = cfg
	d.cartesian.StrengthX = cfg.CartesianFisheyeStrengthX
	d.cartesian.StrengthY = cfg.CartesianFisheyeStrengthY
	d.polar.Strength = cfg.PolarFisheyeStrength
	d.chain = d.chain[:0]
	if d.cartesian.Active() {
		d.chain = append(d.chain, d.cartesian)
	}
	if d.polar.Active() {
		d.chain = append(d.chain, d.polar)
	}
}

// Config returns the current configuration.
func (d *Distortion) Config() FilterConfig { return d.cfg }

// Chain returns the active filters in application order. The slice is
// shared; callers must not modify it.
func (d *Distortion) Chain() []Filter {
	if len(d.chain) == 0 {
		return nil
	}
	return d.chain
}

// Cartesian returns the Cartesian fisheye filter.
func (d *Distortion) Cartesian() *CartesianFisheyeFilter { return d.cartesian }

// Polar returns the polar fisheye filter.
func (d *Distortion) Polar() *PolarFisheyeFilter { return d.polar }

// Update refocuses the filters on pointer p (stage coordinates) and rescales
// handles for a w by h viewport. A zero-sized viewport leaves everything
// untouched for this frame.
func (d *Distortion) Update(p Vec2, w, h float64, stageScale Vec2, nodes, edges []*Node) {
	if w <= 0 || h <= 0 {
		return
	}
	focus := Vec2{p.X / w, p.Y / h}
	d.cartesian.Focus = focus
	d.polar.Focus = focus

	diag := math.Hypot(w, h)
	sx, sy := stageScale.X, stageScale.Y
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}

	if d.cfg.ScaleNodes {
		for _, n := range nodes {
			f := Falloff(p.Sub(n.Position()).Len() / diag)
			n.SetScale(f/sx, f/sy)
		}
	}
	if !d.cfg.ScaleEdgeDecals && !d.cfg.ScaleEdgeArrows {
		return
	}
	// Decals and arrows are measured at their world position against the
	// stage-space pointer, so under zoom or pan the focus drifts.
	for _, e := range edges {
		if d.cfg.ScaleEdgeDecals && e.Decal != nil {
			f := Falloff(p.Sub(e.Decal.GlobalPosition()).Len() / diag)
			e.Decal.SetScale(f/sx, f/sy)
		}
		if d.cfg.ScaleEdgeArrows && e.Arrow != nil {
			f := Falloff(p.Sub(e.Arrow.GlobalPosition()).Len() / diag)
			e.Arrow.SetScale(f/sx, f/sy)
		}
	}
}
