package graphview

import (
	"errors"
	"math"
	"testing"
)

func TestFalloffEndpoints(t *testing.T) {
	if f := Falloff(0); f != 1 {
		t.Errorf("Falloff(0) = %v, want 1", f)
	}
	if f := Falloff(1); f != 0 {
		t.Errorf("Falloff(1) = %v, want 0", f)
	}
	assertNear(t, "Falloff(0.5)", Falloff(0.5), 0.25)
}

func TestFalloffMonotonic(t *testing.T) {
	prev := Falloff(0)
	for i := 1; i <= 100; i++ {
		f := Falloff(float64(i) / 100)
		if f > prev {
			t.Fatalf("Falloff(%v) = %v > Falloff(%v) = %v", float64(i)/100, f, float64(i-1)/100, prev)
		}
		prev = f
	}
}

func TestFalloffClamps(t *testing.T) {
	if f := Falloff(-3); f != 1 {
		t.Errorf("Falloff(-3) = %v, want 1", f)
	}
	if f := Falloff(7); f != 0 {
		t.Errorf("Falloff(7) = %v, want 0", f)
	}
	if f := Falloff(math.NaN()); f != 0 {
		t.Errorf("Falloff(NaN) = %v, want 0", f)
	}
}

func TestDistortionChain(t *testing.T) {
	d := NewDistortion(FilterConfig{})
	if d.Chain() != nil {
		t.Errorf("zero strengths: Chain() = %v, want nil", d.Chain())
	}

	d.Configure(FilterConfig{CartesianFisheyeStrengthY: 1})
	chain := d.Chain()
	if len(chain) != 1 || chain[0] != Filter(d.Cartesian()) {
		t.Errorf("Chain() = %v, want [cartesian]", chain)
	}

	d.Configure(FilterConfig{CartesianFisheyeStrengthX: 1, PolarFisheyeStrength: 2})
	chain = d.Chain()
	if len(chain) != 2 || chain[0] != Filter(d.Cartesian()) || chain[1] != Filter(d.Polar()) {
		t.Errorf("Chain() = %v, want [cartesian polar]", chain)
	}
	if d.Polar().Strength != 2 {
		t.Errorf("polar strength = %v, want 2", d.Polar().Strength)
	}

	d.Configure(FilterConfig{PolarFisheyeStrength: 0.5})
	chain = d.Chain()
	if len(chain) != 1 || chain[0] != Filter(d.Polar()) {
		t.Errorf("Chain() = %v, want [polar]", chain)
	}
}

func TestFilterPadding(t *testing.T) {
	if p := NewCartesianFisheyeFilter(1, 1).Padding(); p != 0 {
		t.Errorf("CartesianFisheyeFilter Padding() = %d, want 0", p)
	}
	if p := NewPolarFisheyeFilter(1).Padding(); p != 0 {
		t.Errorf("PolarFisheyeFilter Padding() = %d, want 0", p)
	}
	if p := filterChainPadding(nil); p != 0 {
		t.Errorf("filterChainPadding(nil) = %d", p)
	}
}

func TestFilterConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  FilterConfig
		ok   bool
	}{
		{"zero", FilterConfig{}, true},
		{"positive", FilterConfig{CartesianFisheyeStrengthX: 2, PolarFisheyeStrength: 1}, true},
		{"negative", FilterConfig{CartesianFisheyeStrengthY: -1}, false},
		{"nan", FilterConfig{PolarFisheyeStrength: math.NaN()}, false},
		{"inf", FilterConfig{CartesianFisheyeStrengthX: math.Inf(1)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestDistortionUpdateFocus(t *testing.T) {
	d := NewDistortion(FilterConfig{CartesianFisheyeStrengthX: 1, PolarFisheyeStrength: 1})
	d.Update(Vec2{200, 75}, 400, 300, Vec2{1, 1}, nil, nil)
	if d.Cartesian().Focus != (Vec2{0.5, 0.25}) {
		t.Errorf("cartesian focus = %v, want {0.5 0.25}", d.Cartesian().Focus)
	}
	if d.Polar().Focus != (Vec2{0.5, 0.25}) {
		t.Errorf("polar focus = %v, want {0.5 0.25}", d.Polar().Focus)
	}
}

func TestDistortionUpdateScalesNodes(t *testing.T) {
	d := NewDistortion(FilterConfig{ScaleNodes: true})
	// 300x400 viewport: diagonal 500.
	near := NewContainer("near")
	near.SetPosition(100, 100)
	mid := NewContainer("mid")
	mid.SetPosition(100, 350)
	far := NewContainer("far")
	far.SetPosition(400, 500)

	d.Update(Vec2{100, 100}, 300, 400, Vec2{1, 1}, []*Node{near, mid, far}, nil)

	assertNear(t, "near.ScaleX", near.ScaleX, 1)
	assertNear(t, "mid.ScaleX", mid.ScaleX, 0.25)
	assertNear(t, "mid.ScaleY", mid.ScaleY, 0.25)
	assertNear(t, "far.ScaleX", far.ScaleX, 0)
}

func TestDistortionUpdateCompensatesStageScale(t *testing.T) {
	d := NewDistortion(FilterConfig{ScaleNodes: true})
	n := NewContainer("n")
	n.SetPosition(50, 50)
	d.Update(Vec2{50, 50}, 100, 100, Vec2{2, 4}, []*Node{n}, nil)
	assertNear(t, "ScaleX", n.ScaleX, 0.5)
	assertNear(t, "ScaleY", n.ScaleY, 0.25)
}

func TestDistortionUpdateZeroViewport(t *testing.T) {
	d := NewDistortion(FilterConfig{ScaleNodes: true, CartesianFisheyeStrengthX: 1})
	n := NewContainer("n")
	n.SetScale(0.7, 0.7)
	d.Cartesian().Focus = Vec2{0.3, 0.3}

	d.Update(Vec2{10, 10}, 0, 0, Vec2{1, 1}, []*Node{n}, nil)
	d.Update(Vec2{10, 10}, 100, 0, Vec2{1, 1}, []*Node{n}, nil)

	if n.ScaleX != 0.7 {
		t.Errorf("ScaleX = %v, want untouched 0.7", n.ScaleX)
	}
	if d.Cartesian().Focus != (Vec2{0.3, 0.3}) {
		t.Errorf("focus = %v, want untouched", d.Cartesian().Focus)
	}
	if math.IsNaN(n.ScaleX) || math.IsNaN(n.ScaleY) {
		t.Error("NaN scale")
	}
}

func TestDistortionUpdateNodesDisabled(t *testing.T) {
	d := NewDistortion(FilterConfig{})
	n := NewContainer("n")
	n.SetPosition(1000, 1000)
	d.Update(Vec2{}, 100, 100, Vec2{1, 1}, []*Node{n}, nil)
	if n.ScaleX != 1 || n.ScaleY != 1 {
		t.Errorf("scale = (%v, %v), want (1, 1)", n.ScaleX, n.ScaleY)
	}
}

func TestDistortionUpdateScalesDecalsAndArrows(t *testing.T) {
	style := DefaultEdgeStyle()
	style.Decal.Enabled = true
	e, err := LineEdgeFactory{}.NewEdgeVisual(style, Vec2{0, 0}, Vec2{100, 0})
	if err != nil {
		t.Fatal(err)
	}
	e.UpdateTransforms()

	d := NewDistortion(FilterConfig{ScaleEdgeDecals: true})
	// Pointer on the decal (midpoint).
	d.Update(Vec2{50, 0}, 300, 400, Vec2{1, 1}, nil, []*Node{e})
	assertNear(t, "decal.ScaleX", e.Decal.ScaleX, 1)
	if e.Arrow.ScaleX != 1 {
		t.Errorf("arrow scaled with ScaleEdgeArrows off: %v", e.Arrow.ScaleX)
	}

	d.Configure(FilterConfig{ScaleEdgeArrows: true})
	// Arrow tip sits at 100-26 = 74; pointer 250 px further along x.
	d.Update(Vec2{324, 0}, 300, 400, Vec2{1, 1}, nil, []*Node{e})
	assertNear(t, "arrow.ScaleX", e.Arrow.ScaleX, 0.25)
}

func TestDistortionDecalUsesGlobalPosition(t *testing.T) {
	style := DefaultEdgeStyle()
	style.Decal.Enabled = true
	e, err := LineEdgeFactory{}.NewEdgeVisual(style, Vec2{0, 0}, Vec2{100, 0})
	if err != nil {
		t.Fatal(err)
	}
	stage := NewContainer("stage")
	stage.SetPosition(250, 0)
	stage.AddChild(e)
	stage.UpdateTransforms()

	// The decal's stage position is (50, 0) but its world position is
	// (300, 0); the factor is measured against the world position.
	d := NewDistortion(FilterConfig{ScaleEdgeDecals: true})
	d.Update(Vec2{50, 0}, 300, 400, Vec2{1, 1}, nil, []*Node{e})
	assertNear(t, "decal.ScaleX", e.Decal.ScaleX, 0.25)
}
