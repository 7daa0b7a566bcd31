package graphview

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want [6]float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

// --- computeLocalTransform ---

func TestLocalTransformIdentity(t *testing.T) {
	n := NewContainer("test")
	assertMatrix(t, "identity", computeLocalTransform(n), identityTransform)
}

func TestLocalTransformTranslationScale(t *testing.T) {
	n := NewContainer("test")
	n.SetPosition(10, 20)
	n.SetScale(2, 3)
	assertMatrix(t, "ts", computeLocalTransform(n), [6]float64{2, 0, 0, 3, 10, 20})
}

func TestLocalTransformRotation90(t *testing.T) {
	n := NewContainer("arrow")
	n.SetRotation(math.Pi / 2)
	// cos=0, sin=1: a=0, b=1, c=-1, d=0
	assertMatrix(t, "rot90", computeLocalTransform(n), [6]float64{0, 1, -1, 0, 0, 0})
}

func TestLocalTransformPivot(t *testing.T) {
	n := NewContainer("test")
	n.SetPosition(100, 200)
	n.SetPivot(16, 16)
	assertMatrix(t, "pivot", computeLocalTransform(n), [6]float64{1, 0, 0, 1, 84, 184})
}

// --- multiplyAffine / invertAffine ---

func TestMultiplyAffineIdentity(t *testing.T) {
	m := [6]float64{2, 1, 3, 4, 5, 6}
	assertMatrix(t, "id*m", multiplyAffine(identityTransform, m), m)
	assertMatrix(t, "m*id", multiplyAffine(m, identityTransform), m)
}

func TestInvertAffineRotated(t *testing.T) {
	n := NewContainer("test")
	n.SetScale(2, 0.5)
	n.SetRotation(math.Pi / 3)
	n.SetPosition(7, -3)
	m := computeLocalTransform(n)
	assertMatrix(t, "m*inv", multiplyAffine(m, invertAffine(m)), identityTransform)
}

func TestInvertAffineSingularReturnsIdentity(t *testing.T) {
	assertMatrix(t, "singular", invertAffine([6]float64{0, 0, 0, 1, 10, 20}), identityTransform)
	assertMatrix(t, "zero", invertAffine([6]float64{0, 0, 0, 0, 50, 100}), identityTransform)
}

// --- World transforms ---

func TestStageZoomReachesHandles(t *testing.T) {
	root := NewContainer("root")
	stage := NewContainer("stage")
	layer := NewContainer("nodes")
	h := NewContainer("a")
	root.AddChild(stage)
	stage.AddChild(layer)
	layer.AddChild(h)

	stage.SetPosition(100, 50)
	stage.SetScale(2, 2)
	h.SetPosition(10, 20)
	root.UpdateTransforms()

	g := h.GlobalPosition()
	assertNear(t, "global.x", g.X, 120)
	assertNear(t, "global.y", g.Y, 90)

	lx, ly := stage.WorldToLocal(120, 90)
	assertNear(t, "stage-local.x", lx, 10)
	assertNear(t, "stage-local.y", ly, 20)
}

func TestDirtyFlagSkipsClean(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	parent.X = 100
	child.X = 10
	parent.UpdateTransforms()

	child.X = 999 // direct write: not marked dirty
	parent.UpdateTransforms()
	assertNear(t, "child.tx (stale)", child.worldTransform[4], 110)

	child.MarkDirty()
	parent.UpdateTransforms()
	assertNear(t, "child.tx (fresh)", child.worldTransform[4], 1099)
}

func TestParentRecomputedPropagates(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	child.X = 10
	parent.UpdateTransforms()

	parent.SetPosition(200, 0)
	parent.UpdateTransforms()
	assertNear(t, "child.tx", child.worldTransform[4], 210)
}

func TestAlphaPropagation(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	parent.Alpha = 0.5
	child.Alpha = 0.5
	parent.UpdateTransforms()
	assertNear(t, "child.worldAlpha", child.worldAlpha, 0.25)
}

func TestWorldToLocalRoundtrip(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	parent.SetPosition(100, 50)
	child.SetPosition(10, 20)
	child.SetScale(2, 3)
	child.SetRotation(math.Pi / 6)
	parent.UpdateTransforms()

	lx, ly := child.WorldToLocal(150, 80)
	wx, wy := child.LocalToWorld(lx, ly)
	assertNear(t, "roundtrip.x", wx, 150)
	assertNear(t, "roundtrip.y", wy, 80)
}

func TestWorldToLocalZeroScale(t *testing.T) {
	n := NewContainer("shrunk")
	n.SetScale(0, 0)
	n.UpdateTransforms()
	// A fully shrunk handle must not yield NaN.
	lx, ly := n.WorldToLocal(100, 200)
	if math.IsNaN(lx) || math.IsNaN(ly) {
		t.Errorf("WorldToLocal = (%v, %v)", lx, ly)
	}
}

func TestSettersDirty(t *testing.T) {
	n := NewContainer("test")
	for name, set := range map[string]func(){
		"SetPosition": func() { n.SetPosition(1, 2) },
		"SetScale":    func() { n.SetScale(2, 2) },
		"SetRotation": func() { n.SetRotation(1) },
		"SetPivot":    func() { n.SetPivot(5, 5) },
		"MarkDirty":   n.MarkDirty,
	} {
		n.transformDirty = false
		set()
		if !n.transformDirty {
			t.Errorf("%s should set dirty", name)
		}
	}
}
