package graphview

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestBuildPolygonFan(t *testing.T) {
	verts, inds := buildPolygonFan([]Vec2{{0, 0}, {10, 0}, {10, 10}, {0, 10}})
	if len(verts) != 4 || len(inds) != 6 {
		t.Fatalf("got %d verts, %d indices, want 4, 6", len(verts), len(inds))
	}
	want := []uint16{0, 1, 2, 0, 2, 3}
	for i, idx := range want {
		if inds[i] != idx {
			t.Errorf("inds[%d] = %d, want %d", i, inds[i], idx)
		}
	}
	if verts[2].DstX != 10 || verts[2].DstY != 10 {
		t.Errorf("verts[2] = (%v, %v)", verts[2].DstX, verts[2].DstY)
	}

	if v, i := buildPolygonFan([]Vec2{{0, 0}, {1, 1}}); v != nil || i != nil {
		t.Error("degenerate polygon should produce no geometry")
	}
}

func TestLinePoints(t *testing.T) {
	pts := linePoints(Vec2{0, 0}, Vec2{10, 0}, 4)
	want := []Vec2{{0, 2}, {10, 2}, {10, -2}, {0, -2}}
	for i := range want {
		assertNear(t, "x", pts[i].X, want[i].X)
		assertNear(t, "y", pts[i].Y, want[i].Y)
	}
}

func TestLinePointsZeroLength(t *testing.T) {
	pts := linePoints(Vec2{5, 5}, Vec2{5, 5}, 2)
	for _, p := range pts {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			t.Fatalf("NaN in %v", pts)
		}
	}
}

func TestArrowHeadAim(t *testing.T) {
	pts := arrowPoints(10)
	if pts[0] != (Vec2{0, 0}) {
		t.Errorf("tip = %v, want origin", pts[0])
	}
	for _, p := range pts[1:] {
		if p.X >= 0 {
			t.Errorf("base point %v should trail the tip along -X", p)
		}
	}
	assertNear(t, "angle", segmentAngle(Vec2{0, 0}, Vec2{0, 5}), math.Pi/2)
}

func TestSetPolygonPointsReusesBuffers(t *testing.T) {
	n := NewLine("edge", Vec2{0, 0}, Vec2{10, 0}, 2)
	before := &n.Vertices[0]
	SetLinePoints(n, Vec2{0, 0}, Vec2{0, 10}, 2)
	if &n.Vertices[0] != before {
		t.Error("SetLinePoints reallocated the vertex buffer")
	}
	assertNear(t, "v1.y", float64(n.Vertices[1].DstY), 10)
}

func TestTransformVerticesTint(t *testing.T) {
	src := []ebiten.Vertex{{DstX: 1, DstY: 2, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1}}
	dst := make([]ebiten.Vertex, 1)
	transformVertices(src, dst, [6]float64{2, 0, 0, 2, 10, 20}, Color{1, 0.5, 0, 0.5})
	v := dst[0]
	if v.DstX != 12 || v.DstY != 24 {
		t.Errorf("pos = (%v, %v), want (12, 24)", v.DstX, v.DstY)
	}
	if v.ColorR != 0.5 || v.ColorG != 0.25 || v.ColorB != 0 || v.ColorA != 0.5 {
		t.Errorf("color = %v %v %v %v", v.ColorR, v.ColorG, v.ColorB, v.ColorA)
	}
}
