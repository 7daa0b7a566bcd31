package graphview

import "testing"

func TestParseColor(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want Color
	}{
		{"#fff", Color{1, 1, 1, 1}},
		{"000000", Color{0, 0, 0, 1}},
		{"#ff000080", Color{1, 0, 0, 128.0 / 255}},
	} {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	for _, bad := range []string{"", "#12", "#zzzzzz"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor(%q) should fail", bad)
		}
	}
}

func TestColorHexRoundTrip(t *testing.T) {
	c := Color{0.2, 0.4, 0.6, 1}
	if h := c.Hex(); h != "#336699ff" {
		t.Errorf("Hex = %q, want #336699ff", h)
	}
	var back Color
	if err := back.UnmarshalText([]byte(c.Hex())); err != nil {
		t.Fatal(err)
	}
	if back != c {
		t.Errorf("round trip = %v, want %v", back, c)
	}
	if h := (Color{2, -1, 0, 1}).Hex(); h != "#ff0000ff" {
		t.Errorf("out of range Hex = %q, want clamped #ff0000ff", h)
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{0, 0, 10, 10}
	b := Rect{5, -5, 10, 10}
	if got := a.Union(b); got != (Rect{0, -5, 15, 15}) {
		t.Errorf("Union = %v", got)
	}
	if got := EmptyRect.Union(a); got != a {
		t.Errorf("EmptyRect.Union(a) = %v, want a", got)
	}
	if got := a.Union(EmptyRect); got != a {
		t.Errorf("a.Union(EmptyRect) = %v, want a", got)
	}
}

func TestRectEmpty(t *testing.T) {
	if !EmptyRect.IsEmpty() {
		t.Error("EmptyRect should be empty")
	}
	if (Rect{0, 0, 0, 0}).IsEmpty() {
		t.Error("a zero-size rect at the origin is a point, not empty")
	}
	if c := (Rect{0, 0, 10, 4}).Center(); c != (Vec2{5, 2}) {
		t.Errorf("Center = %v", c)
	}
}

func TestRectContainsIntersects(t *testing.T) {
	r := Rect{0, 0, 10, 10}
	if !r.Contains(10, 10) || r.Contains(10.1, 5) {
		t.Error("Contains edge handling")
	}
	if !r.Intersects(Rect{10, 0, 5, 5}) {
		t.Error("adjacent rects should intersect")
	}
	if r.Intersects(Rect{11, 0, 5, 5}) {
		t.Error("disjoint rects should not intersect")
	}
}

func TestVec2(t *testing.T) {
	v := Vec2{3, 4}
	assertNear(t, "Len", v.Len(), 5)
	if d := v.Sub(Vec2{1, 1}); d != (Vec2{2, 3}) {
		t.Errorf("Sub = %v", d)
	}
	m := Vec2{0, 0}.Lerp(Vec2{10, -10}, 0.25)
	assertNear(t, "Lerp.x", m.X, 2.5)
	assertNear(t, "Lerp.y", m.Y, -2.5)
}

func TestEntityKindString(t *testing.T) {
	if KindNode.String() != "node" || KindEdge.String() != "edge" {
		t.Errorf("kinds = %s, %s", KindNode, KindEdge)
	}
}
