package graphview

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// transformVertices applies an affine transform and color tint to src vertices,
// writing the result into dst. dst must be at least len(src) in length.
//
// Matrix layout: [0]=a, [1]=b, [2]=c, [3]=d, [4]=tx, [5]=ty
// newX = a*x + c*y + tx, newY = b*x + d*y + ty
//
// The tint's alpha already has worldAlpha baked in.
func transformVertices(src, dst []ebiten.Vertex, transform [6]float64, tint Color) {
	a, b, c, d, tx, ty := transform[0], transform[1], transform[2], transform[3], transform[4], transform[5]
	cr := float32(tint.R)
	cg := float32(tint.G)
	cb := float32(tint.B)
	ca := float32(tint.A)

	for i := range src {
		s := &src[i]
		ox := float64(s.DstX)
		oy := float64(s.DstY)
		dst[i] = ebiten.Vertex{
			DstX:   float32(a*ox + c*oy + tx),
			DstY:   float32(b*ox + d*oy + ty),
			SrcX:   s.SrcX,
			SrcY:   s.SrcY,
			ColorR: s.ColorR * cr * ca,
			ColorG: s.ColorG * cg * ca,
			ColorB: s.ColorB * cb * ca,
			ColorA: s.ColorA * ca,
		}
	}
}

// ensureTransformedVerts grows the node's transformedVerts buffer to fit
// len(n.Vertices). The buffer never shrinks.
func ensureTransformedVerts(n *Node) []ebiten.Vertex {
	need := len(n.Vertices)
	if cap(n.transformedVerts) < need {
		n.transformedVerts = make([]ebiten.Vertex, need)
	}
	n.transformedVerts = n.transformedVerts[:need]
	return n.transformedVerts
}

// --- Polygon ---

// NewPolygon creates an untextured convex polygon mesh. Color comes from the
// node's Color field.
func NewPolygon(name string, points []Vec2) *Node {
	verts, inds := buildPolygonFan(points)
	return NewMesh(name, verts, inds)
}

// SetPolygonPoints replaces the polygon's vertices, reusing backing arrays.
func SetPolygonPoints(n *Node, points []Vec2) {
	verts, inds := buildPolygonFan(points)
	if cap(n.Vertices) >= len(verts) {
		n.Vertices = n.Vertices[:len(verts)]
		copy(n.Vertices, verts)
	} else {
		n.Vertices = verts
	}
	if cap(n.Indices) >= len(inds) {
		n.Indices = n.Indices[:len(inds)]
		copy(n.Indices, inds)
	} else {
		n.Indices = inds
	}
}

// buildPolygonFan generates vertices and indices for a fan-triangulated
// polygon: N vertices, 3*(N-2) indices. Vertices sample the center of the
// white pixel.
func buildPolygonFan(points []Vec2) ([]ebiten.Vertex, []uint16) {
	n := len(points)
	if n < 3 {
		return nil, nil
	}
	verts := make([]ebiten.Vertex, n)
	inds := make([]uint16, (n-2)*3)
	for i, p := range points {
		verts[i] = ebiten.Vertex{
			DstX: float32(p.X), DstY: float32(p.Y),
			SrcX: 0.5, SrcY: 0.5,
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
		}
	}
	for i := 0; i < n-2; i++ {
		inds[i*3+0] = 0
		inds[i*3+1] = uint16(i + 1)
		inds[i*3+2] = uint16(i + 2)
	}
	return verts, inds
}

// --- Lines and arrow heads ---

// perpendicular returns the unit left-perpendicular of the segment from a to b.
func perpendicular(a, b Vec2) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ln := math.Sqrt(dx*dx + dy*dy)
	if ln < 1e-10 {
		return 0, -1
	}
	return -dy / ln, dx / ln
}

// linePoints returns the quad covering a segment of the given width.
func linePoints(from, to Vec2, width float64) []Vec2 {
	px, py := perpendicular(from, to)
	hw := width / 2
	return []Vec2{
		{from.X + px*hw, from.Y + py*hw},
		{to.X + px*hw, to.Y + py*hw},
		{to.X - px*hw, to.Y - py*hw},
		{from.X - px*hw, from.Y - py*hw},
	}
}

// NewLine creates a quad mesh drawing a segment from -> to.
func NewLine(name string, from, to Vec2, width float64) *Node {
	return NewPolygon(name, linePoints(from, to, width))
}

// SetLinePoints moves the endpoints of a line created with NewLine.
func SetLinePoints(n *Node, from, to Vec2, width float64) {
	SetPolygonPoints(n, linePoints(from, to, width))
}

// arrowPoints returns a triangle of the given size pointing along +X with
// its tip at the origin.
func arrowPoints(size float64) []Vec2 {
	return []Vec2{
		{0, 0},
		{-size, -size / 2},
		{-size, size / 2},
	}
}

// NewArrowHead creates a triangle whose tip sits at the node origin and
// points along +X. Rotate the node to aim it.
func NewArrowHead(name string, size float64) *Node {
	return NewPolygon(name, arrowPoints(size))
}

// segmentAngle returns the rotation, in radians, of the direction from a to b.
func segmentAngle(a, b Vec2) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}
