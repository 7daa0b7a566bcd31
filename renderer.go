package graphview

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Renderer paints a scene tree. Implementations decide when painting
// actually happens; Render only hands over the root for the current frame.
type Renderer interface {
	Render(root *Node)
	Resize(w, h int)
	Width() int
	Height() int
	// View returns the backend object an embedder displays (an ebiten.Game
	// for EbitenRenderer).
	View() any
	// PointerPosition returns the pointer in relativeTo's local coordinates.
	PointerPosition(relativeTo *Node) Vec2
}

// PointerButtons is implemented by renderers that report the primary
// pointer button. Without it the view never starts clicks or drags.
type PointerButtons interface {
	PointerPressed() bool
}

// SchedulerProvider is implemented by renderers that drive their own frame
// scheduler, so the view's loop ticks in step with the backend.
type SchedulerProvider interface {
	Scheduler() FrameScheduler
}

// PointerInjector is implemented by renderers that accept synthetic pointer
// input. The view calls StepPointer once at the start of every frame.
type PointerInjector interface {
	InjectPress(x, y float64)
	InjectMove(x, y float64)
	InjectRelease(x, y float64)
	InjectClick(x, y float64)
	InjectDrag(fromX, fromY, toX, toY float64, frames int)
	PendingInjections() int
	StepPointer() bool
}

// Screenshotter is implemented by renderers that can capture a frame.
type Screenshotter interface {
	Screenshot(label string)
}

// --- Synthetic pointer queue ---

// syntheticPointerEvent is a single injected pointer event in screen
// coordinates.
type syntheticPointerEvent struct {
	x, y    float64
	pressed bool
}

// pointerQueue holds injected pointer events and the last one consumed.
// Embedded by renderers to implement PointerInjector.
type pointerQueue struct {
	queue   []syntheticPointerEvent
	current syntheticPointerEvent
	// live is true on frames where the pointer state came from the queue.
	live bool
}

// InjectPress queues a press at screen coordinates.
func (q *pointerQueue) InjectPress(x, y float64) {
	q.queue = append(q.queue, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectMove queues a move with the button held.
func (q *pointerQueue) InjectMove(x, y float64) {
	q.queue = append(q.queue, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectRelease queues a release at screen coordinates.
func (q *pointerQueue) InjectRelease(x, y float64) {
	q.queue = append(q.queue, syntheticPointerEvent{x: x, y: y})
}

// InjectClick queues a press followed by a release. Consumes two frames.
func (q *pointerQueue) InjectClick(x, y float64) {
	q.InjectPress(x, y)
	q.InjectRelease(x, y)
}

// InjectDrag queues a press at from, frames-2 interpolated moves and a
// release at to. The sequence consumes frames frames (minimum 2).
func (q *pointerQueue) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	q.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		q.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	q.InjectRelease(toX, toY)
}

// PendingInjections returns the number of queued events.
func (q *pointerQueue) PendingInjections() int {
	return len(q.queue)
}

// StepPointer consumes one queued event. Returns false when the queue was
// empty.
func (q *pointerQueue) StepPointer() bool {
	if len(q.queue) == 0 {
		q.live = false
		return false
	}
	q.current = q.queue[0]
	copy(q.queue, q.queue[1:])
	q.queue = q.queue[:len(q.queue)-1]
	q.live = true
	return true
}

// --- Tree drawing ---

// drawer paints node trees immediately onto an image. Nodes with Filters are
// painted offscreen at the destination size and composited through the
// filter chain.
type drawer struct {
	pool renderTexturePool

	// counters for the last draw
	drawCalls int
}

func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// draw refreshes world transforms under root and paints it onto dst.
func (d *drawer) draw(dst *ebiten.Image, root *Node) {
	d.drawCalls = 0
	if root == nil {
		return
	}
	root.UpdateTransforms()
	d.drawNode(dst, root, identityTransform, true)
}

// drawNode paints n and its subtree. offset is prepended to every world
// transform (non-identity while painting into a padded offscreen).
func (d *drawer) drawNode(dst *ebiten.Image, n *Node, offset [6]float64, allowFilters bool) {
	if !n.Visible || n.worldAlpha <= 0 {
		return
	}
	if allowFilters && len(n.Filters) > 0 {
		d.drawFiltered(dst, n, offset)
		return
	}
	world := n.worldTransform
	if offset != identityTransform {
		world = multiplyAffine(offset, world)
	}

	switch n.Type {
	case NodeTypeSprite:
		if n.Image != nil {
			var op ebiten.DrawImageOptions
			op.GeoM = geoM(world)
			a := n.Color.A * n.worldAlpha
			op.ColorScale.Scale(float32(n.Color.R*a), float32(n.Color.G*a), float32(n.Color.B*a), float32(a))
			dst.DrawImage(n.Image, &op)
			d.drawCalls++
		}
	case NodeTypeMesh:
		if len(n.Vertices) > 0 && len(n.Indices) > 0 {
			tint := Color{n.Color.R, n.Color.G, n.Color.B, n.Color.A * n.worldAlpha}
			verts := ensureTransformedVerts(n)
			transformVertices(n.Vertices, verts, world, tint)
			dst.DrawTriangles(verts, n.Indices, WhitePixel, &ebiten.DrawTrianglesOptions{AntiAlias: true})
			d.drawCalls++
		}
	case NodeTypeText:
		if n.Label != nil {
			if img := n.Label.rendered(); img != nil {
				var op ebiten.DrawImageOptions
				op.GeoM = geoM(world)
				op.ColorScale.ScaleAlpha(float32(n.worldAlpha))
				dst.DrawImage(img, &op)
				d.drawCalls++
			}
		}
	}

	for _, c := range n.children {
		d.drawNode(dst, c, offset, true)
	}
}

// drawFiltered paints n's subtree into an offscreen covering dst (plus the
// chain's padding), runs the filters and composites the result.
func (d *drawer) drawFiltered(dst *ebiten.Image, n *Node, offset [6]float64) {
	b := dst.Bounds()
	pad := filterChainPadding(n.Filters)
	w, h := b.Dx()+2*pad, b.Dy()+2*pad
	if w <= 0 || h <= 0 {
		return
	}
	rt := d.pool.Acquire(w, h)
	inner := multiplyAffine([6]float64{1, 0, 0, 1, float64(pad), float64(pad)}, offset)
	d.drawNode(rt, n, inner, false)

	result := applyFilters(n.Filters, rt, &d.pool)

	var op ebiten.DrawImageOptions
	op.GeoM.Translate(float64(b.Min.X-pad), float64(b.Min.Y-pad))
	dst.DrawImage(result, &op)
	d.drawCalls++

	if result != rt {
		d.pool.Release(result)
	}
	d.pool.Release(rt)
}
