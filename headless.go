package graphview

// HeadlessRenderer is a Renderer that paints nothing. It counts frames,
// keeps the last submitted root and reports a pointer set by the caller or
// by injected events. Tests and the inspect command use it.
type HeadlessRenderer struct {
	pointerQueue

	w, h        int
	renders     int
	root        *Node
	screenshots []string
	sched       *TickScheduler
}

// NewHeadlessRenderer creates a renderer with a w by h viewport.
func NewHeadlessRenderer(w, h int) *HeadlessRenderer {
	return &HeadlessRenderer{w: w, h: h, sched: NewTickScheduler()}
}

// Render records root.
func (r *HeadlessRenderer) Render(root *Node) {
	r.renders++
	r.root = root
	if root != nil {
		root.UpdateTransforms()
	}
}

// Resize changes the viewport size.
func (r *HeadlessRenderer) Resize(w, h int) {
	r.w, r.h = w, h
}

// Width returns the viewport width.
func (r *HeadlessRenderer) Width() int { return r.w }

// Height returns the viewport height.
func (r *HeadlessRenderer) Height() int { return r.h }

// View returns the renderer itself.
func (r *HeadlessRenderer) View() any { return r }

// Scheduler returns the scheduler the view's loop runs on. Call Tick to
// advance frames.
func (r *HeadlessRenderer) Scheduler() FrameScheduler { return r.sched }

// Tick runs one frame of every loop scheduled on this renderer.
func (r *HeadlessRenderer) Tick() int { return r.sched.Tick() }

// Renders returns the number of Render calls.
func (r *HeadlessRenderer) Renders() int { return r.renders }

// LastRoot returns the most recently rendered root.
func (r *HeadlessRenderer) LastRoot() *Node { return r.root }

// SetPointer places the pointer at screen coordinates (x, y).
func (r *HeadlessRenderer) SetPointer(x, y float64) {
	r.current.x, r.current.y = x, y
}

// SetPressed sets the primary button state.
func (r *HeadlessRenderer) SetPressed(pressed bool) {
	r.current.pressed = pressed
}

// PointerPosition converts the screen pointer into relativeTo's local space.
func (r *HeadlessRenderer) PointerPosition(relativeTo *Node) Vec2 {
	if relativeTo == nil {
		return Vec2{r.current.x, r.current.y}
	}
	x, y := relativeTo.WorldToLocal(r.current.x, r.current.y)
	return Vec2{x, y}
}

// PointerPressed reports the primary button state.
func (r *HeadlessRenderer) PointerPressed() bool {
	return r.current.pressed
}

// Screenshot records label; nothing is captured.
func (r *HeadlessRenderer) Screenshot(label string) {
	r.screenshots = append(r.screenshots, label)
}

// Screenshots returns the labels passed to Screenshot.
func (r *HeadlessRenderer) Screenshots() []string {
	return append([]string(nil), r.screenshots...)
}
