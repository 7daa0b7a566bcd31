package graphview

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tanema/gween/ease"
)

// State is the lifecycle state of a GraphView.
type State uint8

const (
	StateInitialized State = iota // seeded, loop never started
	StateRunning                  // render loop active
	StatePaused                   // render loop stopped after running
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// GraphView keeps a scene tree in sync with a graph. It owns the registry,
// the selection layers, the fisheye distortion and the render loop.
// GraphView is not safe for concurrent use; drive it from the thread that
// runs its scheduler.
type GraphView struct {
	graph    Graph
	renderer Renderer
	cfg      Config
	logger   *log.Logger
	metrics  *FrameMetrics
	events   EventSink

	root  *Node
	stage *Node

	layers     [2]layerSet
	registry   *Registry
	selection  *Selection
	distortion *Distortion

	sched   FrameScheduler
	loop    *RenderLoop
	started bool

	tweens tweenSet
	input  interaction
	script *Script

	nodeStyles map[string]NodeStyle
	edgeStyles map[string]EdgeStyle
	edgeEnds   map[string][2]string

	scratch [2][]*Node
	frames  uint64
	debug   bool
}

// New builds a view of g painted by r. Every node of g is added (at its
// layout position, or a random one), then every edge. The config is
// validated first; any error leaves nothing behind.
func New(g Graph, r Renderer, cfg Config) (*GraphView, error) {
	if g == nil {
		return nil, invalidConfig("nil graph")
	}
	if r == nil {
		return nil, invalidConfig("nil renderer")
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	gv := &GraphView{
		graph:      g,
		renderer:   r,
		cfg:        cfg,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
		events:     cfg.Events,
		registry:   NewRegistry(),
		distortion: NewDistortion(cfg.Filters),
		nodeStyles: make(map[string]NodeStyle),
		edgeStyles: make(map[string]EdgeStyle),
		edgeEnds:   make(map[string][2]string),
	}
	gv.buildScene()

	switch {
	case cfg.Scheduler != nil:
		gv.sched = cfg.Scheduler
	default:
		if sp, ok := r.(SchedulerProvider); ok {
			gv.sched = sp.Scheduler()
		} else {
			gv.sched = NewTickScheduler()
		}
	}
	gv.loop = NewRenderLoop(gv.sched, gv.frame)

	for n := range g.Nodes() {
		id := n.ID()
		style := gv.nodeStyleFor(id)
		var err error
		if cfg.Layout != nil {
			if p, ok := cfg.Layout.Position(id); ok {
				err = gv.AddNodeAt(id, style, p)
			} else {
				err = gv.AddNode(id, style)
			}
		} else {
			err = gv.AddNode(id, style)
		}
		if err != nil {
			return nil, fmt.Errorf("graphview: seed: %w", err)
		}
	}
	for e := range g.Edges() {
		if err := gv.AddEdge(e.ID(), gv.edgeStyleFor(e.ID())); err != nil {
			return nil, fmt.Errorf("graphview: seed: %w", err)
		}
	}
	gv.logger.Debug("view initialized",
		"nodes", gv.registry.Len(KindNode),
		"edges", gv.registry.Len(KindEdge),
		"width", r.Width(), "height", r.Height())
	return gv, nil
}

// buildScene creates root → stage → {edges, nodes, selectedEdges,
// selectedNodes}. Selected layers draw above normal ones.
func (gv *GraphView) buildScene() {
	gv.root = NewContainer("root")
	gv.stage = NewContainer("stage")
	gv.root.AddChild(gv.stage)

	edges := newLayer("edges", KindEdge, false)
	nodes := newLayer("nodes", KindNode, false)
	selectedEdges := newLayer("selectedEdges", KindEdge, true)
	selectedNodes := newLayer("selectedNodes", KindNode, true)
	for _, l := range []*Layer{edges, nodes, selectedEdges, selectedNodes} {
		gv.stage.AddChild(l.Node())
	}
	gv.layers[KindNode] = layerSet{normal: nodes, selected: selectedNodes}
	gv.layers[KindEdge] = layerSet{normal: edges, selected: selectedEdges}
	gv.selection = newSelection(gv.registry, gv.layers[KindNode], gv.layers[KindEdge])
	gv.stage.Filters = gv.distortion.Chain()
}

func (gv *GraphView) nodeStyleFor(id string) NodeStyle {
	if s, ok := gv.cfg.NodeStyles[id]; ok {
		return s
	}
	return gv.cfg.Graph.DefaultNode
}

func (gv *GraphView) edgeStyleFor(id string) EdgeStyle {
	if s, ok := gv.cfg.EdgeStyles[id]; ok {
		return s
	}
	return gv.cfg.Graph.DefaultEdge
}

// --- Accessors ---

// Root returns the scene root handed to the renderer.
func (gv *GraphView) Root() *Node { return gv.root }

// Stage returns the node holding every layer. Pan and zoom move the stage.
func (gv *GraphView) Stage() *Node { return gv.stage }

// Registry returns the id → handle registry.
func (gv *GraphView) Registry() *Registry { return gv.registry }

// Selection returns the selection state.
func (gv *GraphView) Selection() *Selection { return gv.selection }

// Distortion returns the fisheye pipeline.
func (gv *GraphView) Distortion() *Distortion { return gv.distortion }

// Renderer returns the renderer the view paints with.
func (gv *GraphView) Renderer() Renderer { return gv.renderer }

// Scheduler returns the scheduler the render loop runs on.
func (gv *GraphView) Scheduler() FrameScheduler { return gv.sched }

// Graph returns the mirrored graph.
func (gv *GraphView) Graph() Graph { return gv.graph }

// Logger returns the view's logger.
func (gv *GraphView) Logger() *log.Logger { return gv.logger }

// Background returns the configured background color.
func (gv *GraphView) Background() Color { return gv.cfg.Graph.Background }

// Layer returns the normal or selected layer of kind.
func (gv *GraphView) Layer(kind EntityKind, selected bool) *Layer {
	return gv.layers[kind].pick(selected)
}

// Frames returns the number of frames rendered so far.
func (gv *GraphView) Frames() uint64 { return gv.frames }

// NodeHandle returns the handle of node id.
func (gv *GraphView) NodeHandle(id string) (*Node, error) {
	return gv.registry.Get(KindNode, id)
}

// EdgeHandle returns the handle of edge id.
func (gv *GraphView) EdgeHandle(id string) (*Node, error) {
	return gv.registry.Get(KindEdge, id)
}

// NodePosition returns the stage position of node id.
func (gv *GraphView) NodePosition(id string) (Vec2, error) {
	h, err := gv.registry.Get(KindNode, id)
	if err != nil {
		return Vec2{}, err
	}
	return h.Position(), nil
}

// EdgeGeometry returns the endpoint positions edge id was last built from.
func (gv *GraphView) EdgeGeometry(id string) (EdgeGeometry, error) {
	h, err := gv.registry.Get(KindEdge, id)
	if err != nil {
		return EdgeGeometry{}, err
	}
	if h.Geometry == nil {
		return EdgeGeometry{}, nil
	}
	return *h.Geometry, nil
}

// NodeStyle returns the style node id was added with.
func (gv *GraphView) NodeStyle(id string) (NodeStyle, bool) {
	s, ok := gv.nodeStyles[id]
	return s, ok
}

// EdgeStyle returns the style edge id was added with.
func (gv *GraphView) EdgeStyle(id string) (EdgeStyle, bool) {
	s, ok := gv.edgeStyles[id]
	return s, ok
}

// --- Viewport ---

// Resize resizes the renderer's viewport.
func (gv *GraphView) Resize(w, h int) { gv.renderer.Resize(w, h) }

// Width returns the viewport width.
func (gv *GraphView) Width() int { return gv.renderer.Width() }

// Height returns the viewport height.
func (gv *GraphView) Height() int { return gv.renderer.Height() }

// View returns the renderer's display object.
func (gv *GraphView) View() any { return gv.renderer.View() }

// --- Nodes ---

// AddNode adds node id at a random position inside the viewport.
func (gv *GraphView) AddNode(id string, style NodeStyle) error {
	p := Vec2{
		X: gv.cfg.Rand.Float64() * float64(gv.Width()),
		Y: gv.cfg.Rand.Float64() * float64(gv.Height()),
	}
	return gv.AddNodeAt(id, style, p)
}

// AddNodeAt builds the handle of node id with the node factory, places it
// at p and attaches it to the layer matching the current selection.
func (gv *GraphView) AddNodeAt(id string, style NodeStyle, p Vec2) error {
	if gv.registry.Has(KindNode, id) {
		return duplicateEntity("add", KindNode, id)
	}
	h, err := gv.cfg.NodeFactory.NewNodeVisual(style)
	if err != nil {
		return &EntityError{Op: "add", Kind: KindNode, ID: id, Err: err}
	}
	h.Name = id
	h.EntityID = id
	h.Kind = KindNode
	h.SetPosition(p.X, p.Y)
	for _, b := range gv.cfg.Behaviors {
		b.Attach(h, style)
	}
	if err := gv.registry.Put(KindNode, id, h); err != nil {
		return err
	}
	gv.selection.LayerFor(KindNode, id).Attach(h)
	gv.nodeStyles[id] = style
	return nil
}

// RemoveNode detaches and forgets node id. Unknown ids are ignored.
// Edges touching the node keep their visuals; remove them first.
func (gv *GraphView) RemoveNode(id string) {
	h, err := gv.registry.Get(KindNode, id)
	if err != nil {
		return
	}
	gv.layers[KindNode].detach(h)
	gv.registry.Remove(KindNode, id)
	gv.selection.Forget(KindNode, id)
	delete(gv.nodeStyles, id)
	gv.tweens.cancel(h)
	if gv.input.hit == h {
		gv.input.reset()
	}
	if gv.input.hover == h {
		gv.input.hover = nil
	}
	h.Dispose()
}

// MoveNode places node id at p and rebuilds every registered edge the graph
// reports as incident to it.
func (gv *GraphView) MoveNode(id string, p Vec2) error {
	h, err := gv.registry.Get(KindNode, id)
	if err != nil {
		return &EntityError{Op: "move", Kind: KindNode, ID: id, Err: ErrUnknownEntity}
	}
	h.SetPosition(p.X, p.Y)
	var incident []string
	for eid := range gv.graph.IncidentEdges(id) {
		if gv.registry.Has(KindEdge, eid) {
			incident = append(incident, eid)
		}
	}
	for _, eid := range incident {
		gv.rebuildEdge(eid)
	}
	return nil
}

// --- Edges ---

// AddEdge builds the handle of edge id between its endpoints' current
// positions. The edge must exist in the graph and both endpoint nodes must
// have been added, otherwise ErrUnknownEntity is returned.
func (gv *GraphView) AddEdge(id string, style EdgeStyle) error {
	if gv.registry.Has(KindEdge, id) {
		return duplicateEntity("add", KindEdge, id)
	}
	e, ok := gv.graph.Edge(id)
	if !ok {
		return unknownEntity("add", KindEdge, id)
	}
	ends := [2]string{e.SourceID(), e.TargetID()}
	h, err := gv.buildEdge(id, style, ends)
	if err != nil {
		return err
	}
	if err := gv.registry.Put(KindEdge, id, h); err != nil {
		return err
	}
	gv.selection.LayerFor(KindEdge, id).Attach(h)
	gv.edgeStyles[id] = style
	gv.edgeEnds[id] = ends
	return nil
}

func (gv *GraphView) buildEdge(id string, style EdgeStyle, ends [2]string) (*Node, error) {
	var pos [2]Vec2
	for i, nid := range ends {
		n, err := gv.registry.Get(KindNode, nid)
		if err != nil {
			return nil, &EntityError{Op: "add edge " + id, Kind: KindNode, ID: nid, Err: ErrUnknownEntity}
		}
		pos[i] = n.Position()
	}
	h, err := gv.cfg.EdgeFactory.NewEdgeVisual(style, pos[0], pos[1])
	if err != nil {
		return nil, &EntityError{Op: "add", Kind: KindEdge, ID: id, Err: err}
	}
	h.Name = id
	h.EntityID = id
	h.Kind = KindEdge
	if h.Geometry == nil {
		h.Geometry = &EdgeGeometry{Source: pos[0], Target: pos[1]}
	}
	return h, nil
}

// rebuildEdge replaces the visual of a registered edge with one built from
// its endpoints' current positions. Layer, draw order and visibility carry
// over. An edge whose endpoint node is gone loses its visual.
func (gv *GraphView) rebuildEdge(id string) {
	old, err := gv.registry.Get(KindEdge, id)
	if err != nil {
		return
	}
	h, err := gv.buildEdge(id, gv.edgeStyles[id], gv.edgeEnds[id])
	if err != nil {
		gv.logger.Warn("dropping edge visual", "edge", id, "err", err)
		gv.RemoveEdge(id)
		return
	}
	h.Visible = old.Visible
	if err := gv.registry.Replace(KindEdge, id, h); err != nil {
		return
	}
	layer := gv.selection.LayerFor(KindEdge, id)
	if layer.Contains(old) {
		layer.Replace(old, h)
	} else {
		gv.layers[KindEdge].detach(old)
		layer.Attach(h)
	}
	gv.tweens.cancel(old)
	old.Dispose()
}

// RemoveEdge detaches and forgets edge id. Unknown ids are ignored.
func (gv *GraphView) RemoveEdge(id string) {
	h, err := gv.registry.Get(KindEdge, id)
	if err != nil {
		return
	}
	gv.layers[KindEdge].detach(h)
	gv.registry.Remove(KindEdge, id)
	gv.selection.Forget(KindEdge, id)
	delete(gv.edgeStyles, id)
	delete(gv.edgeEnds, id)
	gv.tweens.cancel(h)
	h.Dispose()
}

// --- Selection ---

// SelectNodes makes ids the node selection.
func (gv *GraphView) SelectNodes(ids ...string) {
	gv.selectKind(KindNode, NewIDSet(ids...))
}

// SelectEdges makes ids the edge selection.
func (gv *GraphView) SelectEdges(ids ...string) {
	gv.selectKind(KindEdge, NewIDSet(ids...))
}

// SelectedNodes returns the selected node ids, sorted.
func (gv *GraphView) SelectedNodes() []string {
	return gv.selection.Selected(KindNode).Sorted()
}

// SelectedEdges returns the selected edge ids, sorted.
func (gv *GraphView) SelectedEdges() []string {
	return gv.selection.Selected(KindEdge).Sorted()
}

func (gv *GraphView) selectKind(kind EntityKind, ids IDSet) {
	gv.selection.Select(kind, ids)
	gv.emit(ViewEvent{Type: EventSelectionChanged, Kind: kind, Selected: ids.Sorted()})
}

// --- Visibility and ordering ---

// FilterGraph shows exactly the listed nodes and edges. Handles stay
// registered and keep their layer.
func (gv *GraphView) FilterGraph(nodes, edges []string) {
	keep := [2]IDSet{NewIDSet(nodes...), NewIDSet(edges...)}
	for _, kind := range [2]EntityKind{KindNode, KindEdge} {
		for id, h := range gv.registry.All(kind) {
			h.Visible = keep[kind].Has(id)
		}
	}
}

// ResetFilters makes every handle visible again.
func (gv *GraphView) ResetFilters() {
	for _, kind := range [2]EntityKind{KindNode, KindEdge} {
		for _, h := range gv.registry.All(kind) {
			h.Visible = true
		}
	}
}

// MoveToTop draws the handle of (kind, id) above the rest of its layer.
func (gv *GraphView) MoveToTop(kind EntityKind, id string) error {
	h, err := gv.registry.Get(kind, id)
	if err != nil {
		return err
	}
	h.MoveToTop()
	return nil
}

// --- Layout ---

// SetLayout stops the loop, moves every registered node that layout places,
// rebuilds every edge and restarts the loop if it was running. Nodes the
// layout omits keep their position. A paused or never-started view stays
// stopped afterwards; call StartRenderLoop to resume it.
func (gv *GraphView) SetLayout(layout Layout) {
	wasRunning := gv.loop.Running()
	gv.loop.Stop()

	moved := 0
	for id, h := range gv.registry.All(KindNode) {
		if p, ok := layout.Position(id); ok {
			h.SetPosition(p.X, p.Y)
			moved++
		}
	}
	for _, id := range gv.registry.IDs(KindEdge) {
		gv.rebuildEdge(id)
	}
	gv.cfg.Layout = layout
	gv.logger.Debug("layout applied", "moved", moved, "edges", gv.registry.Len(KindEdge))

	if wasRunning {
		gv.loop.Start()
	}
}

// --- Bounds and camera ---

// BoundingRectangle returns the stage-space bounds of every visible node
// handle, or EmptyRect when none is visible.
func (gv *GraphView) BoundingRectangle() Rect {
	r := EmptyRect
	for _, h := range gv.registry.All(KindNode) {
		if !h.Visible {
			continue
		}
		w := h.Size.X * math.Abs(h.ScaleX)
		ht := h.Size.Y * math.Abs(h.ScaleY)
		r = r.Union(Rect{X: h.X - w/2, Y: h.Y - ht/2, Width: w, Height: ht})
	}
	return r
}

// centerTarget returns the stage position that centers r at unit scale.
func (gv *GraphView) centerTarget(r Rect) Vec2 {
	c := r.Center()
	return Vec2{float64(gv.Width())/2 - c.X, float64(gv.Height())/2 - c.Y}
}

// Center resets the zoom and pans so the visible nodes are centered in the
// viewport. Does nothing when no node is visible.
func (gv *GraphView) Center() {
	r := gv.BoundingRectangle()
	if r.IsEmpty() {
		return
	}
	gv.tweens.cancel(gv.stage)
	p := gv.centerTarget(r)
	gv.stage.SetScale(1, 1)
	gv.stage.SetPosition(p.X, p.Y)
}

// CenterAnimated is Center spread over duration seconds of frames. fn
// defaults to ease.OutCubic.
func (gv *GraphView) CenterAnimated(duration float32, fn ease.TweenFunc) {
	r := gv.BoundingRectangle()
	if r.IsEmpty() {
		return
	}
	if fn == nil {
		fn = ease.OutCubic
	}
	gv.tweens.cancel(gv.stage)
	gv.tweens.add(TweenTransform(gv.stage, gv.centerTarget(r), 1, duration, fn))
}

// Animating reports whether any tween is in progress.
func (gv *GraphView) Animating() bool { return gv.tweens.len() > 0 }

// SetZoom scales the stage to z around the viewport center.
func (gv *GraphView) SetZoom(z float64) error {
	if math.IsNaN(z) || math.IsInf(z, 0) || z <= 0 {
		return invalidConfig("zoom must be > 0, got %g", z)
	}
	gv.tweens.cancel(gv.stage)
	c := Vec2{float64(gv.Width()) / 2, float64(gv.Height()) / 2}
	s := gv.stage
	sx, sy := s.ScaleX, s.ScaleY
	if sx == 0 || sy == 0 {
		sx, sy = 1, 1
	}
	local := Vec2{(c.X - s.X) / sx, (c.Y - s.Y) / sy}
	s.SetScale(z, z)
	s.SetPosition(c.X-local.X*z, c.Y-local.Y*z)
	return nil
}

// Zoom returns the stage scale.
func (gv *GraphView) Zoom() float64 { return gv.stage.ScaleX }

// Pan moves the stage by (dx, dy) screen pixels.
func (gv *GraphView) Pan(dx, dy float64) {
	gv.stage.SetPosition(gv.stage.X+dx, gv.stage.Y+dy)
}

// --- Filters ---

// ConfigureFilters validates cfg and applies it to the distortion pipeline.
// Zero strengths take their filter out of the chain. Handles whose scaling
// is switched off go back to unit scale.
func (gv *GraphView) ConfigureFilters(cfg FilterConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	gv.distortion.Configure(cfg)
	gv.stage.Filters = gv.distortion.Chain()
	if !cfg.ScaleNodes {
		gv.resetScale(KindNode)
	}
	gv.resetEdgeParts(!cfg.ScaleEdgeDecals, !cfg.ScaleEdgeArrows)
	gv.cfg.Filters = cfg
	return nil
}

// resetScale restores unit scale on handles of kind.
func (gv *GraphView) resetScale(kind EntityKind) {
	for _, h := range gv.registry.All(kind) {
		h.SetScale(1, 1)
	}
}

// resetEdgeParts restores unit scale on every edge's decal and/or arrow.
func (gv *GraphView) resetEdgeParts(decals, arrows bool) {
	if !decals && !arrows {
		return
	}
	for _, h := range gv.registry.All(KindEdge) {
		if decals && h.Decal != nil {
			h.Decal.SetScale(1, 1)
		}
		if arrows && h.Arrow != nil {
			h.Arrow.SetScale(1, 1)
		}
	}
}

// --- Render loop ---

// StartRenderLoop starts rendering. Calling it while running does nothing.
func (gv *GraphView) StartRenderLoop() {
	gv.started = true
	gv.loop.Start()
}

// StopRenderLoop stops rendering. A frame already requested never runs.
func (gv *GraphView) StopRenderLoop() {
	gv.loop.Stop()
}

// State returns the lifecycle state.
func (gv *GraphView) State() State {
	switch {
	case gv.loop.Running():
		return StateRunning
	case gv.started:
		return StatePaused
	default:
		return StateInitialized
	}
}

// RenderFrame runs one frame immediately, outside the loop.
func (gv *GraphView) RenderFrame() { gv.frame() }

func (gv *GraphView) visible(kind EntityKind) []*Node {
	out := gv.scratch[kind][:0]
	for _, h := range gv.registry.All(kind) {
		if h.Visible {
			out = append(out, h)
		}
	}
	gv.scratch[kind] = out
	return out
}

// frame is the render loop body: tweens, pointer, distortion, render.
func (gv *GraphView) frame() {
	var stats frameStats
	t0 := time.Now()

	if gv.script != nil {
		gv.script.step(gv)
	}
	gv.tweens.update(float32(gv.cfg.Graph.FrameStep))
	gv.root.UpdateTransforms()
	t1 := time.Now()
	stats.tweenTime = t1.Sub(t0)

	if inj, ok := gv.renderer.(PointerInjector); ok {
		inj.StepPointer()
	}
	screen := gv.renderer.PointerPosition(nil)
	pointer := gv.renderer.PointerPosition(gv.stage)
	pressed := false
	if pb, ok := gv.renderer.(PointerButtons); ok {
		pressed = pb.PointerPressed()
	}
	gv.processPointer(screen, pointer, pressed)
	gv.root.UpdateTransforms()
	t2 := time.Now()
	stats.pointerTime = t2.Sub(t1)

	nodes := gv.visible(KindNode)
	edges := gv.visible(KindEdge)
	gv.distortion.Update(pointer, float64(gv.Width()), float64(gv.Height()),
		Vec2{gv.stage.ScaleX, gv.stage.ScaleY}, nodes, edges)
	t3 := time.Now()
	stats.distortionTime = t3.Sub(t2)

	gv.renderer.Render(gv.root)
	t4 := time.Now()
	stats.renderTime = t4.Sub(t3)

	gv.frames++
	stats.visibleNodes = len(nodes)
	stats.visibleEdges = len(edges)
	stats.activeFilters = len(gv.stage.Filters)
	gv.metrics.ObserveFrame(t4.Sub(t0), len(nodes), len(edges))
	gv.debugLog(stats)
}
