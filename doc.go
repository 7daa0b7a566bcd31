// Package graphview renders a graph as a live 2D scene for [Ebitengine] and
// keeps that scene in sync with the graph, the selection and the pointer.
//
// A [GraphView] mirrors a [Graph] (nodes, edges, incident edges) placed by a
// [Layout]. Every node and edge gets a visual handle, a [Node] built by a
// [NodeStyleFactory] or [EdgeStyleFactory]. Handles live in four layers under
// a shared stage: edges, nodes, selected edges and selected nodes. Selecting
// an entity moves its handle to the selected layer of its kind.
//
// # Quick start
//
//	g := graphview.NewMemGraph()
//	_ = g.AddNode("a")
//	_ = g.AddNode("b")
//	_ = g.AddEdge("a-b", "a", "b")
//
//	layout := graphview.NewMapLayout()
//	layout.Set("a", graphview.Vec2{X: 200, Y: 240})
//	layout.Set("b", graphview.Vec2{X: 440, Y: 240})
//
//	cfg := graphview.DefaultConfig()
//	cfg.Layout = layout
//	view, err := graphview.New(g, graphview.NewEbitenRenderer(640, 480), cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	log.Fatal(graphview.Run(view, graphview.RunConfig{Title: "graph"}))
//
// # Mutations
//
// [GraphView.AddNode], [GraphView.AddEdge], [GraphView.RemoveNode],
// [GraphView.RemoveEdge], [GraphView.MoveNode] and [GraphView.SetLayout]
// are synchronous. A failed mutation leaves the view unchanged; removing an
// unknown id is a no-op. Edges are rebuilt, not moved, when an endpoint
// moves.
//
// # Fisheye
//
// [GraphView.ConfigureFilters] enables a Cartesian and a polar fisheye Kage
// shader on the stage, focused on the pointer, and optionally scales node
// handles, edge decals and arrow heads by [Falloff] of their distance to
// the pointer.
//
// # Render loop
//
// The loop runs on a [FrameScheduler]. [EbitenRenderer] ticks its scheduler
// from ebiten's Update; [HeadlessRenderer] is ticked by hand, which makes the
// loop testable without a window. Animations use [gween].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package graphview
