package graphview

import (
	"math"
	"slices"
)

// interaction is the single-pointer state machine behind clicks and drags.
type interaction struct {
	down     bool
	dragging bool
	start    Vec2 // stage pointer at press
	last     Vec2
	hit      *Node
	hitStart Vec2 // hit node position at press
	hover    *Node
}

func (in *interaction) reset() {
	in.down = false
	in.dragging = false
	in.hit = nil
}

// hitTest returns the topmost visible interactable node handle under the
// screen point, searching the selected layer before the normal one. Handles
// with a singular world transform are skipped.
func (gv *GraphView) hitTest(screen Vec2) *Node {
	ls := gv.layers[KindNode]
	for _, layer := range [2]*Layer{ls.selected, ls.normal} {
		children := layer.Node().Children()
		for i := len(children) - 1; i >= 0; i-- {
			h := children[i]
			if !h.Visible || !h.Interactable || h.HitShape == nil {
				continue
			}
			// A handle shrunk to nothing covers no screen area.
			if singularAffine(h.worldTransform) {
				continue
			}
			lx, ly := h.WorldToLocal(screen.X, screen.Y)
			if h.HitShape.Contains(lx, ly) {
				return h
			}
		}
	}
	return nil
}

// HitTest returns the id of the topmost interactable node at screen
// coordinates (x, y), or "" when there is none. World transforms are as of
// the last frame.
func (gv *GraphView) HitTest(x, y float64) string {
	if h := gv.hitTest(Vec2{x, y}); h != nil {
		return h.EntityID
	}
	return ""
}

// processPointer advances the interaction state machine by one frame.
func (gv *GraphView) processPointer(screen, stage Vec2, pressed bool) {
	in := &gv.input

	var target *Node
	if in.down && in.hit != nil {
		target = in.hit
	} else {
		target = gv.hitTest(screen)
	}

	if target != in.hover {
		if in.hover != nil && !in.hover.IsDisposed() {
			gv.emit(ViewEvent{Type: EventPointerLeave, Kind: KindNode, EntityID: in.hover.EntityID, X: stage.X, Y: stage.Y})
		}
		if target != nil {
			gv.emit(ViewEvent{Type: EventPointerEnter, Kind: KindNode, EntityID: target.EntityID, X: stage.X, Y: stage.Y})
		}
		in.hover = target
	}

	switch {
	case pressed && !in.down:
		in.down = true
		in.dragging = false
		in.start = stage
		in.last = stage
		in.hit = target
		if target != nil {
			in.hitStart = target.Position()
			target.MoveToTop()
		}

	case !pressed && in.down:
		hit := in.hit
		if in.dragging && hit != nil {
			gv.emit(ViewEvent{
				Type: EventNodeDragEnd, Kind: KindNode, EntityID: hit.EntityID,
				X: stage.X, Y: stage.Y, StartX: in.start.X, StartY: in.start.Y,
				DeltaX: stage.X - in.last.X, DeltaY: stage.Y - in.last.Y,
			})
		} else if hit != nil && hit == gv.hitTest(screen) {
			gv.emit(ViewEvent{Type: EventNodeClick, Kind: KindNode, EntityID: hit.EntityID, X: stage.X, Y: stage.Y})
			if gv.cfg.Graph.ClickToSelect && hit.Selectable {
				gv.toggleNodeSelection(hit.EntityID)
			}
		}
		in.reset()

	case pressed && in.down:
		if stage == in.last {
			break
		}
		hit := in.hit
		if !in.dragging {
			d := stage.Sub(in.start)
			if math.Hypot(d.X, d.Y) > gv.cfg.Graph.DragDeadZone && hit != nil && hit.Draggable {
				in.dragging = true
				gv.emit(ViewEvent{
					Type: EventNodeDragStart, Kind: KindNode, EntityID: hit.EntityID,
					X: stage.X, Y: stage.Y, StartX: in.start.X, StartY: in.start.Y,
					DeltaX: d.X, DeltaY: d.Y,
				})
			}
		}
		if in.dragging {
			to := Vec2{in.hitStart.X + stage.X - in.start.X, in.hitStart.Y + stage.Y - in.start.Y}
			if err := gv.MoveNode(hit.EntityID, to); err != nil {
				gv.logger.Warn("drag", "node", hit.EntityID, "err", err)
				in.reset()
				return
			}
			gv.emit(ViewEvent{
				Type: EventNodeDrag, Kind: KindNode, EntityID: hit.EntityID,
				X: stage.X, Y: stage.Y, StartX: in.start.X, StartY: in.start.Y,
				DeltaX: stage.X - in.last.X, DeltaY: stage.Y - in.last.Y,
			})
		}
		in.last = stage
	}
}

// toggleNodeSelection adds or removes id from the node selection.
func (gv *GraphView) toggleNodeSelection(id string) {
	sel := gv.selection.Selected(KindNode)
	if sel.Has(id) {
		delete(sel, id)
	} else {
		sel[id] = struct{}{}
	}
	gv.selectKind(KindNode, sel)
}

func (gv *GraphView) emit(e ViewEvent) {
	if gv.events == nil {
		return
	}
	if e.Selected != nil {
		e.Selected = slices.Clone(e.Selected)
	}
	gv.events.EmitEvent(e)
}
