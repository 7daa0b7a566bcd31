package graphview

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on a Node simultaneously and
// marks the node dirty after every step. If the target node is disposed,
// the group stops immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	Done   bool
}

func (g *TweenGroup) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	g.tweens[g.count] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[g.count] = field
	g.count++
}

// Update advances all tweens by dt seconds and writes values to the target
// fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
}

// TweenPosition animates node.X and node.Y to (toX, toY).
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.X, toX, duration, fn)
	g.add(&node.Y, toY, duration, fn)
	return g
}

// TweenScale animates node.ScaleX and node.ScaleY to (toSX, toSY).
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.ScaleX, toSX, duration, fn)
	g.add(&node.ScaleY, toSY, duration, fn)
	return g
}

// TweenTransform animates position and scale together.
func TweenTransform(node *Node, to Vec2, toScale float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.X, to.X, duration, fn)
	g.add(&node.Y, to.Y, duration, fn)
	g.add(&node.ScaleX, toScale, duration, fn)
	g.add(&node.ScaleY, toScale, duration, fn)
	return g
}

// TweenAlpha animates node.Alpha to the target value.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.Alpha, to, duration, fn)
	return g
}

// tweenSet runs a list of groups, dropping finished ones.
type tweenSet struct {
	groups []*TweenGroup
}

func (s *tweenSet) add(g *TweenGroup) {
	s.groups = append(s.groups, g)
}

// cancel drops every group targeting n.
func (s *tweenSet) cancel(n *Node) {
	kept := s.groups[:0]
	for _, g := range s.groups {
		if g.target != n {
			kept = append(kept, g)
		}
	}
	clear(s.groups[len(kept):])
	s.groups = kept
}

func (s *tweenSet) update(dt float32) {
	kept := s.groups[:0]
	for _, g := range s.groups {
		g.Update(dt)
		if !g.Done {
			kept = append(kept, g)
		}
	}
	clear(s.groups[len(kept):])
	s.groups = kept
}

func (s *tweenSet) len() int { return len(s.groups) }
