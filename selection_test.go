package graphview

import (
	"slices"
	"testing"
)

type selectionFixture struct {
	reg   *Registry
	nodes layerSet
	edges layerSet
	sel   *Selection
}

func newSelectionFixture(t *testing.T, ids ...string) *selectionFixture {
	t.Helper()
	f := &selectionFixture{
		reg:   NewRegistry(),
		nodes: layerSet{normal: newLayer("nodes", KindNode, false), selected: newLayer("selectedNodes", KindNode, true)},
		edges: layerSet{normal: newLayer("edges", KindEdge, false), selected: newLayer("selectedEdges", KindEdge, true)},
	}
	f.sel = newSelection(f.reg, f.nodes, f.edges)
	for _, id := range ids {
		h := tagged(id)
		if err := f.reg.Put(KindNode, id, h); err != nil {
			t.Fatal(err)
		}
		f.nodes.normal.Attach(h)
	}
	return f
}

// assertPartition checks that the registered node ids are exactly the
// disjoint union of both layers and that the selected layer holds
// want ∩ registered.
func (f *selectionFixture) assertPartition(t *testing.T, want ...string) {
	t.Helper()
	normal := f.nodes.normal.IDs()
	selected := f.nodes.selected.IDs()
	slices.Sort(normal)
	slices.Sort(selected)

	union := append(slices.Clone(normal), selected...)
	slices.Sort(union)
	reg := f.reg.IDs(KindNode)
	slices.Sort(reg)
	if !slices.Equal(union, reg) {
		t.Errorf("layers hold %v, registry holds %v", union, reg)
	}
	for _, id := range selected {
		if slices.Contains(normal, id) {
			t.Errorf("%q in both layers", id)
		}
	}
	var expect []string
	for _, id := range want {
		if f.reg.Has(KindNode, id) {
			expect = append(expect, id)
		}
	}
	slices.Sort(expect)
	if !slices.Equal(selected, expect) {
		t.Errorf("selected layer = %v, want %v", selected, expect)
	}
}

func TestSelectPartitions(t *testing.T) {
	f := newSelectionFixture(t, "a", "b", "c")
	f.sel.Select(KindNode, NewIDSet("a", "c"))
	f.assertPartition(t, "a", "c")
	if !f.sel.IsSelected(KindNode, "a") || f.sel.IsSelected(KindNode, "b") {
		t.Error("IsSelected disagrees with the selection")
	}
}

func TestSelectIdempotent(t *testing.T) {
	f := newSelectionFixture(t, "a", "b", "c")
	f.sel.Select(KindNode, NewIDSet("b"))
	first := f.nodes.selected.IDs()
	f.sel.Select(KindNode, NewIDSet("b"))
	if got := f.nodes.selected.IDs(); !slices.Equal(got, first) {
		t.Errorf("second Select = %v, want %v", got, first)
	}
	f.assertPartition(t, "b")
}

func TestSelectThenClear(t *testing.T) {
	f := newSelectionFixture(t, "a", "b")
	f.sel.Select(KindNode, NewIDSet("a"))
	f.sel.Select(KindNode, NewIDSet())
	if f.nodes.selected.Len() != 0 {
		t.Errorf("selected layer has %d handles, want 0", f.nodes.selected.Len())
	}
	h, _ := f.reg.Get(KindNode, "a")
	if !f.nodes.normal.Contains(h) {
		t.Error("a not back in the normal layer")
	}
	f.assertPartition(t)
}

func TestSelectUnknownIDs(t *testing.T) {
	f := newSelectionFixture(t, "a")
	f.sel.Select(KindNode, NewIDSet("a", "ghost"))
	f.assertPartition(t, "a", "ghost")
	// Tracked even without a handle, so a later add lands selected.
	if !f.sel.IsSelected(KindNode, "ghost") {
		t.Error("ghost should stay in the selection set")
	}
	if f.sel.LayerFor(KindNode, "ghost") != f.nodes.selected {
		t.Error("LayerFor(ghost) should be the selected layer")
	}
}

func TestSelectNilSet(t *testing.T) {
	f := newSelectionFixture(t, "a")
	f.sel.Select(KindNode, NewIDSet("a"))
	f.sel.Select(KindNode, nil)
	f.assertPartition(t)
}

func TestSelectKindsIndependent(t *testing.T) {
	f := newSelectionFixture(t, "a")
	e := tagged("a")
	_ = f.reg.Put(KindEdge, "a", e)
	f.edges.normal.Attach(e)

	f.sel.Select(KindEdge, NewIDSet("a"))
	if f.sel.IsSelected(KindNode, "a") {
		t.Error("edge selection leaked into nodes")
	}
	if !f.edges.selected.Contains(e) {
		t.Error("edge handle not in selected edge layer")
	}
	f.assertPartition(t)
}

func TestSelectedReturnsCopy(t *testing.T) {
	f := newSelectionFixture(t, "a")
	f.sel.Select(KindNode, NewIDSet("a"))
	s := f.sel.Selected(KindNode)
	delete(s, "a")
	if !f.sel.IsSelected(KindNode, "a") {
		t.Error("mutating Selected() changed the selection")
	}
}

func TestSelectionForget(t *testing.T) {
	f := newSelectionFixture(t, "a")
	f.sel.Select(KindNode, NewIDSet("a"))
	f.sel.Forget(KindNode, "a")
	if f.sel.IsSelected(KindNode, "a") {
		t.Error("Forget did not drop a")
	}
}

func TestIDSetSorted(t *testing.T) {
	s := NewIDSet("c", "a", "b", "a")
	if got := s.Sorted(); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("Sorted = %v", got)
	}
	var nilSet IDSet
	if nilSet.Has("x") {
		t.Error("nil set should be empty")
	}
}
