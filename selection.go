package graphview

import (
	"maps"
	"slices"
)

// IDSet is a set of entity ids.
type IDSet map[string]struct{}

// NewIDSet builds a set from ids.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set. A nil set is empty.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the members in lexical order.
func (s IDSet) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}

// Selection tracks the selected ids per kind and keeps every registered
// handle in the layer matching its membership.
type Selection struct {
	registry *Registry
	layers   [2]layerSet
	sets     [2]IDSet
}

func newSelection(reg *Registry, nodes, edges layerSet) *Selection {
	return &Selection{
		registry: reg,
		layers:   [2]layerSet{nodes, edges},
		sets:     [2]IDSet{{}, {}},
	}
}

// Select makes ids the selection for kind. Every registered handle of that
// kind is re-parented to the selected layer if its id is in ids and to the
// normal layer otherwise. Ids without a handle are tracked but attach nowhere.
func (s *Selection) Select(kind EntityKind, ids IDSet) {
	next := maps.Clone(ids)
	if next == nil {
		next = IDSet{}
	}
	ls := s.layers[kind]
	for id, h := range s.registry.All(kind) {
		ls.pick(next.Has(id)).Attach(h)
	}
	s.sets[kind] = next
}

// Selected returns a copy of the selected ids for kind.
func (s *Selection) Selected(kind EntityKind) IDSet {
	return maps.Clone(s.sets[kind])
}

// IsSelected reports whether id is selected.
func (s *Selection) IsSelected(kind EntityKind, id string) bool {
	return s.sets[kind].Has(id)
}

// LayerFor returns the layer a handle for (kind, id) belongs in.
func (s *Selection) LayerFor(kind EntityKind, id string) *Layer {
	return s.layers[kind].pick(s.IsSelected(kind, id))
}

// Forget drops id from the selection without touching any layer.
func (s *Selection) Forget(kind EntityKind, id string) {
	delete(s.sets[kind], id)
}
