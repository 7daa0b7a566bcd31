package graphview

import "iter"

// registryTable is the per-kind half of the registry. Entries keep
// insertion order so iteration is deterministic.
type registryTable struct {
	index map[string]int
	ids   []string
	nodes []*Node
}

func newRegistryTable() *registryTable {
	return &registryTable{index: make(map[string]int)}
}

// Registry maps entity ids to their visual handles, independently for
// nodes and edges. It does no rendering work of its own.
type Registry struct {
	tables [2]*registryTable
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tables: [2]*registryTable{newRegistryTable(), newRegistryTable()}}
}

func (r *Registry) table(kind EntityKind) *registryTable {
	return r.tables[kind]
}

// Put registers h under (kind, id). It fails with ErrDuplicateEntity if the
// id is already present for that kind; the registry is left unchanged.
func (r *Registry) Put(kind EntityKind, id string, h *Node) error {
	t := r.table(kind)
	if _, ok := t.index[id]; ok {
		return duplicateEntity("put", kind, id)
	}
	t.index[id] = len(t.ids)
	t.ids = append(t.ids, id)
	t.nodes = append(t.nodes, h)
	return nil
}

// Get returns the handle registered under (kind, id), or an error wrapping
// ErrUnknownEntity.
func (r *Registry) Get(kind EntityKind, id string) (*Node, error) {
	t := r.table(kind)
	i, ok := t.index[id]
	if !ok {
		return nil, unknownEntity("get", kind, id)
	}
	return t.nodes[i], nil
}

// Has reports whether (kind, id) is registered.
func (r *Registry) Has(kind EntityKind, id string) bool {
	_, ok := r.table(kind).index[id]
	return ok
}

// Remove evicts (kind, id). Removing an absent id is a no-op.
func (r *Registry) Remove(kind EntityKind, id string) {
	t := r.table(kind)
	i, ok := t.index[id]
	if !ok {
		return
	}
	delete(t.index, id)
	copy(t.ids[i:], t.ids[i+1:])
	t.ids[len(t.ids)-1] = ""
	t.ids = t.ids[:len(t.ids)-1]
	copy(t.nodes[i:], t.nodes[i+1:])
	t.nodes[len(t.nodes)-1] = nil
	t.nodes = t.nodes[:len(t.nodes)-1]
	for j := i; j < len(t.ids); j++ {
		t.index[t.ids[j]] = j
	}
}

// Len returns the number of registered handles of kind.
func (r *Registry) Len(kind EntityKind) int {
	return len(r.table(kind).ids)
}

// All yields (id, handle) pairs of kind in insertion order. The sequence is
// lazy and may be ranged over any number of times. Mutating the registry
// while ranging is not supported; collect IDs first.
func (r *Registry) All(kind EntityKind) iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		t := r.table(kind)
		for i := 0; i < len(t.ids); i++ {
			if !yield(t.ids[i], t.nodes[i]) {
				return
			}
		}
	}
}

// IDs returns a snapshot of the registered ids of kind in insertion order.
func (r *Registry) IDs(kind EntityKind) []string {
	t := r.table(kind)
	out := make([]string, len(t.ids))
	copy(out, t.ids)
	return out
}

// Replace swaps the handle registered under (kind, id) for h, keeping the
// entry's position in iteration order.
func (r *Registry) Replace(kind EntityKind, id string, h *Node) error {
	t := r.table(kind)
	i, ok := t.index[id]
	if !ok {
		return unknownEntity("replace", kind, id)
	}
	t.nodes[i] = h
	return nil
}
