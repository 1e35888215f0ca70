package world

import (
	"github.com/c360studio/worldgraph/entity"
	"github.com/c360studio/worldgraph/graph"
	"github.com/c360studio/worldgraph/relation"
)

// Snapshot is an immutable copy of a world's state. Take one before a
// bulk load that must be atomic, and Restore it if the load fails.
type Snapshot struct {
	store    *entity.Store
	registry *relation.Registry
	graph    *graph.Graph
}

// Snapshot returns a deep copy of the current state.
func (w *World) Snapshot() *Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	store := w.store.Clone()
	return &Snapshot{
		store:    store,
		registry: w.registry.Clone(),
		graph:    w.graph.Clone(store),
	}
}

// Restore replaces the world's state with a copy of the snapshot. The
// snapshot stays valid and can be restored again.
func (w *World) Restore(s *Snapshot) {
	w.mu.Lock()
	defer w.mu.Unlock()
	store := s.store.Clone()
	w.store = store
	w.registry = s.registry.Clone()
	w.graph = s.graph.Clone(store)
}
