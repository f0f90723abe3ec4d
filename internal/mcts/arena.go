package mcts

// arena is an append-only, index-stable container. Nodes are never removed
// or reordered during a run, so ids allocated from it stay valid for the
// lifetime of the Tree.
type arena[T any] struct {
	storage []T
}

// allocate appends item and returns the id it was stored under.
func (a *arena[T]) allocate(item T) NodeId {
	id := NodeId(len(a.storage))
	a.storage = append(a.storage, item)
	return id
}

// get returns a pointer to the item at id, or nil if id is out of range.
func (a *arena[T]) get(id NodeId) *T {
	idx := id.Index()
	if idx < 0 || idx >= len(a.storage) {
		return nil
	}
	return &a.storage[idx]
}

// len returns how many items have been allocated.
func (a *arena[T]) len() int { return len(a.storage) }

// isEmpty reports whether the arena has no items.
func (a *arena[T]) isEmpty() bool { return len(a.storage) == 0 }
