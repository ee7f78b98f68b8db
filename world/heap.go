package world

import "sort"

// Heap is the entity storage. It assigns IDs on spawn and hands out
// pointers into its own storage; callers mutate entities in place.
type Heap struct {
	nextID   EntityID
	entities map[EntityID]*Entity
}

// NewHeap returns an empty entity heap.
func NewHeap() *Heap {
	return &Heap{entities: make(map[EntityID]*Entity)}
}

// Spawn stores e under a freshly assigned ID and returns that ID.
func (h *Heap) Spawn(e Entity) EntityID {
	h.nextID++
	e.ID = h.nextID
	h.entities[e.ID] = &e
	return e.ID
}

// Get returns the entity with the given ID, or nil if it does not exist.
func (h *Heap) Get(id EntityID) *Entity {
	return h.entities[id]
}

// Remove deletes the entity with the given ID. Unknown IDs are a no-op.
func (h *Heap) Remove(id EntityID) {
	delete(h.entities, id)
}

// Len returns the number of stored entities.
func (h *Heap) Len() int {
	return len(h.entities)
}

// ForEach visits every entity in ascending ID order. The deterministic
// order matters for reproducible event processing and logging.
func (h *Heap) ForEach(fn func(*Entity)) {
	ids := make([]EntityID, 0, len(h.entities))
	for id := range h.entities {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		fn(h.entities[id])
	}
}
