package world

// World bundles the collision space and the entity heap. The server runtime
// owns the aggregate exclusively once bootstrap hands it over; other
// goroutines never hold references into it.
type World struct {
	Space  *Space
	Matter *Heap
}
