// Package heap provides the binary-heap priority queues used by the seating algorithms.
//
// Both heaps order items by an integer key only. Callers that need a
// secondary ordering bake it into the key (for example vipCount*10000 + count)
// or negate the key to get max-semantics from a MinHeap. Items with equal keys
// pop in insertion order, so slice order is the final tie-break.
package heap

// Item is a keyed heap entry.
type Item[T any] struct {
	Key   int
	Value T
}

type entry[T any] struct {
	item Item[T]
	seq  uint64
}

// core is a binary heap parameterized by comparison direction.
type core[T any] struct {
	entries []entry[T]
	nextSeq uint64
	max     bool
}

func (h *core[T]) init(items []Item[T]) {
	h.entries = make([]entry[T], len(items))
	for i, it := range items {
		h.entries[i] = entry[T]{item: it, seq: h.nextSeq}
		h.nextSeq++
	}
	h.heapify()
}

// heapify restores the heap property over an unsorted backing slice.
func (h *core[T]) heapify() {
	for i := len(h.entries)/2 - 1; i >= 0; i-- {
		h.down(i)
	}
}

func (h *core[T]) before(i, j int) bool {
	a, b := h.entries[i], h.entries[j]
	if a.item.Key != b.item.Key {
		if h.max {
			return a.item.Key > b.item.Key
		}

		return a.item.Key < b.item.Key
	}

	return a.seq < b.seq
}

func (h *core[T]) push(key int, value T) {
	h.entries = append(h.entries, entry[T]{item: Item[T]{Key: key, Value: value}, seq: h.nextSeq})
	h.nextSeq++
	h.up(len(h.entries) - 1)
}

func (h *core[T]) pop() (Item[T], bool) {
	n := len(h.entries)
	if n == 0 {
		return Item[T]{}, false
	}

	top := h.entries[0].item
	last := n - 1
	h.entries[0] = h.entries[last]
	h.entries[last] = entry[T]{}
	h.entries = h.entries[:last]
	if last > 0 {
		h.down(0)
	}

	return top, true
}

func (h *core[T]) peek() (Item[T], bool) {
	if len(h.entries) == 0 {
		return Item[T]{}, false
	}

	return h.entries[0].item, true
}

func (h *core[T]) up(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.before(i, parent) {
			return
		}
		h.entries[i], h.entries[parent] = h.entries[parent], h.entries[i]
		i = parent
	}
}

func (h *core[T]) down(i int) {
	n := len(h.entries)
	for {
		best := i
		left, right := 2*i+1, 2*i+2
		if left < n && h.before(left, best) {
			best = left
		}
		if right < n && h.before(right, best) {
			best = right
		}
		if best == i {
			return
		}
		h.entries[i], h.entries[best] = h.entries[best], h.entries[i]
		i = best
	}
}

// MinHeap pops the item with the smallest key first.
type MinHeap[T any] struct {
	c core[T]
}

// NewMin builds a MinHeap from an unsorted slice in O(n).
//
// Parameters:
//   - items: Initial items (copied; the slice is not retained)
//
// Returns:
//   - *MinHeap[T]: Heap containing all items
//
// Example:
//
//	h := heap.NewMin(heap.Item[string]{Key: 3, Value: "t1"}, heap.Item[string]{Key: 1, Value: "t2"})
//	top, _ := h.Pop() // t2
func NewMin[T any](items ...Item[T]) *MinHeap[T] {
	h := &MinHeap[T]{}
	h.c.init(items)

	return h
}

// Push adds value with the given key. O(log n).
func (h *MinHeap[T]) Push(key int, value T) { h.c.push(key, value) }

// Pop removes and returns the smallest-key item; ok is false when empty. O(log n).
func (h *MinHeap[T]) Pop() (Item[T], bool) { return h.c.pop() }

// Peek returns the smallest-key item without removing it. O(1).
func (h *MinHeap[T]) Peek() (Item[T], bool) { return h.c.peek() }

// Len returns the number of items.
func (h *MinHeap[T]) Len() int { return len(h.c.entries) }

// IsEmpty reports whether the heap holds no items.
func (h *MinHeap[T]) IsEmpty() bool { return len(h.c.entries) == 0 }

// MaxHeap pops the item with the largest key first.
//
// The ordering is inverted in the comparison; keys are stored as given.
type MaxHeap[T any] struct {
	c core[T]
}

// NewMax builds a MaxHeap from an unsorted slice in O(n).
func NewMax[T any](items ...Item[T]) *MaxHeap[T] {
	h := &MaxHeap[T]{c: core[T]{max: true}}
	h.c.init(items)

	return h
}

// Push adds value with the given key. O(log n).
func (h *MaxHeap[T]) Push(key int, value T) { h.c.push(key, value) }

// Pop removes and returns the largest-key item; ok is false when empty. O(log n).
func (h *MaxHeap[T]) Pop() (Item[T], bool) { return h.c.pop() }

// Peek returns the largest-key item without removing it. O(1).
func (h *MaxHeap[T]) Peek() (Item[T], bool) { return h.c.peek() }

// Len returns the number of items.
func (h *MaxHeap[T]) Len() int { return len(h.c.entries) }

// IsEmpty reports whether the heap holds no items.
func (h *MaxHeap[T]) IsEmpty() bool { return len(h.c.entries) == 0 }
