// Package arena provides index-stable containers used by the sapling scene
// graph and quadtree.
//
// [FreeList] and [ExtFreeList] hand out int indices that stay valid until the
// slot is erased; erased slots are threaded into an intrusive free chain and
// reused in O(1). [SmallList] is a stack that keeps its first elements in an
// inline array so short-lived traversal queues do not allocate.
//
// Stored values must be trivially reconstructible: Erase zeroes the slot and
// runs no cleanup.
package arena

// FreeList is an indexed free list with constant-time removal from anywhere
// in the list without invalidating other indices.
// The zero value is an empty list ready to use.
type FreeList[T any] struct {
	data     []freeElement[T]
	freeHead int // first free slot + 1, 0 when the chain is empty
}

type freeElement[T any] struct {
	element T
	next    int // next free slot + 1, only meaningful while the slot is free
}

// Insert stores v and returns its index. A previously erased slot is reused
// when one exists.
func (l *FreeList[T]) Insert(v T) int {
	if l.freeHead != 0 {
		i := l.freeHead - 1
		l.freeHead = l.data[i].next
		l.data[i] = freeElement[T]{element: v}
		return i
	}
	l.data = append(l.data, freeElement[T]{element: v})
	return len(l.data) - 1
}

// Erase releases slot i for reuse.
func (l *FreeList[T]) Erase(i int) {
	if i < 0 || i >= len(l.data) {
		panic("arena: erase index out of range")
	}
	var zero T
	l.data[i].element = zero
	l.data[i].next = l.freeHead
	l.freeHead = i + 1
}

// Clear drops every slot, free or not.
func (l *FreeList[T]) Clear() {
	l.data = l.data[:0]
	l.freeHead = 0
}

// Range returns one past the highest index ever handed out since the last
// Clear. Free slots are included.
func (l *FreeList[T]) Range() int {
	return len(l.data)
}

// At returns a pointer to the value in slot i. The pointer is invalidated by
// the next Insert that grows the list.
func (l *FreeList[T]) At(i int) *T {
	return &l.data[i].element
}
