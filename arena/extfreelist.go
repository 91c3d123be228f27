package arena

// ExtFreeList is a FreeList that also tracks which slots are in use, so
// callers holding possibly stale indices can check them with Active. When
// the last used slot is erased the backing store is compacted to zero.
// The zero value is an empty list ready to use.
type ExtFreeList[T any] struct {
	data      []extElement[T]
	freeHead  int // first free slot + 1, 0 when the chain is empty
	freeCount int
}

type extElement[T any] struct {
	element T
	next    int
	free    bool
}

// Insert stores v and returns its index, reusing the most recently erased
// slot if there is one.
func (l *ExtFreeList[T]) Insert(v T) int {
	if l.freeHead != 0 {
		i := l.freeHead - 1
		l.freeHead = l.data[i].next
		l.data[i] = extElement[T]{element: v}
		l.freeCount--
		return i
	}
	l.data = append(l.data, extElement[T]{element: v})
	return len(l.data) - 1
}

// Erase releases slot i. Erasing a slot that is already free panics.
func (l *ExtFreeList[T]) Erase(i int) {
	if !l.Active(i) {
		panic("arena: erase of inactive slot")
	}
	var zero T
	l.data[i] = extElement[T]{element: zero, next: l.freeHead, free: true}
	l.freeHead = i + 1
	l.freeCount++
	if l.freeCount == len(l.data) {
		l.Clear()
	}
}

// Clear drops every slot.
func (l *ExtFreeList[T]) Clear() {
	l.data = l.data[:0]
	l.freeHead = 0
	l.freeCount = 0
}

// Range returns one past the highest index currently backed by storage.
func (l *ExtFreeList[T]) Range() int {
	return len(l.data)
}

// Len returns the number of slots in use.
func (l *ExtFreeList[T]) Len() int {
	return len(l.data) - l.freeCount
}

// Active reports whether i refers to a slot in use.
func (l *ExtFreeList[T]) Active(i int) bool {
	return i >= 0 && i < len(l.data) && !l.data[i].free
}

// At returns a pointer to the value in slot i. It panics if the slot is not
// active.
func (l *ExtFreeList[T]) At(i int) *T {
	if !l.Active(i) {
		panic("arena: access to inactive slot")
	}
	return &l.data[i].element
}
