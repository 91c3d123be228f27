package arena

// smallListInline is the number of elements kept in the inline array before
// a SmallList moves to heap storage.
const smallListInline = 128

// SmallList is a stack with small-size optimization. Declare it as a local
// variable; it stays allocation-free until it holds more than 128 elements.
// There is no FIFO guarantee: Pop returns the most recently pushed element.
type SmallList[T any] struct {
	inline [smallListInline]T
	heap   []T
	size   int
	onHeap bool
}

// Push appends v.
func (l *SmallList[T]) Push(v T) {
	if !l.onHeap && l.size == smallListInline {
		l.heap = make([]T, smallListInline, smallListInline*2)
		copy(l.heap, l.inline[:])
		l.onHeap = true
	}
	if l.onHeap {
		l.heap = append(l.heap, v)
	} else {
		l.inline[l.size] = v
	}
	l.size++
}

// Pop removes and returns the last element. It panics on an empty list.
func (l *SmallList[T]) Pop() T {
	if l.size == 0 {
		panic("arena: pop from empty SmallList")
	}
	l.size--
	if l.onHeap {
		v := l.heap[l.size]
		l.heap = l.heap[:l.size]
		return v
	}
	return l.inline[l.size]
}

// Len returns the number of elements.
func (l *SmallList[T]) Len() int {
	return l.size
}

// At returns the element at index i.
func (l *SmallList[T]) At(i int) T {
	if i < 0 || i >= l.size {
		panic("arena: SmallList index out of range")
	}
	if l.onHeap {
		return l.heap[i]
	}
	return l.inline[i]
}

// Set overwrites the element at index i.
func (l *SmallList[T]) Set(i int, v T) {
	if i < 0 || i >= l.size {
		panic("arena: SmallList index out of range")
	}
	if l.onHeap {
		l.heap[i] = v
		return
	}
	l.inline[i] = v
}

// Clear empties the list, keeping any heap storage for reuse.
func (l *SmallList[T]) Clear() {
	l.size = 0
	if l.onHeap {
		l.heap = l.heap[:0]
	}
}

// Slice copies the elements into a new slice in push order.
func (l *SmallList[T]) Slice() []T {
	out := make([]T, l.size)
	if l.onHeap {
		copy(out, l.heap)
	} else {
		copy(out, l.inline[:l.size])
	}
	return out
}
