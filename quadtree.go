package sapling

import (
	"math"

	"github.com/phanxgames/sapling/arena"
)

// Default quadtree tuning used when a Config leaves the values unset.
const (
	DefaultMaxLeafElements = 8
	DefaultMaxDepth        = 8
)

// branch is the count sentinel marking a quadNode as a branch.
const branch = -1

// quadNode is either a branch (count == branch, firstChild is the first of
// four contiguous children ordered TL, TR, BL, BR) or a leaf (count >= 0,
// firstChild heads the element-node list or is -1).
type quadNode struct {
	firstChild int
	count      int
}

type quadElement struct {
	id   int
	aabb AABB
}

// quadElementNode is one cell of a leaf's singly linked element list.
type quadElementNode struct {
	next    int
	element int
}

// Quadtree is a point quadtree. Elements are bucketed by the center of their
// AABB; half extents only feed the running maxima used to pad queries, so a
// query is an approximation of true box overlap.
type Quadtree struct {
	aabb            AABB
	maxLeafElements int
	maxDepth        int
	maxW, maxH      float64
	size            int

	nodes        []quadNode
	freeNode     int // first child of a reclaimed block of four, or -1
	elements     arena.FreeList[quadElement]
	elementNodes arena.FreeList[quadElementNode]
}

// NewQuadtree creates an empty quadtree covering b. A leaf splits once it
// holds maxLeafElements elements unless it already sits at maxDepth.
func NewQuadtree(b AABB, maxLeafElements, maxDepth int) *Quadtree {
	if maxLeafElements < 1 {
		panic("sapling: quadtree max leaf elements must be positive")
	}
	if maxDepth < 0 {
		panic("sapling: quadtree max depth must not be negative")
	}
	q := &Quadtree{
		aabb:            b,
		maxLeafElements: maxLeafElements,
		maxDepth:        maxDepth,
	}
	q.reset()
	return q
}

func (q *Quadtree) reset() {
	q.nodes = append(q.nodes[:0], quadNode{firstChild: -1})
	q.freeNode = -1
	q.elements.Clear()
	q.elementNodes.Clear()
	q.maxW, q.maxH = 0, 0
	q.size = 0
}

// AABB returns the extent of the tree.
func (q *Quadtree) AABB() AABB { return q.aabb }

// Len returns the number of stored elements.
func (q *Quadtree) Len() int { return q.size }

// MaxExtents returns the largest half width and half height inserted since
// the tree was created or last resized.
func (q *Quadtree) MaxExtents() (hw, hh float64) { return q.maxW, q.maxH }

// Inside reports whether (x, y) lies within the tree's extent.
func (q *Quadtree) Inside(x, y float64) bool { return q.aabb.InsidePoint(x, y) }

// Insert adds id with bounds b. Points outside the tree's extent are
// bucketed into the nearest edge quadrant.
func (q *Quadtree) Insert(id int, b AABB) {
	e := q.elements.Insert(quadElement{id: id, aabb: b})
	node, quad, depth := 0, q.aabb, 0
	for {
		n := q.nodes[node]
		if n.count == branch {
			c := quad.FindQuadrant(b.X, b.Y)
			node = n.firstChild + int(c)
			quad = quad.Split(c)
			depth++
			continue
		}
		if n.count >= q.maxLeafElements && depth < q.maxDepth {
			q.leafToBranch(node, quad)
			continue
		}
		q.appendElement(node, e)
		break
	}
	q.maxW = math.Max(q.maxW, b.HW)
	q.maxH = math.Max(q.maxH, b.HH)
	q.size++
}

// appendElement links element e at the tail of leaf node's list.
func (q *Quadtree) appendElement(node, e int) {
	cell := q.elementNodes.Insert(quadElementNode{next: -1, element: e})
	n := &q.nodes[node]
	if n.firstChild == -1 {
		n.firstChild = cell
	} else {
		tail := n.firstChild
		for q.elementNodes.At(tail).next != -1 {
			tail = q.elementNodes.At(tail).next
		}
		q.elementNodes.At(tail).next = cell
	}
	n.count++
}

// leafToBranch turns leaf node into a branch and moves its elements into the
// new children by point quadrant, keeping their list order.
func (q *Quadtree) leafToBranch(node int, quad AABB) {
	var moved arena.SmallList[int]
	for cell := q.nodes[node].firstChild; cell != -1; {
		en := *q.elementNodes.At(cell)
		moved.Push(en.element)
		q.elementNodes.Erase(cell)
		cell = en.next
	}

	first := q.freeNode
	if first != -1 {
		q.freeNode = q.nodes[first].firstChild
	} else {
		first = len(q.nodes)
		q.nodes = append(q.nodes, quadNode{}, quadNode{}, quadNode{}, quadNode{})
	}
	for i := 0; i < 4; i++ {
		q.nodes[first+i] = quadNode{firstChild: -1}
	}
	q.nodes[node] = quadNode{firstChild: first, count: branch}

	for i := 0; i < moved.Len(); i++ {
		e := moved.At(i)
		p := q.elements.At(e).aabb
		q.appendElement(first+int(quad.FindQuadrant(p.X, p.Y)), e)
	}
}

// Remove deletes id, which must have been inserted with bounds b. It panics
// when the owning leaf is empty or does not hold id.
func (q *Quadtree) Remove(id int, b AABB) {
	node, quad := 0, q.aabb
	for q.nodes[node].count == branch {
		c := quad.FindQuadrant(b.X, b.Y)
		node = q.nodes[node].firstChild + int(c)
		quad = quad.Split(c)
	}

	n := &q.nodes[node]
	if n.count == 0 {
		panic("sapling: quadtree remove from empty leaf")
	}
	prev := -1
	for cell := n.firstChild; cell != -1; {
		en := *q.elementNodes.At(cell)
		if q.elements.At(en.element).id == id {
			if prev == -1 {
				n.firstChild = en.next
			} else {
				q.elementNodes.At(prev).next = en.next
			}
			q.elements.Erase(en.element)
			q.elementNodes.Erase(cell)
			n.count--
			q.size--
			return
		}
		prev = cell
		cell = en.next
	}
	panic("sapling: quadtree element not found")
}

// Move relocates id from bounds from to bounds to.
func (q *Quadtree) Move(id int, from, to AABB) {
	q.Remove(id, from)
	q.Insert(id, to)
}

// Cleanup collapses every branch whose four children are empty leaves back
// into an empty leaf. Children are visited before their parents so collapses
// cascade upward. Reclaimed child blocks are reused by later splits.
func (q *Quadtree) Cleanup() {
	if q.nodes[0].count != branch {
		return
	}
	var stack, order arena.SmallList[int]
	stack.Push(0)
	for stack.Len() > 0 {
		node := stack.Pop()
		order.Push(node)
		first := q.nodes[node].firstChild
		for i := 0; i < 4; i++ {
			if q.nodes[first+i].count == branch {
				stack.Push(first + i)
			}
		}
	}

	for order.Len() > 0 {
		node := order.Pop()
		first := q.nodes[node].firstChild
		empty := true
		for i := 0; i < 4; i++ {
			if q.nodes[first+i].count != 0 {
				empty = false
				break
			}
		}
		if !empty {
			continue
		}
		q.nodes[first].firstChild = q.freeNode
		q.freeNode = first
		q.nodes[node] = quadNode{firstChild: -1}
	}
}

// Query returns the ids whose center lies inside b grown by the largest
// tracked half extents. Elements whose box overlaps b are therefore never
// missed, but elements that merely sit close to b may be returned too.
func (q *Quadtree) Query(b AABB) []int {
	return q.AppendQuery(nil, b)
}

// AppendQuery is like Query but appends the ids to dst.
func (q *Quadtree) AppendQuery(dst []int, b AABB) []int {
	search := b.Expand(q.maxW, q.maxH)
	var nodes arena.SmallList[int]
	var quads arena.SmallList[AABB]
	nodes.Push(0)
	quads.Push(q.aabb)
	for nodes.Len() > 0 {
		node := nodes.Pop()
		quad := quads.Pop()
		n := q.nodes[node]
		if n.count == branch {
			for i := 0; i < 4; i++ {
				sub := quad.Split(Quadrant(i))
				if search.Overlap(sub) {
					nodes.Push(n.firstChild + i)
					quads.Push(sub)
				}
			}
			continue
		}
		for cell := n.firstChild; cell != -1; cell = q.elementNodes.At(cell).next {
			e := q.elements.At(q.elementNodes.At(cell).element)
			if search.InsidePoint(e.aabb.X, e.aabb.Y) {
				dst = append(dst, e.id)
			}
		}
	}
	return dst
}

// Resize rebounds the tree to b and reinserts every element.
func (q *Quadtree) Resize(b AABB) {
	stored := q.collect()
	q.aabb = b
	q.reset()
	for _, e := range stored {
		q.Insert(e.id, e.aabb)
	}
}

// collect returns every stored element in traversal order.
func (q *Quadtree) collect() []quadElement {
	out := make([]quadElement, 0, q.size)
	var stack arena.SmallList[int]
	stack.Push(0)
	for stack.Len() > 0 {
		n := q.nodes[stack.Pop()]
		if n.count == branch {
			for i := 3; i >= 0; i-- {
				stack.Push(n.firstChild + i)
			}
			continue
		}
		for cell := n.firstChild; cell != -1; cell = q.elementNodes.At(cell).next {
			out = append(out, *q.elements.At(q.elementNodes.At(cell).element))
		}
	}
	return out
}
