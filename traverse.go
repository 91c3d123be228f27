package sapling

import (
	"math"
	"time"
)

// indexEntry is one half of a from/to pair collected during a traversal.
// A from entry with id -1 means the node is not in the tree yet.
type indexEntry struct {
	id   int
	aabb AABB
}

// Traverse brings the whole tree containing n up to date: every node is
// recomputed and the root's quadtree is created, resized or updated. It
// reports whether anything changed since the previous traversal.
func (n Node) Traverse() bool {
	g := n.check()
	return g.sceneTraverse(g.rootOf(n.id))
}

// Traverse runs a traversal of every root in the graph and reports whether
// any of them changed.
func (g *Graph) Traverse() bool {
	changed := false
	n := g.refs.Range()
	for i := 0; i < n; i++ {
		if g.live(i) && g.isRoot(i) && g.sceneTraverse(i) {
			changed = true
		}
	}
	return changed
}

func (g *Graph) sceneTraverse(root int) bool {
	f := g.flags[root]
	if !f.Has(FlagDirty) && !f.Has(flagIndexStale) {
		return false
	}
	var start time.Time
	if g.debug {
		start = time.Now()
	}

	g.order = g.subtree(g.order[:0], root, false)
	entries := g.entries[:0]
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, id := range g.order {
		from := indexEntry{id: -1, aabb: g.indexedAABB[id]}
		if g.indexedIn[id] == root {
			from.id = id
		}
		g.process(id)
		b := g.aabb[id]
		entries = append(entries, from, indexEntry{id: id, aabb: b})
		minX = math.Min(minX, b.X-b.HW)
		minY = math.Min(minY, b.Y-b.HH)
		maxX = math.Max(maxX, b.X+b.HW)
		maxY = math.Max(maxY, b.Y+b.HH)
	}
	g.entries = entries
	if len(entries)%2 != 0 {
		panic("sapling: odd number of collected index entries")
	}

	stats := traverseStats{root: root, nodes: len(g.order)}
	bounds := NewAABB(minX, minY, maxX, maxY)
	tree := g.tree[root]
	switch {
	case tree == nil:
		tree = NewQuadtree(bounds, g.cfg.MaxLeafElements, g.cfg.MaxDepth)
		g.tree[root] = tree
	case !tree.Inside(minX, minY) || !tree.Inside(maxX, maxY):
		tree.Resize(bounds)
		stats.resized = true
	}

	for k := 0; k < len(entries); k += 2 {
		from, to := entries[k], entries[k+1]
		switch {
		case from.id == -1:
			tree.Insert(to.id, to.aabb)
			g.indexedIn[to.id] = root
			stats.inserted++
		case from.aabb != to.aabb:
			tree.Move(to.id, from.aabb, to.aabb)
			stats.moved++
		}
		g.indexedAABB[to.id] = to.aabb
	}
	tree.Cleanup()
	g.flags[root] &^= flagIndexStale

	if g.debug {
		stats.elapsed = time.Since(start)
	}
	g.stats = stats
	g.afterTraverse(stats)
	return true
}

// unindex removes id from the tree it was inserted into, if any.
func (g *Graph) unindex(id int) {
	r := g.indexedIn[id]
	if r == -1 {
		return
	}
	if t := g.tree[r]; t != nil {
		t.Remove(id, g.indexedAABB[id])
	}
	g.indexedIn[id] = -1
}

// unindexSubtree unindexes id and all its descendants.
func (g *Graph) unindexSubtree(id int) {
	g.order = g.subtree(g.order[:0], id, false)
	for _, i := range g.order {
		g.unindex(i)
	}
}

// dropTree discards the quadtree owned by root and forgets which nodes it
// held.
func (g *Graph) dropTree(root int) {
	n := len(g.indexedIn)
	for i := 0; i < n; i++ {
		if g.indexedIn[i] == root {
			g.indexedIn[i] = -1
		}
	}
	g.tree[root] = nil
}

// Quadtree returns the spatial index owned by n's root, traversing first if
// the tree is out of date.
func (n Node) Quadtree() *Quadtree {
	g := n.check()
	r := g.rootOf(n.id)
	g.sceneTraverse(r)
	return g.tree[r]
}
