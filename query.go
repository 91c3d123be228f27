package sapling

import (
	"cmp"
	"slices"
)

// Query returns uncounted handles to n and those of its descendants whose
// AABB overlaps b. Hidden nodes are skipped together with their subtrees.
// The tree is traversed first if it is out of date.
//
// Query tests every candidate's AABB directly and does not consult the
// quadtree; QueryIndex is the indexed variant. With depthSorted set the
// result is stably sorted by relative depth, lowest first.
func (n Node) Query(b AABB, depthSorted bool) []Node {
	g := n.check()
	g.sceneTraverse(g.rootOf(n.id))

	ids := g.subtree(nil, n.id, true)
	out := make([]Node, 0, len(ids))
	for _, id := range ids {
		if g.aabb[id].Overlap(b) {
			out = append(out, Node{g: g, id: id, gen: g.gen[id]})
		}
	}
	if depthSorted {
		g.sortByDepth(out)
	}
	return out
}

// QueryIndex answers a query through the root's quadtree. It returns n and
// its visible descendants whose AABB center lies within b grown by the
// largest indexed half extents, so nodes near b may be included even though
// their boxes do not overlap it.
func (n Node) QueryIndex(b AABB, depthSorted bool) []Node {
	g := n.check()
	r := g.rootOf(n.id)
	g.sceneTraverse(r)

	var out []Node
	for _, id := range g.tree[r].Query(b) {
		if id != n.id && !g.isAncestor(n.id, id) {
			continue
		}
		if g.hiddenFrom(id, n.id) {
			continue
		}
		out = append(out, Node{g: g, id: id, gen: g.gen[id]})
	}
	if depthSorted {
		g.sortByDepth(out)
	}
	return out
}

func (g *Graph) sortByDepth(nodes []Node) {
	slices.SortStableFunc(nodes, func(a, b Node) int {
		return cmp.Compare(g.rDepth[a.id], g.rDepth[b.id])
	})
}
