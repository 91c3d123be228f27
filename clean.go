package sapling

import "github.com/phanxgames/sapling/arena"

// minimalClean brings the relative values of id up to date by recomputing
// only the dirty stretch of its ancestor chain, root side first. Siblings and
// descendants stay dirty, and the root keeps its index-stale mark so the next
// traversal still refreshes the quadtree.
func (g *Graph) minimalClean(id int) {
	if !g.flags[id].Has(FlagDirty) {
		return
	}
	var path arena.SmallList[int]
	for {
		path.Push(id)
		if g.isRoot(id) || !g.flags[g.parent[id]].Has(FlagDirty) {
			break
		}
		id = g.parent[id]
	}
	for path.Len() > 0 {
		g.process(path.Pop())
	}
}
