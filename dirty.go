package sapling

// propagateDirty marks id, every ancestor and every descendant dirty, and
// flags the root for an index refresh.
func (g *Graph) propagateDirty(id int) {
	g.dirtyChain(id)
	g.order = g.subtree(g.order[:0], id, false)
	for _, i := range g.order[1:] {
		g.flags[i] |= FlagDirty
	}
}

// dirtyChain marks id and its ancestors dirty, and the root index-stale.
func (g *Graph) dirtyChain(id int) {
	g.flags[id] |= FlagDirty
	for !g.isRoot(id) {
		id = g.parent[id]
		g.flags[id] |= FlagDirty
	}
	g.flags[id] |= flagIndexStale
}
